package model

import (
	"hotelledger/shared/model"

	"github.com/lib/pq"
)

const (
	TableName         = "rooms"
	CategoryTableName = "room_categories"
	EntityName        = "room"

	FieldID           = "id"
	FieldHotelID      = "hotel_id"
	FieldCategoryID   = "category_id"
	FieldCategoryName = "name"
	FieldName         = "name"
	FieldBookedDates  = "booked_dates"
	FieldActive       = "active"

	ConstraintHotel = "rooms_hotel_id_fkey"
)

// Room is one bookable unit and its inventory of committed dates.
type Room struct {
	ID           string         `db:"id"`
	HotelID      string         `db:"hotel_id"`
	CategoryID   string         `db:"category_id"`
	CategoryName string         `column:"name"       db:"category_name" table:"room_categories"`
	Name         string         `db:"name"`
	BookedDates  pq.StringArray `db:"booked_dates"`
	Active       bool           `db:"active"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "LEFT JOIN room_categories ON room_categories.id = rooms.category_id"
}

func (r Room) Category() model.Ref {
	return model.Ref{ID: r.CategoryID, Name: r.CategoryName}
}

func (r Room) Ref() model.Ref {
	return model.Ref{ID: r.ID, Name: r.Name}
}
