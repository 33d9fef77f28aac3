package dto

import (
	"encoding/json"

	"hotelledger/internal/domains/room/model"
	"hotelledger/shared"
	gDto "hotelledger/shared/dto"
	gModel "hotelledger/shared/model"
	"hotelledger/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	HotelID    string `json:"hotelID"    validate:"required,max=64"`
	CategoryID string `json:"categoryID" validate:"required,uuid"`
	Name       string `json:"name"       validate:"required,max=100"`
	Active     *bool  `json:"active"     validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:          uuid.NewString(),
		HotelID:     c.HotelID,
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		BookedDates: pq.StringArray{},
		Active:      active,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	CategoryID string `db:"category_id" json:"categoryID" validate:"omitempty,uuid"`
	Name       string `db:"name"        json:"name"       validate:"omitempty,max=100"`
	Active     *bool  `db:"active"      json:"active"     validate:"omitempty"`
}

type RoomResponse struct {
	ID          string     `json:"id"`
	HotelID     string     `json:"hotelID"`
	Category    gModel.Ref `json:"category"`
	Name        string     `json:"name"`
	BookedDates []string   `json:"bookedDates"`
	Active      bool       `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Category = model.Category()
	r.Name = model.Name
	r.BookedDates = append([]string{}, model.BookedDates...)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type AvailableRoomsRequest struct {
	HotelID    string `json:"hotelID"    validate:"omitempty,max=64"`
	CategoryID string `json:"categoryID" validate:"required,uuid"`
	CheckIn    string `json:"checkIn"    validate:"required,day"`
	CheckOut   string `json:"checkOut"   validate:"required,day"`
}

// InventoryBooking is the booking block of an inventory commit. Bookings is kept opaque; the
// ledger tracks holds by date only.
type InventoryBooking struct {
	Name        string            `json:"name"        validate:"omitempty,max=100"`
	BookedDates []string          `json:"bookedDates" validate:"required,min=1,dive,day"`
	Bookings    []json.RawMessage `json:"bookings"    validate:"omitempty"`
}

// CommitInventoryRequest adds dates to a room addressed by names.
type CommitInventoryRequest struct {
	HotelID      string           `json:"hotelID"      validate:"required,max=64"`
	CategoryName string           `json:"categoryName" validate:"required,max=100"`
	RoomName     string           `json:"roomName"     validate:"required,max=100"`
	Booking      InventoryBooking `json:"booking"      validate:"required"`
}

// ReleaseInventoryRequest removes dates from a room addressed by names.
type ReleaseInventoryRequest struct {
	HotelID       string   `json:"hotelID"       validate:"required,max=64"`
	CategoryName  string   `json:"categoryName"  validate:"required,max=100"`
	RoomName      string   `json:"roomName"      validate:"required,max=100"`
	DatesToDelete []string `json:"datesToDelete" validate:"required,min=1,dive,day"`
}
