package model

import (
	"hotelledger/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "room_categories"
	EntityName = "room category"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldBasePrice   = "base_price"
)

type Category struct {
	ID          string          `db:"id"`
	HotelID     string          `db:"hotel_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	BasePrice   decimal.Decimal `db:"base_price"`
	model.Metadata
}

func (c Category) Ref() model.Ref {
	return model.Ref{ID: c.ID, Name: c.Name}
}
