package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"hotelledger/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID         = "id"
	FieldName       = "name"
	FieldLocation   = "location"
	FieldTopSelling = "top_selling"
	FieldDetails    = "details"
)

// Hotel is a property the ledger books rooms for, together with the listing shown to web
// guests. Every room category, room and booking carries the ID of its hotel.
type Hotel struct {
	ID         string          `db:"id"`
	Name       string          `db:"name"`
	Location   string          `db:"location"`
	Price      decimal.Decimal `db:"price"`
	Rating     decimal.Decimal `db:"rating"`
	Discount   decimal.Decimal `db:"discount"`
	TopSelling bool            `db:"top_selling"`
	Amenities  pq.StringArray  `db:"amenities"`
	Images     pq.StringArray  `db:"images"`
	Details    Details         `db:"details"`
	model.Metadata
}

type RoomOption struct {
	Type            string          `json:"type"`
	Adults          int             `json:"adults"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Taxes           decimal.Decimal `json:"taxes"`
	Breakfast       bool            `json:"breakfast"`
	Cancellation    string          `json:"cancellation"`
}

type RoomType struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Amenities   []string     `json:"amenities"`
	Options     []RoomOption `json:"options"`
}

type Nearby struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// Details is the web detail page of a hotel, stored as one JSONB document.
type Details struct {
	RoomTypes   []RoomType `json:"roomTypes"`
	WhatsNearby []Nearby   `json:"whatsNearby"`
	Facilities  []string   `json:"facilities"`
	Policies    []string   `json:"policies"`
}

func (d Details) Value() (driver.Value, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hotel details: %w", err)
	}

	return data, nil
}

func (d *Details) Scan(src any) error {
	var data []byte

	switch v := src.(type) {
	case nil:
		*d = Details{}

		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("hotel details: unsupported column type")
	}

	if err := json.Unmarshal(data, d); err != nil {
		return fmt.Errorf("failed to unmarshal hotel details: %w", err)
	}

	return nil
}
