package dto

import (
	"hotelledger/internal/domains/hotel/model"
	"hotelledger/shared"
	gDto "hotelledger/shared/dto"
	gModel "hotelledger/shared/model"
	"hotelledger/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type CreateHotelRequest struct {
	// ID is optional. Hotels that already have an identifier in the other tables keep it.
	ID         string          `json:"id"         validate:"omitempty,max=64"`
	Name       string          `json:"name"       validate:"required,max=150"`
	Location   string          `json:"location"   validate:"omitempty,max=300"`
	Price      decimal.Decimal `json:"price"`
	Rating     decimal.Decimal `json:"rating"`
	Discount   decimal.Decimal `json:"discount"`
	TopSelling bool            `json:"topSelling"`
	Amenities  []string        `json:"amenities"  validate:"omitempty,dive,max=100"`
	Images     []string        `json:"image"      validate:"omitempty,dive,url"`
}

func (c *CreateHotelRequest) ToModel(user string) model.Hotel {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	return model.Hotel{
		ID:         id,
		Name:       c.Name,
		Location:   c.Location,
		Price:      c.Price,
		Rating:     c.Rating,
		Discount:   c.Discount,
		TopSelling: c.TopSelling,
		Amenities:  pq.StringArray(c.Amenities),
		Images:     pq.StringArray(c.Images),
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateHotelRequest struct {
	Name       string           `db:"name"        json:"name"       validate:"omitempty,max=150"`
	Location   string           `db:"location"    json:"location"   validate:"omitempty,max=300"`
	Price      *decimal.Decimal `db:"price"       json:"price"`
	Rating     *decimal.Decimal `db:"rating"      json:"rating"`
	Discount   *decimal.Decimal `db:"discount"    json:"discount"`
	TopSelling *bool            `db:"top_selling" json:"topSelling"`
	Amenities  pq.StringArray   `db:"amenities"   json:"amenities"  validate:"omitempty,dive,max=100"`
	Images     pq.StringArray   `db:"images"      json:"image"      validate:"omitempty,dive,url"`
}

type RoomOptionRequest struct {
	Type            string          `json:"type"            validate:"required,max=100"`
	Adults          int             `json:"adults"          validate:"min=1"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Taxes           decimal.Decimal `json:"taxes"`
	Breakfast       bool            `json:"breakfast"`
	Cancellation    string          `json:"cancellation"    validate:"omitempty,max=300"`
}

type RoomTypeRequest struct {
	Name        string              `json:"name"        validate:"required,max=100"`
	Description string              `json:"description" validate:"omitempty,max=1000"`
	Amenities   []string            `json:"amenities"   validate:"omitempty,dive,max=100"`
	Options     []RoomOptionRequest `json:"options"     validate:"omitempty,dive"`
}

type NearbyRequest struct {
	Name     string `json:"name"     validate:"required,max=150"`
	Distance string `json:"distance" validate:"omitempty,max=50"`
}

// HotelDetailsRequest replaces the whole detail page of a hotel.
type HotelDetailsRequest struct {
	RoomTypes   []RoomTypeRequest `json:"roomTypes"   validate:"omitempty,dive"`
	WhatsNearby []NearbyRequest   `json:"whatsNearby" validate:"omitempty,dive"`
	Facilities  []string          `json:"facilities"  validate:"omitempty,dive,max=100"`
	Policies    []string          `json:"policies"    validate:"omitempty,dive,max=500"`
}

func (h *HotelDetailsRequest) ToModel() model.Details {
	details := model.Details{
		RoomTypes:   make([]model.RoomType, len(h.RoomTypes)),
		WhatsNearby: make([]model.Nearby, len(h.WhatsNearby)),
		Facilities:  h.Facilities,
		Policies:    h.Policies,
	}

	for i, rt := range h.RoomTypes {
		options := make([]model.RoomOption, len(rt.Options))
		for j, o := range rt.Options {
			options[j] = model.RoomOption(o)
		}

		details.RoomTypes[i] = model.RoomType{
			Name:        rt.Name,
			Description: rt.Description,
			Amenities:   rt.Amenities,
			Options:     options,
		}
	}

	for i, n := range h.WhatsNearby {
		details.WhatsNearby[i] = model.Nearby(n)
	}

	return details
}

// Prices returns every money figure of the page so they can be checked together.
func (h *HotelDetailsRequest) Prices() []decimal.Decimal {
	var prices []decimal.Decimal

	for _, rt := range h.RoomTypes {
		for _, o := range rt.Options {
			prices = append(prices, o.Price, o.OriginalPrice, o.Taxes)
		}
	}

	return prices
}

type HotelResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Price      decimal.Decimal `json:"price"`
	Rating     decimal.Decimal `json:"rating"`
	Discount   decimal.Decimal `json:"discount"`
	TopSelling bool            `json:"topSelling"`
	Amenities  []string        `json:"amenities"`
	Images     []string        `json:"image"`
	Details    model.Details   `json:"details"`
	gDto.Metadata
}

func (h *HotelResponse) FromModel(model model.Hotel) {
	h.ID = model.ID
	h.Name = model.Name
	h.Location = model.Location
	h.Price = model.Price
	h.Rating = model.Rating
	h.Discount = model.Discount
	h.TopSelling = model.TopSelling
	h.Amenities = []string(model.Amenities)
	h.Images = []string(model.Images)
	h.Details = model.Details
	h.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (g *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.TotalPages(totalData, limit)

	g.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		g.Hotels[i].FromModel(mod)
	}
}
