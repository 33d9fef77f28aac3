package dto

import (
	"hotelledger/internal/domains/category/model"
	"hotelledger/shared"
	gDto "hotelledger/shared/dto"
	gModel "hotelledger/shared/model"
	"hotelledger/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	HotelID     string          `json:"hotelID"     validate:"required,max=64"`
	Name        string          `json:"name"        validate:"required,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	BasePrice   decimal.Decimal `json:"basePrice"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	return model.Category{
		ID:          uuid.NewString(),
		HotelID:     c.HotelID,
		Name:        c.Name,
		Description: c.Description,
		BasePrice:   c.BasePrice,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateCategoryRequest struct {
	Name        string           `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string           `db:"description" json:"description" validate:"omitempty,max=500"`
	BasePrice   *decimal.Decimal `db:"base_price"  json:"basePrice"`
}

type CategoryResponse struct {
	ID          string          `json:"id"`
	HotelID     string          `json:"hotelID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	gDto.Metadata
}

func (c *CategoryResponse) FromModel(model model.Category) {
	c.ID = model.ID
	c.HotelID = model.HotelID
	c.Name = model.Name
	c.Description = model.Description
	c.BasePrice = model.BasePrice
	c.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (g *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.TotalPages(totalData, limit)

	g.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		g.Categories[i].FromModel(mod)
	}
}
