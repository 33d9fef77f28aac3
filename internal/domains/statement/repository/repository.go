package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelledger/infras/otel"
	"hotelledger/infras/postgres"
	"hotelledger/internal/domains/statement/model"
	gDto "hotelledger/shared/dto"
	gRepo "hotelledger/shared/repository"
)

var summaryKey = []string{model.FieldHotelID, model.FieldDate}

type Entry interface {
	Insert(ctx context.Context, model model.DailyInvoiceEntry) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.DailyInvoiceEntry, error)
	// ForBookings returns every entry of the given bookings, oldest first.
	ForBookings(ctx context.Context, bookingIDs []string) ([]model.DailyInvoiceEntry, error)
	// ForDay returns the non-zero entries of a hotel dated date, whatever the state of their booking.
	ForDay(ctx context.Context, hotelID, date string) ([]model.DailyInvoiceEntry, error)
}

type Summary interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.DailySummary, error)
	// Save inserts the summary or overwrites the one stored for the same hotel and date.
	Save(ctx context.Context, summary model.DailySummary) error
	// Find returns the stored summary of a hotel day and whether one exists.
	Find(ctx context.Context, hotelID, date string) (model.DailySummary, bool, error)
	// After returns the stored summaries of a hotel dated later than date, oldest first.
	After(ctx context.Context, hotelID, date string) ([]model.DailySummary, error)
}

type entryRepository struct {
	gRepo.Repository[model.DailyInvoiceEntry]
}

func NewEntry(db *postgres.Connection, otel otel.Otel) Entry {
	return &entryRepository{
		Repository: gRepo.NewRepository[model.DailyInvoiceEntry](model.EntryEntityName, model.EntryTableName, model.FieldID, db, otel),
	}
}

func (r *entryRepository) ForBookings(ctx context.Context, bookingIDs []string) ([]model.DailyInvoiceEntry, error) {
	if len(bookingIDs) == 0 {
		return []model.DailyInvoiceEntry{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingIDs, Operator: gDto.FilterOperatorIn, Table: model.EntryTableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.EntryTableName + "." + model.FieldDate, SortDir: gDto.SortDirAsc}

	return r.GetAll(ctx, params, filter)
}

func (r *entryRepository) ForDay(ctx context.Context, hotelID, date string) ([]model.DailyInvoiceEntry, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.EntryTableName},
			gDto.Filter{Field: model.FieldDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.EntryTableName},
			gDto.Filter{Field: model.FieldDailyAmount, Value: 0, Operator: gDto.FilterOperatorNotEq, Table: model.EntryTableName},
		},
	}

	return r.GetAll(ctx, gDto.QueryParams{}, filter)
}

type summaryRepository struct {
	gRepo.Repository[model.DailySummary]
}

func NewSummary(db *postgres.Connection, otel otel.Otel) Summary {
	return &summaryRepository{
		Repository: gRepo.NewRepository[model.DailySummary](model.SummaryEntity, model.SummaryTableName, model.FieldHotelID, db, otel),
	}
}

func (r *summaryRepository) Save(ctx context.Context, summary model.DailySummary) error {
	return r.Upsert(ctx, summary, summaryKey)
}

func (r *summaryRepository) Find(ctx context.Context, hotelID, date string) (model.DailySummary, bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.SummaryTableName},
			gDto.Filter{Field: model.FieldDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.SummaryTableName},
		},
	}

	summary, err := r.Get(ctx, filter)
	if err != nil {
		return summary, false, err
	}

	return summary, summary.Date != "", nil
}

func (r *summaryRepository) After(ctx context.Context, hotelID, date string) ([]model.DailySummary, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.SummaryTableName},
			gDto.Filter{Field: model.FieldDate, Value: date, Operator: gDto.FilterOperatorGreater, Table: model.SummaryTableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.SummaryTableName + "." + model.FieldDate, SortDir: gDto.SortDirAsc}

	return r.GetAll(ctx, params, filter)
}
