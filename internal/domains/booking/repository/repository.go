package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotelledger/infras/otel"
	"hotelledger/infras/postgres"
	"hotelledger/internal/domains/booking/model"
	gDto "hotelledger/shared/dto"
	gRepo "hotelledger/shared/repository"
	"hotelledger/shared/timezone"
)

const (
	dashboardQuery = `SELECT booked_by_id,
    COALESCE(SUM(total_bill) FILTER (WHERE created_at >= :today), 0) AS today,
    COALESCE(SUM(total_bill) FILTER (WHERE created_at >= :last_7_days), 0) AS last_7_days,
    COALESCE(SUM(total_bill) FILTER (WHERE created_at >= :last_30_days), 0) AS last_30_days,
    COALESCE(SUM(total_bill), 0) AS overall,
    COUNT(*) AS bookings
FROM bookings
WHERE status_id != :canceled %s
GROUP BY booked_by_id
ORDER BY booked_by_id`

	statementQuery = `SELECT * FROM bookings
WHERE status_id != :canceled AND hotel_id = :hotel_id AND (
    (check_in_date >= :day AND check_in_date < :day_end)
    OR (check_in_date < :day AND due_payment > 0)
    OR id IN (SELECT booking_id FROM daily_invoice_entries WHERE date = :day_key AND daily_amount <> 0)
)
ORDER BY check_in_date, booking_no`
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// Dashboard sums total bills per operator over fixed windows ending at today.
	Dashboard(ctx context.Context, hotelID string, today time.Time) ([]model.UserTotals, error)
	// ForStatement returns the candidates of the daily statement of day: bookings checking in on
	// day, earlier check-ins still owing money, and bookings with a non-zero entry dated day.
	ForStatement(ctx context.Context, hotelID string, day time.Time) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Dashboard(ctx context.Context, hotelID string, today time.Time) ([]model.UserTotals, error) {
	args := map[string]any{
		"today":        today,
		"last_7_days":  today.AddDate(0, 0, -6),
		"last_30_days": today.AddDate(0, 0, -29),
		"canceled":     model.StatusCanceled,
	}

	var scope string
	if hotelID != "" {
		args["hotel_id"] = hotelID
		scope = "AND hotel_id = :hotel_id"
	}

	var totals []model.UserTotals
	if err := r.Select(ctx, &totals, fmt.Sprintf(dashboardQuery, scope), args); err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *repositoryImpl) ForStatement(ctx context.Context, hotelID string, day time.Time) ([]model.Booking, error) {
	args := map[string]any{
		"hotel_id": hotelID,
		"day":      day,
		"day_end":  day.AddDate(0, 0, 1),
		"day_key":  timezone.FormatDay(day),
		"canceled": model.StatusCanceled,
	}

	var bookings []model.Booking
	if err := r.Select(ctx, &bookings, statementQuery, args); err != nil {
		return nil, err
	}

	return bookings, nil
}
