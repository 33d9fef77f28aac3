package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotelledger/infras/otel"
	"hotelledger/infras/postgres"
	"hotelledger/internal/domains/room/model"
	"hotelledger/shared/constant"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/logger"
	gRepo "hotelledger/shared/repository"

	"github.com/lib/pq"
)

const (
	commitDatesQuery = `UPDATE rooms
SET booked_dates = ARRAY(SELECT DISTINCT d FROM unnest(booked_dates || $1::text[]) AS d ORDER BY d),
    modified_at = $3, modified_by = $4
WHERE id = $2 AND NOT (booked_dates && $1::text[])`

	releaseDatesQuery = `UPDATE rooms
SET booked_dates = ARRAY(SELECT d FROM unnest(booked_dates) AS d WHERE NOT (d = ANY($1::text[])) ORDER BY d),
    modified_at = $3, modified_by = $4
WHERE id = $2`
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// CommitDates appends dates to a room's inventory unless any of them is already held.
	// It reports false when nothing was written.
	CommitDates(ctx context.Context, roomID string, dates []string, user string, at time.Time) (bool, error)
	ReleaseDates(ctx context.Context, roomID string, dates []string, user string, at time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) CommitDates(ctx context.Context, roomID string, dates []string, user string, at time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.CommitDates")
	defer scope.End()

	return r.exec(ctx, scope, commitDatesQuery, roomID, dates, user, at)
}

func (r *repositoryImpl) ReleaseDates(ctx context.Context, roomID string, dates []string, user string, at time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ReleaseDates")
	defer scope.End()

	return r.exec(ctx, scope, releaseDatesQuery, roomID, dates, user, at)
}

func (r *repositoryImpl) exec(ctx context.Context, scope otel.Scope, query, roomID string, dates []string, user string, at time.Time) (bool, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	res, err := r.db.Write.ExecContext(ctx, query, pq.StringArray(dates), roomID, at, user)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to update room inventory: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
