package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"hotelledger/infras/otel/mocks"
	"hotelledger/infras/postgres"
	"hotelledger/internal/domains/room/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (repository.Room, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func TestCommitDates(t *testing.T) {
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	dates := []string{"2024-01-10", "2024-01-11", "2024-01-12"}

	tests := []struct {
		name     string
		affected int64
		err      error
		want     bool
		wantErr  bool
	}{
		{name: "committed", affected: 1, want: true},
		{name: "already held", affected: 0, want: false},
		{name: "store failure", err: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)

			exp := mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms SET booked_dates = ARRAY(SELECT DISTINCT d FROM unnest(booked_dates || $1::text[])")).
				WithArgs(pq.StringArray(dates), "room-1", at, "frontdesk")

			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			got, err := repo.CommitDates(context.Background(), "room-1", dates, "frontdesk", at)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReleaseDates(t *testing.T) {
	repo, mock := newRepository(t)
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("SET booked_dates = ARRAY(SELECT d FROM unnest(booked_dates) AS d WHERE NOT (d = ANY($1::text[]))")).
		WithArgs(pq.StringArray{"2024-01-10"}, "room-1", at, "frontdesk").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ReleaseDates(context.Background(), "room-1", []string{"2024-01-10"}, "frontdesk", at)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
