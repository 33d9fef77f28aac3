package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelledger/config"
	"hotelledger/infras/otel/mocks"
	"hotelledger/internal/domains/booking/calculator"
	bookingMocks "hotelledger/internal/domains/booking/mocks"
	"hotelledger/internal/domains/booking/model"
	"hotelledger/internal/domains/booking/model/dto"
	"hotelledger/internal/domains/booking/service"
	roomModel "hotelledger/internal/domains/room/model"
	roomMocks "hotelledger/internal/domains/room/service/mocks"
	statementMocks "hotelledger/internal/domains/statement/mocks"
	statementModel "hotelledger/internal/domains/statement/model"
	statementService "hotelledger/internal/domains/statement/service/mocks"
	eventMocks "hotelledger/internal/events/mocks"
	cacheMocks "hotelledger/shared/cache/mocks"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/failure"
	"hotelledger/shared/session"
	"hotelledger/shared/timezone"
)

var agent = session.Session{UserID: "u-1", LoginID: "frontdesk", Role: "agent", HotelID: "hotel-1"}

type fixture struct {
	svc     service.Booking
	repo    *bookingMocks.MockBooking
	rooms   *roomMocks.MockRoom
	entries *statementMocks.MockEntry
	ledger  *statementService.MockStatement
	cache   *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    bookingMocks.NewMockBooking(ctrl),
		rooms:   roomMocks.NewMockRoom(ctrl),
		entries: statementMocks.NewMockEntry(ctrl),
		ledger:  statementService.NewMockStatement(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
	}

	publisher := eventMocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Ledger.MaxPayments = 3
	cfg.Ledger.BookingNoPrefix = "FTB"

	f.svc = service.New(f.repo, f.rooms, f.entries, f.ledger, publisher, cfg, f.cache, mocks.NewOtel())

	return f
}

func bookingRequest() dto.BookingRequest {
	return dto.BookingRequest{
		QuoteRequest: dto.QuoteRequest{
			CheckInDate:  "2024-01-10",
			CheckOutDate: "2024-01-12",
			Adults:       2,
			RoomPrice:    decimal.NewFromInt(1000),
			Payments: []dto.PaymentRequest{
				{Method: "cash", Amount: decimal.NewFromInt(500)},
			},
		},
		RoomID:   "r-1",
		FullName: "Rahim Uddin",
		Phone:    "01700000000",
	}
}

func room101(booked ...string) roomModel.Room {
	return roomModel.Room{
		ID:           "r-1",
		HotelID:      "hotel-1",
		CategoryID:   "c-1",
		CategoryName: "Deluxe",
		Name:         "101",
		BookedDates:  pq.StringArray(booked),
		Active:       true,
	}
}

// useLocation switches the ledger zone for one test.
func useLocation(t *testing.T, name string) {
	t.Helper()

	loc, err := time.LoadLocation(name)
	require.NoError(t, err)

	previous := timezone.SetLocation(loc)
	t.Cleanup(func() { timezone.SetLocation(previous) })
}

func day(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := timezone.ParseDay(value)
	require.NoError(t, err)

	return d
}

func storedBooking(t *testing.T) model.Booking {
	t.Helper()

	return model.Booking{
		ID:             "b-1",
		BookingNo:      "FTB-240101-abcdef",
		HotelID:        "hotel-1",
		RoomNumberID:   "r-1",
		CheckInDate:    day(t, "2024-01-10"),
		CheckOutDate:   day(t, "2024-01-12"),
		RoomPrice:      decimal.NewFromInt(1000),
		TotalBill:      decimal.NewFromInt(2000),
		AdvancePayment: decimal.NewFromInt(500),
		TotalPaid:      decimal.NewFromInt(800),
		DuePayment:     decimal.NewFromInt(1200),
		DueBalance:     decimal.NewFromInt(1200),
		StatusID:       model.StatusActive,
	}
}

func TestBookingService_Quote(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Quote(context.Background(), bookingRequest().QuoteRequest)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Nights)
	assert.True(t, decimal.NewFromInt(2000).Equal(res.TotalBill))
	assert.True(t, decimal.NewFromInt(1500).Equal(res.DuePayment))
}

func TestBookingService_Quote_Overpayment(t *testing.T) {
	f := newFixture(t)

	req := bookingRequest().QuoteRequest
	req.Payments[0].Amount = decimal.NewFromInt(2500)

	_, err := f.svc.Quote(context.Background(), req)
	require.Error(t, err)

	assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	assert.ErrorIs(t, err, calculator.ErrOverpayment)
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)
	dates := []string{"2024-01-10", "2024-01-11"}

	f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101("2024-01-12"), nil)
	f.rooms.EXPECT().Commit(gomock.Any(), agent, "r-1", dates).Return(nil)
	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b model.Booking) error {
			assert.Equal(t, "hotel-1", b.HotelID)
			assert.Equal(t, "Deluxe", b.RoomCategoryName)
			assert.Equal(t, "101", b.RoomNumberName)
			assert.Equal(t, model.StatusActive, b.StatusID)
			assert.Equal(t, "frontdesk", b.BookedByID)
			assert.Equal(t, model.PaymentMethodCash, b.Payments[0].Method)

			return nil
		})
	f.entries.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e statementModel.DailyInvoiceEntry) error {
			assert.Equal(t, statementModel.EntryKindAdvance, e.Kind)
			assert.True(t, decimal.NewFromInt(500).Equal(e.DailyAmount))

			return nil
		})
	f.ledger.EXPECT().Rechain(gomock.Any(), agent, "hotel-1", gomock.Any()).Return(nil)

	res, err := f.svc.Create(context.Background(), agent, bookingRequest())

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", res.CheckInDate)
	assert.Equal(t, 2, res.Nights)
	assert.True(t, decimal.NewFromInt(1500).Equal(res.DuePayment))
	assert.Contains(t, res.BookingNo, "FTB-")
}

func TestBookingService_Create_WebChannel(t *testing.T) {
	f := newFixture(t)

	req := bookingRequest()
	req.Channel = string(model.ChannelWeb)
	req.VatPercent = decimal.NewFromInt(15)
	req.TaxPercent = decimal.NewFromInt(5)

	f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101(), nil)
	f.rooms.EXPECT().Commit(gomock.Any(), agent, "r-1", gomock.Any()).Return(nil)
	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b model.Booking) error {
			assert.Equal(t, model.StatusConfirmed, b.StatusID)
			assert.Equal(t, model.ChannelWeb, b.Channel)
			assert.True(t, decimal.NewFromInt(2400).Equal(b.TotalBill), b.TotalBill.String())

			return nil
		})
	f.entries.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.ledger.EXPECT().Rechain(gomock.Any(), agent, "hotel-1", gomock.Any()).Return(nil)

	res, err := f.svc.Create(context.Background(), agent, req)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed.String(), res.Status)
	assert.True(t, decimal.NewFromInt(15).Equal(res.VatPercent))
}

func TestBookingService_Create_SummariesNotRefreshed(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101(), nil)
	f.rooms.EXPECT().Commit(gomock.Any(), agent, "r-1", gomock.Any()).Return(nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.entries.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.ledger.EXPECT().Rechain(gomock.Any(), agent, "hotel-1", gomock.Any()).Return(failure.Transport(errors.New("timeout")))

	_, err := f.svc.Create(context.Background(), agent, bookingRequest())
	assert.Equal(t, failure.KindReconciliation, failure.GetKind(err))
}

func TestBookingService_Create_Failures(t *testing.T) {
	dates := []string{"2024-01-10", "2024-01-11"}

	tests := []struct {
		name     string
		setup    func(f fixture)
		wantKind failure.Kind
	}{
		{
			name: "dates already held",
			setup: func(f fixture) {
				f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101("2024-01-11"), nil)
			},
			wantKind: failure.KindInventoryConflict,
		},
		{
			name: "room closed",
			setup: func(f fixture) {
				r := room101()
				r.Active = false
				f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(r, nil)
			},
			wantKind: failure.KindValidation,
		},
		{
			name: "room of another hotel",
			setup: func(f fixture) {
				r := room101()
				r.HotelID = "hotel-2"
				f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(r, nil)
			},
			wantKind: failure.KindValidation,
		},
		{
			name: "commit lost the race",
			setup: func(f fixture) {
				f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101(), nil)
				f.rooms.EXPECT().Commit(gomock.Any(), agent, "r-1", dates).Return(failure.InventoryConflict("room taken"))
			},
			wantKind: failure.KindInventoryConflict,
		},
		{
			name: "insert fails and dates are released",
			setup: func(f fixture) {
				f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101(), nil)
				f.rooms.EXPECT().Commit(gomock.Any(), agent, "r-1", dates).Return(nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
				f.rooms.EXPECT().Release(gomock.Any(), agent, "r-1", dates).Return(nil)
			},
			wantKind: failure.KindTransport,
		},
		{
			name: "insert and release both fail",
			setup: func(f fixture) {
				f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101(), nil)
				f.rooms.EXPECT().Commit(gomock.Any(), agent, "r-1", dates).Return(nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
				f.rooms.EXPECT().Release(gomock.Any(), agent, "r-1", dates).Return(failure.Transport(errors.New("timeout")))
			},
			wantKind: failure.KindReconciliation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			_, err := f.svc.Create(context.Background(), agent, bookingRequest())
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, failure.GetKind(err))
		})
	}
}

func TestBookingService_Edit(t *testing.T) {
	f := newFixture(t)

	req := bookingRequest()
	req.CheckOutDate = "2024-01-13"
	req.Payments[0].Amount = decimal.NewFromInt(700)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(t), nil)
	f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101("2024-01-10", "2024-01-11"), nil)
	f.rooms.EXPECT().Release(gomock.Any(), agent, "r-1", []string{"2024-01-10", "2024-01-11"}).Return(nil)
	f.rooms.EXPECT().Commit(gomock.Any(), agent, "r-1", []string{"2024-01-10", "2024-01-11", "2024-01-12"}).Return(nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, 3, fields[model.FieldNights])
			assert.True(t, decimal.NewFromInt(1000).Equal(fields[model.FieldTotalPaid].(decimal.Decimal)))

			for _, column := range []string{
				model.FieldEmail, model.FieldNidPassport, model.FieldAddress, model.FieldVatPercent, model.FieldTaxPercent,
			} {
				assert.Contains(t, fields, column)
			}

			return nil
		})
	f.entries.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e statementModel.DailyInvoiceEntry) error {
			assert.Equal(t, statementModel.EntryKindAdjustment, e.Kind)
			assert.True(t, decimal.NewFromInt(200).Equal(e.DailyAmount))

			return nil
		})
	f.ledger.EXPECT().Rechain(gomock.Any(), agent, "hotel-1", gomock.Any()).Return(nil)

	res, err := f.svc.Edit(context.Background(), agent, "b-1", req)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Nights)
	assert.True(t, decimal.NewFromInt(2000).Equal(res.DuePayment))
}

func TestBookingService_Edit_DatesReadBackInUTC(t *testing.T) {
	useLocation(t, "Asia/Dhaka")

	f := newFixture(t)

	stored := storedBooking(t)
	stored.CheckInDate = stored.CheckInDate.UTC()
	stored.CheckOutDate = stored.CheckOutDate.UTC()

	req := bookingRequest()
	req.CheckOutDate = "2024-01-13"

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
	f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101("2024-01-10", "2024-01-11"), nil)
	f.rooms.EXPECT().Release(gomock.Any(), agent, "r-1", []string{"2024-01-10", "2024-01-11"}).Return(nil)
	f.rooms.EXPECT().Commit(gomock.Any(), agent, "r-1", []string{"2024-01-10", "2024-01-11", "2024-01-12"}).Return(nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Edit(context.Background(), agent, "b-1", req)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Nights)
}

func TestBookingService_Edit_Canceled(t *testing.T) {
	f := newFixture(t)

	b := storedBooking(t)
	b.StatusID = model.StatusCanceled

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(b, nil)

	_, err := f.svc.Edit(context.Background(), agent, "b-1", bookingRequest())
	assert.Equal(t, failure.KindValidation, failure.GetKind(err))
}

func TestBookingService_Edit_CommitFails(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(t), nil)
	f.rooms.EXPECT().Lookup(gomock.Any(), "r-1").Return(room101("2024-01-10", "2024-01-11"), nil)
	f.rooms.EXPECT().Release(gomock.Any(), agent, "r-1", gomock.Any()).Return(nil)
	f.rooms.EXPECT().Commit(gomock.Any(), agent, "r-1", gomock.Any()).Return(failure.Transport(errors.New("timeout")))

	_, err := f.svc.Edit(context.Background(), agent, "b-1", bookingRequest())
	assert.Equal(t, failure.KindReconciliation, failure.GetKind(err))
}

func TestBookingService_Edit_PriorCreditsCountTowardOverpayment(t *testing.T) {
	f := newFixture(t)

	req := bookingRequest()
	req.Payments[0].Amount = decimal.NewFromInt(1800)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(t), nil)

	_, err := f.svc.Edit(context.Background(), agent, "b-1", req)
	require.Error(t, err)
	assert.ErrorIs(t, err, calculator.ErrOverpayment)
}

func TestBookingService_Cancel(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(t), nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, int(model.StatusCanceled), fields[model.FieldStatusID])
			assert.Equal(t, "frontdesk", fields[model.FieldCanceledBy])
			assert.Equal(t, "guest changed plans", fields[model.FieldCancelReason])

			return nil
		})
	f.rooms.EXPECT().Release(gomock.Any(), agent, "r-1", []string{"2024-01-10", "2024-01-11"}).Return(nil)

	err := f.svc.Cancel(context.Background(), agent, "b-1", dto.CancelBookingRequest{Reason: "guest changed plans"})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
}

func TestBookingService_Cancel_ConfirmedBookingStaysRetrievable(t *testing.T) {
	useLocation(t, "Asia/Dhaka")

	f := newFixture(t)

	// Dates come back from the TIMESTAMPTZ columns as UTC instants.
	stored := storedBooking(t)
	stored.StatusID = model.StatusConfirmed
	stored.CheckInDate = stored.CheckInDate.UTC()
	stored.CheckOutDate = stored.CheckOutDate.UTC()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.rooms.EXPECT().Release(gomock.Any(), agent, "r-1", []string{"2024-01-10", "2024-01-11"}).Return(nil)

	err := f.svc.Cancel(context.Background(), agent, "b-1", dto.CancelBookingRequest{Reason: "no show"})
	require.NoError(t, err)

	canceled := stored
	canceled.StatusID = model.StatusCanceled
	canceled.CancelReason = "no show"

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, group gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			for _, item := range group.Filters {
				if filter, ok := item.(gDto.Filter); ok {
					assert.NotEqual(t, model.FieldStatusID, filter.Field)
				}
			}

			return []model.Booking{canceled}, nil
		})

	res, err := f.svc.GetByBookingNo(context.Background(), agent, stored.BookingNo)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, model.StatusCanceled.String(), res[0].Status)
	assert.Equal(t, "no show", res[0].CancelReason)
	assert.Equal(t, "2024-01-10", res[0].CheckInDate)
}

func TestBookingService_Cancel_Failures(t *testing.T) {
	t.Run("already canceled", func(t *testing.T) {
		f := newFixture(t)

		b := storedBooking(t)
		b.StatusID = model.StatusCanceled
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(b, nil)

		err := f.svc.Cancel(context.Background(), agent, "b-1", dto.CancelBookingRequest{})
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
		assert.ErrorIs(t, err, model.ErrInvalidTransition)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Cancel(context.Background(), agent, "b-404", dto.CancelBookingRequest{})
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("release fails after cancel", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(t), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.rooms.EXPECT().Release(gomock.Any(), agent, "r-1", gomock.Any()).Return(errors.New("timeout"))

		err := f.svc.Cancel(context.Background(), agent, "b-1", dto.CancelBookingRequest{CanceledBy: "manager"})
		assert.Equal(t, failure.KindReconciliation, failure.GetKind(err))
	})
}

func TestBookingService_Confirm(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(t), nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, int(model.StatusConfirmed), fields[model.FieldStatusID])

			return nil
		})

	err := f.svc.Confirm(context.Background(), agent, "b-1")

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
}

func TestBookingService_GetByBookingNo(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := f.svc.GetByBookingNo(context.Background(), agent, "FTB-missing")
	assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
}

func TestBookingService_Dashboard(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().
		Dashboard(gomock.Any(), "hotel-1", gomock.Any()).
		Return([]model.UserTotals{
			{BookedByID: "frontdesk", Today: decimal.NewFromInt(2000), Overall: decimal.NewFromInt(9000), Bookings: 4},
			{BookedByID: "night", Today: decimal.NewFromInt(500), Overall: decimal.NewFromInt(1000), Bookings: 1},
		}, nil)

	res, err := f.svc.Dashboard(context.Background(), agent)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 5, res.Overall.Bookings)
	assert.True(t, decimal.NewFromInt(2500).Equal(res.Overall.Today))
}
