package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelledger/config"
	"hotelledger/infras/otel/mocks"
	s3Mocks "hotelledger/infras/s3/mocks"
	"hotelledger/internal/domains/booking/calculator"
	bookingMocks "hotelledger/internal/domains/booking/mocks"
	bookingModel "hotelledger/internal/domains/booking/model"
	statementMocks "hotelledger/internal/domains/statement/mocks"
	"hotelledger/internal/domains/statement/model"
	"hotelledger/internal/domains/statement/model/dto"
	"hotelledger/internal/domains/statement/service"
	eventMocks "hotelledger/internal/events/mocks"
	cacheMocks "hotelledger/shared/cache/mocks"
	gDto "hotelledger/shared/dto"
	"hotelledger/shared/failure"
	"hotelledger/shared/session"
	"hotelledger/shared/timezone"
)

var agent = session.Session{UserID: "u-1", LoginID: "frontdesk", Role: "agent", HotelID: "hotel-1"}

type fixture struct {
	svc       service.Statement
	bookings  *bookingMocks.MockBooking
	entries   *statementMocks.MockEntry
	summaries *statementMocks.MockSummary
	s3        *s3Mocks.MockS3
	cache     *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		bookings:  bookingMocks.NewMockBooking(ctrl),
		entries:   statementMocks.NewMockEntry(ctrl),
		summaries: statementMocks.NewMockSummary(ctrl),
		s3:        s3Mocks.NewMockS3(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	publisher := eventMocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.bookings, f.entries, f.summaries, f.s3, publisher, cfg, f.cache, mocks.NewOtel())

	return f
}

func day(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := timezone.ParseDay(value)
	require.NoError(t, err)

	return d
}

func booking(t *testing.T, id, checkIn string, bill int64) bookingModel.Booking {
	t.Helper()

	return bookingModel.Booking{
		ID:           id,
		BookingNo:    "FTB-" + id,
		HotelID:      "hotel-1",
		CheckInDate:  day(t, checkIn),
		CheckOutDate: day(t, checkIn).AddDate(0, 0, 2),
		TotalBill:    decimal.NewFromInt(bill),
		StatusID:     bookingModel.StatusActive,
	}
}

func entry(bookingID, date string, amount int64) model.DailyInvoiceEntry {
	return model.DailyInvoiceEntry{
		BookingID:   bookingID,
		HotelID:     "hotel-1",
		Date:        date,
		DailyAmount: decimal.NewFromInt(amount),
		TotalPaid:   decimal.NewFromInt(amount),
	}
}

func summary(date string, opening, income, expenses int64) model.DailySummary {
	return model.DailySummary{
		HotelID:        "hotel-1",
		Date:           date,
		OpeningBalance: decimal.NewFromInt(opening),
		DailyIncome:    decimal.NewFromInt(income),
		TotalBalance:   decimal.NewFromInt(opening + income),
		DailyExpenses:  decimal.NewFromInt(expenses),
		ClosingBalance: decimal.NewFromInt(opening + income - expenses),
	}
}

// collect records every saved summary by date.
func collect(saved map[string]model.DailySummary) func(context.Context, model.DailySummary) error {
	return func(_ context.Context, s model.DailySummary) error {
		saved[s.Date] = s

		return nil
	}
}

func TestStatementService_GetStatement(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.bookings.EXPECT().
		ForStatement(gomock.Any(), "hotel-1", day(t, "2024-02-01")).
		Return([]bookingModel.Booking{
			booking(t, "b-1", "2024-02-01", 2000),
			booking(t, "b-2", "2024-01-30", 3000),
		}, nil)
	f.entries.EXPECT().
		ForBookings(gomock.Any(), []string{"b-1", "b-2"}).
		Return([]model.DailyInvoiceEntry{
			entry("b-1", "2024-02-01", 500),
			entry("b-2", "2024-01-30", 1000),
			entry("b-2", "2024-02-01", 700),
		}, nil)
	f.entries.EXPECT().
		ForDay(gomock.Any(), "hotel-1", "2024-02-01").
		Return([]model.DailyInvoiceEntry{
			entry("b-1", "2024-02-01", 500),
			entry("b-2", "2024-02-01", 700),
		}, nil)

	res, err := f.svc.GetStatement(context.Background(), agent, "", "2024-02-01")

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res.RegularInvoice, 1)
	require.Len(t, res.UnpaidInvoice, 1)

	assert.Equal(t, "b-1", res.RegularInvoice[0].ID)
	assert.True(t, decimal.NewFromInt(1500).Equal(res.RegularInvoice[0].DueAmount))
	assert.True(t, decimal.NewFromInt(1700).Equal(res.UnpaidInvoice[0].CumulativeTotalPaid))
	assert.True(t, decimal.NewFromInt(1200).Equal(res.DailyIncome))
}

func TestStatementService_GetStatement_IncomeFollowsEntriesOfTheDay(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.bookings.EXPECT().
		ForStatement(gomock.Any(), "hotel-1", day(t, "2024-02-01")).
		Return([]bookingModel.Booking{booking(t, "b-1", "2024-01-29", 4000)}, nil)
	f.entries.EXPECT().
		ForBookings(gomock.Any(), []string{"b-1"}).
		Return([]model.DailyInvoiceEntry{
			entry("b-1", "2024-01-29", 2000),
			entry("b-1", "2024-02-01", -500),
		}, nil)
	f.entries.EXPECT().
		ForDay(gomock.Any(), "hotel-1", "2024-02-01").
		Return([]model.DailyInvoiceEntry{
			entry("b-1", "2024-02-01", -500),
			entry("b-canceled", "2024-02-01", 300),
			entry("b-3", "2024-02-01", 1000),
		}, nil)

	res, err := f.svc.GetStatement(context.Background(), agent, "", "2024-02-01")

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res.UnpaidInvoice, 1)
	assert.True(t, decimal.NewFromInt(-500).Equal(res.UnpaidInvoice[0].DailyAmount))
	assert.True(t, decimal.NewFromInt(800).Equal(res.DailyIncome), res.DailyIncome.String())
}

func TestStatementService_GetStatement_Invalid(t *testing.T) {
	tests := []struct {
		name string
		sess session.Session
		date string
	}{
		{name: "superadmin without hotel", sess: session.Session{UserID: "root", Role: "superadmin"}, date: "2024-02-01"},
		{name: "malformed date", sess: agent, date: "01/02/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.GetStatement(context.Background(), tt.sess, "", tt.date)
			assert.Equal(t, failure.KindValidation, failure.GetKind(err))
		})
	}
}

func TestStatementService_UpdatePayment(t *testing.T) {
	f := newFixture(t)
	b := booking(t, "b-1", "2024-01-30", 2000)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(b, nil)
	f.entries.EXPECT().
		ForBookings(gomock.Any(), []string{"b-1"}).
		Return([]model.DailyInvoiceEntry{entry("b-1", "2024-01-30", 500)}, nil)
	f.bookings.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.True(t, decimal.NewFromInt(800).Equal(fields[bookingModel.FieldTotalPaid].(decimal.Decimal)))
			assert.True(t, decimal.NewFromInt(1200).Equal(fields[bookingModel.FieldDuePayment].(decimal.Decimal)))

			return nil
		})
	f.entries.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e model.DailyInvoiceEntry) error {
			assert.Equal(t, "2024-02-01", e.Date)
			assert.Equal(t, model.EntryKindPayment, e.Kind)
			assert.True(t, decimal.NewFromInt(300).Equal(e.DailyAmount))

			return nil
		})

	// 2024-02-01 and 2024-02-02 were already summarized before the payment.
	saved := map[string]model.DailySummary{}

	f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", "2024-02-01").Return(summary("2024-02-01", 500, 0, 0), true, nil).Times(2)
	f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", "2024-01-31").Return(summary("2024-01-31", 0, 500, 0), true, nil)
	f.entries.EXPECT().
		ForDay(gomock.Any(), "hotel-1", "2024-02-01").
		Return([]model.DailyInvoiceEntry{entry("b-1", "2024-02-01", 300)}, nil).
		Times(2)
	f.summaries.EXPECT().After(gomock.Any(), "hotel-1", "2024-02-01").Return([]model.DailySummary{summary("2024-02-02", 500, 100, 0)}, nil)
	f.summaries.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(collect(saved)).Times(2)

	paid := b
	paid.TotalPaid = decimal.NewFromInt(800)

	f.bookings.EXPECT().ForStatement(gomock.Any(), "hotel-1", day(t, "2024-02-01")).Return([]bookingModel.Booking{paid}, nil)
	f.entries.EXPECT().
		ForBookings(gomock.Any(), []string{"b-1"}).
		Return([]model.DailyInvoiceEntry{
			entry("b-1", "2024-01-30", 500),
			entry("b-1", "2024-02-01", 300),
		}, nil)

	res, err := f.svc.UpdatePayment(context.Background(), agent, "b-1", dto.UpdatePaymentRequest{
		DailyAmount: decimal.NewFromInt(300),
		SearchDate:  "2024-02-01",
	})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res.UnpaidInvoice, 1)
	assert.True(t, decimal.NewFromInt(1200).Equal(res.UnpaidInvoice[0].DueAmount))
	assert.True(t, decimal.NewFromInt(300).Equal(res.DailyIncome))

	require.Len(t, saved, 2)
	assert.True(t, decimal.NewFromInt(300).Equal(saved["2024-02-01"].DailyIncome))
	assert.True(t, decimal.NewFromInt(800).Equal(saved["2024-02-01"].ClosingBalance))
	assert.True(t, decimal.NewFromInt(800).Equal(saved["2024-02-02"].OpeningBalance))
	assert.True(t, decimal.NewFromInt(900).Equal(saved["2024-02-02"].ClosingBalance))
}

func TestStatementService_UpdatePayment_Failures(t *testing.T) {
	req := dto.UpdatePaymentRequest{DailyAmount: decimal.NewFromInt(300), SearchDate: "2024-02-01"}

	t.Run("overpayment", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(t, "b-1", "2024-01-30", 2000), nil)
		f.entries.EXPECT().ForBookings(gomock.Any(), gomock.Any()).Return([]model.DailyInvoiceEntry{entry("b-1", "2024-01-30", 1800)}, nil)

		_, err := f.svc.UpdatePayment(context.Background(), agent, "b-1", req)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
		assert.ErrorIs(t, err, calculator.ErrOverpayment)
	})

	t.Run("non positive amount", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(t, "b-1", "2024-01-30", 2000), nil)
		f.entries.EXPECT().ForBookings(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.UpdatePayment(context.Background(), agent, "b-1", dto.UpdatePaymentRequest{SearchDate: "2024-02-01"})
		assert.ErrorIs(t, err, calculator.ErrNonPositiveDailyAmount)
	})

	t.Run("canceled booking", func(t *testing.T) {
		f := newFixture(t)

		b := booking(t, "b-1", "2024-01-30", 2000)
		b.StatusID = bookingModel.StatusCanceled
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(b, nil)

		_, err := f.svc.UpdatePayment(context.Background(), agent, "b-1", req)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("booking of another hotel", func(t *testing.T) {
		f := newFixture(t)

		b := booking(t, "b-1", "2024-01-30", 2000)
		b.HotelID = "hotel-2"
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(b, nil)

		_, err := f.svc.UpdatePayment(context.Background(), agent, "b-1", req)
		assert.Equal(t, failure.KindForbidden, failure.GetKind(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := f.svc.UpdatePayment(context.Background(), agent, "b-404", req)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("entry not recorded", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(t, "b-1", "2024-01-30", 2000), nil)
		f.entries.EXPECT().ForBookings(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.entries.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.UpdatePayment(context.Background(), agent, "b-1", req)
		assert.Equal(t, failure.KindReconciliation, failure.GetKind(err))
	})

	t.Run("summaries not refreshed", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(t, "b-1", "2024-01-30", 2000), nil)
		f.entries.EXPECT().ForBookings(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.entries.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", "2024-02-01").Return(model.DailySummary{}, false, errors.New("connection reset"))

		_, err := f.svc.UpdatePayment(context.Background(), agent, "b-1", req)
		assert.Equal(t, failure.KindReconciliation, failure.GetKind(err))
	})
}

func TestStatementService_GetSummary_ChainsPreviousClosing(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.bookings.EXPECT().ForStatement(gomock.Any(), "hotel-1", gomock.Any()).Return([]bookingModel.Booking{booking(t, "b-1", "2024-02-01", 2000)}, nil)
	f.entries.EXPECT().ForBookings(gomock.Any(), gomock.Any()).Return([]model.DailyInvoiceEntry{entry("b-1", "2024-02-01", 1200)}, nil)
	f.entries.EXPECT().ForDay(gomock.Any(), "hotel-1", "2024-02-01").Return([]model.DailyInvoiceEntry{entry("b-1", "2024-02-01", 1200)}, nil)
	f.summaries.EXPECT().After(gomock.Any(), "hotel-1", "2024-02-01").Return(nil, nil)
	f.summaries.EXPECT().
		Find(gomock.Any(), "hotel-1", "2024-01-31").
		Return(model.DailySummary{HotelID: "hotel-1", Date: "2024-01-31", ClosingBalance: decimal.NewFromInt(500)}, true, nil)
	f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", "2024-02-01").Return(model.DailySummary{}, false, nil)
	f.summaries.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s model.DailySummary) error {
			assert.True(t, decimal.NewFromInt(1700).Equal(s.ClosingBalance))

			return nil
		})

	res, err := f.svc.GetSummary(context.Background(), agent, "", "2024-02-01")

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(res.OpeningBalance))
	assert.True(t, decimal.NewFromInt(1200).Equal(res.DailyIncome))
	assert.True(t, decimal.NewFromInt(1700).Equal(res.TotalBalance))
	assert.True(t, decimal.Zero.Equal(res.DailyExpenses))
	assert.True(t, decimal.NewFromInt(1700).Equal(res.ClosingBalance))
}

func TestStatementService_GetDailyStatement_KeepsStoredExpenses(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().ForStatement(gomock.Any(), "hotel-1", day(t, "2024-02-01")).Return([]bookingModel.Booking{
		booking(t, "b-1", "2024-02-01", 2000),
		booking(t, "b-2", "2024-01-30", 3000),
	}, nil)
	f.entries.EXPECT().ForBookings(gomock.Any(), gomock.Any()).Return([]model.DailyInvoiceEntry{
		entry("b-1", "2024-02-01", 500),
		entry("b-2", "2024-02-01", 700),
	}, nil)
	f.entries.EXPECT().ForDay(gomock.Any(), "hotel-1", "2024-02-01").Return([]model.DailyInvoiceEntry{
		entry("b-1", "2024-02-01", 500),
		entry("b-2", "2024-02-01", 700),
	}, nil)
	f.summaries.EXPECT().After(gomock.Any(), "hotel-1", "2024-02-01").Return(nil, nil)
	f.summaries.EXPECT().
		Find(gomock.Any(), "hotel-1", "2024-01-31").
		Return(model.DailySummary{ClosingBalance: decimal.NewFromInt(500)}, true, nil)
	f.summaries.EXPECT().
		Find(gomock.Any(), "hotel-1", "2024-02-01").
		Return(model.DailySummary{DailyExpenses: decimal.NewFromInt(200), ArchiveURL: "https://cdn/2024-02-01.json"}, true, nil)
	f.summaries.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.GetDailyStatement(context.Background(), agent, "", "2024-02-01")

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res.Statement.RegularInvoice, 1)
	require.Len(t, res.Statement.UnpaidInvoice, 1)
	assert.True(t, decimal.NewFromInt(1200).Equal(res.Statement.DailyIncome))
	assert.True(t, decimal.NewFromInt(200).Equal(res.Summary.DailyExpenses))
	assert.True(t, decimal.NewFromInt(1500).Equal(res.Summary.ClosingBalance))
	assert.Equal(t, "https://cdn/2024-02-01.json", res.Summary.ArchiveURL)
}

func TestStatementService_GetSummary_FirstDay(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.bookings.EXPECT().ForStatement(gomock.Any(), "hotel-1", gomock.Any()).Return(nil, nil)
	f.entries.EXPECT().ForBookings(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.entries.EXPECT().ForDay(gomock.Any(), "hotel-1", "2024-02-01").Return(nil, nil)
	f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", gomock.Any()).Return(model.DailySummary{}, false, nil).Times(2)
	f.summaries.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	f.summaries.EXPECT().After(gomock.Any(), "hotel-1", "2024-02-01").Return(nil, nil)

	res, err := f.svc.GetSummary(context.Background(), agent, "", "2024-02-01")

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.True(t, res.OpeningBalance.IsZero())
	assert.True(t, res.ClosingBalance.IsZero())
}

func TestStatementService_SetExpenses(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().ForStatement(gomock.Any(), "hotel-1", gomock.Any()).Return([]bookingModel.Booking{booking(t, "b-1", "2024-02-01", 2000)}, nil)
	f.entries.EXPECT().ForBookings(gomock.Any(), gomock.Any()).Return([]model.DailyInvoiceEntry{entry("b-1", "2024-02-01", 1200)}, nil)
	f.entries.EXPECT().ForDay(gomock.Any(), "hotel-1", "2024-02-01").Return([]model.DailyInvoiceEntry{entry("b-1", "2024-02-01", 1200)}, nil)
	f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", "2024-01-31").Return(model.DailySummary{}, false, nil)
	f.summaries.EXPECT().
		Find(gomock.Any(), "hotel-1", "2024-02-01").
		Return(model.DailySummary{HotelID: "hotel-1", Date: "2024-02-01", DailyExpenses: decimal.NewFromInt(50)}, true, nil)
	f.s3.EXPECT().
		UploadJSON(gomock.Any(), "statements/hotel-1", "2024-02-01.json", gomock.Any()).
		Return("https://cdn.example.com/statements/hotel-1/2024-02-01.json", nil)
	f.summaries.EXPECT().
		After(gomock.Any(), "hotel-1", "2024-02-01").
		Return([]model.DailySummary{summary("2024-02-02", 1150, 0, 0), summary("2024-02-03", 1150, 400, 0)}, nil)

	saved := map[string]model.DailySummary{}
	f.summaries.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(collect(saved)).Times(3)

	res, err := f.svc.SetExpenses(context.Background(), agent, "", "2024-02-01", dto.SetExpensesRequest{DailyExpenses: decimal.NewFromInt(200)})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(res.DailyExpenses))
	assert.True(t, decimal.NewFromInt(1000).Equal(res.ClosingBalance))

	assert.Equal(t, "https://cdn.example.com/statements/hotel-1/2024-02-01.json", saved["2024-02-01"].ArchiveURL)
	assert.True(t, decimal.NewFromInt(1000).Equal(saved["2024-02-02"].OpeningBalance))
	assert.True(t, decimal.NewFromInt(1000).Equal(saved["2024-02-03"].OpeningBalance))
	assert.True(t, decimal.NewFromInt(1400).Equal(saved["2024-02-03"].ClosingBalance))
}

func TestStatementService_SetExpenses_Failures(t *testing.T) {
	t.Run("negative", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.SetExpenses(context.Background(), agent, "", "2024-02-01", dto.SetExpensesRequest{DailyExpenses: decimal.NewFromInt(-1)})
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("archive unavailable", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().ForStatement(gomock.Any(), "hotel-1", gomock.Any()).Return(nil, nil)
		f.entries.EXPECT().ForBookings(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.entries.EXPECT().ForDay(gomock.Any(), "hotel-1", gomock.Any()).Return(nil, nil)
		f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", gomock.Any()).Return(model.DailySummary{}, false, nil).Times(2)
		f.s3.EXPECT().UploadJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket not found"))

		_, err := f.svc.SetExpenses(context.Background(), agent, "", "2024-02-01", dto.SetExpensesRequest{DailyExpenses: decimal.NewFromInt(10)})
		assert.Equal(t, failure.KindTransport, failure.GetKind(err))
	})
}

func TestStatementService_Rechain(t *testing.T) {
	t.Run("day not summarized yet", func(t *testing.T) {
		f := newFixture(t)

		f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", "2024-02-01").Return(model.DailySummary{}, false, nil)

		err := f.svc.Rechain(context.Background(), agent, "hotel-1", day(t, "2024-02-01"))

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("stored day picks up a new advance and carries it forward", func(t *testing.T) {
		f := newFixture(t)

		f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", "2024-02-01").Return(summary("2024-02-01", 0, 1000, 100), true, nil).Times(2)
		f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", "2024-01-31").Return(model.DailySummary{}, false, nil)
		f.entries.EXPECT().ForDay(gomock.Any(), "hotel-1", "2024-02-01").Return([]model.DailyInvoiceEntry{
			entry("b-1", "2024-02-01", 1000),
			entry("b-2", "2024-02-01", 1500),
		}, nil)
		f.summaries.EXPECT().After(gomock.Any(), "hotel-1", "2024-02-01").Return([]model.DailySummary{summary("2024-02-02", 900, 0, 0)}, nil)

		saved := map[string]model.DailySummary{}
		f.summaries.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(collect(saved)).Times(2)

		err := f.svc.Rechain(context.Background(), agent, "hotel-1", day(t, "2024-02-01"))

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(100).Equal(saved["2024-02-01"].DailyExpenses))
		assert.True(t, decimal.NewFromInt(2400).Equal(saved["2024-02-01"].ClosingBalance))
		assert.True(t, decimal.NewFromInt(2400).Equal(saved["2024-02-02"].OpeningBalance))
	})

	t.Run("store unavailable", func(t *testing.T) {
		f := newFixture(t)

		f.summaries.EXPECT().Find(gomock.Any(), "hotel-1", "2024-02-01").Return(model.DailySummary{}, false, errors.New("connection reset"))

		err := f.svc.Rechain(context.Background(), agent, "hotel-1", day(t, "2024-02-01"))
		assert.Equal(t, failure.KindTransport, failure.GetKind(err))
	})
}
