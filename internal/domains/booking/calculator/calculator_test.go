package calculator_test

import (
	"testing"
	"time"

	"hotelledger/internal/domains/booking/calculator"
	"hotelledger/internal/domains/booking/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)

	return d
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestNights(t *testing.T) {
	dhaka, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)

	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
		wantErr  error
	}{
		{
			name:     "three nights",
			checkIn:  date(t, "2024-01-10"),
			checkOut: date(t, "2024-01-13"),
			want:     3,
		},
		{
			name:     "partial day rounds up",
			checkIn:  time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 1, 12, 12, 0, 0, 0, time.UTC),
			want:     2,
		},
		{
			name:     "across month boundary",
			checkIn:  date(t, "2024-01-30"),
			checkOut: date(t, "2024-02-02"),
			want:     3,
		},
		{
			name:     "local timezone",
			checkIn:  time.Date(2024, 3, 1, 0, 0, 0, 0, dhaka),
			checkOut: time.Date(2024, 3, 5, 0, 0, 0, 0, dhaka),
			want:     4,
		},
		{
			name:     "daylight saving switch inside stay",
			checkIn:  time.Date(2024, 11, 2, 0, 0, 0, 0, newYork),
			checkOut: time.Date(2024, 11, 5, 0, 0, 0, 0, newYork),
			want:     3,
		},
		{
			name:     "same day is invalid",
			checkIn:  date(t, "2024-01-10"),
			checkOut: date(t, "2024-01-10"),
			wantErr:  calculator.ErrInvalidDateRange,
		},
		{
			name:     "check-out before check-in is invalid",
			checkIn:  date(t, "2024-01-13"),
			checkOut: date(t, "2024-01-10"),
			wantErr:  calculator.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calculator.Nights(tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalBill(t *testing.T) {
	tests := []struct {
		name    string
		charges calculator.Charges
		want    decimal.Decimal
	}{
		{
			name:    "kitchen enabled",
			charges: calculator.Charges{Nights: 3, RoomPrice: dec(1000), IsKitchen: true, KitchenTotalBill: dec(200)},
			want:    dec(3200),
		},
		{
			name:    "kitchen amount ignored when flag is off",
			charges: calculator.Charges{Nights: 3, RoomPrice: dec(1000), KitchenTotalBill: dec(200)},
			want:    dec(3000),
		},
		{
			name: "both extras",
			charges: calculator.Charges{
				Nights: 2, RoomPrice: dec(1500),
				IsKitchen: true, KitchenTotalBill: dec(300),
				ExtraBed: true, ExtraBedTotalBill: dec(500),
			},
			want: dec(3800),
		},
		{
			name:    "extra bed amount ignored when flag is off",
			charges: calculator.Charges{Nights: 1, RoomPrice: dec(800), ExtraBedTotalBill: dec(500)},
			want:    dec(800),
		},
		{
			name:    "fractional price",
			charges: calculator.Charges{Nights: 3, RoomPrice: decimal.RequireFromString("999.99")},
			want:    decimal.RequireFromString("2999.97"),
		},
		{
			name: "vat and tax on the pre-tax bill",
			charges: calculator.Charges{
				Nights: 3, RoomPrice: dec(1000),
				IsKitchen: true, KitchenTotalBill: dec(200),
				VatPercent: dec(15), TaxPercent: dec(5),
			},
			want: dec(3840),
		},
		{
			name:    "levy rounds to cents",
			charges: calculator.Charges{Nights: 1, RoomPrice: decimal.RequireFromString("99.99"), VatPercent: decimal.RequireFromString("7.5")},
			want:    decimal.RequireFromString("107.49"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculator.TotalBill(tt.charges)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTotalBill_RecomputedNotAccumulated(t *testing.T) {
	charges := calculator.Charges{Nights: 3, RoomPrice: dec(1000), IsKitchen: true, KitchenTotalBill: dec(200)}

	first := calculator.TotalBill(charges)

	charges.KitchenTotalBill = dec(250)
	second := calculator.TotalBill(charges)

	charges.KitchenTotalBill = dec(200)
	third := calculator.TotalBill(charges)

	assert.True(t, dec(3250).Equal(second))
	assert.True(t, first.Equal(third))
}

func TestDueAndBalance(t *testing.T) {
	assert.True(t, dec(200).Equal(calculator.Due(dec(3200), dec(3000))))
	assert.True(t, decimal.Zero.Equal(calculator.Due(dec(3200), dec(3500))))
	assert.True(t, dec(-300).Equal(calculator.Balance(dec(3200), dec(3500))))
}

func scenarioInput(t *testing.T, payments ...model.Payment) calculator.Input {
	t.Helper()

	return calculator.Input{
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
		Adults:   2,
		Charges: calculator.Charges{
			RoomPrice:        dec(1000),
			IsKitchen:        true,
			KitchenTotalBill: dec(200),
		},
		Payments: payments,
	}
}

func TestCompute_Scenario(t *testing.T) {
	res, err := calculator.Compute(scenarioInput(t,
		model.Payment{Method: model.PaymentMethodCash, Amount: dec(2000)},
		model.Payment{Method: model.PaymentMethodBkash, Amount: dec(1000)},
	))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Nights)
	assert.True(t, dec(3200).Equal(res.TotalBill))
	assert.True(t, dec(3000).Equal(res.AdvancePayment))
	assert.True(t, dec(3000).Equal(res.TotalPaid))
	assert.True(t, dec(200).Equal(res.DuePayment))
	assert.True(t, dec(200).Equal(res.DueBalance))
}

func TestCompute_Overpayment(t *testing.T) {
	_, err := calculator.Compute(scenarioInput(t,
		model.Payment{Method: model.PaymentMethodCash, Amount: dec(2000)},
		model.Payment{Method: model.PaymentMethodBkash, Amount: dec(1000)},
		model.Payment{Method: model.PaymentMethodBank, Amount: dec(500)},
	))

	assert.ErrorIs(t, err, calculator.ErrOverpayment)
}

func TestCompute_PriorCreditsCountTowardTotalPaid(t *testing.T) {
	in := scenarioInput(t, model.Payment{Method: model.PaymentMethodCash, Amount: dec(2000)})
	in.PriorCredits = dec(1000)

	res, err := calculator.Compute(in)
	require.NoError(t, err)
	assert.True(t, dec(3000).Equal(res.TotalPaid))
	assert.True(t, dec(2000).Equal(res.AdvancePayment))

	in.PriorCredits = dec(1300)
	_, err = calculator.Compute(in)
	assert.ErrorIs(t, err, calculator.ErrOverpayment)
}

func TestCompute_ExactPaymentIsAccepted(t *testing.T) {
	res, err := calculator.Compute(scenarioInput(t, model.Payment{Method: model.PaymentMethodNagad, Amount: dec(3200)}))
	require.NoError(t, err)

	assert.True(t, res.DuePayment.IsZero())
}

func TestCompute_Validation(t *testing.T) {
	cash := model.Payment{Method: model.PaymentMethodCash, Amount: dec(100)}

	tests := []struct {
		name    string
		mutate  func(in *calculator.Input)
		wantErr error
	}{
		{
			name:    "no payments",
			mutate:  func(in *calculator.Input) { in.Payments = nil },
			wantErr: calculator.ErrNoPayments,
		},
		{
			name:    "four payments",
			mutate:  func(in *calculator.Input) { in.Payments = []model.Payment{cash, cash, cash, cash} },
			wantErr: calculator.ErrTooManyPayments,
		},
		{
			name: "unknown method",
			mutate: func(in *calculator.Input) {
				in.Payments = []model.Payment{{Method: "CHEQUE", Amount: dec(1)}}
			},
			wantErr: calculator.ErrUnknownPaymentMethod,
		},
		{
			name: "negative payment",
			mutate: func(in *calculator.Input) {
				in.Payments = []model.Payment{{Method: model.PaymentMethodCash, Amount: dec(-1)}}
			},
			wantErr: calculator.ErrNegativeAmount,
		},
		{
			name:    "negative room price",
			mutate:  func(in *calculator.Input) { in.Charges.RoomPrice = dec(-1) },
			wantErr: calculator.ErrNegativeAmount,
		},
		{
			name:    "negative children",
			mutate:  func(in *calculator.Input) { in.Children = -1 },
			wantErr: calculator.ErrNegativeOccupancy,
		},
		{
			name:    "vat above 100 percent",
			mutate:  func(in *calculator.Input) { in.Charges.VatPercent = dec(101) },
			wantErr: calculator.ErrInvalidPercentage,
		},
		{
			name:    "negative tax",
			mutate:  func(in *calculator.Input) { in.Charges.TaxPercent = dec(-1) },
			wantErr: calculator.ErrInvalidPercentage,
		},
		{
			name:    "invalid range",
			mutate:  func(in *calculator.Input) { in.CheckOut = in.CheckIn },
			wantErr: calculator.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenarioInput(t, cash)
			tt.mutate(&in)

			_, err := calculator.Compute(in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompute_MaxPaymentsOverride(t *testing.T) {
	cash := model.Payment{Method: model.PaymentMethodCash, Amount: dec(100)}

	in := scenarioInput(t, cash, cash, cash, cash)
	in.MaxPayments = 4

	_, err := calculator.Compute(in)
	assert.NoError(t, err)
}

func TestApplyDailyPayment(t *testing.T) {
	paid, due, err := calculator.ApplyDailyPayment(dec(3200), dec(3000), dec(200))
	require.NoError(t, err)
	assert.True(t, dec(3200).Equal(paid))
	assert.True(t, due.IsZero())

	paid, due, err = calculator.ApplyDailyPayment(dec(3200), dec(3000), dec(500))
	assert.ErrorIs(t, err, calculator.ErrOverpayment)
	assert.True(t, dec(3000).Equal(paid))
	assert.True(t, dec(200).Equal(due))

	_, _, err = calculator.ApplyDailyPayment(dec(3200), dec(3000), decimal.Zero)
	assert.ErrorIs(t, err, calculator.ErrNonPositiveDailyAmount)
}
