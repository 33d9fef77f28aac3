// Package calculator derives the financial fields of a booking from its inputs.
//
// Every function is pure: totals are recomputed from the current field values and are never
// accumulated from a previous total. Callers persist the result.
package calculator

import (
	"errors"
	"fmt"
	"time"

	"hotelledger/internal/domains/booking/model"

	"github.com/shopspring/decimal"
)

const DefaultMaxPayments = 3

var (
	ErrInvalidDateRange       = errors.New("check-out date must be after check-in date")
	ErrOverpayment            = errors.New("total paid exceeds total bill")
	ErrNoPayments             = errors.New("at least one payment is required")
	ErrTooManyPayments        = errors.New("too many payments")
	ErrNegativeAmount         = errors.New("amounts must not be negative")
	ErrUnknownPaymentMethod   = errors.New("unknown payment method")
	ErrNegativeOccupancy      = errors.New("adults and children must not be negative")
	ErrNonPositiveDailyAmount = errors.New("daily amount must be greater than zero")
	ErrInvalidPercentage      = errors.New("vat and tax must be between 0 and 100 percent")
)

var hundred = decimal.NewFromInt(100)

const day = 24 * time.Hour

// Charges are the inputs of the total bill formula.
type Charges struct {
	Nights            int
	RoomPrice         decimal.Decimal
	IsKitchen         bool
	KitchenTotalBill  decimal.Decimal
	ExtraBed          bool
	ExtraBedTotalBill decimal.Decimal
	// VatPercent and TaxPercent are levied on the whole pre-tax bill.
	VatPercent decimal.Decimal
	TaxPercent decimal.Decimal
}

type Input struct {
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
	Charges  Charges
	Payments []model.Payment
	// PriorCredits is money received after the advance. It counts toward TotalPaid on edits.
	PriorCredits decimal.Decimal
	MaxPayments  int
}

type Result struct {
	Nights         int             `json:"nights"`
	TotalBill      decimal.Decimal `json:"total_bill"`
	AdvancePayment decimal.Decimal `json:"advance_payment"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	DuePayment     decimal.Decimal `json:"due_payment"`
	DueBalance     decimal.Decimal `json:"due_balance"`
}

// Nights is the whole-day length of a stay, rounded up. Both instants are read as wall-clock
// values so a DST shift inside the stay does not change the count.
func Nights(checkIn, checkOut time.Time) (int, error) {
	in := wallClock(checkIn)
	out := wallClock(checkOut)

	if !out.After(in) {
		return 0, ErrInvalidDateRange
	}

	diff := out.Sub(in)
	nights := int(diff / day)

	if diff%day != 0 {
		nights++
	}

	return nights, nil
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// TotalBill is nights*roomPrice plus each extra charge whose flag is set, plus vat and tax on
// that sum rounded to cents.
func TotalBill(c Charges) decimal.Decimal {
	total := c.RoomPrice.Mul(decimal.NewFromInt(int64(c.Nights)))

	if c.IsKitchen {
		total = total.Add(c.KitchenTotalBill)
	}

	if c.ExtraBed {
		total = total.Add(c.ExtraBedTotalBill)
	}

	if levy := c.VatPercent.Add(c.TaxPercent); !levy.IsZero() {
		total = total.Add(total.Mul(levy).Div(hundred)).Round(2)
	}

	return total
}

func TotalPaid(payments []model.Payment) decimal.Decimal {
	total := decimal.Zero

	for _, p := range payments {
		total = total.Add(p.Amount)
	}

	return total
}

// Due is the display balance, never below zero.
func Due(totalBill, totalPaid decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, totalBill.Sub(totalPaid))
}

// Balance is the unclamped balance kept for audit.
func Balance(totalBill, totalPaid decimal.Decimal) decimal.Decimal {
	return totalBill.Sub(totalPaid)
}

// ValidatePayments checks the 1..max rule, methods and amounts.
func ValidatePayments(payments []model.Payment, maxPayments int) error {
	if maxPayments <= 0 {
		maxPayments = DefaultMaxPayments
	}

	if len(payments) == 0 {
		return ErrNoPayments
	}

	if len(payments) > maxPayments {
		return fmt.Errorf("%w: got %d, at most %d", ErrTooManyPayments, len(payments), maxPayments)
	}

	for i, p := range payments {
		if !p.Method.Valid() {
			return fmt.Errorf("%w: payment %d has method %q", ErrUnknownPaymentMethod, i+1, p.Method)
		}

		if p.Amount.IsNegative() {
			return fmt.Errorf("%w: payment %d", ErrNegativeAmount, i+1)
		}
	}

	return nil
}

func validateCharges(c Charges) error {
	if c.RoomPrice.IsNegative() || c.KitchenTotalBill.IsNegative() || c.ExtraBedTotalBill.IsNegative() {
		return ErrNegativeAmount
	}

	for _, pct := range []decimal.Decimal{c.VatPercent, c.TaxPercent} {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return ErrInvalidPercentage
		}
	}

	return nil
}

// Compute recomputes every derived field of a booking and rejects overpayment.
func Compute(in Input) (Result, error) {
	nights, err := Nights(in.CheckIn, in.CheckOut)
	if err != nil {
		return Result{}, err
	}

	if in.Adults < 0 || in.Children < 0 {
		return Result{}, ErrNegativeOccupancy
	}

	charges := in.Charges
	charges.Nights = nights

	if err = validateCharges(charges); err != nil {
		return Result{}, err
	}

	if err = ValidatePayments(in.Payments, in.MaxPayments); err != nil {
		return Result{}, err
	}

	totalBill := TotalBill(charges)
	advance := TotalPaid(in.Payments)
	totalPaid := advance.Add(in.PriorCredits)

	if totalPaid.GreaterThan(totalBill) {
		return Result{}, fmt.Errorf("%w: paid %s, bill %s", ErrOverpayment, totalPaid.StringFixed(2), totalBill.StringFixed(2))
	}

	return Result{
		Nights:         nights,
		TotalBill:      totalBill,
		AdvancePayment: advance,
		TotalPaid:      totalPaid,
		DuePayment:     Due(totalBill, totalPaid),
		DueBalance:     Balance(totalBill, totalPaid),
	}, nil
}

// ApplyDailyPayment adds a daily credit to the cumulative total paid of a booking.
func ApplyDailyPayment(totalBill, cumulativePaid, dailyAmount decimal.Decimal) (newTotalPaid, newDue decimal.Decimal, err error) {
	if !dailyAmount.IsPositive() {
		return cumulativePaid, Due(totalBill, cumulativePaid), ErrNonPositiveDailyAmount
	}

	newTotalPaid = cumulativePaid.Add(dailyAmount)
	if newTotalPaid.GreaterThan(totalBill) {
		return cumulativePaid, Due(totalBill, cumulativePaid), fmt.Errorf("%w: paid %s, bill %s", ErrOverpayment, newTotalPaid.StringFixed(2), totalBill.StringFixed(2))
	}

	return newTotalPaid, totalBill.Sub(newTotalPaid), nil
}
