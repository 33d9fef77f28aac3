package model

import (
	"hotelledger/shared/model"

	"github.com/shopspring/decimal"
)

const (
	EntryTableName   = "daily_invoice_entries"
	EntryEntityName  = "daily invoice entry"
	SummaryTableName = "daily_summaries"
	SummaryEntity    = "daily summary"

	FieldID             = "id"
	FieldBookingID      = "booking_id"
	FieldHotelID        = "hotel_id"
	FieldDate           = "date"
	FieldDailyAmount    = "daily_amount"
	FieldKind           = "kind"
	FieldDailyExpenses  = "daily_expenses"
	FieldClosingBalance = "closing_balance"
)

// EntryKind tells where a credit came from.
type EntryKind string

const (
	// EntryKindAdvance is the advance taken when a booking is created.
	EntryKindAdvance EntryKind = "advance"
	// EntryKindAdjustment records a change of the advance made by editing a booking. It may be negative.
	EntryKindAdjustment EntryKind = "adjustment"
	// EntryKindPayment is money collected through the daily statement.
	EntryKindPayment EntryKind = "payment"
)

// DailyInvoiceEntry is one credit against a booking on a calendar day. TotalPaid is the amount
// this entry adds to the booking's cumulative total paid.
type DailyInvoiceEntry struct {
	ID          string          `db:"id"`
	BookingID   string          `db:"booking_id"`
	HotelID     string          `db:"hotel_id"`
	Date        string          `db:"date"`
	DailyAmount decimal.Decimal `db:"daily_amount"`
	TotalPaid   decimal.Decimal `db:"total_paid"`
	Kind        EntryKind       `db:"kind"`
	model.Metadata
}

// DailySummary is the cash rollup of one hotel on one day.
type DailySummary struct {
	HotelID        string          `db:"hotel_id"`
	Date           string          `db:"date"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	DailyIncome    decimal.Decimal `db:"daily_income"`
	TotalBalance   decimal.Decimal `db:"total_balance"`
	DailyExpenses  decimal.Decimal `db:"daily_expenses"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	ArchiveURL     string          `db:"archive_url"`
	model.Metadata
}
