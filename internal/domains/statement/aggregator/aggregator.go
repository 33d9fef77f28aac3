// Package aggregator builds the daily cash statement of a hotel from bookings and their
// invoice entries. It does no I/O.
package aggregator

import (
	"sort"
	"time"

	bookingModel "hotelledger/internal/domains/booking/model"
	"hotelledger/internal/domains/statement/model"
	"hotelledger/shared/timezone"

	"github.com/shopspring/decimal"
)

// Line is one booking on a statement.
type Line struct {
	Booking bookingModel.Booking
	// CumulativePaid is the sum of every entry of the booking, whatever its date.
	CumulativePaid decimal.Decimal
	// DueAmount is TotalBill minus CumulativePaid, unclamped.
	DueAmount decimal.Decimal
	// DailyAmount is what the booking paid on the statement day.
	DailyAmount decimal.Decimal
}

type Statement struct {
	Date           string
	RegularInvoice []Line
	UnpaidInvoice  []Line
	DailyIncome    decimal.Decimal
}

// CumulativePaid sums the credits of one booking.
func CumulativePaid(entries []model.DailyInvoiceEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.TotalPaid)
	}

	return total
}

// DailyIncome sums the amounts of the entries dated day.
func DailyIncome(date string, entries []model.DailyInvoiceEntry) decimal.Decimal {
	total := decimal.Zero

	for _, e := range entries {
		if e.Date == date {
			total = total.Add(e.DailyAmount)
		}
	}

	return total
}

// Build partitions bookings for day. A booking checking in on day is regular. Any other booking
// is unpaid when it checked in earlier and still owes money, or when it was credited on day.
// Canceled bookings never appear and a booking is listed once, regular first.
//
// DailyIncome comes from dayEntries, every entry of the hotel dated day, so it does not depend
// on which bookings made it into the lists.
func Build(day time.Time, bookings []bookingModel.Booking, entries, dayEntries []model.DailyInvoiceEntry) Statement {
	date := timezone.FormatDay(day)

	byBooking := make(map[string][]model.DailyInvoiceEntry)
	for _, e := range entries {
		byBooking[e.BookingID] = append(byBooking[e.BookingID], e)
	}

	st := Statement{
		Date:           date,
		RegularInvoice: []Line{},
		UnpaidInvoice:  []Line{},
		DailyIncome:    DailyIncome(date, dayEntries),
	}

	seen := make(map[string]struct{}, len(bookings))

	for _, b := range bookings {
		if b.StatusID == bookingModel.StatusCanceled {
			continue
		}

		if _, ok := seen[b.ID]; ok {
			continue
		}

		own := byBooking[b.ID]
		line := newLine(b, date, own)
		checkIn := timezone.FormatDay(b.CheckInDate)

		switch {
		case checkIn == date:
			st.RegularInvoice = append(st.RegularInvoice, line)
		case checkIn < date && line.DueAmount.IsPositive(), !line.DailyAmount.IsZero():
			st.UnpaidInvoice = append(st.UnpaidInvoice, line)
		default:
			continue
		}

		seen[b.ID] = struct{}{}
	}

	sortLines(st.RegularInvoice)
	sortLines(st.UnpaidInvoice)

	return st
}

func newLine(b bookingModel.Booking, date string, entries []model.DailyInvoiceEntry) Line {
	cumulative := CumulativePaid(entries)

	return Line{
		Booking:        b,
		CumulativePaid: cumulative,
		DueAmount:      b.TotalBill.Sub(cumulative),
		DailyAmount:    DailyIncome(date, entries),
	}
}

func sortLines(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].Booking.CheckInDate.Equal(lines[j].Booking.CheckInDate) {
			return lines[i].Booking.CheckInDate.Before(lines[j].Booking.CheckInDate)
		}

		return lines[i].Booking.BookingNo < lines[j].Booking.BookingNo
	})
}

// Summarize derives the balances of a day from its opening balance, income and expenses.
func Summarize(hotelID, date string, opening, income, expenses decimal.Decimal) model.DailySummary {
	total := opening.Add(income)

	return model.DailySummary{
		HotelID:        hotelID,
		Date:           date,
		OpeningBalance: opening,
		DailyIncome:    income,
		TotalBalance:   total,
		DailyExpenses:  expenses,
		ClosingBalance: total.Sub(expenses),
	}
}

// PreviousDate returns the YYYY-MM-DD day before day.
func PreviousDate(day time.Time) string {
	return timezone.FormatDay(day.AddDate(0, 0, -1))
}

// Rechain opens every summary in later on the closing balance of the summary dated the calendar
// day before it, starting from from. A summary with no such predecessor opens on zero. later must
// be sorted by date. Only the summaries whose balances moved are returned.
func Rechain(from model.DailySummary, later []model.DailySummary) []model.DailySummary {
	changed := make([]model.DailySummary, 0, len(later))
	previous := from

	for _, s := range later {
		opening := decimal.Zero

		if day, err := timezone.ParseDay(s.Date); err == nil && PreviousDate(day) == previous.Date {
			opening = previous.ClosingBalance
		}

		next := Summarize(s.HotelID, s.Date, opening, s.DailyIncome, s.DailyExpenses)
		next.ArchiveURL = s.ArchiveURL
		next.Metadata = s.Metadata

		if !next.OpeningBalance.Equal(s.OpeningBalance) || !next.ClosingBalance.Equal(s.ClosingBalance) {
			changed = append(changed, next)
		}

		previous = next
	}

	return changed
}
