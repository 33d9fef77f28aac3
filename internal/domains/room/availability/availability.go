// Package availability decides whether a room can take a stay and computes the inventory dates a
// stay commits or releases. Dates are calendar days in YYYY-MM-DD form.
package availability

import (
	"slices"
	"time"

	"hotelledger/shared/constant"
	"hotelledger/shared/timezone"
)

// day is the ledger calendar date of t as a UTC midnight, so instants read back from the store
// in another zone land on the same day they were committed for.
func day(t time.Time) time.Time {
	year, month, d := timezone.In(t).Date()

	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the stay [checkIn, checkOut) touches any committed date.
//
// A committed date d conflicts when it lies strictly between check-in and the effective
// check-out, or equals either of them. The effective check-out is the day before check-out, so
// a room vacated on day X can be booked again from day X. A same-day stay keeps its own day.
// Unparseable entries are ignored.
func Overlaps(checkIn, checkOut time.Time, bookedDates []string) bool {
	in := day(checkIn)
	out := day(checkOut)

	effectiveOut := out
	if !in.Equal(out) {
		effectiveOut = out.AddDate(0, 0, -1)
	}

	for _, raw := range bookedDates {
		d, err := time.Parse(constant.DayFormat, raw)
		if err != nil {
			continue
		}

		if (d.After(in) && d.Before(effectiveOut)) || d.Equal(in) || d.Equal(effectiveOut) {
			return true
		}
	}

	return false
}

// IsAvailable is the negation of Overlaps. An empty list is always available.
func IsAvailable(checkIn, checkOut time.Time, bookedDates []string) bool {
	if len(bookedDates) == 0 {
		return true
	}

	return !Overlaps(checkIn, checkOut, bookedDates)
}

// FilterAvailable keeps the items whose booked dates do not overlap the stay.
func FilterAvailable[T any](items []T, checkIn, checkOut time.Time, bookedDates func(T) []string) []T {
	res := make([]T, 0, len(items))

	for _, item := range items {
		if IsAvailable(checkIn, checkOut, bookedDates(item)) {
			res = append(res, item)
		}
	}

	return res
}

// BookedDates is the set a stay commits to inventory: every day in [checkIn, checkOut).
// The check-out day itself is not held.
func BookedDates(checkIn, checkOut time.Time) []string {
	in := day(checkIn)
	out := day(checkOut)

	if !out.After(in) {
		return []string{in.Format(constant.DayFormat)}
	}

	dates := []string{}
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(constant.DayFormat))
	}

	return dates
}

// ReleaseDates is the set removed from inventory when a stay is edited or canceled.
//
// By default it is exactly BookedDates. In legacy mode the range is taken inclusive of
// check-out and the last date is dropped unless the stay started on the first day of a month,
// in which case the check-out day is released too.
func ReleaseDates(checkIn, checkOut time.Time, legacy bool) []string {
	if !legacy {
		return BookedDates(checkIn, checkOut)
	}

	in := day(checkIn)
	out := day(checkOut)

	dates := []string{}
	for d := in; !d.After(out); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(constant.DayFormat))
	}

	if in.Day() != 1 && len(dates) > 0 {
		dates = dates[:len(dates)-1]
	}

	return dates
}

// Merge adds dates to booked, keeping the result sorted and free of duplicates.
func Merge(booked, dates []string) []string {
	res := slices.Concat(booked, dates)
	slices.Sort(res)

	return slices.Compact(res)
}

// Subtract removes dates from booked.
func Subtract(booked, dates []string) []string {
	res := make([]string, 0, len(booked))

	for _, d := range booked {
		if !slices.Contains(dates, d) {
			res = append(res, d)
		}
	}

	return res
}
