package timezone

import (
	"sync/atomic"
	"time"

	"hotelledger/config"
	"hotelledger/shared/constant"

	"github.com/rs/zerolog/log"
)

var current atomic.Pointer[time.Location]

func init() {
	name := config.Get().App.Timezone

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

		loc = time.UTC
	}

	current.Store(loc)
}

// SetLocation replaces the ledger timezone. It exists for tests and returns the previous one.
func SetLocation(loc *time.Location) *time.Location {
	return current.Swap(loc)
}

func Location() *time.Location {
	if loc := current.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location())
}

func In(t time.Time) time.Time {
	return t.In(Location())
}

func Format(t time.Time, layout string) string {
	return In(t).Format(layout)
}

func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, Location())
}

// ParseDay reads a YYYY-MM-DD calendar date as midnight in the ledger timezone.
func ParseDay(value string) (time.Time, error) {
	return Parse(constant.DayFormat, value)
}

func FormatDay(t time.Time) string {
	return Format(t, constant.DayFormat)
}

// StartOfDay truncates t to local midnight. Truncate cannot be used since it works on
// absolute time, not on the wall clock.
func StartOfDay(t time.Time) time.Time {
	local := In(t)
	year, month, day := local.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, local.Location())
}

func Today() time.Time {
	return StartOfDay(Now())
}
