package timezone_test

import (
	"testing"
	"time"

	"hotelledger/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useLocation(t *testing.T, name string) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation(name)
	require.NoError(t, err)

	previous := timezone.SetLocation(loc)
	t.Cleanup(func() { timezone.SetLocation(previous) })

	return loc
}

func TestParseDay(t *testing.T) {
	loc := useLocation(t, "Asia/Jakarta")

	day, err := timezone.ParseDay("2024-01-10")
	require.NoError(t, err)

	assert.True(t, time.Date(2024, 1, 10, 0, 0, 0, 0, loc).Equal(day))
	assert.Equal(t, loc, day.Location())
	assert.Equal(t, "2024-01-10", timezone.FormatDay(day))

	_, err = timezone.ParseDay("10/01/2024")
	assert.Error(t, err)
}

func TestFormatDay_UsesLedgerWallClock(t *testing.T) {
	useLocation(t, "Asia/Jakarta")

	// 20:00 UTC is already the next day at UTC+7.
	assert.Equal(t, "2024-03-02", timezone.FormatDay(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)))
}

func TestStartOfDay(t *testing.T) {
	loc := useLocation(t, "Asia/Jakarta")

	start := timezone.StartOfDay(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC))

	assert.True(t, time.Date(2024, 3, 2, 0, 0, 0, 0, loc).Equal(start))
	assert.Equal(t, 0, timezone.Today().Hour())
}

func TestNow(t *testing.T) {
	loc := useLocation(t, "Europe/London")

	assert.Equal(t, loc, timezone.Now().Location())
	assert.Equal(t, loc, timezone.Location())
}
