package availability_test

import (
	"testing"
	"time"

	"hotelledger/internal/domains/room/availability"
	"hotelledger/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)

	return d
}

func TestBookedDates(t *testing.T) {
	got := availability.BookedDates(date(t, "2024-01-10"), date(t, "2024-01-13"))

	assert.Equal(t, []string{"2024-01-10", "2024-01-11", "2024-01-12"}, got)
}

func TestBookedDates_AcrossMonth(t *testing.T) {
	got := availability.BookedDates(date(t, "2024-02-28"), date(t, "2024-03-02"))

	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, got)
}

func TestIsAvailable(t *testing.T) {
	existing := availability.BookedDates(date(t, "2024-01-10"), date(t, "2024-01-13"))

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     bool
	}{
		{name: "identical range", checkIn: "2024-01-10", checkOut: "2024-01-13", want: false},
		{name: "starts inside", checkIn: "2024-01-11", checkOut: "2024-01-15", want: false},
		{name: "ends inside", checkIn: "2024-01-08", checkOut: "2024-01-11", want: false},
		{name: "wraps existing", checkIn: "2024-01-05", checkOut: "2024-01-20", want: false},
		{name: "starts on existing last night", checkIn: "2024-01-12", checkOut: "2024-01-14", want: false},
		{name: "back-to-back after checkout", checkIn: "2024-01-13", checkOut: "2024-01-15", want: true},
		{name: "back-to-back before check-in", checkIn: "2024-01-08", checkOut: "2024-01-10", want: true},
		{name: "well before", checkIn: "2024-01-01", checkOut: "2024-01-05", want: true},
		{name: "same day on a held date", checkIn: "2024-01-11", checkOut: "2024-01-11", want: false},
		{name: "same day on a free date", checkIn: "2024-01-13", checkOut: "2024-01-13", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := availability.IsAvailable(date(t, tt.checkIn), date(t, tt.checkOut), existing)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAvailable_EmptyInventory(t *testing.T) {
	assert.True(t, availability.IsAvailable(date(t, "2024-01-10"), date(t, "2024-01-13"), nil))
	assert.True(t, availability.IsAvailable(date(t, "2024-01-10"), date(t, "2024-01-13"), []string{}))
}

func TestIsAvailable_IgnoresGarbage(t *testing.T) {
	assert.True(t, availability.IsAvailable(date(t, "2024-01-10"), date(t, "2024-01-13"), []string{"not-a-date"}))
}

func TestFilterAvailable(t *testing.T) {
	type room struct {
		name   string
		booked []string
	}

	rooms := []room{
		{name: "101", booked: []string{"2024-01-11"}},
		{name: "102"},
		{name: "103", booked: []string{"2024-01-13"}},
	}

	got := availability.FilterAvailable(rooms, date(t, "2024-01-10"), date(t, "2024-01-13"), func(r room) []string { return r.booked })

	require.Len(t, got, 2)
	assert.Equal(t, "102", got[0].name)
	assert.Equal(t, "103", got[1].name)
}

func TestReleaseDates(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		legacy   bool
		want     []string
	}{
		{
			name: "default releases what was committed", checkIn: "2024-01-10", checkOut: "2024-01-13",
			want: []string{"2024-01-10", "2024-01-11", "2024-01-12"},
		},
		{
			name: "default on month start", checkIn: "2024-02-01", checkOut: "2024-02-03",
			want: []string{"2024-02-01", "2024-02-02"},
		},
		{
			name: "legacy drops check-out day", checkIn: "2024-01-10", checkOut: "2024-01-13", legacy: true,
			want: []string{"2024-01-10", "2024-01-11", "2024-01-12"},
		},
		{
			name: "legacy keeps check-out day on month start", checkIn: "2024-02-01", checkOut: "2024-02-03", legacy: true,
			want: []string{"2024-02-01", "2024-02-02", "2024-02-03"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := availability.ReleaseDates(date(t, tt.checkIn), date(t, tt.checkOut), tt.legacy)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeSubtract(t *testing.T) {
	merged := availability.Merge([]string{"2024-01-12", "2024-01-10"}, []string{"2024-01-11", "2024-01-12"})
	assert.Equal(t, []string{"2024-01-10", "2024-01-11", "2024-01-12"}, merged)

	left := availability.Subtract(merged, []string{"2024-01-11"})
	assert.Equal(t, []string{"2024-01-10", "2024-01-12"}, left)
}

func TestCommitThenReleaseRestoresInventory(t *testing.T) {
	inventory := []string{"2024-01-05", "2024-01-06"}
	in, out := date(t, "2024-01-10"), date(t, "2024-01-13")

	inventory = availability.Merge(inventory, availability.BookedDates(in, out))
	assert.False(t, availability.IsAvailable(in, out, inventory))

	inventory = availability.Subtract(inventory, availability.ReleaseDates(in, out, false))
	assert.Equal(t, []string{"2024-01-05", "2024-01-06"}, inventory)
	assert.True(t, availability.IsAvailable(in, out, inventory))
}

func TestDatesReadBackInUTC(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)

	previous := timezone.SetLocation(loc)
	t.Cleanup(func() { timezone.SetLocation(previous) })

	in, err := timezone.ParseDay("2024-01-10")
	require.NoError(t, err)
	out, err := timezone.ParseDay("2024-01-13")
	require.NoError(t, err)

	// Dhaka midnight is the evening before in UTC.
	require.Equal(t, 9, in.UTC().Day())

	committed := availability.BookedDates(in, out)
	assert.Equal(t, []string{"2024-01-10", "2024-01-11", "2024-01-12"}, committed)
	assert.Equal(t, committed, availability.BookedDates(in.UTC(), out.UTC()))
	assert.Equal(t, committed, availability.ReleaseDates(in.UTC(), out.UTC(), false))

	assert.False(t, availability.IsAvailable(in.UTC(), out.UTC(), committed))
	assert.True(t, availability.IsAvailable(out.UTC(), out.AddDate(0, 0, 2).UTC(), committed))
	assert.False(t, availability.Overlaps(out.UTC(), out.AddDate(0, 0, 2).UTC(), committed))
}
