package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysToPayday(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		paydayDay int
		want      int
	}{
		{
			name:      "payday ahead this month",
			today:     date(2025, time.June, 12),
			paydayDay: 21,
			want:      9,
		},
		{
			name:      "payday tomorrow",
			today:     date(2025, time.June, 20),
			paydayDay: 21,
			want:      1,
		},
		{
			name:      "payday is today",
			today:     date(2025, time.June, 21),
			paydayDay: 21,
			want:      0,
		},
		{
			name:      "payday passed, wraps to next month",
			today:     date(2025, time.June, 25),
			paydayDay: 21,
			want:      26, // June 25 -> July 21
		},
		{
			name:      "payday on the 1st seen from end of month",
			today:     date(2025, time.June, 30),
			paydayDay: 1,
			want:      1, // July 1 is tomorrow
		},
		{
			name:      "clamped to last day of February",
			today:     date(2025, time.January, 31),
			paydayDay: 30,
			want:      28, // Jan 31 -> Feb 28, never March
		},
		{
			name:      "clamped to Feb 29 in a leap year",
			today:     date(2024, time.January, 31),
			paydayDay: 30,
			want:      29, // Jan 31 -> Feb 29
		},
		{
			name:      "payday 31 from a 30-day month",
			today:     date(2025, time.April, 30),
			paydayDay: 31,
			want:      1, // spec window arithmetic, not date existence
		},
		{
			name:      "December wraps into January",
			today:     date(2025, time.December, 28),
			paydayDay: 25,
			want:      28, // Dec 28 -> Jan 25
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysToPayday(tt.today, tt.paydayDay)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestDaysToPaydayZeroOnEveryPayday(t *testing.T) {
	// Distance is zero exactly on payday for every valid payday day.
	for paydayDay := 1; paydayDay <= 28; paydayDay++ {
		today := date(2025, time.March, paydayDay)
		got, err := DaysToPayday(today, paydayDay)
		require.NoError(t, err)
		assert.Equal(t, 0, got, "payday day %d", paydayDay)
	}
}

func TestDaysToPaydayInvalidArgument(t *testing.T) {
	for _, paydayDay := range []int{0, -3, 32, 100} {
		_, err := DaysToPayday(date(2025, time.June, 10), paydayDay)
		assert.Error(t, err, "payday day %d", paydayDay)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
}
