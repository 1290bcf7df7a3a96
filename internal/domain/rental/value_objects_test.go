//go:build unit

package rental_test

import (
	"testing"
	"time"

	"rentworks/internal/domain/rental"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) rental.DateRange {
	t.Helper()
	dr, err := rental.NewDateRange(start, end)
	require.NoError(t, err)
	return dr
}

func TestNewDateRange(t *testing.T) {
	t.Run("rejects zero dates", func(t *testing.T) {
		_, err := rental.NewDateRange(time.Time{}, date(2026, 3, 1))
		assert.ErrorIs(t, err, rental.ErrZeroDate)

		_, err = rental.NewDateRange(date(2026, 3, 1), time.Time{})
		assert.ErrorIs(t, err, rental.ErrZeroDate)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := rental.NewDateRange(date(2026, 3, 2), date(2026, 3, 1))
		assert.ErrorIs(t, err, rental.ErrEndBeforeStart)
	})

	t.Run("same day is allowed", func(t *testing.T) {
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 1))
		assert.Equal(t, 1, dr.Days())
	})

	t.Run("normalizes time components to midnight UTC", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		start := time.Date(2026, 3, 1, 23, 45, 0, 0, time.UTC)
		end := time.Date(2026, 3, 3, 8, 0, 0, 0, jst)

		dr := mustRange(t, start, end)
		assert.Equal(t, date(2026, 3, 1), dr.Start())
		assert.Equal(t, date(2026, 3, 2), dr.End())
		assert.Equal(t, 2, dr.Days())
	})
}

func TestDateRangeDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", date(2026, 3, 1), date(2026, 3, 1), 1},
		{"full week", date(2026, 3, 1), date(2026, 3, 7), 7},
		{"week plus one", date(2026, 3, 1), date(2026, 3, 8), 8},
		{"thirty days", date(2026, 3, 1), date(2026, 3, 30), 30},
		{"across month boundary", date(2026, 2, 27), date(2026, 3, 2), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRange(t, tt.start, tt.end).Days())
		})
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	base := func(t *testing.T) rental.DateRange {
		return mustRange(t, date(2026, 3, 10), date(2026, 3, 20))
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"fully before", date(2026, 3, 1), date(2026, 3, 9), false},
		{"fully after", date(2026, 3, 21), date(2026, 3, 31), false},
		{"touching at start day", date(2026, 3, 1), date(2026, 3, 10), true},
		{"touching at end day", date(2026, 3, 20), date(2026, 3, 31), true},
		{"contained", date(2026, 3, 12), date(2026, 3, 15), true},
		{"containing", date(2026, 3, 1), date(2026, 3, 31), true},
		{"identical", date(2026, 3, 10), date(2026, 3, 20), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustRange(t, tt.start, tt.end)
			assert.Equal(t, tt.want, base(t).Overlaps(other))
			assert.Equal(t, tt.want, other.Overlaps(base(t)), "overlap must be symmetric")
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	dr := mustRange(t, date(2026, 3, 10), date(2026, 3, 20))

	assert.True(t, dr.Contains(date(2026, 3, 10)))
	assert.True(t, dr.Contains(date(2026, 3, 20)))
	assert.True(t, dr.Contains(time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)))
	assert.False(t, dr.Contains(date(2026, 3, 9)))
	assert.False(t, dr.Contains(date(2026, 3, 21)))
}

func TestMoney(t *testing.T) {
	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := rental.NewMoney(-1)
		assert.ErrorIs(t, err, rental.ErrNegativeMoney)
	})

	t.Run("zero is valid", func(t *testing.T) {
		m, err := rental.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("arithmetic", func(t *testing.T) {
		a := rental.MustMoney(5000)
		b := rental.MustMoney(1200)

		assert.Equal(t, int64(6200), a.Add(b).Cents())
		assert.Equal(t, int64(15000), a.MulPeriods(3).Cents())
		assert.Equal(t, int64(3800), a.SubFloored(b).Cents())
	})

	t.Run("subtraction floors at zero", func(t *testing.T) {
		small := rental.MustMoney(100)
		big := rental.MustMoney(10000)
		assert.Equal(t, int64(0), small.SubFloored(big).Cents())
	})
}

func TestPricingPeriodPeriods(t *testing.T) {
	tests := []struct {
		name   string
		period rental.PricingPeriod
		days   int
		want   int
	}{
		{"one day weekly", rental.PeriodWeekly, 1, 1},
		{"exactly one week", rental.PeriodWeekly, 7, 1},
		{"one day over a week", rental.PeriodWeekly, 8, 2},
		{"two full weeks", rental.PeriodWeekly, 14, 2},
		{"one day monthly", rental.PeriodMonthly, 1, 1},
		{"exactly one month", rental.PeriodMonthly, 30, 1},
		{"one day over a month", rental.PeriodMonthly, 31, 2},
		{"non positive days still bills one period", rental.PeriodWeekly, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Periods(tt.days))
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, rental.StatusCompleted.IsTerminal())
	assert.True(t, rental.StatusCancelled.IsTerminal())
	assert.False(t, rental.StatusPending.IsTerminal())
	assert.False(t, rental.StatusActive.IsTerminal())

	assert.True(t, rental.StatusPending.OccupiesWindow())
	assert.True(t, rental.StatusConfirmed.OccupiesWindow())
	assert.True(t, rental.StatusActive.OccupiesWindow())
	assert.False(t, rental.StatusCompleted.OccupiesWindow())
	assert.False(t, rental.StatusCancelled.OccupiesWindow())

	assert.False(t, rental.Status("overdue").IsValid())
}
