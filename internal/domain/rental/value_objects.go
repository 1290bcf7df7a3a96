package rental

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrZeroDate       = errors.New("rental dates cannot be zero")
	ErrEndBeforeStart = errors.New("end date must not be before start date")
	ErrNegativeMoney  = errors.New("money amount cannot be negative")
)

// DateRange is an inclusive range of calendar days. Both bounds are
// normalized to midnight UTC so that arithmetic is immune to the time
// component of whatever the caller parsed.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrZeroDate
	}
	s := truncateToDay(start)
	e := truncateToDay(end)
	if e.Before(s) {
		return DateRange{}, ErrEndBeforeStart
	}
	return DateRange{start: s, end: e}, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// Days counts calendar days inclusively: a same-day range is 1 day.
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start)/(24*time.Hour)) + 1
}

// Overlaps reports whether two inclusive ranges share at least one day:
// [a,b] and [c,d] conflict iff a <= d && c <= b.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

func (r DateRange) Contains(t time.Time) bool {
	day := truncateToDay(t)
	return !day.Before(r.start) && !day.After(r.end)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s]", r.start.Format(time.DateOnly), r.end.Format(time.DateOnly))
}

// Money is an amount of cents. Deposits, rates and totals all use it.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

// MustMoney is for constants and tests where negativity is impossible.
func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MulPeriods(periods int) Money {
	return Money{cents: m.cents * int64(periods)}
}

// SubFloored subtracts, never going below zero.
func (m Money) SubFloored(other Money) Money {
	remaining := m.cents - other.cents
	if remaining < 0 {
		remaining = 0
	}
	return Money{cents: remaining}
}
