package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNegativeRate    = errors.New("rate cannot be negative")
	ErrNegativeDeposit = errors.New("deposit cannot be negative")
)

// RateCard is the commercial face of a rentable item as published by the
// catalog: a weekly rate, a monthly rate and a flat refundable deposit,
// all in cents. Rentals copy these values at creation time; later catalog
// edits never reprice an existing rental.
type RateCard struct {
	weeklyRateCents  int64
	monthlyRateCents int64
	depositCents     int64
}

func NewRateCard(weeklyRateCents, monthlyRateCents, depositCents int64) (RateCard, error) {
	if weeklyRateCents < 0 || monthlyRateCents < 0 {
		return RateCard{}, ErrNegativeRate
	}
	if depositCents < 0 {
		return RateCard{}, ErrNegativeDeposit
	}
	return RateCard{
		weeklyRateCents:  weeklyRateCents,
		monthlyRateCents: monthlyRateCents,
		depositCents:     depositCents,
	}, nil
}

func (c RateCard) WeeklyRateCents() int64  { return c.weeklyRateCents }
func (c RateCard) MonthlyRateCents() int64 { return c.monthlyRateCents }
func (c RateCard) DepositCents() int64     { return c.depositCents }

// Accessory is an optional add-on rented alongside the primary item. The
// color is informational only and has no pricing effect.
type Accessory struct {
	id    uuid.UUID
	name  string
	color string
	card  RateCard
}

func NewAccessory(id uuid.UUID, name, color string, card RateCard) Accessory {
	return Accessory{id: id, name: name, color: color, card: card}
}

func (a Accessory) ID() uuid.UUID  { return a.id }
func (a Accessory) Name() string   { return a.name }
func (a Accessory) Color() string  { return a.color }
func (a Accessory) Card() RateCard { return a.card }

func (a Accessory) WithColor(color string) Accessory {
	a.color = color
	return a
}
