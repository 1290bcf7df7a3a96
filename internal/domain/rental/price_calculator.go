package rental

import (
	"errors"

	"rentworks/internal/domain/catalog"
)

var ErrInvalidPricingPeriod = errors.New("invalid pricing period")

// PriceQuote is the deterministic output of the calculator: per-line
// snapshots plus aggregates. Deposits are flat one-time holds and are not
// multiplied by periods.
type PriceQuote struct {
	Range          DateRange
	Period         PricingPeriod
	Days           int
	Periods        int
	PrimaryRate    Money
	PrimarySub     Money
	AccessoryLines []AccessoryLine
	Subtotal       Money
	Discount       Money
	Fee            Money
	Deposit        Money
	Total          Money
}

// Calculator produces quotes. It is pure: no I/O, no mutation, safe to
// call repeatedly for UI preview before commit.
type Calculator interface {
	Quote(primary catalog.RateCard, accessories []catalog.Accessory, period PricingPeriod, dr DateRange, discount, fee Money) (PriceQuote, error)
}

type StandardCalculator struct{}

func NewStandardCalculator() *StandardCalculator {
	return &StandardCalculator{}
}

func (c *StandardCalculator) Quote(
	primary catalog.RateCard,
	accessories []catalog.Accessory,
	period PricingPeriod,
	dr DateRange,
	discount, fee Money,
) (PriceQuote, error) {
	if !period.IsValid() {
		return PriceQuote{}, ErrInvalidPricingPeriod
	}

	days := dr.Days()
	periods := period.Periods(days)

	primaryRate := rateFor(primary, period)
	primarySub := primaryRate.MulPeriods(periods)
	subtotal := primarySub
	deposit := MustMoney(primary.DepositCents())

	lines := make([]AccessoryLine, 0, len(accessories))
	for _, acc := range accessories {
		rate := rateFor(acc.Card(), period)
		lineSub := rate.MulPeriods(periods)
		lineDeposit := MustMoney(acc.Card().DepositCents())
		lines = append(lines, NewAccessoryLine(acc.ID(), acc.Name(), acc.Color(), rate, lineDeposit, lineSub))
		subtotal = subtotal.Add(lineSub)
		deposit = deposit.Add(lineDeposit)
	}

	// Flat amounts applied once to the aggregate, floored at zero.
	total := subtotal.Add(fee).SubFloored(discount)

	return PriceQuote{
		Range:          dr,
		Period:         period,
		Days:           days,
		Periods:        periods,
		PrimaryRate:    primaryRate,
		PrimarySub:     primarySub,
		AccessoryLines: lines,
		Subtotal:       subtotal,
		Discount:       discount,
		Fee:            fee,
		Deposit:        deposit,
		Total:          total,
	}, nil
}

func rateFor(card catalog.RateCard, period PricingPeriod) Money {
	if period == PeriodMonthly {
		return MustMoney(card.MonthlyRateCents())
	}
	return MustMoney(card.WeeklyRateCents())
}
