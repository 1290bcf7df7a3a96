//go:build unit

package rental_test

import (
	"testing"

	"rentworks/internal/domain/catalog"
	"rentworks/internal/domain/rental"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCard(t *testing.T, weekly, monthly, deposit int64) catalog.RateCard {
	t.Helper()
	card, err := catalog.NewRateCard(weekly, monthly, deposit)
	require.NoError(t, err)
	return card
}

func TestStandardCalculatorQuote(t *testing.T) {
	calc := rental.NewStandardCalculator()

	t.Run("rejects unknown pricing period", func(t *testing.T) {
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 7))
		_, err := calc.Quote(mustCard(t, 5000, 18000, 0), nil, rental.PricingPeriod("daily"), dr, rental.Money{}, rental.Money{})
		assert.ErrorIs(t, err, rental.ErrInvalidPricingPeriod)
	})

	t.Run("primary only, exactly one week", func(t *testing.T) {
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 7))
		quote, err := calc.Quote(mustCard(t, 5000, 18000, 2000), nil, rental.PeriodWeekly, dr, rental.Money{}, rental.Money{})
		require.NoError(t, err)

		assert.Equal(t, 7, quote.Days)
		assert.Equal(t, 1, quote.Periods)
		assert.Equal(t, int64(5000), quote.PrimaryRate.Cents())
		assert.Equal(t, int64(5000), quote.Subtotal.Cents())
		assert.Equal(t, int64(2000), quote.Deposit.Cents())
		assert.Equal(t, int64(5000), quote.Total.Cents())
	})

	t.Run("partial week rounds up", func(t *testing.T) {
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 8))
		quote, err := calc.Quote(mustCard(t, 5000, 18000, 0), nil, rental.PeriodWeekly, dr, rental.Money{}, rental.Money{})
		require.NoError(t, err)

		assert.Equal(t, 8, quote.Days)
		assert.Equal(t, 2, quote.Periods)
		assert.Equal(t, int64(10000), quote.Subtotal.Cents())
	})

	t.Run("monthly basis uses the monthly rate", func(t *testing.T) {
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 30))
		quote, err := calc.Quote(mustCard(t, 5000, 18000, 0), nil, rental.PeriodMonthly, dr, rental.Money{}, rental.Money{})
		require.NoError(t, err)

		assert.Equal(t, 1, quote.Periods)
		assert.Equal(t, int64(18000), quote.PrimaryRate.Cents())
		assert.Equal(t, int64(18000), quote.Total.Cents())
	})

	t.Run("accessories multiply rates but not deposits", func(t *testing.T) {
		// 8 inclusive days on a weekly basis bills two periods.
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 8))
		primary := mustCard(t, 5000, 18000, 2000)
		accessories := []catalog.Accessory{
			catalog.NewAccessory(uuid.New(), "Tripod", "black", mustCard(t, 1000, 3500, 200)),
		}

		quote, err := calc.Quote(primary, accessories, rental.PeriodWeekly, dr, rental.Money{}, rental.Money{})
		require.NoError(t, err)

		require.Len(t, quote.AccessoryLines, 1)
		line := quote.AccessoryLines[0]
		assert.Equal(t, "Tripod", line.Name())
		assert.Equal(t, int64(1000), line.Rate().Cents())
		assert.Equal(t, int64(2000), line.Subtotal().Cents())
		assert.Equal(t, int64(200), line.Deposit().Cents())

		assert.Equal(t, int64(12000), quote.Subtotal.Cents())
		assert.Equal(t, int64(2200), quote.Deposit.Cents())
		assert.Equal(t, int64(12000), quote.Total.Cents())
	})

	t.Run("discount and fee apply once to the aggregate", func(t *testing.T) {
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 8))
		quote, err := calc.Quote(mustCard(t, 5000, 18000, 0), nil, rental.PeriodWeekly, dr,
			rental.MustMoney(1500), rental.MustMoney(500))
		require.NoError(t, err)

		assert.Equal(t, int64(10000), quote.Subtotal.Cents())
		assert.Equal(t, int64(9000), quote.Total.Cents())
	})

	t.Run("discount never drives the total negative", func(t *testing.T) {
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 7))
		quote, err := calc.Quote(mustCard(t, 5000, 18000, 2000), nil, rental.PeriodWeekly, dr,
			rental.MustMoney(99999), rental.Money{})
		require.NoError(t, err)

		assert.Equal(t, int64(0), quote.Total.Cents())
		assert.Equal(t, int64(2000), quote.Deposit.Cents(), "deposit is untouched by discounts")
	})

	t.Run("accessory order does not change the totals", func(t *testing.T) {
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 8))
		primary := mustCard(t, 5000, 18000, 2000)
		tripod := catalog.NewAccessory(uuid.New(), "Tripod", "black", mustCard(t, 1000, 3500, 200))
		caseAcc := catalog.NewAccessory(uuid.New(), "Case", "", mustCard(t, 800, 2500, 100))

		forward, err := calc.Quote(primary, []catalog.Accessory{tripod, caseAcc}, rental.PeriodWeekly, dr, rental.Money{}, rental.Money{})
		require.NoError(t, err)
		reversed, err := calc.Quote(primary, []catalog.Accessory{caseAcc, tripod}, rental.PeriodWeekly, dr, rental.Money{}, rental.Money{})
		require.NoError(t, err)

		assert.Equal(t, forward.Subtotal, reversed.Subtotal)
		assert.Equal(t, forward.Deposit, reversed.Deposit)
		assert.Equal(t, forward.Total, reversed.Total)
	})

	t.Run("quoting is deterministic", func(t *testing.T) {
		dr := mustRange(t, date(2026, 3, 1), date(2026, 3, 16))
		primary := mustCard(t, 5000, 18000, 2000)
		accessories := []catalog.Accessory{
			catalog.NewAccessory(uuid.New(), "Case", "", mustCard(t, 800, 2500, 0)),
		}

		first, err := calc.Quote(primary, accessories, rental.PeriodWeekly, dr, rental.MustMoney(100), rental.MustMoney(50))
		require.NoError(t, err)
		second, err := calc.Quote(primary, accessories, rental.PeriodWeekly, dr, rental.MustMoney(100), rental.MustMoney(50))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
