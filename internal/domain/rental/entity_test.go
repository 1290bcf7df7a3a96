//go:build unit

package rental_test

import (
	"testing"
	"time"

	"rentworks/internal/domain/catalog"
	"rentworks/internal/domain/rental"
	"rentworks/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRental(t *testing.T, clk clock.Clock) *rental.Rental {
	t.Helper()

	factory := rental.NewFactory(clk, rental.NewStandardCalculator())
	dr := mustRange(t, date(2026, 3, 10), date(2026, 3, 17))

	entity, err := factory.NewRental(
		catalog.NewEquipmentRef(uuid.New()),
		mustCard(t, 5000, 18000, 2000),
		nil,
		rental.PeriodWeekly,
		dr,
		rental.Money{}, rental.Money{},
		"  weekend shoot  ",
	)
	require.NoError(t, err)
	return entity
}

func advanceTo(t *testing.T, entity *rental.Rental, target rental.Status, now time.Time) {
	t.Helper()
	switch target {
	case rental.StatusPending:
	case rental.StatusConfirmed:
		require.NoError(t, entity.Confirm(now))
	case rental.StatusActive:
		require.NoError(t, entity.Confirm(now))
		require.NoError(t, entity.Pickup(now))
	case rental.StatusCompleted:
		require.NoError(t, entity.Confirm(now))
		require.NoError(t, entity.Pickup(now))
		require.NoError(t, entity.Return(now, false))
	case rental.StatusCancelled:
		require.NoError(t, entity.Cancel(now, ""))
	}
}

func TestFactoryNewRental(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entity := newTestRental(t, clock.NewMockClock(now))

	assert.NotEqual(t, uuid.Nil, entity.ID())
	assert.Equal(t, rental.StatusPending, entity.Status())
	assert.Equal(t, rental.DepositHeld, entity.DepositStatus())
	assert.Equal(t, "weekend shoot", entity.Note(), "note is trimmed")
	assert.Equal(t, now, entity.CreatedAt())
	assert.Equal(t, entity.CreatedAt(), entity.UpdatedAt())
	assert.Nil(t, entity.PickupDate())
	assert.Nil(t, entity.ReturnDate())

	assert.Equal(t, 8, entity.Range().Days())
	assert.Equal(t, int64(10000), entity.Total().Cents())
	assert.Equal(t, int64(2000), entity.Deposit().Cents())
}

func TestFactoryNewRentalRejectsInvalidResource(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	factory := rental.NewFactory(clk, rental.NewStandardCalculator())
	dr := mustRange(t, date(2026, 3, 10), date(2026, 3, 17))

	_, err := factory.NewRental(
		catalog.ResourceRef{},
		mustCard(t, 5000, 18000, 0),
		nil,
		rental.PeriodWeekly,
		dr,
		rental.Money{}, rental.Money{},
		"",
	)
	assert.ErrorIs(t, err, catalog.ErrEmptyResourceRef)
}

func TestRentalTransitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("full happy path", func(t *testing.T) {
		clk := clock.NewMockClock(now)
		entity := newTestRental(t, clk)

		confirmAt := now.Add(time.Hour)
		require.NoError(t, entity.Confirm(confirmAt))
		assert.Equal(t, rental.StatusConfirmed, entity.Status())
		assert.Equal(t, confirmAt, entity.UpdatedAt())

		pickupAt := now.Add(24 * time.Hour)
		require.NoError(t, entity.Pickup(pickupAt))
		assert.Equal(t, rental.StatusActive, entity.Status())
		require.NotNil(t, entity.PickupDate())
		assert.Equal(t, pickupAt, *entity.PickupDate())

		returnAt := now.Add(8 * 24 * time.Hour)
		require.NoError(t, entity.Return(returnAt, false))
		assert.Equal(t, rental.StatusCompleted, entity.Status())
		assert.Equal(t, rental.DepositReleased, entity.DepositStatus())
		require.NotNil(t, entity.ReturnDate())
		assert.Equal(t, returnAt, *entity.ReturnDate())
	})

	t.Run("damage on return forfeits the deposit", func(t *testing.T) {
		entity := newTestRental(t, clock.NewMockClock(now))
		advanceTo(t, entity, rental.StatusActive, now)

		require.NoError(t, entity.Return(now, true))
		assert.Equal(t, rental.StatusCompleted, entity.Status())
		assert.Equal(t, rental.DepositForfeited, entity.DepositStatus())
	})

	t.Run("cancel from pending releases the deposit", func(t *testing.T) {
		entity := newTestRental(t, clock.NewMockClock(now))

		require.NoError(t, entity.Cancel(now, "customer changed plans"))
		assert.Equal(t, rental.StatusCancelled, entity.Status())
		assert.Equal(t, rental.DepositReleased, entity.DepositStatus())
		require.NotNil(t, entity.CancelledReason())
		assert.Equal(t, "customer changed plans", *entity.CancelledReason())
	})

	t.Run("cancel from confirmed is allowed", func(t *testing.T) {
		entity := newTestRental(t, clock.NewMockClock(now))
		advanceTo(t, entity, rental.StatusConfirmed, now)

		require.NoError(t, entity.Cancel(now, ""))
		assert.Equal(t, rental.StatusCancelled, entity.Status())
	})

	t.Run("empty cancel reason falls back to the default", func(t *testing.T) {
		entity := newTestRental(t, clock.NewMockClock(now))

		require.NoError(t, entity.Cancel(now, "   "))
		require.NotNil(t, entity.CancelledReason())
		assert.Equal(t, rental.DefaultCancelReason, *entity.CancelledReason())
	})
}

func TestRentalIllegalTransitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		from          rental.Status
		attempt       func(*rental.Rental) error
		wantRequested rental.Status
	}{
		{"confirm an active rental", rental.StatusActive, func(r *rental.Rental) error { return r.Confirm(now) }, rental.StatusConfirmed},
		{"confirm a completed rental", rental.StatusCompleted, func(r *rental.Rental) error { return r.Confirm(now) }, rental.StatusConfirmed},
		{"confirm a cancelled rental", rental.StatusCancelled, func(r *rental.Rental) error { return r.Confirm(now) }, rental.StatusConfirmed},
		{"pickup before confirmation", rental.StatusPending, func(r *rental.Rental) error { return r.Pickup(now) }, rental.StatusActive},
		{"pickup twice", rental.StatusActive, func(r *rental.Rental) error { return r.Pickup(now) }, rental.StatusActive},
		{"return before pickup", rental.StatusConfirmed, func(r *rental.Rental) error { return r.Return(now, false) }, rental.StatusCompleted},
		{"return twice", rental.StatusCompleted, func(r *rental.Rental) error { return r.Return(now, false) }, rental.StatusCompleted},
		{"cancel an active rental", rental.StatusActive, func(r *rental.Rental) error { return r.Cancel(now, "") }, rental.StatusCancelled},
		{"cancel a completed rental", rental.StatusCompleted, func(r *rental.Rental) error { return r.Cancel(now, "") }, rental.StatusCancelled},
		{"cancel twice", rental.StatusCancelled, func(r *rental.Rental) error { return r.Cancel(now, "") }, rental.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity := newTestRental(t, clock.NewMockClock(now))
			advanceTo(t, entity, tt.from, now)

			err := tt.attempt(entity)
			require.Error(t, err)

			var transitionErr *rental.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, tt.from, transitionErr.From)
			assert.Equal(t, tt.wantRequested, transitionErr.Requested)
		})
	}
}

func TestRentalOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	endDate := date(2026, 3, 17)

	t.Run("active past the end date", func(t *testing.T) {
		entity := newTestRental(t, clock.NewMockClock(now))
		advanceTo(t, entity, rental.StatusActive, now)

		assert.False(t, entity.Overdue(endDate), "the end date itself is not overdue")
		assert.False(t, entity.Overdue(endDate.Add(23*time.Hour)), "still the same calendar day")
		assert.True(t, entity.Overdue(endDate.AddDate(0, 0, 1)))
	})

	t.Run("only active rentals can be overdue", func(t *testing.T) {
		late := endDate.AddDate(0, 0, 5)
		for _, status := range []rental.Status{
			rental.StatusPending,
			rental.StatusConfirmed,
			rental.StatusCompleted,
			rental.StatusCancelled,
		} {
			entity := newTestRental(t, clock.NewMockClock(now))
			advanceTo(t, entity, status, now)
			assert.False(t, entity.Overdue(late), "status %s", status)
		}
	})
}
