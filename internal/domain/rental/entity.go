package rental

import (
	"errors"
	"strings"
	"time"

	"rentworks/internal/domain/catalog"

	"github.com/google/uuid"
)

var ErrInvalidDepositStatus = errors.New("invalid deposit status")

// DefaultCancelReason is recorded when a cancellation arrives without one.
const DefaultCancelReason = "cancelled by request"

// AccessoryLine is a priced accessory attached to a rental. Rate and
// deposit are snapshots taken at creation time; the selected color is
// informational only.
type AccessoryLine struct {
	accessoryID   uuid.UUID
	name          string
	color         string
	rateCents     Money
	depositCents  Money
	subtotalCents Money
}

func NewAccessoryLine(accessoryID uuid.UUID, name, color string, rate, deposit, subtotal Money) AccessoryLine {
	return AccessoryLine{
		accessoryID:   accessoryID,
		name:          name,
		color:         color,
		rateCents:     rate,
		depositCents:  deposit,
		subtotalCents: subtotal,
	}
}

func (l AccessoryLine) AccessoryID() uuid.UUID { return l.accessoryID }
func (l AccessoryLine) Name() string           { return l.name }
func (l AccessoryLine) Color() string          { return l.color }
func (l AccessoryLine) Rate() Money            { return l.rateCents }
func (l AccessoryLine) Deposit() Money         { return l.depositCents }
func (l AccessoryLine) Subtotal() Money        { return l.subtotalCents }

// Rental is the central entity: one primary item, zero or more accessory
// lines, a reservation window and snapshotted money fields. All mutation
// goes through the transition methods; once the status leaves pending the
// money fields are frozen and only the deposit ledger moves.
type Rental struct {
	id            uuid.UUID
	resource      catalog.ResourceRef
	accessories   []AccessoryLine
	dateRange     DateRange
	period        PricingPeriod
	rateCents     Money
	subtotal      Money
	discount      Money
	fee           Money
	total         Money
	deposit       Money
	depositStatus DepositStatus
	status        Status
	note          string

	createdAt       time.Time
	updatedAt       time.Time
	pickupDate      *time.Time
	returnDate      *time.Time
	cancelledAt     *time.Time
	cancelledReason *string
}

func newRental(
	id uuid.UUID,
	resource catalog.ResourceRef,
	quote PriceQuote,
	note string,
	now time.Time,
) *Rental {
	lines := make([]AccessoryLine, len(quote.AccessoryLines))
	copy(lines, quote.AccessoryLines)
	return &Rental{
		id:            id,
		resource:      resource,
		accessories:   lines,
		dateRange:     quote.Range,
		period:        quote.Period,
		rateCents:     quote.PrimaryRate,
		subtotal:      quote.Subtotal,
		discount:      quote.Discount,
		fee:           quote.Fee,
		total:         quote.Total,
		deposit:       quote.Deposit,
		depositStatus: DepositHeld,
		status:        StatusPending,
		note:          note,
		createdAt:     now,
		updatedAt:     now,
	}
}

// ReconstructRental rebuilds an entity from persistence without running
// creation-time validation.
func ReconstructRental(
	id uuid.UUID,
	resource catalog.ResourceRef,
	accessories []AccessoryLine,
	dateRange DateRange,
	period PricingPeriod,
	rate, subtotal, discount, fee, total, deposit Money,
	depositStatus DepositStatus,
	status Status,
	note string,
	createdAt, updatedAt time.Time,
	pickupDate, returnDate, cancelledAt *time.Time,
	cancelledReason *string,
) *Rental {
	return &Rental{
		id:              id,
		resource:        resource,
		accessories:     accessories,
		dateRange:       dateRange,
		period:          period,
		rateCents:       rate,
		subtotal:        subtotal,
		discount:        discount,
		fee:             fee,
		total:           total,
		deposit:         deposit,
		depositStatus:   depositStatus,
		status:          status,
		note:            note,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		pickupDate:      pickupDate,
		returnDate:      returnDate,
		cancelledAt:     cancelledAt,
		cancelledReason: cancelledReason,
	}
}

// Confirm acknowledges a pending rental. No date or price recheck happens
// here; the window was admitted at creation.
func (r *Rental) Confirm(now time.Time) error {
	if r.status != StatusPending {
		return newInvalidTransition(r.status, StatusConfirmed)
	}
	r.status = StatusConfirmed
	r.updatedAt = now
	return nil
}

// Pickup marks the resource as physically out.
func (r *Rental) Pickup(now time.Time) error {
	if r.status != StatusConfirmed {
		return newInvalidTransition(r.status, StatusActive)
	}
	r.status = StatusActive
	r.pickupDate = &now
	r.updatedAt = now
	return nil
}

// Return completes an active rental and settles the deposit: released on a
// clean return, forfeited when damage was reported. Calling Return twice
// fails; completion is terminal.
func (r *Rental) Return(now time.Time, damageReported bool) error {
	if r.status != StatusActive {
		return newInvalidTransition(r.status, StatusCompleted)
	}
	r.status = StatusCompleted
	r.returnDate = &now
	if damageReported {
		r.depositStatus = DepositForfeited
	} else {
		r.depositStatus = DepositReleased
	}
	r.updatedAt = now
	return nil
}

// Cancel is only reachable from pending or confirmed. Nothing was ever
// collected from an unconfirmed hold, so the deposit is released.
func (r *Rental) Cancel(now time.Time, reason string) error {
	if r.status != StatusPending && r.status != StatusConfirmed {
		return newInvalidTransition(r.status, StatusCancelled)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancelReason
	}
	r.status = StatusCancelled
	r.cancelledAt = &now
	r.cancelledReason = &reason
	r.depositStatus = DepositReleased
	r.updatedAt = now
	return nil
}

// Overdue is a display-time derived flag, never stored: the rental is out
// past its end date and has not been returned.
func (r *Rental) Overdue(now time.Time) bool {
	return r.status == StatusActive && truncateToDay(now).After(r.dateRange.End())
}

func (r *Rental) ID() uuid.UUID                 { return r.id }
func (r *Rental) Resource() catalog.ResourceRef { return r.resource }
func (r *Rental) Accessories() []AccessoryLine  { return r.accessories }
func (r *Rental) Range() DateRange              { return r.dateRange }
func (r *Rental) Period() PricingPeriod         { return r.period }
func (r *Rental) Rate() Money                   { return r.rateCents }
func (r *Rental) Subtotal() Money               { return r.subtotal }
func (r *Rental) Discount() Money               { return r.discount }
func (r *Rental) Fee() Money                    { return r.fee }
func (r *Rental) Total() Money                  { return r.total }
func (r *Rental) Deposit() Money                { return r.deposit }
func (r *Rental) DepositStatus() DepositStatus  { return r.depositStatus }
func (r *Rental) Status() Status                { return r.status }
func (r *Rental) Note() string                  { return r.note }
func (r *Rental) CreatedAt() time.Time          { return r.createdAt }
func (r *Rental) UpdatedAt() time.Time          { return r.updatedAt }
func (r *Rental) PickupDate() *time.Time        { return r.pickupDate }
func (r *Rental) ReturnDate() *time.Time        { return r.returnDate }
func (r *Rental) CancelledAt() *time.Time       { return r.cancelledAt }
func (r *Rental) CancelledReason() *string      { return r.cancelledReason }
