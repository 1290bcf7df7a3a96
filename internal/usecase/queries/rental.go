package queries

import (
	"context"
	"time"

	"rentworks/internal/domain/catalog"
	"rentworks/internal/domain/rental"
	"rentworks/internal/infra"
	"rentworks/internal/pkg/clock"
	"rentworks/internal/pkg/errs"
	"rentworks/internal/usecase/shared"

	"github.com/google/uuid"
)

type RentalReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
	List(ctx context.Context, filter RentalFilter) ([]*RentalListItem, error)
	ConflictingIDs(ctx context.Context, ref catalog.ResourceRef, dr rental.DateRange, excludeID *uuid.UUID) ([]uuid.UUID, error)
}

type CatalogReadStore interface {
	GetPrimaryRateCard(ctx context.Context, ref catalog.ResourceRef) (catalog.RateCard, error)
	GetAccessories(ctx context.Context, selections []shared.AccessorySelection) ([]catalog.Accessory, error)
}

type AvailabilityParams struct {
	EquipmentID     *uuid.UUID
	ProductID       *uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	ExcludeRentalID *uuid.UUID
}

type QuoteParams struct {
	EquipmentID   *uuid.UUID
	ProductID     *uuid.UUID
	Accessories   []shared.AccessorySelection
	Period        rental.PricingPeriod
	StartDate     time.Time
	EndDate       time.Time
	DiscountCents int64
	FeeCents      int64
}

type RentalQueries interface {
	GetRental(ctx context.Context, id uuid.UUID) (*RentalView, error)
	ListRentals(ctx context.Context, filter RentalFilter) ([]*RentalListItem, error)
	CheckAvailability(ctx context.Context, params AvailabilityParams) (*AvailabilityResult, error)
	PreviewQuote(ctx context.Context, params QuoteParams) (*QuoteView, error)
}

type rentalQueriesImpl struct {
	rentalStore  RentalReadStore
	catalogStore CatalogReadStore
	calculator   rental.Calculator
	clock        clock.Clock
}

func NewRentalQueries(
	rentalStore RentalReadStore,
	catalogStore CatalogReadStore,
	calculator rental.Calculator,
	clk clock.Clock,
) RentalQueries {
	return &rentalQueriesImpl{
		rentalStore:  rentalStore,
		catalogStore: catalogStore,
		calculator:   calculator,
		clock:        clk,
	}
}

func (q *rentalQueriesImpl) GetRental(ctx context.Context, id uuid.UUID) (*RentalView, error) {
	view, err := q.rentalStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRentalNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view.Overdue = isOverdue(view.Status, view.EndDate, q.clock.Now())
	return view, nil
}

func (q *rentalQueriesImpl) ListRentals(ctx context.Context, filter RentalFilter) ([]*RentalListItem, error) {
	items, err := q.rentalStore.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := q.clock.Now()
	for _, item := range items {
		item.Overdue = isOverdue(item.Status, item.EndDate, now)
	}
	return items, nil
}

// CheckAvailability is a preview: conflict is a normal answer here, never
// an error. The create path re-runs this inside its own transaction.
func (q *rentalQueriesImpl) CheckAvailability(ctx context.Context, params AvailabilityParams) (*AvailabilityResult, error) {
	ref, err := catalog.NewResourceRef(params.EquipmentID, params.ProductID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRentalInput)
	}

	dr, err := rental.NewDateRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	ids, err := q.rentalStore.ConflictingIDs(ctx, ref, dr, params.ExcludeRentalID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &AvailabilityResult{
		Available:            len(ids) == 0,
		ConflictingRentalIDs: ids,
	}, nil
}

// PreviewQuote prices a bundle without persisting anything; safe to call
// repeatedly from the booking UI.
func (q *rentalQueriesImpl) PreviewQuote(ctx context.Context, params QuoteParams) (*QuoteView, error) {
	ref, err := catalog.NewResourceRef(params.EquipmentID, params.ProductID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRentalInput)
	}

	dr, err := rental.NewDateRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	discount, err := rental.NewMoney(params.DiscountCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRentalInput)
	}
	fee, err := rental.NewMoney(params.FeeCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRentalInput)
	}

	card, err := q.catalogStore.GetPrimaryRateCard(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	accessories, err := q.catalogStore.GetAccessories(ctx, params.Accessories)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrAccessoryNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	quote, err := q.calculator.Quote(card, accessories, params.Period, dr, discount, fee)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRentalInput)
	}

	return toQuoteView(quote), nil
}

func toQuoteView(quote rental.PriceQuote) *QuoteView {
	lines := make([]QuoteLineView, len(quote.AccessoryLines))
	for i, line := range quote.AccessoryLines {
		lines[i] = QuoteLineView{
			AccessoryID:   line.AccessoryID(),
			Name:          line.Name(),
			Color:         optionalString(line.Color()),
			RateCents:     line.Rate().Cents(),
			DepositCents:  line.Deposit().Cents(),
			SubtotalCents: line.Subtotal().Cents(),
		}
	}

	return &QuoteView{
		StartDate:        quote.Range.Start(),
		EndDate:          quote.Range.End(),
		PricingPeriod:    quote.Period.String(),
		Days:             quote.Days,
		Periods:          quote.Periods,
		PrimaryRateCents: quote.PrimaryRate.Cents(),
		PrimarySubCents:  quote.PrimarySub.Cents(),
		Accessories:      lines,
		SubtotalCents:    quote.Subtotal.Cents(),
		DiscountCents:    quote.Discount.Cents(),
		FeeCents:         quote.Fee.Cents(),
		DepositCents:     quote.Deposit.Cents(),
		TotalCents:       quote.Total.Cents(),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isOverdue(status string, endDate, now time.Time) bool {
	return status == rental.StatusActive.String() && now.UTC().Truncate(24*time.Hour).After(endDate)
}
