package commands

import (
	"context"
	"fmt"
	"time"

	"rentworks/internal/domain/catalog"
	"rentworks/internal/domain/rental"
	"rentworks/internal/infra"
	"rentworks/internal/infra/db"
	"rentworks/internal/pkg/clock"
	"rentworks/internal/pkg/errs"
	"rentworks/internal/usecase/queries"
	"rentworks/internal/usecase/shared"

	"github.com/google/uuid"
)

// ConflictError reports that the requested window is occupied. A conflict
// is an expected outcome of booking, carried as a typed error so the
// handler can surface which rentals block the dates.
type ConflictError struct {
	ResourceKey          string
	ConflictingRentalIDs []uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested window on %s conflicts with %d existing rental(s)", e.ResourceKey, len(e.ConflictingRentalIDs))
}

func (e *ConflictError) Is(target error) bool {
	return target == errs.ErrRentalConflict
}

type CreateRentalParams struct {
	EquipmentID   *uuid.UUID
	ProductID     *uuid.UUID
	Accessories   []shared.AccessorySelection
	Period        rental.PricingPeriod
	StartDate     time.Time
	EndDate       time.Time
	DiscountCents int64
	FeeCents      int64
	Note          string
}

type RentalCommands interface {
	CreateRental(ctx context.Context, params CreateRentalParams) (*queries.RentalView, error)
	ConfirmRental(ctx context.Context, id uuid.UUID) (*queries.RentalView, error)
	PickupRental(ctx context.Context, id uuid.UUID) (*queries.RentalView, error)
	ReturnRental(ctx context.Context, id uuid.UUID, damageReported bool) (*queries.RentalView, error)
	CancelRental(ctx context.Context, id uuid.UUID, reason string) (*queries.RentalView, error)
}

type rentalCommandsImpl struct {
	rentalRepo    RentalRepository
	catalogRepo   CatalogRepository
	rentalFactory *rental.Factory
	rentalQueries queries.RentalQueries
	uow           shared.UnitOfWork
	clock         clock.Clock
}

func NewRentalCommands(
	rentalRepo RentalRepository,
	catalogRepo CatalogRepository,
	rentalFactory *rental.Factory,
	rentalQueries queries.RentalQueries,
	uow shared.UnitOfWork,
	clk clock.Clock,
) RentalCommands {
	return &rentalCommandsImpl{
		rentalRepo:    rentalRepo,
		catalogRepo:   catalogRepo,
		rentalFactory: rentalFactory,
		rentalQueries: rentalQueries,
		uow:           uow,
		clock:         clk,
	}
}

func (uc *rentalCommandsImpl) CreateRental(ctx context.Context, params CreateRentalParams) (*queries.RentalView, error) {
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

	card, err := uc.catalogRepo.GetPrimaryRateCard(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	accessories, err := uc.catalogRepo.GetAccessories(ctx, params.Accessories)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrAccessoryNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entity, err := uc.rentalFactory.NewRental(ref, card, accessories, params.Period, dr, discount, fee, params.Note)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRentalInput)
	}

	// Lock, conflict check and insert are one transaction: two concurrent
	// requests for overlapping windows serialize on the advisory lock and
	// the loser sees the winner's row.
	err = uc.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		if lockErr := uc.rentalRepo.LockResource(ctx, tx, ref); lockErr != nil {
			return errs.Mark(lockErr, errs.ErrDatabaseOperationFailed)
		}

		conflicts, findErr := uc.rentalRepo.FindConflictingIDs(ctx, tx, ref, dr, nil)
		if findErr != nil {
			return errs.Mark(findErr, errs.ErrDatabaseOperationFailed)
		}
		if len(conflicts) > 0 {
			return &ConflictError{ResourceKey: ref.Key(), ConflictingRentalIDs: conflicts}
		}

		return uc.rentalRepo.Create(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	return uc.rentalQueries.GetRental(ctx, entity.ID())
}

func (uc *rentalCommandsImpl) ConfirmRental(ctx context.Context, id uuid.UUID) (*queries.RentalView, error) {
	return uc.transition(ctx, id, func(r *rental.Rental, now time.Time) error {
		return r.Confirm(now)
	})
}

func (uc *rentalCommandsImpl) PickupRental(ctx context.Context, id uuid.UUID) (*queries.RentalView, error) {
	return uc.transition(ctx, id, func(r *rental.Rental, now time.Time) error {
		return r.Pickup(now)
	})
}

func (uc *rentalCommandsImpl) ReturnRental(ctx context.Context, id uuid.UUID, damageReported bool) (*queries.RentalView, error) {
	return uc.transition(ctx, id, func(r *rental.Rental, now time.Time) error {
		return r.Return(now, damageReported)
	})
}

func (uc *rentalCommandsImpl) CancelRental(ctx context.Context, id uuid.UUID, reason string) (*queries.RentalView, error) {
	return uc.transition(ctx, id, func(r *rental.Rental, now time.Time) error {
		return r.Cancel(now, reason)
	})
}

// transition applies a guarded status change under a row lock. Only
// per-rental-row atomicity is needed here; no cross-resource coordination.
func (uc *rentalCommandsImpl) transition(ctx context.Context, id uuid.UUID, apply func(r *rental.Rental, now time.Time) error) (*queries.RentalView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		entity, findErr := uc.rentalRepo.FindForUpdate(ctx, tx, id)
		if findErr != nil {
			if infra.IsKind(findErr, infra.KindNotFound) {
				return errs.Mark(findErr, errs.ErrRentalNotFound)
			}
			return errs.Mark(findErr, errs.ErrDatabaseOperationFailed)
		}

		if applyErr := apply(entity, uc.clock.Now()); applyErr != nil {
			return errs.Mark(applyErr, errs.ErrInvalidTransition)
		}

		return uc.rentalRepo.UpdateState(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	return uc.rentalQueries.GetRental(ctx, id)
}
