package commands

import (
	"context"

	"rentworks/internal/domain/catalog"
	"rentworks/internal/domain/rental"
	"rentworks/internal/infra/db"
	"rentworks/internal/usecase/shared"

	"github.com/google/uuid"
)

// RentalRepository is the write-side port. Create-path methods take a
// transaction so that lock, conflict check and insert form one atomic
// unit; two concurrent creations of overlapping windows must not both
// succeed.
type RentalRepository interface {
	LockResource(ctx context.Context, tx db.DBTX, ref catalog.ResourceRef) error
	FindConflictingIDs(ctx context.Context, dbtx db.DBTX, ref catalog.ResourceRef, dr rental.DateRange, excludeID *uuid.UUID) ([]uuid.UUID, error)
	Create(ctx context.Context, tx db.DBTX, r *rental.Rental) error
	FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*rental.Rental, error)
	UpdateState(ctx context.Context, tx db.DBTX, r *rental.Rental) error
}

// CatalogRepository is the read-only adapter over the catalog: rentals
// consume rates and deposits, never mutate them.
type CatalogRepository interface {
	GetPrimaryRateCard(ctx context.Context, ref catalog.ResourceRef) (catalog.RateCard, error)
	GetAccessories(ctx context.Context, selections []shared.AccessorySelection) ([]catalog.Accessory, error)
}
