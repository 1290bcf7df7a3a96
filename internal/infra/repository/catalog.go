package repository

import (
	"context"

	"rentworks/internal/domain/catalog"
	"rentworks/internal/infra"
	"rentworks/internal/infra/db"
	"rentworks/internal/pkg/pgconv"
	"rentworks/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CatalogRepository is a read-only adapter over the catalog tables. The
// rental engine consumes rates and deposits; authoring them belongs to the
// back office, not here.
type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(dbtx db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: dbtx}
}

func (r *CatalogRepository) GetPrimaryRateCard(ctx context.Context, ref catalog.ResourceRef) (catalog.RateCard, error) {
	table := "products"
	if ref.IsEquipment() {
		table = "equipment"
	}
	query := `SELECT weekly_rate_cents, monthly_rate_cents, deposit_cents FROM ` + table + ` WHERE id = $1`

	var weekly, monthly, deposit int64
	err := r.db.QueryRow(ctx, query, ref.ID()).Scan(&weekly, &monthly, &deposit)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return catalog.RateCard{}, infra.WrapRepoErr("rentable resource not found", err, infra.KindNotFound)
		}
		return catalog.RateCard{}, infra.WrapRepoErr("failed to load resource rate card", err)
	}

	card, err := catalog.NewRateCard(weekly, monthly, deposit)
	if err != nil {
		return catalog.RateCard{}, infra.WrapRepoErr("stored rate card is invalid", err)
	}
	return card, nil
}

func (r *CatalogRepository) GetAccessories(ctx context.Context, selections []shared.AccessorySelection) ([]catalog.Accessory, error) {
	if len(selections) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(selections))
	for i, sel := range selections {
		ids[i] = sel.AccessoryID
	}

	const query = `
		SELECT id, name, color, weekly_rate_cents, monthly_rate_cents, deposit_cents
		FROM accessories
		WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load accessories", err)
	}
	defer rows.Close()

	found := make(map[uuid.UUID]catalog.Accessory, len(selections))
	for rows.Next() {
		var (
			id                       uuid.UUID
			name                     string
			color                    pgtype.Text
			weekly, monthly, deposit int64
		)
		if err := rows.Scan(&id, &name, &color, &weekly, &monthly, &deposit); err != nil {
			return nil, infra.WrapRepoErr("failed to scan accessory", err)
		}

		card, err := catalog.NewRateCard(weekly, monthly, deposit)
		if err != nil {
			return nil, infra.WrapRepoErr("stored accessory rate card is invalid", err)
		}
		found[id] = catalog.NewAccessory(id, name, color.String, card)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read accessories", err)
	}

	// Preserve the request order and apply color choices; a missing id is
	// the caller picking an accessory the catalog does not know.
	result := make([]catalog.Accessory, 0, len(selections))
	for _, sel := range selections {
		acc, ok := found[sel.AccessoryID]
		if !ok {
			return nil, infra.WrapRepoErr("accessory not found: "+sel.AccessoryID.String(), nil, infra.KindNotFound)
		}
		if sel.Color != nil {
			acc = acc.WithColor(*sel.Color)
		}
		result = append(result, acc)
	}

	return result, nil
}
