package readstore

import (
	"context"

	"rentworks/internal/domain/catalog"
	"rentworks/internal/domain/rental"
	"rentworks/internal/infra"
	"rentworks/internal/infra/db"
	"rentworks/internal/pkg/pgconv"
	"rentworks/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// RentalReadStore serves the query side: full views with accessory lines
// and compact list items. It never writes.
type RentalReadStore struct {
	db db.DBTX
}

func NewRentalReadStore(dbtx db.DBTX) *RentalReadStore {
	return &RentalReadStore{db: dbtx}
}

func (r *RentalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RentalView, error) {
	const query = `
		SELECT id, equipment_id, product_id,
		       start_date, end_date, pricing_period,
		       rate_cents, subtotal_cents, discount_cents, fee_cents, total_cents,
		       deposit_cents, deposit_status, status, note,
		       created_at, updated_at, pickup_date, return_date, cancelled_at, cancelled_reason
		FROM rentals
		WHERE id = $1`

	var row rentalViewRow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.EquipmentID, &row.ProductID,
		&row.StartDate, &row.EndDate, &row.PricingPeriod,
		&row.RateCents, &row.SubtotalCents, &row.DiscountCents, &row.FeeCents, &row.TotalCents,
		&row.DepositCents, &row.DepositStatus, &row.Status, &row.Note,
		&row.CreatedAt, &row.UpdatedAt, &row.PickupDate, &row.ReturnDate, &row.CancelledAt, &row.CancelledReason,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental by ID", err)
	}

	lines, err := r.findLineViews(ctx, id)
	if err != nil {
		return nil, err
	}

	return toRentalView(row, lines), nil
}

func (r *RentalReadStore) List(ctx context.Context, filter queries.RentalFilter) ([]*queries.RentalListItem, error) {
	const query = `
		SELECT id, equipment_id, product_id, start_date, end_date, pricing_period,
		       total_cents, deposit_cents, status, created_at
		FROM rentals
		WHERE ($1::uuid IS NULL OR equipment_id = $1)
		  AND ($2::uuid IS NULL OR product_id = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query,
		pgconv.UUIDPtrToPgtype(filter.EquipmentID),
		pgconv.UUIDPtrToPgtype(filter.ProductID),
		pgconv.StringPtrToPgtype(filter.Status),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rentals", err)
	}
	defer rows.Close()

	var items []*queries.RentalListItem
	for rows.Next() {
		var (
			item                   queries.RentalListItem
			equipmentID, productID pgtype.UUID
			startDate, endDate     pgtype.Date
			createdAt              pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &equipmentID, &productID, &startDate, &endDate, &item.PricingPeriod,
			&item.TotalCents, &item.DepositCents, &item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental list item", err)
		}
		item.EquipmentID = pgconv.UUIDPtrFromPgtype(equipmentID)
		item.ProductID = pgconv.UUIDPtrFromPgtype(productID)
		item.StartDate = pgconv.DateFromPgtype(startDate)
		item.EndDate = pgconv.DateFromPgtype(endDate)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rental list", err)
	}

	return items, nil
}

// ConflictingIDs answers availability previews outside any transaction.
// The authoritative check runs on the write side under the advisory lock.
func (r *RentalReadStore) ConflictingIDs(ctx context.Context, ref catalog.ResourceRef, dr rental.DateRange, excludeID *uuid.UUID) ([]uuid.UUID, error) {
	column := "product_id"
	if ref.IsEquipment() {
		column = "equipment_id"
	}
	query := `
		SELECT id FROM rentals
		WHERE ` + column + ` = $1
		  AND status = ANY($2)
		  AND start_date <= $3
		  AND end_date >= $4
		  AND ($5::uuid IS NULL OR id <> $5)
		ORDER BY start_date, id`

	statuses := rental.OccupyingStatuses()
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = s.String()
	}

	rows, err := r.db.Query(ctx, query,
		ref.ID(),
		statusStrings,
		pgconv.DateToPgtype(dr.End()),
		pgconv.DateToPgtype(dr.Start()),
		pgconv.UUIDPtrToPgtype(excludeID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query conflicting rentals", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan conflicting rental id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read conflicting rentals", err)
	}

	return ids, nil
}

type rentalViewRow struct {
	ID              uuid.UUID
	EquipmentID     pgtype.UUID
	ProductID       pgtype.UUID
	StartDate       pgtype.Date
	EndDate         pgtype.Date
	PricingPeriod   string
	RateCents       int64
	SubtotalCents   int64
	DiscountCents   int64
	FeeCents        int64
	TotalCents      int64
	DepositCents    int64
	DepositStatus   string
	Status          string
	Note            string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
	PickupDate      pgtype.Timestamptz
	ReturnDate      pgtype.Timestamptz
	CancelledAt     pgtype.Timestamptz
	CancelledReason pgtype.Text
}

func (r *RentalReadStore) findLineViews(ctx context.Context, rentalID uuid.UUID) ([]queries.AccessoryLineView, error) {
	const query = `
		SELECT accessory_id, name, color, rate_cents, deposit_cents, subtotal_cents
		FROM rental_accessories
		WHERE rental_id = $1
		ORDER BY accessory_id`

	rows, err := r.db.Query(ctx, query, rentalID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query rental accessory lines", err)
	}
	defer rows.Close()

	var lines []queries.AccessoryLineView
	for rows.Next() {
		var (
			line  queries.AccessoryLineView
			color string
		)
		if err := rows.Scan(&line.AccessoryID, &line.Name, &color, &line.RateCents, &line.DepositCents, &line.SubtotalCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental accessory line", err)
		}
		if color != "" {
			line.Color = &color
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rental accessory lines", err)
	}

	return lines, nil
}

func toRentalView(row rentalViewRow, lines []queries.AccessoryLineView) *queries.RentalView {
	var note *string
	if row.Note != "" {
		note = &row.Note
	}

	return &queries.RentalView{
		ID:              row.ID,
		EquipmentID:     pgconv.UUIDPtrFromPgtype(row.EquipmentID),
		ProductID:       pgconv.UUIDPtrFromPgtype(row.ProductID),
		Accessories:     lines,
		StartDate:       pgconv.DateFromPgtype(row.StartDate),
		EndDate:         pgconv.DateFromPgtype(row.EndDate),
		PricingPeriod:   row.PricingPeriod,
		RateCents:       row.RateCents,
		SubtotalCents:   row.SubtotalCents,
		DiscountCents:   row.DiscountCents,
		FeeCents:        row.FeeCents,
		TotalCents:      row.TotalCents,
		DepositCents:    row.DepositCents,
		DepositStatus:   row.DepositStatus,
		Status:          row.Status,
		Note:            note,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
		PickupDate:      pgconv.TimePtrFromPgtype(row.PickupDate),
		ReturnDate:      pgconv.TimePtrFromPgtype(row.ReturnDate),
		CancelledAt:     pgconv.TimePtrFromPgtype(row.CancelledAt),
		CancelledReason: pgconv.StringPtrFromPgtype(row.CancelledReason),
	}
}
