package repository

import (
	"context"

	"rentworks/internal/domain/catalog"
	"rentworks/internal/domain/rental"
	"rentworks/internal/infra"
	"rentworks/internal/infra/db"
	"rentworks/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// RentalRepository is the write side of rental persistence. The create
// path expects the caller to hold the per-resource advisory lock acquired
// via LockResource within the same transaction.
type RentalRepository struct{}

func NewRentalRepository() *RentalRepository {
	return &RentalRepository{}
}

// LockResource serializes concurrent bookings of the same resource for the
// remainder of the transaction.
func (r *RentalRepository) LockResource(ctx context.Context, tx db.DBTX, ref catalog.ResourceRef) error {
	const query = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

	if _, err := tx.Exec(ctx, query, ref.Key()); err != nil {
		return infra.WrapRepoErr("failed to acquire resource lock", err)
	}
	return nil
}

func (r *RentalRepository) FindConflictingIDs(ctx context.Context, dbtx db.DBTX, ref catalog.ResourceRef, dr rental.DateRange, excludeID *uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM rentals
		WHERE ` + resourceColumn(ref) + ` = $1
		  AND status = ANY($2)
		  AND start_date <= $3
		  AND end_date >= $4
		  AND ($5::uuid IS NULL OR id <> $5)
		ORDER BY start_date, id`

	rows, err := dbtx.Query(ctx, query,
		ref.ID(),
		occupyingStatusStrings(),
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

func (r *RentalRepository) Create(ctx context.Context, tx db.DBTX, entity *rental.Rental) error {
	const insertRental = `
		INSERT INTO rentals (
			id, equipment_id, product_id,
			start_date, end_date, pricing_period,
			rate_cents, subtotal_cents, discount_cents, fee_cents, total_cents,
			deposit_cents, deposit_status, status, note,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	ref := entity.Resource()
	_, err := tx.Exec(ctx, insertRental,
		entity.ID(),
		pgconv.UUIDPtrToPgtype(ref.EquipmentID()),
		pgconv.UUIDPtrToPgtype(ref.ProductID()),
		pgconv.DateToPgtype(entity.Range().Start()),
		pgconv.DateToPgtype(entity.Range().End()),
		entity.Period().String(),
		entity.Rate().Cents(),
		entity.Subtotal().Cents(),
		entity.Discount().Cents(),
		entity.Fee().Cents(),
		entity.Total().Cents(),
		entity.Deposit().Cents(),
		entity.DepositStatus().String(),
		entity.Status().String(),
		entity.Note(),
		pgconv.TimeToPgtype(entity.CreatedAt()),
		pgconv.TimeToPgtype(entity.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert rental", err)
	}

	const insertLine = `
		INSERT INTO rental_accessories (
			rental_id, accessory_id, name, color, rate_cents, deposit_cents, subtotal_cents
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, line := range entity.Accessories() {
		_, err := tx.Exec(ctx, insertLine,
			entity.ID(),
			line.AccessoryID(),
			line.Name(),
			line.Color(),
			line.Rate().Cents(),
			line.Deposit().Cents(),
			line.Subtotal().Cents(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert rental accessory line", err)
		}
	}

	return nil
}

func (r *RentalRepository) FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*rental.Rental, error) {
	const query = `
		SELECT id, equipment_id, product_id,
		       start_date, end_date, pricing_period,
		       rate_cents, subtotal_cents, discount_cents, fee_cents, total_cents,
		       deposit_cents, deposit_status, status, note,
		       created_at, updated_at, pickup_date, return_date, cancelled_at, cancelled_reason
		FROM rentals
		WHERE id = $1
		FOR UPDATE`

	var row rentalRow
	err := tx.QueryRow(ctx, query, id).Scan(
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
		return nil, infra.WrapRepoErr("failed to find rental for update", err)
	}

	lines, err := r.findLines(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	return toRentalEntity(row, lines)
}

func (r *RentalRepository) UpdateState(ctx context.Context, tx db.DBTX, entity *rental.Rental) error {
	const query = `
		UPDATE rentals
		SET status = $2,
		    deposit_status = $3,
		    pickup_date = $4,
		    return_date = $5,
		    cancelled_at = $6,
		    cancelled_reason = $7,
		    updated_at = $8
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		entity.ID(),
		entity.Status().String(),
		entity.DepositStatus().String(),
		pgconv.TimePtrToPgtype(entity.PickupDate()),
		pgconv.TimePtrToPgtype(entity.ReturnDate()),
		pgconv.TimePtrToPgtype(entity.CancelledAt()),
		pgconv.StringPtrToPgtype(entity.CancelledReason()),
		pgconv.TimeToPgtype(entity.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update rental state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rental vanished during update", nil, infra.KindNotFound)
	}

	return nil
}

type rentalRow struct {
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

type accessoryLineRow struct {
	AccessoryID   uuid.UUID
	Name          string
	Color         string
	RateCents     int64
	DepositCents  int64
	SubtotalCents int64
}

func (r *RentalRepository) findLines(ctx context.Context, dbtx db.DBTX, rentalID uuid.UUID) ([]accessoryLineRow, error) {
	const query = `
		SELECT accessory_id, name, color, rate_cents, deposit_cents, subtotal_cents
		FROM rental_accessories
		WHERE rental_id = $1
		ORDER BY accessory_id`

	rows, err := dbtx.Query(ctx, query, rentalID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query rental accessory lines", err)
	}
	defer rows.Close()

	var lines []accessoryLineRow
	for rows.Next() {
		var line accessoryLineRow
		if err := rows.Scan(&line.AccessoryID, &line.Name, &line.Color, &line.RateCents, &line.DepositCents, &line.SubtotalCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental accessory line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rental accessory lines", err)
	}

	return lines, nil
}

func resourceColumn(ref catalog.ResourceRef) string {
	if ref.IsEquipment() {
		return "equipment_id"
	}
	return "product_id"
}

func occupyingStatusStrings() []string {
	statuses := rental.OccupyingStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

func toRentalEntity(row rentalRow, lineRows []accessoryLineRow) (*rental.Rental, error) {
	ref, err := catalog.NewResourceRef(pgconv.UUIDPtrFromPgtype(row.EquipmentID), pgconv.UUIDPtrFromPgtype(row.ProductID))
	if err != nil {
		return nil, infra.WrapRepoErr("stored rental has invalid resource reference", err)
	}

	dr, err := rental.NewDateRange(pgconv.DateFromPgtype(row.StartDate), pgconv.DateFromPgtype(row.EndDate))
	if err != nil {
		return nil, infra.WrapRepoErr("stored rental has invalid date range", err)
	}

	lines := make([]rental.AccessoryLine, len(lineRows))
	for i, lr := range lineRows {
		lines[i] = rental.NewAccessoryLine(
			lr.AccessoryID, lr.Name, lr.Color,
			rental.MustMoney(lr.RateCents),
			rental.MustMoney(lr.DepositCents),
			rental.MustMoney(lr.SubtotalCents),
		)
	}

	return rental.ReconstructRental(
		row.ID,
		ref,
		lines,
		dr,
		rental.PricingPeriod(row.PricingPeriod),
		rental.MustMoney(row.RateCents),
		rental.MustMoney(row.SubtotalCents),
		rental.MustMoney(row.DiscountCents),
		rental.MustMoney(row.FeeCents),
		rental.MustMoney(row.TotalCents),
		rental.MustMoney(row.DepositCents),
		rental.DepositStatus(row.DepositStatus),
		rental.Status(row.Status),
		row.Note,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
		pgconv.TimePtrFromPgtype(row.PickupDate),
		pgconv.TimePtrFromPgtype(row.ReturnDate),
		pgconv.TimePtrFromPgtype(row.CancelledAt),
		pgconv.StringPtrFromPgtype(row.CancelledReason),
	), nil
}
