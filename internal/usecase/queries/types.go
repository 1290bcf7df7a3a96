package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read-side views. Overdue is derived at query time from the clock, never
// read from storage.

type AccessoryLineView struct {
	AccessoryID   uuid.UUID
	Name          string
	Color         *string
	RateCents     int64
	DepositCents  int64
	SubtotalCents int64
}

type RentalView struct {
	ID              uuid.UUID
	EquipmentID     *uuid.UUID
	ProductID       *uuid.UUID
	Accessories     []AccessoryLineView
	StartDate       time.Time
	EndDate         time.Time
	PricingPeriod   string
	RateCents       int64
	SubtotalCents   int64
	DiscountCents   int64
	FeeCents        int64
	TotalCents      int64
	DepositCents    int64
	DepositStatus   string
	Status          string
	Overdue         bool
	Note            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PickupDate      *time.Time
	ReturnDate      *time.Time
	CancelledAt     *time.Time
	CancelledReason *string
}

type RentalListItem struct {
	ID            uuid.UUID
	EquipmentID   *uuid.UUID
	ProductID     *uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	PricingPeriod string
	TotalCents    int64
	DepositCents  int64
	Status        string
	Overdue       bool
	CreatedAt     time.Time
}

type RentalFilter struct {
	EquipmentID *uuid.UUID
	ProductID   *uuid.UUID
	Status      *string
}

type AvailabilityResult struct {
	Available            bool
	ConflictingRentalIDs []uuid.UUID
}

type QuoteLineView struct {
	AccessoryID   uuid.UUID
	Name          string
	Color         *string
	RateCents     int64
	DepositCents  int64
	SubtotalCents int64
}

type QuoteView struct {
	StartDate        time.Time
	EndDate          time.Time
	PricingPeriod    string
	Days             int
	Periods          int
	PrimaryRateCents int64
	PrimarySubCents  int64
	Accessories      []QuoteLineView
	SubtotalCents    int64
	DiscountCents    int64
	FeeCents         int64
	DepositCents     int64
	TotalCents       int64
}
