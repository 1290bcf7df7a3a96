package response

import (
	"time"

	"rentworks/internal/usecase/queries"

	"github.com/google/uuid"
)

type AccessoryLineResponse struct {
	AccessoryID   uuid.UUID `json:"accessoryId"`
	Name          string    `json:"name"`
	Color         *string   `json:"color,omitempty"`
	RateCents     int64     `json:"rateCents"`
	DepositCents  int64     `json:"depositCents"`
	SubtotalCents int64     `json:"subtotalCents"`
}

type RentalResponse struct {
	ID              uuid.UUID               `json:"id"`
	EquipmentID     *uuid.UUID              `json:"equipmentId,omitempty"`
	ProductID       *uuid.UUID              `json:"productId,omitempty"`
	Accessories     []AccessoryLineResponse `json:"accessories"`
	StartDate       string                  `json:"startDate"`
	EndDate         string                  `json:"endDate"`
	PricingPeriod   string                  `json:"pricingPeriod"`
	RateCents       int64                   `json:"rateCents"`
	SubtotalCents   int64                   `json:"subtotalCents"`
	DiscountCents   int64                   `json:"discountCents"`
	FeeCents        int64                   `json:"feeCents"`
	TotalCents      int64                   `json:"totalCents"`
	DepositCents    int64                   `json:"depositCents"`
	DepositStatus   string                  `json:"depositStatus"`
	Status          string                  `json:"status"`
	Overdue         bool                    `json:"overdue"`
	Note            *string                 `json:"note,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
	PickupDate      *time.Time              `json:"pickupDate,omitempty"`
	ReturnDate      *time.Time              `json:"returnDate,omitempty"`
	CancelledAt     *time.Time              `json:"cancelledAt,omitempty"`
	CancelledReason *string                 `json:"cancelledReason,omitempty"`
}

type RentalListResponse struct {
	ID            uuid.UUID  `json:"id"`
	EquipmentID   *uuid.UUID `json:"equipmentId,omitempty"`
	ProductID     *uuid.UUID `json:"productId,omitempty"`
	StartDate     string     `json:"startDate"`
	EndDate       string     `json:"endDate"`
	PricingPeriod string     `json:"pricingPeriod"`
	TotalCents    int64      `json:"totalCents"`
	DepositCents  int64      `json:"depositCents"`
	Status        string     `json:"status"`
	Overdue       bool       `json:"overdue"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type QuoteLineResponse struct {
	AccessoryID   uuid.UUID `json:"accessoryId"`
	Name          string    `json:"name"`
	Color         *string   `json:"color,omitempty"`
	RateCents     int64     `json:"rateCents"`
	DepositCents  int64     `json:"depositCents"`
	SubtotalCents int64     `json:"subtotalCents"`
}

type QuoteResponse struct {
	StartDate        string              `json:"startDate"`
	EndDate          string              `json:"endDate"`
	PricingPeriod    string              `json:"pricingPeriod"`
	Days             int                 `json:"days"`
	Periods          int                 `json:"periods"`
	PrimaryRateCents int64               `json:"primaryRateCents"`
	PrimarySubCents  int64               `json:"primarySubtotalCents"`
	Accessories      []QuoteLineResponse `json:"accessories"`
	SubtotalCents    int64               `json:"subtotalCents"`
	DiscountCents    int64               `json:"discountCents"`
	FeeCents         int64               `json:"feeCents"`
	DepositCents     int64               `json:"depositCents"`
	TotalCents       int64               `json:"totalCents"`
}

type AvailabilityResponse struct {
	Available            bool        `json:"available"`
	ConflictingRentalIDs []uuid.UUID `json:"conflictingRentalIds"`
}

func FromRentalView(view *queries.RentalView) *RentalResponse {
	accessories := make([]AccessoryLineResponse, len(view.Accessories))
	for i, line := range view.Accessories {
		accessories[i] = AccessoryLineResponse{
			AccessoryID:   line.AccessoryID,
			Name:          line.Name,
			Color:         line.Color,
			RateCents:     line.RateCents,
			DepositCents:  line.DepositCents,
			SubtotalCents: line.SubtotalCents,
		}
	}

	return &RentalResponse{
		ID:              view.ID,
		EquipmentID:     view.EquipmentID,
		ProductID:       view.ProductID,
		Accessories:     accessories,
		StartDate:       view.StartDate.Format(time.DateOnly),
		EndDate:         view.EndDate.Format(time.DateOnly),
		PricingPeriod:   view.PricingPeriod,
		RateCents:       view.RateCents,
		SubtotalCents:   view.SubtotalCents,
		DiscountCents:   view.DiscountCents,
		FeeCents:        view.FeeCents,
		TotalCents:      view.TotalCents,
		DepositCents:    view.DepositCents,
		DepositStatus:   view.DepositStatus,
		Status:          view.Status,
		Overdue:         view.Overdue,
		Note:            view.Note,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
		PickupDate:      view.PickupDate,
		ReturnDate:      view.ReturnDate,
		CancelledAt:     view.CancelledAt,
		CancelledReason: view.CancelledReason,
	}
}

func FromRentalListItem(item *queries.RentalListItem) *RentalListResponse {
	return &RentalListResponse{
		ID:            item.ID,
		EquipmentID:   item.EquipmentID,
		ProductID:     item.ProductID,
		StartDate:     item.StartDate.Format(time.DateOnly),
		EndDate:       item.EndDate.Format(time.DateOnly),
		PricingPeriod: item.PricingPeriod,
		TotalCents:    item.TotalCents,
		DepositCents:  item.DepositCents,
		Status:        item.Status,
		Overdue:       item.Overdue,
		CreatedAt:     item.CreatedAt,
	}
}

func FromQuoteView(view *queries.QuoteView) *QuoteResponse {
	lines := make([]QuoteLineResponse, len(view.Accessories))
	for i, line := range view.Accessories {
		lines[i] = QuoteLineResponse{
			AccessoryID:   line.AccessoryID,
			Name:          line.Name,
			Color:         line.Color,
			RateCents:     line.RateCents,
			DepositCents:  line.DepositCents,
			SubtotalCents: line.SubtotalCents,
		}
	}

	return &QuoteResponse{
		StartDate:        view.StartDate.Format(time.DateOnly),
		EndDate:          view.EndDate.Format(time.DateOnly),
		PricingPeriod:    view.PricingPeriod,
		Days:             view.Days,
		Periods:          view.Periods,
		PrimaryRateCents: view.PrimaryRateCents,
		PrimarySubCents:  view.PrimarySubCents,
		Accessories:      lines,
		SubtotalCents:    view.SubtotalCents,
		DiscountCents:    view.DiscountCents,
		FeeCents:         view.FeeCents,
		DepositCents:     view.DepositCents,
		TotalCents:       view.TotalCents,
	}
}

func FromAvailabilityResult(result *queries.AvailabilityResult) *AvailabilityResponse {
	ids := result.ConflictingRentalIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return &AvailabilityResponse{
		Available:            result.Available,
		ConflictingRentalIDs: ids,
	}
}
