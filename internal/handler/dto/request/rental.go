package request

import (
	"errors"
	"strings"
	"time"

	"rentworks/internal/domain/rental"
	"rentworks/internal/usecase/commands"
	"rentworks/internal/usecase/queries"
	"rentworks/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBadDate = errors.New("dates must be YYYY-MM-DD")
	ErrBadUUID = errors.New("invalid uuid")
)

type AccessorySelectionRequest struct {
	AccessoryID uuid.UUID `json:"accessory_id" binding:"required"`
	Color       *string   `json:"color,omitempty"`
}

type CreateRentalRequest struct {
	EquipmentID   *uuid.UUID                  `json:"equipment_id,omitempty"`
	ProductID     *uuid.UUID                  `json:"product_id,omitempty"`
	Accessories   []AccessorySelectionRequest `json:"accessories,omitempty"`
	PricingPeriod string                      `json:"pricing_period" binding:"required,oneof=weekly monthly"`
	StartDate     string                      `json:"start_date" binding:"required"`
	EndDate       string                      `json:"end_date" binding:"required"`
	DiscountCents int64                       `json:"discount_cents" binding:"omitempty,min=0"`
	FeeCents      int64                       `json:"fee_cents" binding:"omitempty,min=0"`
	Note          *string                     `json:"note,omitempty"`
}

func (r CreateRentalRequest) ToParams() (commands.CreateRentalParams, error) {
	start, end, err := parseDates(r.StartDate, r.EndDate)
	if err != nil {
		return commands.CreateRentalParams{}, err
	}

	note := ""
	if r.Note != nil {
		note = strings.TrimSpace(*r.Note)
	}

	return commands.CreateRentalParams{
		EquipmentID:   r.EquipmentID,
		ProductID:     r.ProductID,
		Accessories:   toSelections(r.Accessories),
		Period:        rental.PricingPeriod(r.PricingPeriod),
		StartDate:     start,
		EndDate:       end,
		DiscountCents: r.DiscountCents,
		FeeCents:      r.FeeCents,
		Note:          note,
	}, nil
}

type CancelRentalRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r CancelRentalRequest) GetReason() string {
	if r.Reason == nil {
		return ""
	}
	return strings.TrimSpace(*r.Reason)
}

type ReturnRentalRequest struct {
	DamageReported bool `json:"damage_reported"`
}

// QuoteQuery is bound from URL query parameters; ids arrive as strings and
// are parsed here so a malformed id is a 400, not a binding panic.
type QuoteQuery struct {
	EquipmentID   string   `form:"equipment_id"`
	ProductID     string   `form:"product_id"`
	AccessoryIDs  []string `form:"accessory_id"`
	PricingPeriod string   `form:"pricing_period" binding:"required,oneof=weekly monthly"`
	StartDate     string   `form:"start_date" binding:"required"`
	EndDate       string   `form:"end_date" binding:"required"`
	DiscountCents int64    `form:"discount_cents" binding:"omitempty,min=0"`
	FeeCents      int64    `form:"fee_cents" binding:"omitempty,min=0"`
}

func (r QuoteQuery) ToParams() (queries.QuoteParams, error) {
	equipmentID, err := parseOptionalUUID(r.EquipmentID)
	if err != nil {
		return queries.QuoteParams{}, err
	}
	productID, err := parseOptionalUUID(r.ProductID)
	if err != nil {
		return queries.QuoteParams{}, err
	}

	start, end, err := parseDates(r.StartDate, r.EndDate)
	if err != nil {
		return queries.QuoteParams{}, err
	}

	selections := make([]shared.AccessorySelection, 0, len(r.AccessoryIDs))
	for _, raw := range r.AccessoryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return queries.QuoteParams{}, ErrBadUUID
		}
		selections = append(selections, shared.AccessorySelection{AccessoryID: id})
	}

	return queries.QuoteParams{
		EquipmentID:   equipmentID,
		ProductID:     productID,
		Accessories:   selections,
		Period:        rental.PricingPeriod(r.PricingPeriod),
		StartDate:     start,
		EndDate:       end,
		DiscountCents: r.DiscountCents,
		FeeCents:      r.FeeCents,
	}, nil
}

type AvailabilityQuery struct {
	EquipmentID     string `form:"equipment_id"`
	ProductID       string `form:"product_id"`
	StartDate       string `form:"start_date" binding:"required"`
	EndDate         string `form:"end_date" binding:"required"`
	ExcludeRentalID string `form:"exclude_rental_id"`
}

func (r AvailabilityQuery) ToParams() (queries.AvailabilityParams, error) {
	equipmentID, err := parseOptionalUUID(r.EquipmentID)
	if err != nil {
		return queries.AvailabilityParams{}, err
	}
	productID, err := parseOptionalUUID(r.ProductID)
	if err != nil {
		return queries.AvailabilityParams{}, err
	}
	excludeID, err := parseOptionalUUID(r.ExcludeRentalID)
	if err != nil {
		return queries.AvailabilityParams{}, err
	}

	start, end, err := parseDates(r.StartDate, r.EndDate)
	if err != nil {
		return queries.AvailabilityParams{}, err
	}

	return queries.AvailabilityParams{
		EquipmentID:     equipmentID,
		ProductID:       productID,
		StartDate:       start,
		EndDate:         end,
		ExcludeRentalID: excludeID,
	}, nil
}

type ListRentalsQuery struct {
	EquipmentID string `form:"equipment_id"`
	ProductID   string `form:"product_id"`
	Status      string `form:"status"`
}

func (r ListRentalsQuery) ToFilter() (queries.RentalFilter, error) {
	equipmentID, err := parseOptionalUUID(r.EquipmentID)
	if err != nil {
		return queries.RentalFilter{}, err
	}
	productID, err := parseOptionalUUID(r.ProductID)
	if err != nil {
		return queries.RentalFilter{}, err
	}

	var status *string
	if trimmed := strings.TrimSpace(r.Status); trimmed != "" {
		status = &trimmed
	}

	return queries.RentalFilter{
		EquipmentID: equipmentID,
		ProductID:   productID,
		Status:      status,
	}, nil
}

func toSelections(reqs []AccessorySelectionRequest) []shared.AccessorySelection {
	if len(reqs) == 0 {
		return nil
	}
	selections := make([]shared.AccessorySelection, len(reqs))
	for i, req := range reqs {
		selections[i] = shared.AccessorySelection{AccessoryID: req.AccessoryID, Color: req.Color}
	}
	return selections
}

func parseDates(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDate
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDate
	}
	return s, e, nil
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrBadUUID
	}
	return &id, nil
}
