package rental

import (
	"strings"

	"rentworks/internal/domain/catalog"
	"rentworks/internal/pkg/clock"

	"github.com/google/uuid"
)

// Factory assembles a new pending rental: validates the inputs, runs the
// calculator and snapshots the resulting quote onto the entity. Admission
// of the reservation window is the repository's business, not the
// factory's.
type Factory struct {
	Clock      clock.Clock
	Calculator Calculator
}

func NewFactory(clk clock.Clock, calc Calculator) *Factory {
	return &Factory{Clock: clk, Calculator: calc}
}

func (f *Factory) NewRental(
	resource catalog.ResourceRef,
	primary catalog.RateCard,
	accessories []catalog.Accessory,
	period PricingPeriod,
	dr DateRange,
	discount, fee Money,
	note string,
) (*Rental, error) {
	if err := resource.Validate(); err != nil {
		return nil, err
	}

	quote, err := f.Calculator.Quote(primary, accessories, period, dr, discount, fee)
	if err != nil {
		return nil, err
	}

	return newRental(uuid.New(), resource, quote, strings.TrimSpace(note), f.Clock.Now()), nil
}
