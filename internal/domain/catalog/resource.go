package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceRef     = errors.New("resource reference cannot be empty")
	ErrAmbiguousResourceRef = errors.New("resource reference must name either equipment or a product, not both")
)

// ResourceRef identifies the primary rentable item: either a concrete piece of
// equipment or a product template. Exactly one side is set.
type ResourceRef struct {
	equipmentID *uuid.UUID
	productID   *uuid.UUID
}

func NewEquipmentRef(id uuid.UUID) ResourceRef {
	return ResourceRef{equipmentID: &id}
}

func NewProductRef(id uuid.UUID) ResourceRef {
	return ResourceRef{productID: &id}
}

func NewResourceRef(equipmentID, productID *uuid.UUID) (ResourceRef, error) {
	ref := ResourceRef{equipmentID: equipmentID, productID: productID}
	if err := ref.Validate(); err != nil {
		return ResourceRef{}, err
	}
	return ref, nil
}

func (r ResourceRef) Validate() error {
	switch {
	case r.equipmentID == nil && r.productID == nil:
		return ErrEmptyResourceRef
	case r.equipmentID != nil && r.productID != nil:
		return ErrAmbiguousResourceRef
	}
	return nil
}

func (r ResourceRef) IsEquipment() bool { return r.equipmentID != nil }

func (r ResourceRef) EquipmentID() *uuid.UUID { return r.equipmentID }
func (r ResourceRef) ProductID() *uuid.UUID   { return r.productID }

// ID returns whichever side of the reference is set.
func (r ResourceRef) ID() uuid.UUID {
	if r.equipmentID != nil {
		return *r.equipmentID
	}
	if r.productID != nil {
		return *r.productID
	}
	return uuid.Nil
}

// Key is a stable per-resource string used for advisory locking and logging.
func (r ResourceRef) Key() string {
	if r.IsEquipment() {
		return "equipment:" + r.ID().String()
	}
	return "product:" + r.ID().String()
}

func (r ResourceRef) Equal(other ResourceRef) bool {
	return r.Key() == other.Key()
}
