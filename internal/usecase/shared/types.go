package shared

import "github.com/google/uuid"

// AccessorySelection is a requested accessory with an optional color
// choice. The color is informational and has no pricing effect. Shared by
// the create command and the quote preview query.
type AccessorySelection struct {
	AccessoryID uuid.UUID
	Color       *string
}
