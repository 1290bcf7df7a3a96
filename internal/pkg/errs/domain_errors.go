package errs

import "errors"

// Sentinel errors shared across usecase layers. Handlers map these to HTTP
// statuses; infra errors get marked with them so errors.Is works end to end.
var (
	// Catalog errors
	ErrResourceNotFound  = errors.New("resource not found")
	ErrAccessoryNotFound = errors.New("accessory not found")

	// Rental errors
	ErrRentalNotFound     = errors.New("rental not found")
	ErrRentalConflict     = errors.New("rental window conflict")
	ErrInvalidTransition  = errors.New("invalid rental transition")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidRentalInput = errors.New("invalid rental input")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
