package rental

import "fmt"

// InvalidTransitionError reports a status guard violation. It carries both
// the current and the requested status so callers can surface a precise
// reason instead of a generic failure.
type InvalidTransitionError struct {
	From      Status
	Requested Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: rental is %s, requested %s", e.From, e.Requested)
}

func newInvalidTransition(from, requested Status) error {
	return &InvalidTransitionError{From: from, Requested: requested}
}
