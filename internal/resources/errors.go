package resources

import "fmt"

// UnavailableError reports that a resource could not be loaded. Callers treat
// it as a signal to fall back to a cheaper strategy.
type UnavailableError struct {
	Kind  Kind
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("resource %s unavailable: %v", e.Kind, e.Cause)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }
