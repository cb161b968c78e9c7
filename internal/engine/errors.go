package engine

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-ats-checker/internal/resources"
)

// InputError reports that an analysis input failed validation.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ResourceUnavailableError reports that an optional resource could not be loaded.
// Strategies recover from it by falling back; it is logged, never returned from Analyze.
type ResourceUnavailableError = resources.UnavailableError

// ComputationError reports an unexpected failure inside an analysis stage.
type ComputationError struct {
	Stage string
	Cause error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("analysis failed in %s: %v", e.Stage, e.Cause)
}

func (e *ComputationError) Unwrap() error { return e.Cause }

// IsInputError reports whether err is or wraps an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
