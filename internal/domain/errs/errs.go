package errs

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable signals that no classifier was loaded at process
// start. Callers downgrade to heuristic scoring or surface a degraded
// response; the error is never retried mid-request.
var ErrModelUnavailable = errors.New("classifier model is not loaded")

// ValidationError reports malformed or missing caller input. It is always
// the caller's fault and is surfaced as a client-facing rejection.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidation creates a ValidationError with a free-form reason.
func NewValidation(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// MissingField creates a ValidationError for a required field that was
// absent or empty.
func MissingField(field string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("missing required field: %s", field),
	}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IndicatorEvaluationError records an internal failure of a single
// indicator on unexpected input. It is contained at the evaluation site:
// the indicator counts as not triggered and the analysis continues.
type IndicatorEvaluationError struct {
	Indicator string
	Cause     any
}

func (e *IndicatorEvaluationError) Error() string {
	return fmt.Sprintf("indicator %q evaluation failed: %v", e.Indicator, e.Cause)
}
