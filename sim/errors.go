package sim

import "fmt"

// ValidationError reports an unmet precondition: the simulation was never
// started. Callers distinguish it from other failures with errors.As so a
// specific message can be rendered per field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid simulation input: %s: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
