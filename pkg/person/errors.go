package person

import "errors"

// ErrValidation matches any *ValidationError with errors.Is
var ErrValidation = errors.New("validation failed")

// ValidationError reports a field that breaks the Person rules
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
