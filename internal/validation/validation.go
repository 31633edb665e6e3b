package validation

import "errors"

type ValidationFailedError struct {
	reason string
}

func NewValidationFailedError(reason string) error {
	return &ValidationFailedError{reason: reason}
}

func (e *ValidationFailedError) Error() string {
	return e.reason
}

func IsValidationFailed(err error) bool {
	target := new(ValidationFailedError)
	return errors.As(err, &target)
}
