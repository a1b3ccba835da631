package services

import (
	"errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrUpstream   = errors.New("upstream model failure")
)

// serviceError carries a client-facing message while still matching one of
// the sentinel kinds above through errors.Is.
type serviceError struct {
	kind    error
	message string
	cause   error
}

func (e *serviceError) Error() string {
	return e.message
}

func (e *serviceError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func newValidationError(message string) error {
	return &serviceError{kind: ErrValidation, message: message}
}

func newNotFoundError(message string) error {
	return &serviceError{kind: ErrNotFound, message: message}
}

func newUpstreamError(message string, cause error) error {
	return &serviceError{kind: ErrUpstream, message: message, cause: cause}
}

// notFoundOr maps gorm's missing-row error to ErrNotFound and passes every
// other error through untouched.
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newNotFoundError(message)
	}
	return err
}
