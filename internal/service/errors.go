package service

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyRegistered = errors.New("email or cpf already registered")
	ErrInvalidToken      = errors.New("confirmation token not found or already used")
)

type ValidationReason string

const (
	ReasonMissingField      ValidationReason = "missing_field"
	ReasonInvalidFormat     ValidationReason = "invalid_format"
	ReasonInvalidIdentifier ValidationReason = "invalid_identifier"
)

// ValidationError is a client input defect: the submission itself is
// wrong and resubmitting the same data will fail the same way.
type ValidationError struct {
	Field  string
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func newValidationError(field string, reason ValidationReason) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
