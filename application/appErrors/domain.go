package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthenticated           = errors.New("sign in to continue")
	ErrForbidden                 = errors.New("you are not allowed to perform this action")
	ErrActiveEnrollmentExists    = errors.New("complete your current course before enrolling in another")
	ErrNoApprovedApplication     = errors.New("an approved application for this certification is required before enrolling")
	ErrAlreadyEnrolledInTarget   = errors.New("you are already enrolled in this certification")
	ErrInvalidStatusTransition   = errors.New("status transition not allowed")
	ErrNotFound                  = errors.New("record not found")
	ErrReconciliationUnsupported = errors.New("provider does not expose a status lookup")
)

// ValidationError is bad caller input. It is never retried.
type ValidationError struct {
	Fields []string
	Errs   []error
}

func NewValidationError(errs ...error) *ValidationError {
	return &ValidationError{Errs: errs}
}

// MissingFields builds a ValidationError for required fields left empty.
func MissingFields(fields ...string) *ValidationError {
	errs := make([]error, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, fmt.Errorf("%s is required", f))
	}
	return &ValidationError{Fields: fields, Errs: errs}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// PersistenceError is a local storage failure. Reference and Amount are kept
// for manual reconciliation.
type PersistenceError struct {
	Op        string
	Reference string
	Amount    float64
	Err       error
}

func (e *PersistenceError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("%s failed for reference %s: %v", e.Op, e.Reference, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
