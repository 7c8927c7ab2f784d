package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStore      = errors.New("store failure")

	ErrAlreadyCompleted = fmt.Errorf("%w: habit already completed on this date", ErrConflict)
)

// ValidationError names the first input field that failed and the rule it
// broke. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field string
	Rule  string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s failed %s", ErrValidation, err.Field, err.Rule)
}

func (err *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field string, rule string) error {
	return &ValidationError{Field: field, Rule: rule}
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}

// settle passes domain errors through and wraps anything else as a store
// failure.
func settle(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrStore} {
		if errors.Is(err, known) {
			return err
		}
	}
	return storeError(op, err)
}
