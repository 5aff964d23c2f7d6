package service

import (
	"errors"
	"fmt"
)

var (
	ErrScanNotFound      = errors.New("room scan not found")
	ErrScanExists        = errors.New("room scan already exists")
	ErrPlacementNotFound = errors.New("placement not found")
)

// ValidationError rejected client input; mapped to 400.
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

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// asValidation wraps a domain validation error so handlers can classify it.
func asValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
