package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError carries field-level message keys. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field, key string) *ValidationError {
	return (&ValidationError{}).Add(field, key)
}

func (e *ValidationError) Add(field, key string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], key)
	return e
}

func (e *ValidationError) Merge(other *ValidationError) *ValidationError {
	if other == nil {
		return e
	}
	for field, keys := range other.Fields {
		for _, key := range keys {
			e.Add(field, key)
		}
	}
	return e
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns nil when no field failed, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// WrapDB tags a repository failure as ErrDatabaseError and keeps the cause.
func WrapDB(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrDatabaseError, err)
}
