package model

import (
	"errors"
	"fmt"
)

// ErrPlayerAbsent is returned for a roster player without any column in the table
var ErrPlayerAbsent = errors.New("player not present in table")

// SchemaError is returned when a category has no mapping for a field
// or a required column is missing in the table.
type SchemaError struct {
	Category string // empty if the error is raised without category context
	Key      string
	Reason   string
}

func (e *SchemaError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "not mapped"
	}
	if e.Category == "" {
		return fmt.Sprintf("schema: %s: %s", e.Key, reason)
	}
	return fmt.Sprintf("schema: %s: %s: %s", e.Category, e.Key, reason)
}

// ValidationError is returned for caller supplied values outside the accepted range
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// DegeneracyError is returned when a numeric stage has nothing left to work on
type DegeneracyError struct {
	Stage  string
	Reason string
}

func (e *DegeneracyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
}

// IsFatal reports whether err indicates a caller or configuration bug.
// Those errors must never be downgraded to an empty result.
func IsFatal(err error) bool {
	var schemaErr *SchemaError
	var validationErr *ValidationError
	return errors.As(err, &schemaErr) || errors.As(err, &validationErr)
}

func MissingColumn(key string) *SchemaError {
	return &SchemaError{Key: key, Reason: "column not found"}
}
