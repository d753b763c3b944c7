// Package errors provides shared error types for the World Bank data server.
package errors

import (
	"fmt"
)

// NotFoundError indicates a country or indicator yielded no matching data.
type NotFoundError struct {
	Source     string // "dataset", "restcountries", "worldbank"
	EntityType string // "country", "indicator"
	Identifier string // country code, indicator id, or composite key
}

func (e *NotFoundError) Error() string {
	if e.EntityType != "" {
		return fmt.Sprintf("%s not found in %s: %s", e.EntityType, e.Source, e.Identifier)
	}
	return fmt.Sprintf("not found in %s: %s", e.Source, e.Identifier)
}

// NewNotFoundError creates a NotFoundError for a country lookup.
func NewNotFoundError(source, identifier string) *NotFoundError {
	return &NotFoundError{
		Source:     source,
		EntityType: "country",
		Identifier: identifier,
	}
}

// DataUnavailableError indicates the backing dataset file is missing or unreadable.
// Unlike the other error conditions this one is allowed to propagate to the
// transport layer rather than being converted to an {"error": ...} payload.
type DataUnavailableError struct {
	Path string
	Err  error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data file not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("data file not found: %s", e.Path)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// NewDataUnavailableError creates a DataUnavailableError for the given path.
func NewDataUnavailableError(path string, err error) *DataUnavailableError {
	return &DataUnavailableError{Path: path, Err: err}
}

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsDataUnavailable returns true if the error is a DataUnavailableError.
func IsDataUnavailable(err error) bool {
	_, ok := err.(*DataUnavailableError)
	return ok
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
