package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeMissingInput      ErrorType = "MISSING_INPUT"
	ErrTypeDependencyMissing ErrorType = "DEPENDENCY_MISSING"
	ErrTypeParseFailure      ErrorType = "PARSE_FAILURE"
	ErrTypeLookupLoad        ErrorType = "LOOKUP_LOAD_FAILURE"
	ErrTypeMatchNotFound     ErrorType = "MATCH_NOT_FOUND"
	ErrTypeArchive           ErrorType = "ARCHIVE_FAILURE"
	ErrTypeStorage           ErrorType = "STORAGE"
	ErrTypeConfig            ErrorType = "CONFIG"
	ErrTypeBusy              ErrorType = "RUN_IN_PROGRESS"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewMissingInputError reports a run that cannot start because nothing was selected
func NewMissingInputError(message string) *AppError {
	return NewAppError(ErrTypeMissingInput, message, nil)
}

// NewDependencyMissingError reports an output or input backend that is not available
func NewDependencyMissingError(dependency string) *AppError {
	return NewAppError(ErrTypeDependencyMissing, fmt.Sprintf("%s is required for this operation", dependency), nil).
		WithContext("dependency", dependency)
}

// NewParseError creates a parsing-related error for one file or line
func NewParseError(path string, cause error) *AppError {
	return NewAppError(ErrTypeParseFailure, fmt.Sprintf("failed to parse %s", path), cause).
		WithContext("path", path)
}

// NewLookupLoadError creates an error for an unreadable or malformed lookup workbook
func NewLookupLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeLookupLoad, message, cause)
}

// NewMatchNotFoundError reports a file with no lookup entry
func NewMatchNotFoundError(name string) *AppError {
	return NewAppError(ErrTypeMatchNotFound, fmt.Sprintf("no match in lookup for: %s", name), nil).
		WithContext("file", name)
}

// NewArchiveError creates an extraction error for one archive
func NewArchiveError(path string, cause error) *AppError {
	return NewAppError(ErrTypeArchive, fmt.Sprintf("failed to extract %s", path), cause).
		WithContext("archive", path)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewBusyError reports a second run started while one is active
func NewBusyError(operation string, cause error) *AppError {
	return NewAppError(ErrTypeBusy, fmt.Sprintf("%s rejected", operation), cause).
		WithContext("operation", operation)
}

// TypeOf returns the ErrorType of the first AppError in the chain, or "" if there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err carries an AppError of the given type
func IsType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

// IsPrecondition reports whether err must abort a run before any input is processed.
func IsPrecondition(err error) bool {
	switch TypeOf(err) {
	case ErrTypeMissingInput, ErrTypeDependencyMissing, ErrTypeLookupLoad, ErrTypeConfig:
		return true
	}
	return false
}
