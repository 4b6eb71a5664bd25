// Package errors provides custom error types for the odml system.
// These errors separate fatal construction failures from soft operational
// failures and enable programmatic error checking throughout the library.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the odml system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidName indicates that a property name is empty or path-like
	ErrInvalidName = errors.New("invalid name")

	// ErrIndexOutOfRange indicates a value index outside the valid range
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrDuplicateValue indicates an attempt to add a value whose content already exists
	ErrDuplicateValue = errors.New("duplicate value")

	// ErrNilContent indicates that a value was created or added without content
	ErrNilContent = errors.New("nil content")

	// ErrValueNotFound indicates that a value targeted for removal does not exist
	ErrValueNotFound = errors.New("value not found")

	// ErrMergeConflict indicates that a merge precondition failed
	ErrMergeConflict = errors.New("merge conflict")

	// ErrConversion indicates that content could not be interpreted as the requested type
	ErrConversion = errors.New("conversion failed")
)

// ConstructionError represents a fatal invariant violation at construction time.
// Unlike operational failures, construction errors are returned to the caller
// and the object is never created.
type ConstructionError struct {
	Kind    string // "property", "value", "terminology"
	Message string
	Err     error
}

// Error implements the error interface
func (e *ConstructionError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("cannot construct %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("construction failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// NewConstructionError creates a new ConstructionError
func NewConstructionError(kind, message string, err error) *ConstructionError {
	return &ConstructionError{Kind: kind, Message: message, Err: err}
}

// NameError represents an invalid property name at construction time
type NameError struct {
	Name    string
	Message string
}

// Error implements the error interface
func (e *NameError) Error() string {
	return fmt.Sprintf("invalid property name %q: %s", e.Name, e.Message)
}

// Is implements errors.Is support
func (e *NameError) Is(target error) bool {
	return target == ErrInvalidName
}

// NewNameError creates a new NameError
func NewNameError(name, message string) *NameError {
	return &NameError{Name: name, Message: message}
}

// OperationError represents a non-fatal operational failure. Operations
// that fail this way leave the object graph untouched and report the
// failure through a boolean result plus a log entry.
type OperationError struct {
	Operation string // "add value", "remove value", "set value", ...
	Property  string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("%s failed on property %s: %s", e.Operation, e.Property, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError
func NewOperationError(operation, property, message string, err error) *OperationError {
	return &OperationError{Operation: operation, Property: property, Message: message, Err: err}
}

// ConversionError represents a failure to interpret value content as a
// requested scalar type. Accessors report it and return a sentinel
// (NaN, zero time, nil) instead of raising.
type ConversionError struct {
	Type    string // target type name: "float", "date", "time", ...
	Content any
	Err     error
}

// Error implements the error interface
func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %v to %s", e.Content, e.Type)
}

// Unwrap implements errors.Unwrap
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// NewConversionError creates a new ConversionError
func NewConversionError(typeName string, content any, err error) *ConversionError {
	return &ConversionError{Type: typeName, Content: content, Err: err}
}

// MergeError represents a merge precondition failure. The whole merge
// call aborts without applying any change when one is reported.
type MergeError struct {
	Property string
	Field    string // the gated field: "name", "type", "mapping", "definition", "unit"
	This     string
	Other    string
}

// Error implements the error interface
func (e *MergeError) Error() string {
	return fmt.Sprintf("cannot merge property %s: %s mismatch (%q vs %q)", e.Property, e.Field, e.This, e.Other)
}

// Is implements errors.Is support
func (e *MergeError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NewMergeError creates a new MergeError
func NewMergeError(property, field, this, other string) *MergeError {
	return &MergeError{Property: property, Field: field, This: this, Other: other}
}

// ParseError represents an error when parsing terminology data
type ParseError struct {
	Format  string // "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidName checks if an error reports an invalid property name
func IsInvalidName(err error) bool {
	return errors.Is(err, ErrInvalidName)
}

// IsMergeConflict checks if an error reports a merge precondition failure
func IsMergeConflict(err error) bool {
	return errors.Is(err, ErrMergeConflict)
}

// IsConversion checks if an error reports a scalar conversion failure
func IsConversion(err error) bool {
	return errors.Is(err, ErrConversion)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
