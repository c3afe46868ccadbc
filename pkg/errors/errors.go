// Package errors provides custom error types for the winspskb system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As, Is, and Join are aliases for their standard library equivalents,
// so callers need only one errors import.
var (
	As   = errors.As
	Is   = errors.Is
	Join = errors.Join
)

// Common sentinel errors for the winspskb system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedIdentifier indicates that a record's key fields could not be normalized
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrSourceUnavailable indicates that a configured source's record stream cannot be read
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNoSources indicates that a run was started without any configured sources
	ErrNoSources = errors.New("no sources configured")

	// ErrAllSourcesFailed indicates that every configured source failed to load
	ErrAllSourcesFailed = errors.New("all sources failed")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrReadOnly indicates an attempt to modify a read-only resource
	ErrReadOnly = errors.New("read only")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// MalformedIdentifierError represents a record whose key fields cannot be
// normalized into canonical form. It is always recovered locally: the record
// is dropped and counted, never fatal to the run.
type MalformedIdentifierError struct {
	Source string // Source tag the record came from
	Field  string // "format_identifier" or "property_identifier"
	Value  string // The offending raw value
	Err    error
}

// Error implements the error interface
func (e *MalformedIdentifierError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("malformed %s %q from source %s", e.Field, e.Value, e.Source)
	}
	return fmt.Sprintf("malformed %s %q", e.Field, e.Value)
}

// Unwrap implements errors.Unwrap
func (e *MalformedIdentifierError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedIdentifierError) Is(target error) bool {
	return target == ErrMalformedIdentifier
}

// NewMalformedIdentifier creates a new MalformedIdentifierError
func NewMalformedIdentifier(source, field, value string, err error) *MalformedIdentifierError {
	return &MalformedIdentifierError{
		Source: source,
		Field:  field,
		Value:  value,
		Err:    err,
	}
}

// SourceUnavailableError represents a configured source whose record stream
// cannot be read at all. Fatal for that source's contribution, not for the
// run, unless every source fails.
type SourceUnavailableError struct {
	Source string
	Path   string
	Err    error
}

// Error implements the error interface
func (e *SourceUnavailableError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("source %s unavailable at %s: %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceUnavailable creates a new SourceUnavailableError
func NewSourceUnavailable(source, path string, err error) *SourceUnavailableError {
	return &SourceUnavailableError{Source: source, Path: path, Err: err}
}

// PrecedenceError represents a precedence policy that references a source
// not present in the recognized source list, or is otherwise unusable.
// Always fatal at startup, before any merging.
type PrecedenceError struct {
	Source  string // Offending source tag, if one is to blame
	Message string
}

// Error implements the error interface
func (e *PrecedenceError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("precedence configuration error for source %q: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("precedence configuration error: %s", e.Message)
}

// Is implements errors.Is support
func (e *PrecedenceError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewPrecedenceError creates a new PrecedenceError
func NewPrecedenceError(source, message string) *PrecedenceError {
	return &PrecedenceError{Source: source, Message: message}
}

// GenerationError represents a failure to write a generated artifact.
// Fatal for that output target; carries the attempted path.
type GenerationError struct {
	Target string // "knowledge base", "lookup source", "docs"
	Path   string
	Err    error
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to generate %s at %s: %v", e.Target, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to generate %s: %v", e.Target, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a new GenerationError
func NewGenerationError(target, path string, err error) *GenerationError {
	return &GenerationError{Target: target, Path: path, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "json", etc.
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
	}
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
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "update", "delete", "load", "save"
	Resource  string // "knowledge base", "definition", "source"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedIdentifier checks if an error is a malformed identifier error
func IsMalformedIdentifier(err error) bool {
	return errors.Is(err, ErrMalformedIdentifier)
}

// IsSourceUnavailable checks if an error indicates source unavailability
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapGeneration wraps an error as a GenerationError
func WrapGeneration(target, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewGenerationError(target, path, err)
}
