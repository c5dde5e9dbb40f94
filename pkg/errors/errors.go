// Package errors provides the error types used throughout switchboard.
// Callers can match broad categories with the sentinel errors and
// errors.Is, or inspect details with errors.As and the typed errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Join wraps a list of errors into one.
// It's an alias for the standard library errors.Join for convenience.
var Join = errors.Join

// Common sentinel errors for the switchboard client
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates that sign-in was rejected by the service
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingParameter indicates an endpoint template placeholder was left unbound
	ErrMissingParameter = errors.New("missing parameter")

	// ErrCatalogUnavailable indicates the endpoint catalog could not be fetched or parsed
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// AuthenticationError represents a sign-in failure: rejected credentials
// or an unexpected response from the sign-in endpoint.
type AuthenticationError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(endpoint string, statusCode int, message string, err error) *AuthenticationError {
	return &AuthenticationError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// CatalogError represents a failure to fetch or decode the endpoint catalog.
type CatalogError struct {
	Source  string // catalog URL or file path
	Message string
	Err     error
}

// Error implements the error interface
func (e *CatalogError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("catalog error from %s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("catalog error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CatalogError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}

// NewCatalogError creates a new CatalogError
func NewCatalogError(source, message string, err error) *CatalogError {
	return &CatalogError{Source: source, Message: message, Err: err}
}

// UnknownEndpointError indicates a name that is not present in the catalog.
// There is deliberately no fallback: an unknown name is always an error.
type UnknownEndpointError struct {
	Name string
}

// Error implements the error interface
func (e *UnknownEndpointError) Error() string {
	return fmt.Sprintf("unknown endpoint %q", e.Name)
}

// Is implements errors.Is support
func (e *UnknownEndpointError) Is(target error) bool {
	return target == ErrNotFound
}

// MissingParameterError indicates template placeholders that remained
// unbound after positional, named, and unit auto-fill binding.
type MissingParameterError struct {
	Endpoint string
	Missing  []string
}

// Error implements the error interface
func (e *MissingParameterError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("template needs arguments: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("endpoint %q needs arguments: %s", e.Endpoint, strings.Join(e.Missing, ", "))
}

// Is implements errors.Is support
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// APIError represents a transport-level failure while talking to the service.
type APIError struct {
	Endpoint   string // URL or endpoint name
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request to %s failed: %s", e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "template"
	Source  string // URL, file path, or template text
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapAPI wraps an error as an APIError
func WrapAPI(endpoint string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidCredentials checks if an error is a sign-in rejection
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsMissingParameter checks if an error reports unbound template parameters
func IsMissingParameter(err error) bool {
	return errors.Is(err, ErrMissingParameter)
}

// IsCatalogUnavailable checks if an error is a catalog fetch or decode failure
func IsCatalogUnavailable(err error) bool {
	return errors.Is(err, ErrCatalogUnavailable)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
