package errors

import (
	"fmt"
	"net/http"
)

// NotFoundError is a named thing that does not exist: an organization,
// an access point id or a document inside the project archive.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError rejects a user supplied value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError is a non-2xx or undecodable answer from a remote API, or a
// transport failure talking to it (StatusCode 0).
type APIError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	where := e.Provider
	if e.Endpoint != "" {
		where += " " + e.Endpoint
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", where, e.Message)
	}
	return fmt.Sprintf("%s: %d %s", where, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is classifies the status code.
func (e *APIError) Is(target error) bool {
	switch code := e.StatusCode; {
	case code == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case code == http.StatusNotFound:
		return target == ErrNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return target == ErrAPIKeyInvalid
	case code >= http.StatusInternalServerError:
		return target == ErrProviderUnavailable
	}
	return false
}

// NewAPIError creates an APIError.
func NewAPIError(provider string, statusCode int, message string) *APIError {
	return &APIError{Provider: provider, StatusCode: statusCode, Message: message}
}

// AuthenticationError is a credential problem detected before or while
// calling a remote API.
type AuthenticationError struct {
	Provider string
	Method   string // "api_key", "bearer"
	Message  string
	Err      error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s authentication (%s): %s", e.Provider, e.Method, e.Message)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Is matches both API key sentinels.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired || target == ErrAPIKeyInvalid
}

// NewAuthenticationError creates an AuthenticationError.
func NewAuthenticationError(provider, method, message string, err error) *AuthenticationError {
	return &AuthenticationError{Provider: provider, Method: method, Message: message, Err: err}
}

// ConfigError is a setting that could not be loaded or makes no sense.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError is a document or response body that failed to decode.
type ParseError struct {
	Format string // "json"
	File   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode %s %s: %v", e.Format, e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrMalformedDocument.
func (e *ParseError) Is(target error) bool { return target == ErrMalformedDocument }

// IOError is a failed filesystem operation.
type IOError struct {
	Op   string // "open", "read", "create", "write", "close"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ProjectError is a failure while turning a project into its rewritten
// copy, tagged with the project path.
type ProjectError struct {
	Path string
	Op   string // "extract", "apply plan", "repack"
	Err  error
}

func (e *ProjectError) Error() string {
	return fmt.Sprintf("project %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *ProjectError) Unwrap() error { return e.Err }

// WrapIO wraps err as an IOError. A nil err stays nil.
func WrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// WrapParse wraps err as a ParseError. A nil err stays nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Err: err}
}

// WrapProject wraps err as a ProjectError. A nil err stays nil.
func WrapProject(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &ProjectError{Path: path, Op: op, Err: err}
}
