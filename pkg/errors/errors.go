// Package errors holds the failure kinds of an esxsync run.
//
// Each typed error answers errors.Is for one of the sentinels below, so
// callers can branch on the kind of failure without knowing which layer
// produced it. ExitCode turns the same kinds into a process status.
package errors

import "errors"

// Re-exported so callers only need this package.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Failure kinds.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAPIKeyRequired      = errors.New("API key required")
	ErrAPIKeyInvalid       = errors.New("API key invalid")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrRateLimited         = errors.New("rate limited")
	ErrCanceled            = errors.New("operation canceled")
	ErrMalformedDocument   = errors.New("malformed document")

	// ErrNoAssignments means the Dashboard reported no BSSID for any
	// device. Nothing can be correlated and the project is not touched.
	ErrNoAssignments = errors.New("no BSSID assignments to apply")
)

// IsNotFound reports whether err is a missing resource.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err is rejected input.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsAPIKeyError reports whether err is a missing or refused API key.
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// IsRateLimited reports whether the Dashboard answered 429.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsCanceled reports whether err stems from a canceled context.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// IsProviderUnavailable reports whether the Dashboard failed server side.
func IsProviderUnavailable(err error) bool { return errors.Is(err, ErrProviderUnavailable) }

// IsNoAssignments reports whether a run ended with nothing to do.
func IsNoAssignments(err error) bool { return errors.Is(err, ErrNoAssignments) }

// IsMalformedDocument reports whether a project document failed to decode.
func IsMalformedDocument(err error) bool { return errors.Is(err, ErrMalformedDocument) }
