package errors

import "errors"

// Process exit codes returned by the esxsync CLI.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitInvalidInput    = 2
	ExitNoWork          = 3
	ExitProjectDocument = 4
	ExitRemoteAPI       = 5
)

// ExitCode maps an error to the exit code the CLI reports for it.
// Checks run from most to least specific since several kinds overlap
// (a missing archive member is both NotFound and a project problem).
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		apiErr  *APIError
		authErr *AuthenticationError
		cfgErr  *ConfigError
	)

	switch {
	case errors.Is(err, ErrNoAssignments):
		return ExitNoWork
	case errors.As(err, &apiErr), errors.As(err, &authErr):
		return ExitRemoteAPI
	case errors.Is(err, ErrMalformedDocument), isArchiveMember(err):
		return ExitProjectDocument
	case errors.Is(err, ErrInvalidInput), errors.As(err, &cfgErr):
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}

// isArchiveMember reports a missing or unsafe member of a project archive.
func isArchiveMember(err error) bool {
	var (
		nf *NotFoundError
		ve *ValidationError
	)
	return (errors.As(err, &nf) && nf.Resource == ResourceArchiveMember) ||
		(errors.As(err, &ve) && ve.Field == ResourceArchiveMember)
}

// ResourceArchiveMember names archive members in NotFoundError.Resource
// and ValidationError.Field.
const ResourceArchiveMember = "archive member"
