package transport

import (
	"net/http"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// AuthScheme names a supported authentication scheme.
type AuthScheme string

// Supported schemes.
const (
	// AuthSchemeHeader sends the key in a provider-specific header.
	AuthSchemeHeader AuthScheme = "header"
	// AuthSchemeBearer sends the key as an Authorization bearer token.
	AuthSchemeBearer AuthScheme = "bearer"
)

// NewAuthenticator returns the authenticator for scheme. Unknown or empty
// schemes fall back to header auth using header.
func NewAuthenticator(scheme AuthScheme, header string) Authenticator {
	if scheme == AuthSchemeBearer {
		return &BearerAuth{}
	}
	return &HeaderAuth{Header: header}
}
