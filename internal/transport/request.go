package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/esxsync/pkg/errors"
)

// DecodeResponse decodes a JSON response into the target structure.
// Any non-2xx status, and any body that cannot be read or decoded, becomes
// an *errors.APIError for provider.
func DecodeResponse(resp *http.Response, provider string, target any) error {
	defer func() { _ = resp.Body.Close() }()

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.Path
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.APIError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    "reading response body",
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    apiMessage(body, resp.Status),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &errors.APIError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    "invalid response body",
			Err:        err,
		}
	}

	return nil
}

// apiMessage extracts the Dashboard's {"errors": [...]} body when present.
func apiMessage(body []byte, status string) string {
	var payload struct {
		Errors []string `json:"errors"`
	}
	if json.Unmarshal(body, &payload) == nil && len(payload.Errors) > 0 {
		return strings.Join(payload.Errors, "; ")
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return status
}

// NextLink returns the rel="next" target of a response's Link header, or
// "" when there is none.
func NextLink(resp *http.Response) string {
	for _, header := range resp.Header.Values("Link") {
		for _, part := range strings.Split(header, ",") {
			segments := strings.Split(part, ";")
			if len(segments) < 2 {
				continue
			}
			target := strings.TrimSpace(segments[0])
			if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
				continue
			}
			for _, param := range segments[1:] {
				key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
				if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
					continue
				}
				for _, rel := range strings.Fields(strings.Trim(value, `"`)) {
					if strings.EqualFold(rel, "next") {
						return target[1 : len(target)-1]
					}
				}
			}
		}
	}
	return ""
}
