package transport

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/esxsync/pkg/errors"
)

func response(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDecodeResponse(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		var out []map[string]string
		require.NoError(t, DecodeResponse(response(http.StatusOK, `[{"id":"1"}]`, nil), "meraki", &out))
		assert.Equal(t, []map[string]string{{"id": "1"}}, out)
	})

	t.Run("dashboard errors body", func(t *testing.T) {
		err := DecodeResponse(response(http.StatusNotFound, `{"errors":["Not found","API disabled"]}`, nil), "meraki", &struct{}{})
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "meraki", apiErr.Provider)
		assert.Equal(t, "Not found; API disabled", apiErr.Message)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("empty error body", func(t *testing.T) {
		err := DecodeResponse(response(http.StatusBadGateway, "", nil), "meraki", &struct{}{})
		assert.True(t, errors.IsProviderUnavailable(err))
		assert.Contains(t, err.Error(), http.StatusText(http.StatusBadGateway))
	})

	t.Run("invalid json", func(t *testing.T) {
		err := DecodeResponse(response(http.StatusOK, `{`, nil), "meraki", &struct{}{})
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "invalid response body", apiErr.Message)
		assert.Equal(t, errors.ExitRemoteAPI, errors.ExitCode(err))
		assert.False(t, errors.IsMalformedDocument(err))
	})

	t.Run("html from a proxy", func(t *testing.T) {
		resp := response(http.StatusOK, `<html>gateway</html>`, nil)
		resp.Request = &http.Request{URL: &url.URL{Path: "/api/v1/organizations"}}
		err := DecodeResponse(resp, "meraki", &[]map[string]string{})
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "/api/v1/organizations", apiErr.Endpoint)
		assert.Equal(t, errors.ExitRemoteAPI, errors.ExitCode(err))
	})

	t.Run("body read failure", func(t *testing.T) {
		resp := response(http.StatusOK, "", nil)
		resp.Body = io.NopCloser(iotest.ErrReader(io.ErrUnexpectedEOF))
		err := DecodeResponse(resp, "meraki", &struct{}{})
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Equal(t, errors.ExitRemoteAPI, errors.ExitCode(err))
	})
}

func TestNextLink(t *testing.T) {
	tests := []struct {
		name  string
		links []string
		want  string
	}{
		{"none", nil, ""},
		{
			name:  "dashboard style",
			links: []string{`<https://api.meraki.com/api/v1/organizations/1/devices/statuses?perPage=2>; rel=first, <https://api.meraki.com/api/v1/organizations/1/devices/statuses?perPage=2&startingAfter=Q2>; rel=next, <https://api.meraki.com/api/v1/organizations/1/devices/statuses?perPage=2&endingBefore=zzz>; rel=last`},
			want:  "https://api.meraki.com/api/v1/organizations/1/devices/statuses?perPage=2&startingAfter=Q2",
		},
		{
			name:  "quoted rel list",
			links: []string{`<https://x/a>; rel="prev"`, `<https://x/b>; title="b"; rel="next last"`},
			want:  "https://x/b",
		},
		{"last page", []string{`<https://x/a>; rel=first, <https://x/z>; rel=last`}, ""},
		{"malformed", []string{`https://x/b; rel=next`}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := make(http.Header)
			for _, l := range tt.links {
				h.Add("Link", l)
			}
			assert.Equal(t, tt.want, NextLink(response(http.StatusOK, "", h)))
		})
	}
}
