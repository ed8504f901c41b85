// Package meraki provides a client for the Cisco Meraki Dashboard API,
// limited to what is needed to name access points: organizations, wireless
// device statuses and per-device wireless status.
package meraki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/esxsync/internal/transport"
	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/logging"
)

// Organization is a Dashboard organization.
type Organization struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// DeviceStatus is one entry of an organization's device status listing.
type DeviceStatus struct {
	Name        string          `json:"name"`
	Serial      string          `json:"serial"`
	Model       string          `json:"model"`
	MAC         string          `json:"mac"`
	NetworkID   string          `json:"networkId"`
	Status      string          `json:"status"`
	ProductType string          `json:"productType"`
	Errors      json.RawMessage `json:"errors,omitempty"`
}

// HasErrors reports whether the Dashboard attached errors to the entry.
// Such entries carry incomplete data and are skipped.
func (d DeviceStatus) HasErrors() bool {
	return len(d.Errors) > 0
}

// BasicServiceSet is one SSID broadcast by a radio.
type BasicServiceSet struct {
	SSIDName   string `json:"ssidName"`
	SSIDNumber int    `json:"ssidNumber"`
	Enabled    bool   `json:"enabled"`
	Band       string `json:"band"`
	BSSID      string `json:"bssid"`
	Channel    int    `json:"channel"`
	Visible    bool   `json:"visible"`
}

// WirelessStatus is the wireless status of a single device.
type WirelessStatus struct {
	BasicServiceSets []BasicServiceSet `json:"basicServiceSets"`
}

// FirstEnabledBSSID returns the BSSID of the first enabled service set.
func (s *WirelessStatus) FirstEnabledBSSID() string {
	if s == nil {
		return ""
	}
	for _, bss := range s.BasicServiceSets {
		if bss.Enabled && bss.BSSID != "" {
			return bss.BSSID
		}
	}
	return ""
}

// Client talks to the Dashboard API.
type Client struct {
	transport *transport.Client
	baseURL   string
	pageSize  int
}

// Option configures a Client.
type Option func(*config)

type config struct {
	baseURL    string
	scheme     transport.AuthScheme
	pageSize   int
	transports []transport.Option
}

// WithBaseURL overrides the Dashboard API root.
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithAuthScheme selects header or bearer authentication.
func WithAuthScheme(s transport.AuthScheme) Option {
	return func(c *config) { c.scheme = s }
}

// WithPageSize sets perPage for paginated endpoints.
func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.transports = append(c.transports, transport.WithTimeout(d)) }
}

// WithMaxRetries bounds retries of rate-limited requests.
func WithMaxRetries(n int) Option {
	return func(c *config) { c.transports = append(c.transports, transport.WithMaxRetries(n)) }
}

// WithTransportOptions passes options through to the transport client.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(c *config) { c.transports = append(c.transports, opts...) }
}

// NewClient creates a Dashboard client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	cfg := config{
		baseURL:  constants.MerakiBaseURL,
		scheme:   transport.AuthSchemeHeader,
		pageSize: constants.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	topts := append([]transport.Option{transport.WithProvider(constants.MerakiProvider)}, cfg.transports...)
	return &Client{
		transport: transport.New(
			transport.NewAuthenticator(cfg.scheme, constants.MerakiAPIKeyHeader),
			apiKey,
			topts...,
		),
		baseURL:  cfg.baseURL,
		pageSize: cfg.pageSize,
	}
}

// Organizations lists the organizations the API key can access.
func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	q := url.Values{}
	q.Set("perPage", strconv.Itoa(c.pageSize))
	return getAll[Organization](ctx, c, c.baseURL+"/organizations?"+q.Encode())
}

// DeviceStatuses lists the wireless devices of an organization. Entries
// the Dashboard flags with errors are dropped.
func (c *Client) DeviceStatuses(ctx context.Context, orgID string) ([]DeviceStatus, error) {
	q := url.Values{}
	q.Set("productTypes[]", constants.MerakiWirelessProductType)
	q.Set("perPage", strconv.Itoa(c.pageSize))
	endpoint := c.baseURL + "/organizations/" + url.PathEscape(orgID) + "/devices/statuses?" + q.Encode()

	all, err := getAll[DeviceStatus](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	out := all[:0]
	for _, d := range all {
		if d.HasErrors() {
			logger.Debug().Str("serial", d.Serial).RawJSON("errors", d.Errors).Msg("skipping device reported with errors")
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// WirelessStatus returns the wireless status of a device.
func (c *Client) WirelessStatus(ctx context.Context, serial string) (*WirelessStatus, error) {
	resp, err := c.transport.Get(ctx, c.baseURL+"/devices/"+url.PathEscape(serial)+"/wireless/status")
	if err != nil {
		return nil, err
	}
	var status WirelessStatus
	if err := transport.DecodeResponse(resp, c.transport.Provider(), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// getAll follows Link rel=next pagination and concatenates every page.
func getAll[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	var all []T
	for page := 0; endpoint != ""; page++ {
		if page >= constants.MaxPages {
			return nil, &errors.APIError{
				Provider: c.transport.Provider(),
				Endpoint: endpoint,
				Message:  "too many pages",
			}
		}
		resp, err := c.transport.Get(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		next := transport.NextLink(resp)

		var items []T
		if err := transport.DecodeResponse(resp, c.transport.Provider(), &items); err != nil {
			return nil, err
		}
		all = append(all, items...)
		endpoint = next
	}
	return all, nil
}

// isAccessDisabled reports the 404 the Dashboard returns when API access
// is disabled for an organization or device.
func isAccessDisabled(err error) bool {
	var apiErr *errors.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
