// Package constants provides shared constants used throughout esxsync.
// This includes timeouts, limits, file permissions, API endpoints and the
// names of the project archive members the tool reads and rewrites.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single Dashboard API request
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// RateLimitRetryDelay is used when a 429 response carries no usable Retry-After header
	RateLimitRetryDelay = 1 * time.Second

	// MaxRetryBackoff caps how long a single Retry-After may make us wait
	MaxRetryBackoff = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// MaxRateLimitRetries is the maximum number of retries for rate-limited requests
	MaxRateLimitRetries = 5

	// DefaultPageSize is the perPage value sent to paginated Dashboard endpoints
	DefaultPageSize = 1000

	// MaxPages bounds Link-header pagination so a misbehaving server cannot loop us forever
	MaxPages = 100
)

// Meraki Dashboard API constants
const (
	// MerakiProvider is the provider name used in errors and log fields
	MerakiProvider = "meraki"

	// MerakiBaseURL is the Dashboard API v1 root
	MerakiBaseURL = "https://api.meraki.com/api/v1"

	// MerakiAPIKeyHeader is the header carrying the Dashboard API key
	MerakiAPIKeyHeader = "X-Cisco-Meraki-API-Key"

	// MerakiWirelessProductType filters device listings to access points
	MerakiWirelessProductType = "wireless"
)

// Ekahau project archive constants
const (
	// ProjectExtension is the file extension of an Ekahau project archive
	ProjectExtension = ".esx"

	// ModifiedSuffix is appended to the project stem for the rewritten archive
	ModifiedSuffix = "_modified"

	// AccessPointsDocument holds the access point records that get renamed
	AccessPointsDocument = "accessPoints.json"

	// MeasuredRadiosDocument links measurements to access points
	MeasuredRadiosDocument = "measuredRadios.json"

	// MeasurementsDocument holds the observed radio MAC addresses
	MeasurementsDocument = "accessPointMeasurements.json"

	// DocumentIndent is the indentation used when re-encoding a project document
	DocumentIndent = "    "

	// WorkDirPrefix prefixes the run-scoped temporary extraction directory
	WorkDirPrefix = "esxsync-"
)

// Path constants
const (
	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".esxsync"
)

// Format constants
const (
	// TimeFormatLog is the format used in log files
	TimeFormatLog = "2006-01-02 15:04:05.000"
)
