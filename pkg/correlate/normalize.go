package correlate

import (
	"strings"

	"github.com/agentstation/esxsync/pkg/errors"
)

// MatchMode selects how a Dashboard BSSID is reduced to the key searched
// for in measurement MAC addresses.
type MatchMode string

const (
	// MatchSuffix keeps the device-specific part of the address: the last
	// three octets of a full six-octet address. Shorter inputs are taken to
	// be fragments already and are used whole.
	MatchSuffix MatchMode = "suffix"

	// MatchTrimLast drops the final character of the address. Ekahau
	// records the base MAC of a radio while the Dashboard reports the
	// BSSID of an SSID on it, which differ in the last nibble.
	MatchTrimLast MatchMode = "trim-last"

	// DefaultMatchMode is used when no mode is configured.
	DefaultMatchMode = MatchSuffix
)

// MatchModes lists the supported modes.
func MatchModes() []MatchMode {
	return []MatchMode{MatchSuffix, MatchTrimLast}
}

// String implements fmt.Stringer.
func (m MatchMode) String() string {
	return string(m)
}

// ParseMatchMode parses a mode name. The empty string selects the default.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMatchMode, nil
	case MatchSuffix:
		return MatchSuffix, nil
	case MatchTrimLast:
		return MatchTrimLast, nil
	}
	return "", errors.NewValidationError("match_mode", s, "must be one of suffix, trim-last")
}

// Key reduces bssid to the search key for this mode. An empty key matches
// nothing.
func (m MatchMode) Key(bssid string) string {
	addr := NormalizeMAC(bssid)
	if addr == "" {
		return ""
	}
	switch m {
	case MatchTrimLast:
		return addr[:len(addr)-1]
	default:
		octets := strings.Split(addr, ":")
		if len(octets) < 6 {
			return addr
		}
		return strings.Join(octets[len(octets)-3:], ":")
	}
}

// NormalizeMAC lower-cases a hardware address and rewrites it in colon
// form. A full address is accepted with any of ':', '-' or '.' separators,
// in Cisco dotted groups or with none at all. Anything else keeps its
// characters with '-' and '.' turned into ':'.
func NormalizeMAC(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if digits := stripSeparators(s); len(digits) == 12 && isHex(digits) {
		var b strings.Builder
		b.Grow(17)
		for i := 0; i < 12; i += 2 {
			if i > 0 {
				b.WriteByte(':')
			}
			b.WriteString(digits[i : i+2])
		}
		return b.String()
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return ':'
		}
		return r
	}, s)
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ':' || r == '-' || r == '.' {
			return -1
		}
		return r
	}, s)
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
