package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/esxsync/pkg/errors"
)

func TestMatchMode_Key(t *testing.T) {
	tests := []struct {
		name  string
		mode  MatchMode
		bssid string
		want  string
	}{
		{"suffix full address", MatchSuffix, "aa:bb:cc:dd:ee:ff", "dd:ee:ff"},
		{"suffix upper case dashes", MatchSuffix, "AA-BB-CC-DD-EE-FF", "dd:ee:ff"},
		{"suffix dotted", MatchSuffix, "aa.bb.cc.dd.ee.ff", "dd:ee:ff"},
		{"suffix cisco dotted", MatchSuffix, "AABB.CCDD.EEFF", "dd:ee:ff"},
		{"suffix no separators", MatchSuffix, "aabbccddeeff", "dd:ee:ff"},
		{"suffix mixed separators", MatchSuffix, "aa:bb-cc.dd:ee:ff", "dd:ee:ff"},
		{"suffix fragment used whole", MatchSuffix, "dd:ee:ff", "dd:ee:ff"},
		{"suffix empty", MatchSuffix, "", ""},
		{"suffix whitespace", MatchSuffix, "  ", ""},
		{"trim-last", MatchTrimLast, "AA:BB:CC:DD:EE:F1", "aa:bb:cc:dd:ee:f"},
		{"trim-last single char", MatchTrimLast, "a", ""},
		{"trim-last cisco dotted", MatchTrimLast, "AABB.CCDD.EEF1", "aa:bb:cc:dd:ee:f"},
		{"zero value is suffix", "", "aa:bb:cc:dd:ee:ff", "dd:ee:ff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.Key(tt.bssid))
		})
	}
}

func TestNormalizeMAC(t *testing.T) {
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", NormalizeMAC(" AA-BB-CC-DD-EE-FF "))
	assert.Equal(t, "00:11:22:33:44:55", NormalizeMAC("0011.2233.4455"))
	assert.Equal(t, "00:11:22:33:44:55", NormalizeMAC("001122334455"))
	assert.Equal(t, "dd:ee:ff", NormalizeMAC("DD-EE-FF"))
	assert.Equal(t, "not:a:mac", NormalizeMAC("not-a-mac"), "non-hex input is not regrouped")
}

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		in   string
		want MatchMode
	}{
		{"", MatchSuffix},
		{"suffix", MatchSuffix},
		{"Trim-Last", MatchTrimLast},
		{" trim-last ", MatchTrimLast},
	}
	for _, tt := range tests {
		got, err := ParseMatchMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseMatchMode("prefix")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestMatchModes(t *testing.T) {
	for _, m := range MatchModes() {
		got, err := ParseMatchMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}
