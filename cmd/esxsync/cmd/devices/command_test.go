package devices

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/esxsync/internal/cmd/application"
	pkgdevices "github.com/agentstation/esxsync/pkg/devices"
)

func TestDevices(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		format string
		query  pkgdevices.Query
		want   []string
	}{
		{
			name:  "defaults",
			query: pkgdevices.Query{},
			want:  []string{"AP-Lobby", "MR46"},
		},
		{
			name:   "org and bssids",
			args:   []string{"--org", "Acme Campus", "--bssids"},
			format: "wide",
			query:  pkgdevices.Query{Organization: "Acme Campus", BSSIDs: true},
			want:   []string{"AP-Lobby", "e0:55:3d:11:11:1f", "Q2KD-AAAA-0001"},
		},
		{
			name:   "yaml",
			format: "yaml",
			want:   []string{"name: AP-Lobby", "serial: Q2KD-AAAA-0001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &application.MockDirectory{Set: pkgdevices.NewSet(pkgdevices.Device{
				Name: "AP-Lobby", Serial: "Q2KD-AAAA-0001", Model: "MR46", BSSID: "e0:55:3d:11:11:1f",
			})}
			app := &application.Mock{DirectoryFunc: func() (application.Directory, error) { return dir, nil }}
			if tt.format != "" {
				app.OutputFormatFunc = func() string { return tt.format }
			}

			var out bytes.Buffer
			cmd := NewCommand(app)
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())

			require.Len(t, dir.Queries, 1)
			assert.Equal(t, tt.query, dir.Queries[0])
			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}
