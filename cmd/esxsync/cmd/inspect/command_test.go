package inspect

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/esxsync/internal/cmd/application"
	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/esx/esxtest"
)

func fixture(t *testing.T) string {
	return esxtest.Project{
		AccessPoints: []esxtest.AccessPoint{
			{ID: "ap1", Name: "Measured AP-1", Model: "MR33", Mine: true},
			{ID: "ap2", Name: "Simulated AP-2"},
		},
		MeasuredRadios: []esxtest.MeasuredRadio{
			{AccessPointID: "ap1", AccessPointMeasurementIDs: []string{"m1", "m2"}},
		},
		Measurements: []esxtest.Measurement{
			{ID: "m1", MAC: "00:18:0a:11:11:1f"},
			{ID: "m2", MAC: "00:18:0a:11:11:10"},
		},
	}.Write(t, t.TempDir(), "site.esx")
}

func TestInspect(t *testing.T) {
	path := fixture(t)

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewCommand(&application.Mock{})
		cmd.SetOut(&out)
		cmd.SetArgs([]string{path})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Measured AP-1")
		assert.Contains(t, out.String(), "Simulated AP-2")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewCommand(&application.Mock{OutputFormatFunc: func() string { return "json" }})
		cmd.SetOut(&out)
		cmd.SetArgs([]string{path})
		require.NoError(t, cmd.Execute())

		var got []struct {
			ID           string `json:"id"`
			Measurements int    `json:"measurements"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, 2, got[0].Measurements)
		assert.Equal(t, 0, got[1].Measurements)
	})
}

func TestInspect_Errors(t *testing.T) {
	t.Run("missing document", func(t *testing.T) {
		path := esxtest.Project{Omit: []string{constants.MeasuredRadiosDocument}}.Write(t, t.TempDir(), "site.esx")
		cmd := NewCommand(&application.Mock{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{path})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Equal(t, errors.ExitProjectDocument, errors.ExitCode(err))
	})

	t.Run("no such file", func(t *testing.T) {
		cmd := NewCommand(&application.Mock{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.esx")})
		require.Error(t, cmd.Execute())
	})

	t.Run("requires one argument", func(t *testing.T) {
		cmd := NewCommand(&application.Mock{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(nil)
		require.Error(t, cmd.Execute())
	})
}
