package alerts

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/esxsync/internal/cmd/output"
	"github.com/agentstation/esxsync/pkg/esx"
	"github.com/agentstation/esxsync/pkg/report"
	"github.com/agentstation/esxsync/pkg/syncer"
)

func TestAlert_String(t *testing.T) {
	a := NewError("sync failed").WithError(errors.New("boom"))
	assert.Equal(t, "✗ sync failed: boom", a.String())
	assert.False(t, a.Timestamp.Time.IsZero())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
	assert.Equal(t, "?", Level(9).Icon())
}

func TestWriteAll(t *testing.T) {
	var got []string
	w := WriterFunc(func(a *Alert) error {
		got = append(got, a.Message)
		return nil
	})

	require.NoError(t, WriteAll(w, NewWarning("first"), nil, NewError("second")))
	assert.Equal(t, []string{"first", "second"}, got)

	failing := WriterFunc(func(*Alert) error { return errors.New("closed") })
	assert.EqualError(t, WriteAll(failing, NewWarning("x")), "closed")
}

func TestFormatWriter(t *testing.T) {
	alert := NewWarning("2 devices not found in the project").WithDetails("AP-Hall", "AP-Closet")

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatWriter(&buf, output.FormatTable).WriteAlert(alert))
		assert.Equal(t, "! 2 devices not found in the project\n   AP-Hall\n   AP-Closet\n", buf.String())
	})

	t.Run("text without details", func(t *testing.T) {
		var buf bytes.Buffer
		fw := NewFormatWriter(&buf, output.FormatTable).WithConfig(WriterConfig{})
		require.NoError(t, fw.WriteAlert(alert))
		assert.NotContains(t, buf.String(), "AP-Hall")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		fw := NewFormatWriter(&buf, output.FormatJSON).WithConfig(WriterConfig{ShowTimestamp: true, ShowDetails: true})
		require.NoError(t, fw.WriteAlert(alert))

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "warning", got["level"])
		assert.Len(t, got["details"], 2)
		assert.NotEmpty(t, got["timestamp"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatWriter(&buf, output.FormatYAML).WriteAlert(alert))
		assert.Contains(t, buf.String(), "level: warning")
		assert.Contains(t, buf.String(), "- AP-Hall")
	})
}

func TestFromEvents(t *testing.T) {
	events := []report.Event{
		{Kind: report.KindMatch, Name: "AP-Lobby"},
		{Kind: report.KindMiss, Name: "AP-Hall", BSSID: "e0:55:3d:33:33:3f", Message: "no measurement"},
		{Kind: report.KindMiss, Name: "AP-Closet"},
	}

	alert := FromEvents(report.KindMiss, events)
	require.NotNil(t, alert)
	assert.Equal(t, LevelWarning, alert.Level)
	assert.Equal(t, "2 devices not found in the project", alert.Message)
	assert.Equal(t, []string{"AP-Hall (e0:55:3d:33:33:3f): no measurement", "AP-Closet"}, alert.Details)

	assert.Nil(t, FromEvents(report.KindAmbiguous, events))
}

func TestForResult(t *testing.T) {
	assert.Nil(t, ForResult(nil))

	done := &syncer.Result{
		Output:  "site.esx_modified.esx",
		Matched: 1,
		Plan: []esx.PlanEntry{
			{AccessPointID: "ap-1", Assignment: esx.Assignment{Name: "AP-Lobby"}},
		},
	}
	alert := ForResult(done)
	assert.Equal(t, LevelSuccess, alert.Level)
	assert.Contains(t, alert.Message, "1 access points renamed")
	assert.Contains(t, alert.Message, "site.esx_modified.esx")

	empty := ForResult(&syncer.Result{Devices: 3, Assignments: 2})
	assert.Equal(t, LevelWarning, empty.Level)
	assert.Equal(t, "No access points matched (3 devices, 2 with BSSID)", empty.Message)
}

func TestNoWork(t *testing.T) {
	alert := NoWork()
	assert.Equal(t, LevelWarning, alert.Level)
	assert.Contains(t, alert.String(), "project left untouched")
}
