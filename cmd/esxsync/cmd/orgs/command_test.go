package orgs

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/esxsync/internal/cmd/application"
	"github.com/agentstation/esxsync/internal/sources/meraki"
	"github.com/agentstation/esxsync/pkg/errors"
)

func TestOrgs(t *testing.T) {
	orgs := []meraki.Organization{
		{ID: "2930418", Name: "Acme Campus"},
		{ID: "4815162", Name: "Acme Warehouse"},
	}
	dir := &application.MockDirectory{Orgs: orgs}

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewCommand(&application.Mock{
			DirectoryFunc: func() (application.Directory, error) { return dir, nil },
		})
		cmd.SetOut(&out)
		cmd.SetArgs(nil)
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Acme Campus")
		assert.Contains(t, out.String(), "4815162")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewCommand(&application.Mock{
			DirectoryFunc:    func() (application.Directory, error) { return dir, nil },
			OutputFormatFunc: func() string { return "json" },
		})
		cmd.SetOut(&out)
		cmd.SetArgs(nil)
		require.NoError(t, cmd.Execute())

		var got []meraki.Organization
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, orgs, got)
	})
}

func TestOrgs_APIError(t *testing.T) {
	dir := &application.MockDirectory{Err: errors.NewAPIError("meraki", 401, "Invalid API key")}
	cmd := NewCommand(&application.Mock{
		DirectoryFunc: func() (application.Directory, error) { return dir, nil },
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(nil)

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsAPIKeyError(err))
}
