package esx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/esxsync/pkg/errors"
)

func TestPlan_StageName_FirstWins(t *testing.T) {
	p := NewPlan()

	assert.True(t, p.StageName("ap1", "Lobby"))
	assert.False(t, p.StageName("ap1", "Hall"))

	a, ok := p.Get("ap1")
	require.True(t, ok)
	assert.Equal(t, "Lobby", a.Name)
	assert.Equal(t, 1, p.Len())
}

func TestPlan_StageModelKeepsOrder(t *testing.T) {
	p := NewPlan()
	p.StageModel("ap2", "MR46")
	p.StageName("ap1", "Lobby")
	p.StageName("ap2", "Lab")

	assert.Equal(t, []PlanEntry{
		{AccessPointID: "ap2", Assignment: Assignment{Name: "Lab", Model: "MR46"}},
		{AccessPointID: "ap1", Assignment: Assignment{Name: "Lobby"}},
	}, p.Entries())
}

func TestPlan_Apply(t *testing.T) {
	doc := &AccessPointsDocument{AccessPoints: []AccessPoint{
		{ID: "ap1", Name: "old-1", Model: "MR33", Mine: true},
		{ID: "ap2", Name: "old-2", Model: "MR33", Mine: false},
	}}

	p := NewPlan()
	p.StageName("ap1", "Lobby")
	p.StageModel("ap1", "MR46")
	p.StageName("ap2", "Lab")
	p.StageModel("ap2", "MR56")

	applied, err := p.Apply(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	assert.Equal(t, "Lobby", doc.AccessPoints[0].Name)
	assert.Equal(t, "MR46", doc.AccessPoints[0].Model)
	assert.Equal(t, "Lab", doc.AccessPoints[1].Name)
	assert.Equal(t, "MR33", doc.AccessPoints[1].Model, "foreign access points keep their model")
}

func TestPlan_ApplyUnknownIDChangesNothing(t *testing.T) {
	doc := &AccessPointsDocument{AccessPoints: []AccessPoint{{ID: "ap1", Name: "old"}}}

	p := NewPlan()
	p.StageName("ap1", "Lobby")
	p.StageName("gone", "Hall")

	_, err := p.Apply(doc)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "old", doc.AccessPoints[0].Name)
}

func TestPlan_NilAndEmpty(t *testing.T) {
	var p *Plan
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Entries())

	applied, err := NewPlan().Apply(&AccessPointsDocument{})
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "surveys/site.esx_modified.esx", OutputPath("surveys/site.esx"))
	assert.Equal(t, "site.esx_modified.esx", OutputPath("site.esx"))
	assert.Equal(t, "archive_modified.esx", OutputPath("archive"))
	assert.NotEqual(t, "site.esx", OutputPath("site.esx"))
}
