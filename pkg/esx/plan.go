package esx

import (
	"github.com/agentstation/esxsync/pkg/errors"
)

// Assignment is the pending change for one access point. Empty fields are
// left unchanged.
type Assignment struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}

// PlanEntry is an Assignment together with its access point id, used for
// listing a plan.
type PlanEntry struct {
	AccessPointID string `json:"accessPointId" yaml:"accessPointId"`
	Assignment    `yaml:",inline"`
}

// Plan maps access point ids to pending assignments. It is built completely
// before anything is written and applied in one step.
type Plan struct {
	order   []string
	entries map[string]Assignment
}

// NewPlan returns an empty plan.
func NewPlan() *Plan {
	return &Plan{entries: make(map[string]Assignment)}
}

func (p *Plan) entry(id string) Assignment {
	if p.entries == nil {
		p.entries = make(map[string]Assignment)
	}
	a, ok := p.entries[id]
	if !ok {
		p.order = append(p.order, id)
	}
	return a
}

// StageName records a new name for the access point. It returns false and
// leaves the plan unchanged when a name is already staged for it.
func (p *Plan) StageName(id, name string) bool {
	if a, ok := p.entries[id]; ok && a.Name != "" {
		return false
	}
	a := p.entry(id)
	a.Name = name
	p.entries[id] = a
	return true
}

// StageModel records a new model for the access point.
func (p *Plan) StageModel(id, model string) {
	a := p.entry(id)
	a.Model = model
	p.entries[id] = a
}

// Get returns the assignment staged for id.
func (p *Plan) Get(id string) (Assignment, bool) {
	a, ok := p.entries[id]
	return a, ok
}

// Len returns the number of access points with a staged change.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// Entries lists the plan in staging order.
func (p *Plan) Entries() []PlanEntry {
	if p == nil {
		return nil
	}
	out := make([]PlanEntry, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, PlanEntry{AccessPointID: id, Assignment: p.entries[id]})
	}
	return out
}

// Apply writes the plan into doc. Every staged id must exist in the document;
// otherwise nothing is changed and an error is returned. Models are only
// written to access points marked as mine.
func (p *Plan) Apply(doc *AccessPointsDocument) (applied int, err error) {
	if p.Len() == 0 {
		return 0, nil
	}

	index := make(map[string]int, len(doc.AccessPoints))
	for i, ap := range doc.AccessPoints {
		if _, dup := index[ap.ID]; !dup {
			index[ap.ID] = i
		}
	}
	for _, id := range p.order {
		if _, ok := index[id]; !ok {
			return 0, errors.NewNotFoundError("access point", id)
		}
	}

	for _, id := range p.order {
		a := p.entries[id]
		ap := &doc.AccessPoints[index[id]]
		if a.Name != "" {
			ap.Name = a.Name
		}
		if a.Model != "" && ap.Mine {
			ap.Model = a.Model
		}
		applied++
	}
	return applied, nil
}
