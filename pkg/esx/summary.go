package esx

// AccessPointSummary describes one access point of a project together with
// how much survey data is linked to it.
type AccessPointSummary struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Model        string `json:"model,omitempty" yaml:"model,omitempty"`
	Mine         bool   `json:"mine" yaml:"mine"`
	Radios       int    `json:"radios" yaml:"radios"`
	Measurements int    `json:"measurements" yaml:"measurements"`
}

// Summarize lists the access points in document order with the number of
// measured radios and measurements that point at each of them.
func (d *Documents) Summarize() []AccessPointSummary {
	if d == nil || d.AccessPoints == nil {
		return nil
	}

	radios := make(map[string]int)
	measurements := make(map[string]int)
	if d.MeasuredRadios != nil {
		for _, r := range d.MeasuredRadios.MeasuredRadios {
			radios[r.AccessPointID]++
			measurements[r.AccessPointID] += len(r.AccessPointMeasurementIDs)
		}
	}

	out := make([]AccessPointSummary, 0, len(d.AccessPoints.AccessPoints))
	for _, ap := range d.AccessPoints.AccessPoints {
		out = append(out, AccessPointSummary{
			ID:           ap.ID,
			Name:         ap.Name,
			Model:        ap.Model,
			Mine:         ap.Mine,
			Radios:       radios[ap.ID],
			Measurements: measurements[ap.ID],
		})
	}
	return out
}
