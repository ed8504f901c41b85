// Package devices holds the wireless device records pulled from the
// Dashboard API and turns them into the name/BSSID and name/model inputs
// the correlation engine consumes.
package devices

// Device is one wireless access point as the Dashboard knows it.
type Device struct {
	Name         string `json:"name" yaml:"name"`
	Serial       string `json:"serial" yaml:"serial"`
	Model        string `json:"model,omitempty" yaml:"model,omitempty"`
	BSSID        string `json:"bssid,omitempty" yaml:"bssid,omitempty"`
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
}

// Assignment pairs an external device name with the BSSID used to find it
// in the project.
type Assignment struct {
	Name  string `json:"name" yaml:"name"`
	BSSID string `json:"bssid" yaml:"bssid"`
}

// Set is an ordered collection of devices keyed by name.
// Adding a device whose name is already present replaces the earlier record
// but keeps its position, so iteration order stays stable across runs.
type Set struct {
	order  []string
	byName map[string]Device
}

// NewSet builds a Set from devices in order.
func NewSet(devs ...Device) *Set {
	s := &Set{byName: make(map[string]Device, len(devs))}
	for _, d := range devs {
		s.Add(d)
	}
	return s
}

// Add inserts or replaces a device and reports whether a record with the
// same name was replaced. Devices without a name cannot be matched by name
// and are ignored.
func (s *Set) Add(d Device) (replaced bool) {
	if d.Name == "" {
		return false
	}
	if s.byName == nil {
		s.byName = make(map[string]Device)
	}
	if _, ok := s.byName[d.Name]; ok {
		replaced = true
	} else {
		s.order = append(s.order, d.Name)
	}
	s.byName[d.Name] = d
	return replaced
}

// Get returns the device with the given name.
func (s *Set) Get(name string) (Device, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Len returns the number of unique device names.
func (s *Set) Len() int {
	return len(s.order)
}

// Devices returns the devices in insertion order.
func (s *Set) Devices() []Device {
	out := make([]Device, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// Assignments returns name/BSSID pairs for every device with a BSSID.
func (s *Set) Assignments() []Assignment {
	out := make([]Assignment, 0, len(s.order))
	for _, name := range s.order {
		if d := s.byName[name]; d.BSSID != "" {
			out = append(out, Assignment{Name: d.Name, BSSID: d.BSSID})
		}
	}
	return out
}

// Models returns the name to model map for every device with a model.
func (s *Set) Models() map[string]string {
	out := make(map[string]string, len(s.order))
	for _, name := range s.order {
		if d := s.byName[name]; d.Model != "" {
			out[d.Name] = d.Model
		}
	}
	return out
}

// Query selects which devices a directory lookup returns.
type Query struct {
	// Organization limits the lookup to one organization by name. Empty
	// means every organization the key can see.
	Organization string
	// BSSIDs resolves the first enabled BSSID of every device.
	BSSIDs bool
}
