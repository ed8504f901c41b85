package correlate

import (
	"strings"

	"github.com/agentstation/esxsync/pkg/esx"
)

// measurement is a measurement with its MAC already normalized.
type measurement struct {
	id  string
	mac string
}

// index holds the lookups built once per run.
type index struct {
	measurements []measurement
	// radioByMeasurement maps a measurement id to the access point id of
	// the first measured radio listing it.
	radioByMeasurement map[string]string
	// accessPoints maps an access point id to its first record.
	accessPoints map[string]*esx.AccessPoint
}

func newIndex(docs *esx.Documents) *index {
	idx := &index{
		radioByMeasurement: make(map[string]string),
		accessPoints:       make(map[string]*esx.AccessPoint),
	}
	if docs == nil {
		return idx
	}

	if docs.Measurements != nil {
		idx.measurements = make([]measurement, 0, len(docs.Measurements.AccessPointMeasurements))
		for _, m := range docs.Measurements.AccessPointMeasurements {
			idx.measurements = append(idx.measurements, measurement{id: m.ID, mac: NormalizeMAC(m.MAC)})
		}
	}
	if docs.MeasuredRadios != nil {
		for _, r := range docs.MeasuredRadios.MeasuredRadios {
			for _, id := range r.AccessPointMeasurementIDs {
				if _, ok := idx.radioByMeasurement[id]; !ok {
					idx.radioByMeasurement[id] = r.AccessPointID
				}
			}
		}
	}
	if docs.AccessPoints != nil {
		for i := range docs.AccessPoints.AccessPoints {
			ap := &docs.AccessPoints.AccessPoints[i]
			if _, ok := idx.accessPoints[ap.ID]; !ok {
				idx.accessPoints[ap.ID] = ap
			}
		}
	}
	return idx
}

// candidates returns the measurements whose MAC contains key, in document
// order.
func (idx *index) candidates(key string) []measurement {
	if key == "" {
		return nil
	}
	var out []measurement
	for _, m := range idx.measurements {
		if strings.Contains(m.mac, key) {
			out = append(out, m)
		}
	}
	return out
}
