package esx

import (
	"encoding/json"
	"fmt"
)

// AccessPoint is a record of accessPoints.json: the rename target.
type AccessPoint struct {
	ID    string
	Name  string
	Model string
	// Mine marks access points owned by this project. Only these get their
	// model rewritten.
	Mine bool

	raw fields
}

// UnmarshalJSON implements json.Unmarshaler.
func (ap *AccessPoint) UnmarshalJSON(data []byte) error {
	var raw fields
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*ap = AccessPoint{raw: raw}
	for _, err := range []error{
		raw.decode("id", &ap.ID),
		raw.decode("name", &ap.Name),
		raw.decode("model", &ap.Model),
		raw.decode("mine", &ap.Mine),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (ap AccessPoint) MarshalJSON() ([]byte, error) {
	out := ap.raw.clone()
	for _, err := range []error{
		out.put("id", ap.ID, ap.ID == ""),
		out.put("name", ap.Name, ap.Name == ""),
		out.put("model", ap.Model, ap.Model == ""),
		out.put("mine", ap.Mine, !ap.Mine),
	} {
		if err != nil {
			return nil, err
		}
	}
	return encode(map[string]json.RawMessage(out))
}

// MeasuredRadio is a record of measuredRadios.json linking measurements to
// the access point they were observed for.
type MeasuredRadio struct {
	AccessPointID             string
	AccessPointMeasurementIDs []string

	raw fields
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *MeasuredRadio) UnmarshalJSON(data []byte) error {
	var raw fields
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = MeasuredRadio{raw: raw}
	if err := raw.decode("accessPointId", &r.AccessPointID); err != nil {
		return err
	}
	return raw.decode("accessPointMeasurementIds", &r.AccessPointMeasurementIDs)
}

// MarshalJSON implements json.Marshaler.
func (r MeasuredRadio) MarshalJSON() ([]byte, error) {
	out := r.raw.clone()
	if err := out.put("accessPointId", r.AccessPointID, r.AccessPointID == ""); err != nil {
		return nil, err
	}
	if err := out.put("accessPointMeasurementIds", r.AccessPointMeasurementIDs, r.AccessPointMeasurementIDs == nil); err != nil {
		return nil, err
	}
	return encode(map[string]json.RawMessage(out))
}

// Measurement is a record of accessPointMeasurements.json: one observed
// radio signal and its hardware address.
type Measurement struct {
	ID  string
	MAC string

	raw fields
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	var raw fields
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Measurement{raw: raw}
	if err := raw.decode("id", &m.ID); err != nil {
		return err
	}
	return raw.decode("mac", &m.MAC)
}

// MarshalJSON implements json.Marshaler.
func (m Measurement) MarshalJSON() ([]byte, error) {
	out := m.raw.clone()
	if err := out.put("id", m.ID, m.ID == ""); err != nil {
		return nil, err
	}
	if err := out.put("mac", m.MAC, m.MAC == ""); err != nil {
		return nil, err
	}
	return encode(map[string]json.RawMessage(out))
}

// AccessPointsDocument is accessPoints.json.
type AccessPointsDocument struct {
	AccessPoints []AccessPoint
	raw          fields
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *AccessPointsDocument) UnmarshalJSON(data []byte) error {
	raw, err := decodeDocument(data, "accessPoints")
	if err != nil {
		return err
	}
	*d = AccessPointsDocument{raw: raw}
	return raw.decode("accessPoints", &d.AccessPoints)
}

// MarshalJSON implements json.Marshaler.
func (d AccessPointsDocument) MarshalJSON() ([]byte, error) {
	return encodeDocument(d.raw, "accessPoints", d.AccessPoints)
}

// MeasuredRadiosDocument is measuredRadios.json.
type MeasuredRadiosDocument struct {
	MeasuredRadios []MeasuredRadio
	raw            fields
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *MeasuredRadiosDocument) UnmarshalJSON(data []byte) error {
	raw, err := decodeDocument(data, "measuredRadios")
	if err != nil {
		return err
	}
	*d = MeasuredRadiosDocument{raw: raw}
	return raw.decode("measuredRadios", &d.MeasuredRadios)
}

// MarshalJSON implements json.Marshaler.
func (d MeasuredRadiosDocument) MarshalJSON() ([]byte, error) {
	return encodeDocument(d.raw, "measuredRadios", d.MeasuredRadios)
}

// MeasurementsDocument is accessPointMeasurements.json.
type MeasurementsDocument struct {
	AccessPointMeasurements []Measurement
	raw                     fields
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *MeasurementsDocument) UnmarshalJSON(data []byte) error {
	raw, err := decodeDocument(data, "accessPointMeasurements")
	if err != nil {
		return err
	}
	*d = MeasurementsDocument{raw: raw}
	return raw.decode("accessPointMeasurements", &d.AccessPointMeasurements)
}

// MarshalJSON implements json.Marshaler.
func (d MeasurementsDocument) MarshalJSON() ([]byte, error) {
	return encodeDocument(d.raw, "accessPointMeasurements", d.AccessPointMeasurements)
}

// decodeDocument decodes a top-level document object and requires its
// record array to be present.
func decodeDocument(data []byte, key string) (fields, error) {
	var raw fields
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if !raw.has(key) {
		return nil, fmt.Errorf("missing %q array", key)
	}
	return raw, nil
}

func encodeDocument(raw fields, key string, records any) ([]byte, error) {
	out := raw.clone()
	if err := out.put(key, records, false); err != nil {
		return nil, err
	}
	return encode(map[string]json.RawMessage(out))
}
