// Package esxtest builds small Ekahau project archives for tests.
package esxtest

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/esx"
)

// AccessPoint is a fixture access point record.
type AccessPoint struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
	Mine  bool   `json:"mine"`
}

// MeasuredRadio is a fixture measured radio record.
type MeasuredRadio struct {
	AccessPointID             string   `json:"accessPointId"`
	AccessPointMeasurementIDs []string `json:"accessPointMeasurementIds"`
}

// Measurement is a fixture measurement record.
type Measurement struct {
	ID  string `json:"id"`
	MAC string `json:"mac"`
}

// Project describes the contents of a fixture archive.
type Project struct {
	AccessPoints   []AccessPoint
	MeasuredRadios []MeasuredRadio
	Measurements   []Measurement
	// Extra members written verbatim, keyed by archive path.
	Extra map[string]string
	// Omit lists standard documents to leave out of the archive.
	Omit []string
}

// Members renders the project into archive members.
func (p Project) Members(t testing.TB) map[string][]byte {
	t.Helper()

	members := map[string][]byte{
		constants.AccessPointsDocument:   mustJSON(t, map[string]any{"accessPoints": orEmpty(p.AccessPoints)}),
		constants.MeasuredRadiosDocument: mustJSON(t, map[string]any{"measuredRadios": orEmpty(p.MeasuredRadios)}),
		constants.MeasurementsDocument:   mustJSON(t, map[string]any{"accessPointMeasurements": orEmpty(p.Measurements)}),
	}
	for name, body := range p.Extra {
		members[name] = []byte(body)
	}
	for _, name := range p.Omit {
		delete(members, name)
	}
	return members
}

// Documents decodes the project in memory, as esx.ReadDocuments would.
// Omitted documents decode as empty.
func (p Project) Documents(t testing.TB) *esx.Documents {
	t.Helper()

	members := p.Members(t)
	docs := &esx.Documents{
		AccessPoints:   &esx.AccessPointsDocument{},
		MeasuredRadios: &esx.MeasuredRadiosDocument{},
		Measurements:   &esx.MeasurementsDocument{},
	}
	for name, dst := range map[string]any{
		constants.AccessPointsDocument:   docs.AccessPoints,
		constants.MeasuredRadiosDocument: docs.MeasuredRadios,
		constants.MeasurementsDocument:   docs.Measurements,
	} {
		data, ok := members[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(data, dst); err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
	}
	return docs
}

// Write stores the project as dir/name and returns its path.
func (p Project) Write(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteArchive(t, filepath.Join(dir, name), p.Members(t))
}

// WriteArchive writes members into a zip archive at path.
func WriteArchive(t testing.TB, path string, members map[string][]byte) string {
	t.Helper()

	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Data: members[name]})
	}
	return WriteEntries(t, path, entries)
}

// Entry is one stored archive member. Names may repeat.
type Entry struct {
	Name string
	Data []byte
}

// WriteEntries writes entries into a zip archive at path in the given order.
func WriteEntries(t testing.TB, path string, entries []Entry) string {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer func() { _ = f.Close() }()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("create member %s: %v", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			t.Fatalf("write member %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return path
}

// ReadArchive returns every member of the archive at path.
func ReadArchive(t testing.TB, path string) map[string][]byte {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer func() { _ = r.Close() }()

	out := make(map[string][]byte, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open member %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read member %s: %v", f.Name, err)
		}
		out[f.Name] = data
	}
	return out
}

// ReadAccessPoints decodes accessPoints.json from the archive at path.
func ReadAccessPoints(t testing.TB, path string) []AccessPoint {
	t.Helper()

	var doc struct {
		AccessPoints []AccessPoint `json:"accessPoints"`
	}
	data, ok := ReadArchive(t, path)[constants.AccessPointsDocument]
	if !ok {
		t.Fatalf("%s missing from %s", constants.AccessPointsDocument, path)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode access points: %v", err)
	}
	return doc.AccessPoints
}

// WorkDirs lists leftover working directories under dir.
func WorkDirs(t testing.TB, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, constants.WorkDirPrefix+"*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return matches
}

func mustJSON(t testing.TB, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return data
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
