// Package esx reads and rewrites Ekahau site-survey projects.
//
// A project (.esx) is a zip archive of JSON documents. Three of them matter
// here: accessPoints.json (the records that get renamed), measuredRadios.json
// and accessPointMeasurements.json (read-only, used to link observed MAC
// addresses to access points). Every other member is carried over untouched.
package esx

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/errors"
)

// Documents are the three interlinked project documents.
type Documents struct {
	AccessPoints   *AccessPointsDocument
	MeasuredRadios *MeasuredRadiosDocument
	Measurements   *MeasurementsDocument
}

// ReadDocuments reads the three documents straight from a project archive
// without extracting it.
func ReadDocuments(projectPath string) (*Documents, error) {
	r, err := zip.OpenReader(projectPath)
	if err != nil {
		return nil, errors.WrapIO("open", projectPath, err)
	}
	defer func() { _ = r.Close() }()

	return decodeDocuments(func(name string) ([]byte, error) {
		return readMember(&r.Reader, name)
	})
}

// LoadDocuments reads the three documents from an extracted project tree.
func LoadDocuments(dir string) (*Documents, error) {
	return decodeDocuments(func(name string) ([]byte, error) {
		p := filepath.Join(dir, name)
		data, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(errors.ResourceArchiveMember, name)
		}
		if err != nil {
			return nil, errors.WrapIO("read", p, err)
		}
		return data, nil
	})
}

func decodeDocuments(read func(name string) ([]byte, error)) (*Documents, error) {
	docs := &Documents{
		AccessPoints:   &AccessPointsDocument{},
		MeasuredRadios: &MeasuredRadiosDocument{},
		Measurements:   &MeasurementsDocument{},
	}
	for _, m := range []struct {
		name string
		dst  any
	}{
		{constants.AccessPointsDocument, docs.AccessPoints},
		{constants.MeasuredRadiosDocument, docs.MeasuredRadios},
		{constants.MeasurementsDocument, docs.Measurements},
	} {
		data, err := read(m.name)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, m.dst); err != nil {
			return nil, errors.WrapParse("json", m.name, err)
		}
	}
	return docs, nil
}

// MarshalDocument encodes a project document with sorted keys and the
// indentation Ekahau itself uses, so rewritten files diff cleanly.
func MarshalDocument(v any) ([]byte, error) {
	compact, err := encode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", constants.DocumentIndent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// OutputPath returns where the rewritten project for projectPath is written:
// the full input path with _modified.esx appended, so site.esx becomes
// site.esx_modified.esx next to it.
func OutputPath(projectPath string) string {
	return projectPath + constants.ModifiedSuffix + constants.ProjectExtension
}
