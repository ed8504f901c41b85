package esx

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// fields holds the raw members of a JSON object. Project records carry many
// attributes this tool never looks at; keeping them raw lets a record be
// decoded into typed fields and re-encoded without losing anything.
type fields map[string]json.RawMessage

func (f fields) clone() fields {
	out := make(fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (f fields) has(key string) bool {
	_, ok := f[key]
	return ok
}

// decode unmarshals member key into dst. A missing or null member leaves dst
// untouched.
func (f fields) decode(key string, dst any) error {
	raw, ok := f[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// put encodes v under key. Zero values are only written when the member was
// present in the source document, so untouched records round-trip unchanged.
func (f fields) put(key string, v any, zero bool) error {
	if zero && !f.has(key) {
		return nil
	}
	raw, err := encode(v)
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	f[key] = raw
	return nil
}

// encode marshals v without HTML escaping so names like "R&D" stay readable.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
