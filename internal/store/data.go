// Package store persists the indexed list and keyed map of clip entries.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Data is the whole persisted value: an append-ordered list and a keyed map.
type Data struct {
	IndexedStorage []string          `json:"indexed_storage"`
	KeyStorage     map[string]string `json:"key_storage"`
}

// Empty returns the canonical empty store value.
func Empty() *Data {
	return &Data{
		IndexedStorage: []string{},
		KeyStorage:     map[string]string{},
	}
}

// normalize replaces nil collections with empty ones so the encoded form is
// always `[]` and `{}`, never `null`.
func (d *Data) normalize() *Data {
	if d.IndexedStorage == nil {
		d.IndexedStorage = []string{}
	}
	if d.KeyStorage == nil {
		d.KeyStorage = map[string]string{}
	}
	return d
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	c := &Data{
		IndexedStorage: make([]string, len(d.IndexedStorage)),
		KeyStorage:     make(map[string]string, len(d.KeyStorage)),
	}
	copy(c.IndexedStorage, d.IndexedStorage)
	for k, v := range d.KeyStorage {
		c.KeyStorage[k] = v
	}
	return c
}

// Scope selects which half of the store a clear resets.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeIndexed
	ScopeKeyed
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeIndexed:
		return "indexed"
	case ScopeKeyed:
		return "keyed"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// Encode renders v as JSON indented with four spaces and a trailing newline.
// HTML characters are left unescaped so stored text round-trips verbatim.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode parses raw file contents. Shape mismatches (e.g. a number where the
// list belongs) are reported the same as syntax errors.
func decode(raw []byte) (*Data, error) {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d.normalize(), nil
}
