// Package locale reads, extends and writes JSON locale dictionaries.
package locale

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/iancoleman/orderedmap"
)

// Dictionary is an ordered mapping from translation key to value. Values are
// usually strings, but anything a locale file already holds is kept as is.
type Dictionary struct {
	m *orderedmap.OrderedMap
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return &Dictionary{m: m}
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.m.Keys())
}

// Keys returns the keys in insertion order.
func (d *Dictionary) Keys() []string {
	return slices.Clone(d.m.Keys())
}

// Has reports whether key is present.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.m.Get(key)
	return ok
}

// Get returns the value stored for key. Values loaded from a file that are
// not strings are returned as json.RawMessage.
func (d *Dictionary) Get(key string) (any, bool) {
	return d.m.Get(key)
}

// Set stores value under key. A new key is appended after the existing ones.
func (d *Dictionary) Set(key string, value any) {
	d.m.Set(key, value)
}

// UnmarshalJSON replaces the contents with the JSON object in data. String
// values are decoded; any other value is held as its raw JSON so numbers
// such as 1.0 or 12345678901234567890 are written back unchanged.
func (d *Dictionary) UnmarshalJSON(data []byte) error {
	order := orderedmap.New()
	if err := json.Unmarshal(data, order); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m := orderedmap.New()
	m.SetEscapeHTML(false)
	for _, k := range order.Keys() {
		v := raw[k]
		if s, ok := rawString(v); ok {
			m.Set(k, s)
			continue
		}
		m.Set(k, v)
	}
	d.m = m
	return nil
}

func rawString(v json.RawMessage) (string, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || v[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// MarshalJSON returns the dictionary as a compact JSON object.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return d.m.MarshalJSON()
}

// Encode returns the on-disk form: two-space indentation, non-ASCII and
// HTML characters written as is, and a trailing newline.
func (d *Dictionary) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.m); err != nil {
		return nil, fmt.Errorf("encode locale dictionary: %w", err)
	}
	return buf.Bytes(), nil
}

// Merge adds every key of discovered that d lacks, with the key itself as
// the value. New keys are appended in sorted order; existing entries keep
// their values and positions. It returns d and the sorted added keys.
func Merge(d *Dictionary, discovered []string) (*Dictionary, []string) {
	var added []string
	for _, k := range discovered {
		if !d.Has(k) {
			added = append(added, k)
		}
	}
	slices.Sort(added)
	added = slices.Compact(added)

	for _, k := range added {
		d.Set(k, k)
	}
	return d, added
}
