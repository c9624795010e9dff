// Package exports synthesizes the conditional "exports" map of a package
// manifest from a build output directory.
//
// Two strategies exist. The flat strategy maps entry names to files found in
// the output directory. The component strategy treats each named build entry
// as a component living in its own source directory. Both are pure functions
// over a vfs.FS and return an ordered Map.
package exports

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Condition names used in generated condition sets.
const (
	CondImport      = "import"
	CondRequire     = "require"
	CondTypes       = "types"
	CondSass        = "sass"
	CondStyle       = "style"
	CondDevelopment = "development"
)

// PrimaryEntry is the entry name mapped to the "." subpath.
const PrimaryEntry = "index"

// PrimaryKey is the export subpath of the primary entry.
const PrimaryKey = "."

// SubpathFor returns the export subpath for an entry name.
func SubpathFor(name string) string {
	if name == PrimaryEntry {
		return PrimaryKey
	}
	return "./" + name
}

// Condition is one resolution target of an export subpath.
type Condition struct {
	Name string
	Path string
}

// Conditions is an ordered condition set. Later Set calls for an existing
// name replace the path in place.
type Conditions []Condition

// Set adds or replaces a condition.
func (c *Conditions) Set(name, path string) {
	for i := range *c {
		if (*c)[i].Name == name {
			(*c)[i].Path = path
			return
		}
	}
	*c = append(*c, Condition{Name: name, Path: path})
}

// Get returns the path for name.
func (c Conditions) Get(name string) (string, bool) {
	for _, cond := range c {
		if cond.Name == name {
			return cond.Path, true
		}
	}
	return "", false
}

// Len returns the number of populated conditions.
func (c Conditions) Len() int { return len(c) }

// MarshalJSON writes the conditions as an object in insertion order.
func (c Conditions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cond := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(cond.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(cond.Path)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Target is the value of an export subpath: either a bare path or a
// condition set. Exactly one of the two is populated.
type Target struct {
	Path       string
	Conditions Conditions
}

// PathTarget returns a bare-path target.
func PathTarget(p string) Target { return Target{Path: p} }

// ConditionsTarget returns a condition-set target.
func ConditionsTarget(c Conditions) Target { return Target{Conditions: c} }

// IsPath reports whether the target is a bare path.
func (t Target) IsPath() bool { return t.Conditions == nil }

// MarshalJSON writes a string or an object.
func (t Target) MarshalJSON() ([]byte, error) {
	if t.IsPath() {
		return json.Marshal(t.Path)
	}
	return t.Conditions.MarshalJSON()
}

// Map is an ordered export map.
type Map struct {
	keys   []string
	values map[string]Target
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{values: make(map[string]Target)}
}

// Set adds key or replaces its value, keeping its original position.
func (m *Map) Set(key string, t Target) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = t
}

// Get returns the target for key.
func (m *Map) Get(key string) (Target, bool) {
	t, ok := m.values[key]
	return t, ok
}

// Keys returns the subpaths in insertion order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of subpaths.
func (m *Map) Len() int { return len(m.keys) }

// Each calls fn for every subpath in order.
func (m *Map) Each(fn func(key string, t Target)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// MarshalJSON writes the map as an object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := m.values[key].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
