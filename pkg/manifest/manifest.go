package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulmenhq/exportsync/pkg/exports"
	"github.com/fulmenhq/exportsync/pkg/safeio"
)

// Field names written by Apply.
const (
	FieldExports = "exports"
	FieldMain    = "main"
	FieldModule  = "module"
	FieldTypes   = "types"
)

// legacyFields maps each top-level field to the condition of the primary
// export it mirrors, in the order new fields are appended.
var legacyFields = []struct {
	field     string
	condition string
}{
	{FieldMain, exports.CondRequire},
	{FieldModule, exports.CondImport},
	{FieldTypes, exports.CondTypes},
}

// Document is a parsed package.json.
type Document struct {
	obj *Object
}

// Parse decodes a manifest.
func Parse(data []byte) (*Document, error) {
	obj, err := ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return &Document{obj: obj}, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the located project manifest
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Fields exposes the top-level object.
func (d *Document) Fields() *Object { return d.obj }

// Name returns the package name, or "" when it is missing or not a string.
func (d *Document) Name() string {
	name, _ := d.obj.String("name")
	return name
}

// Bytes renders the manifest with two-space indentation and a trailing
// newline.
func (d *Document) Bytes() ([]byte, error) {
	compact, err := d.obj.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("format %s: %w", FileName, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Save writes the manifest atomically.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return safeio.WriteFileAtomic(path, data)
}

// Change describes one top-level edit made by Apply.
type Change struct {
	Field  string `json:"field"`
	Action string `json:"action"` // "set" or "delete"
}

// Result summarizes what Apply did.
type Result struct {
	// Replaced is true when an existing non-object exports value was
	// overwritten instead of merged.
	Replaced bool
	// Added lists export keys that were not present before.
	Added []string
	// Updated lists export keys whose previous value was overwritten.
	Updated []string
	Changes []Change
}

// Apply merges m into the manifest and refreshes main, module and types
// from the primary export.
func (d *Document) Apply(m *exports.Map) (Result, error) {
	res, err := d.MergeExports(m)
	if err != nil {
		return res, err
	}
	res.Changes = append([]Change{{Field: FieldExports, Action: "set"}}, d.BackfillLegacyFields()...)
	return res, nil
}

// MergeExports shallow-merges m onto the existing exports object. Keys the
// tool produced overwrite in place; other keys are kept; new keys are
// appended. A non-object exports value is replaced.
func (d *Document) MergeExports(m *exports.Map) (Result, error) {
	var res Result
	merged, ok := d.obj.Object(FieldExports)
	if !ok {
		res.Replaced = d.obj.Has(FieldExports)
		merged = NewObject()
	}

	var encodeErr error
	m.Each(func(key string, t exports.Target) {
		if encodeErr != nil {
			return
		}
		raw, err := encodeJSON(t)
		if err != nil {
			encodeErr = fmt.Errorf("encode export %q: %w", key, err)
			return
		}
		if merged.Has(key) {
			res.Updated = append(res.Updated, key)
		} else {
			res.Added = append(res.Added, key)
		}
		merged.Set(key, raw)
	})
	if encodeErr != nil {
		return res, encodeErr
	}

	raw, err := merged.MarshalJSON()
	if err != nil {
		return res, err
	}
	d.obj.Set(FieldExports, raw)
	return res, nil
}

// BackfillLegacyFields copies require, import and types of the "." export
// into main, module and types. A condition that is missing leaves the prior
// value alone. Fields that end up falsy are removed.
func (d *Document) BackfillLegacyFields() []Change {
	var primary *Object
	if exp, ok := d.obj.Object(FieldExports); ok {
		primary, _ = exp.Object(exports.PrimaryKey)
	}

	var changes []Change
	for _, lf := range legacyFields {
		if primary != nil {
			if raw, ok := primary.Get(lf.condition); ok && !Falsy(raw) {
				d.obj.Set(lf.field, raw)
				changes = append(changes, Change{Field: lf.field, Action: "set"})
				continue
			}
		}
		if raw, ok := d.obj.Get(lf.field); ok && Falsy(raw) {
			d.obj.Delete(lf.field)
			changes = append(changes, Change{Field: lf.field, Action: "delete"})
		}
	}
	return changes
}
