package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/exportsync/pkg/exports"
)

func primaryMap(conds ...exports.Condition) *exports.Map {
	m := exports.NewMap()
	m.Set(exports.PrimaryKey, exports.ConditionsTarget(exports.Conditions(conds)))
	return m
}

func mustParse(t *testing.T, data string) *Document {
	t.Helper()
	doc, err := Parse([]byte(data))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, doc *Document) string {
	t.Helper()
	out, err := doc.Bytes()
	require.NoError(t, err)
	return string(out)
}

func TestParseObjectKeepsOrder(t *testing.T) {
	obj, err := ParseObject([]byte(`{"z":1,"a":{"nested":true},"m":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	s, ok := obj.String("m")
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = obj.String("z")
	assert.False(t, ok)

	child, ok := obj.Object("a")
	require.True(t, ok)
	assert.Equal(t, []string{"nested"}, child.Keys())
}

func TestParseObjectRejects(t *testing.T) {
	_, err := ParseObject([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = ParseObject([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)

	_, err = ParseObject([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestObjectSetAndDelete(t *testing.T) {
	obj := NewObject()
	require.NoError(t, obj.SetValue("b", 1))
	require.NoError(t, obj.SetValue("a", "x"))
	require.NoError(t, obj.SetValue("b", 2))
	obj.Delete("missing")

	data, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":"x"}`, string(data))

	obj.Delete("b")
	assert.Equal(t, []string{"a"}, obj.Keys())
	assert.Equal(t, 1, obj.Len())
}

func TestSetValueDoesNotEscapeHTML(t *testing.T) {
	obj := NewObject()
	require.NoError(t, obj.SetValue("p", "./dist/a&b.js"))
	raw, _ := obj.Get("p")
	assert.Equal(t, `"./dist/a&b.js"`, string(raw))
}

func TestFalsy(t *testing.T) {
	for _, v := range []string{"", "null", "false", `""`, "0", "-0", "0.0", " 0 "} {
		assert.True(t, Falsy([]byte(v)), v)
	}
	for _, v := range []string{"true", `"0"`, `"x"`, "1", "{}", "[]", `"false"`} {
		assert.False(t, Falsy([]byte(v)), v)
	}
}

func TestApplyPrimaryWithTypes(t *testing.T) {
	doc := mustParse(t, `{"name":"my-pkg"}`)
	assert.Equal(t, "my-pkg", doc.Name())

	_, err := doc.Apply(primaryMap(
		exports.Condition{Name: exports.CondImport, Path: "./dist/index.js"},
		exports.Condition{Name: exports.CondTypes, Path: "./dist/index.d.ts"},
	))
	require.NoError(t, err)

	want := `{
  "name": "my-pkg",
  "exports": {
    ".": {
      "import": "./dist/index.js",
      "types": "./dist/index.d.ts"
    }
  },
  "module": "./dist/index.js",
  "types": "./dist/index.d.ts"
}
`
	assert.Equal(t, want, render(t, doc))
}

func TestApplyKeepsUnrelatedFieldsAndOrder(t *testing.T) {
	doc := mustParse(t, `{
    "name": "lib",
    "version": "1.0.0",
    "main": "./old.cjs",
    "scripts": {"build": "vite build"},
    "exports": {"./package.json": "./package.json", ".": "./old.js"}
}`)

	res, err := doc.Apply(primaryMap(
		exports.Condition{Name: exports.CondImport, Path: "./dist/index.js"},
		exports.Condition{Name: exports.CondRequire, Path: "./dist/index.cjs"},
	))
	require.NoError(t, err)
	assert.False(t, res.Replaced)
	assert.Equal(t, []string{"."}, res.Updated)
	assert.Empty(t, res.Added)

	assert.Equal(t, []string{"name", "version", "main", "scripts", "exports", "module"}, doc.Fields().Keys())
	exp, ok := doc.Fields().Object(FieldExports)
	require.True(t, ok)
	assert.Equal(t, []string{"./package.json", "."}, exp.Keys())

	main, _ := doc.Fields().String(FieldMain)
	assert.Equal(t, "./dist/index.cjs", main)
	scripts, _ := doc.Fields().Get("scripts")
	assert.JSONEq(t, `{"build":"vite build"}`, string(scripts))
}

func TestApplyReplacesNonObjectExports(t *testing.T) {
	doc := mustParse(t, `{"name":"x","exports":"./index.js"}`)

	m := exports.NewMap()
	m.Set("./feature", exports.ConditionsTarget(exports.Conditions{{Name: exports.CondImport, Path: "./dist/feature.js"}}))
	res, err := doc.Apply(m)
	require.NoError(t, err)
	assert.True(t, res.Replaced)
	assert.Equal(t, []string{"./feature"}, res.Added)

	raw, _ := doc.Fields().Get(FieldExports)
	assert.JSONEq(t, `{"./feature":{"import":"./dist/feature.js"}}`, string(raw))
}

func TestBackfillKeepsPriorValueAndDropsFalsy(t *testing.T) {
	doc := mustParse(t, `{"name":"x","main":"./legacy.cjs","module":"","types":null}`)

	_, err := doc.Apply(primaryMap(exports.Condition{Name: exports.CondImport, Path: "./dist/index.js"}))
	require.NoError(t, err)

	main, _ := doc.Fields().String(FieldMain)
	assert.Equal(t, "./legacy.cjs", main)
	module, _ := doc.Fields().String(FieldModule)
	assert.Equal(t, "./dist/index.js", module)
	assert.False(t, doc.Fields().Has(FieldTypes))
}

func TestBackfillWithoutPrimaryExport(t *testing.T) {
	doc := mustParse(t, `{"name":"x","main":false,"types":"./t.d.ts"}`)

	m := exports.NewMap()
	m.Set("./style.css", exports.PathTarget("./dist/style.css"))
	res, err := doc.Apply(m)
	require.NoError(t, err)

	assert.False(t, doc.Fields().Has(FieldMain))
	types, _ := doc.Fields().String(FieldTypes)
	assert.Equal(t, "./t.d.ts", types)
	assert.Contains(t, res.Changes, Change{Field: FieldMain, Action: "delete"})
}

func TestApplyIsIdempotent(t *testing.T) {
	m := primaryMap(
		exports.Condition{Name: exports.CondImport, Path: "./dist/index.js"},
		exports.Condition{Name: exports.CondRequire, Path: "./dist/index.cjs"},
	)
	m.Set("./style.css", exports.PathTarget("./dist/style.css"))

	doc := mustParse(t, `{"name":"x","private":true}`)
	_, err := doc.Apply(m)
	require.NoError(t, err)
	first := render(t, doc)

	again := mustParse(t, first)
	_, err = again.Apply(m)
	require.NoError(t, err)
	assert.Equal(t, first, render(t, again))
}

func TestLoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x"}`), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	_, err = doc.Apply(primaryMap(exports.Condition{Name: exports.CondImport, Path: "./dist/index.js"}))
	require.NoError(t, err)
	require.NoError(t, doc.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, render(t, doc), string(data))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.True(t, os.IsNotExist(err))
}
