package exports

import (
	"github.com/fulmenhq/exportsync/pkg/vfs"
)

// SynthesizeFlat builds the export map for a flat dist/ layout. Each entry
// maps to <name>.js / <name>.cjs and a declaration file when they exist;
// entries with no existing file are left out. A single stylesheet pass over
// dist/ follows unless CSS is disabled.
func SynthesizeFlat(fsys vfs.FS, entries []string, opts Options) (*Map, error) {
	dist := opts.distDir()
	out := NewMap()

	for _, name := range entries {
		if conds := flatConditions(fsys, dist, name, opts.PackageBase()); conds.Len() > 0 {
			out.Set(SubpathFor(name), ConditionsTarget(conds))
		}
	}

	if opts.CSS.Enabled {
		if err := addDistStylesheets(fsys, out, opts); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func flatConditions(fsys vfs.FS, dist, name, pkgBase string) Conditions {
	jsFile := name + ".js"
	cjsFile := name + ".cjs"

	// Some bundlers name the single output after the package instead of index.
	if name == PrimaryEntry && pkgBase != "" && !fsys.Exists(vfs.Join(dist, jsFile)) {
		jsFile = pkgBase + ".js"
		cjsFile = pkgBase + ".cjs"
	}

	var conds Conditions
	if fsys.Exists(vfs.Join(dist, jsFile)) {
		conds.Set(CondImport, distRef(dist, jsFile))
	}
	if fsys.Exists(vfs.Join(dist, cjsFile)) {
		conds.Set(CondRequire, distRef(dist, cjsFile))
	}

	nested := vfs.Join("types", name+".d.ts")
	flat := name + ".d.ts"
	switch {
	case fsys.Exists(vfs.Join(dist, nested)):
		conds.Set(CondTypes, distRef(dist, nested))
	case fsys.Exists(vfs.Join(dist, flat)):
		conds.Set(CondTypes, distRef(dist, flat))
	}
	return conds
}

// distRef renders a dist-relative file as a manifest path ("./dist/x.js").
func distRef(dist, rel string) string {
	return "./" + vfs.Join(dist, rel)
}
