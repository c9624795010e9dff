package exports

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/fulmenhq/exportsync/pkg/vfs"
)

// SynthesizeComponents builds the export map for a named multi-entry build.
// root is the project directory on the host and is only used to relativize
// absolute entry paths; fsys must be rooted at the same directory.
func SynthesizeComponents(fsys vfs.FS, root string, entries []NamedEntry, opts Options) (*Map, error) {
	dist := opts.distDir()
	out := NewMap()

	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		srcDir := path.Dir(projectRelative(root, entry.Path))

		var conds Conditions
		// The build emitted the ESM file if it emitted anything.
		conds.Set(CondImport, distRef(dist, entry.Name+".js"))

		if cjs := entry.Name + ".cjs"; fsys.Exists(vfs.Join(dist, cjs)) {
			conds.Set(CondRequire, distRef(dist, cjs))
		}

		if opts.HandleTypes {
			if dts := vfs.Join("types", entry.Name+".d.ts"); fsys.Exists(vfs.Join(dist, dts)) {
				conds.Set(CondTypes, distRef(dist, dts))
			}
		}

		if opts.EnabledDevelopment {
			conds.Set(CondDevelopment, sourceRef(vfs.Join(srcDir, entry.Name)))
		}

		var styles ComponentStyles
		if opts.CSS.Enabled && !outsideRoot(srcDir) {
			var err error
			if styles, err = findComponentStyles(fsys, srcDir, opts); err != nil {
				return nil, err
			}
			if styles.Sass != "" {
				conds.Set(CondSass, sourceRef(styles.Sass))
			}
			if styles.Style != "" {
				conds.Set(CondStyle, sourceRef(styles.Style))
			}
		}

		if conds.Len() == 0 {
			continue
		}
		out.Set(SubpathFor(entry.Name), ConditionsTarget(conds))

		if styles.Style != "" {
			out.Set("./"+entry.Name+".css", PathTarget(sourceRef(styles.Style)))
		}
	}
	return out, nil
}

// projectRelative turns an entry path into a slash path relative to root.
func projectRelative(root, p string) string {
	if filepath.IsAbs(p) && root != "" {
		if rel, err := filepath.Rel(root, p); err == nil {
			return vfs.Clean(rel)
		}
	}
	return vfs.Clean(p)
}

func outsideRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, "../")
}

// sourceRef renders a project-relative path as a manifest path.
func sourceRef(rel string) string {
	if outsideRoot(rel) {
		return rel
	}
	return "./" + rel
}
