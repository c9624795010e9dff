package exports

import (
	"fmt"
	"path"
	"strings"

	"github.com/fulmenhq/exportsync/pkg/vfs"
)

// componentStyleInclude are the files considered next to a component entry.
var componentStyleInclude = []string{"*.scss", "*.sass", "*.css"}

// componentStyleExclude drops CSS-module files, which are scoped to their
// component and not importable on their own.
var componentStyleExclude = []string{"*.module.css", "*.module.scss", "*.module.sass"}

// addDistStylesheets lists stylesheet files under dist/ recursively, adds
// the alias subpath when a conventional file exists and then one subpath per
// file.
func addDistStylesheets(fsys vfs.FS, out *Map, opts Options) error {
	dist := opts.distDir()
	globs := extensionGlobs(opts.CSS.Extensions)
	if len(globs) == 0 {
		return nil
	}
	files, err := vfs.ListFiles(fsys, dist, vfs.ListOptions{
		Include: globs,
		Skip:    opts.Ignore,
	})
	if err != nil {
		return fmt.Errorf("list stylesheets in %s: %w", dist, err)
	}
	if len(files) == 0 {
		return nil
	}

	if opts.CSS.AliasEnabled && opts.CSS.Alias != "" {
		if target, ok := aliasTarget(files, opts.PackageBase()); ok {
			out.Set(opts.CSS.Alias, PathTarget(distRef(dist, target)))
		}
	}

	for _, rel := range files {
		ref := distRef(dist, rel)
		key := "./" + rel
		if isPreprocessor(rel) {
			out.Set(key, ConditionsTarget(Conditions{{Name: CondSass, Path: ref}}))
			continue
		}
		out.Set(key, PathTarget(ref))
	}
	return nil
}

// aliasTarget picks the alias file in priority order: style.css, then
// <package>.css, then index.css. A file at the dist root wins over a nested
// file of the same name.
func aliasTarget(files []string, pkgBase string) (string, bool) {
	candidates := []string{"style.css"}
	if pkgBase != "" {
		candidates = append(candidates, pkgBase+".css")
	}
	candidates = append(candidates, "index.css")

	for _, want := range candidates {
		for _, f := range files {
			if f == want {
				return f, true
			}
		}
		for _, f := range files {
			if path.Base(f) == want {
				return f, true
			}
		}
	}
	return "", false
}

// ComponentStyles holds the stylesheets found next to one component.
type ComponentStyles struct {
	// Sass and Style are project-relative paths, empty when absent.
	Sass  string
	Style string
}

// findComponentStyles looks directly inside dir (project-relative) for one
// preprocessor and one plain stylesheet, skipping CSS-module files.
func findComponentStyles(fsys vfs.FS, dir string, opts Options) (ComponentStyles, error) {
	var styles ComponentStyles
	files, err := vfs.ListFiles(fsys, dir, vfs.ListOptions{
		Include: componentStyleInclude,
		Exclude: componentStyleExclude,
		Skip:    opts.Ignore,
	})
	if err != nil {
		return styles, fmt.Errorf("list stylesheets in %s: %w", dir, err)
	}

	for _, f := range files {
		full := vfs.Join(dir, f)
		switch {
		case isPreprocessor(f):
			if styles.Sass == "" {
				styles.Sass = full
			}
		case strings.EqualFold(path.Ext(f), ".css"):
			if styles.Style == "" {
				styles.Style = full
			}
		}
	}
	return styles, nil
}

func isPreprocessor(name string) bool {
	return preprocessorExtensions[strings.ToLower(path.Ext(name))]
}

func extensionGlobs(exts []string) []string {
	globs := make([]string, 0, len(exts))
	for _, e := range exts {
		if e = NormalizeExtension(e); e != "" {
			globs = append(globs, "**/*"+e)
		}
	}
	return globs
}
