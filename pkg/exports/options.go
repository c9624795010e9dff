package exports

import "strings"

// DefaultDistDir is the build output directory relative to the project root.
const DefaultDistDir = "dist"

// DefaultAlias is the shorthand subpath pointed at the package stylesheet.
const DefaultAlias = "./style.css"

// DefaultEntryExtensions are the output extensions that count as entries
// when dist/ is scanned.
var DefaultEntryExtensions = []string{".js", ".cjs", ".mjs", ".d.ts"}

// DefaultStyleExtensions are the extensions treated as stylesheet assets by
// the flat stylesheet pass.
var DefaultStyleExtensions = []string{".css"}

// preprocessorExtensions get a single-condition set keyed by CondSass
// instead of a bare path.
var preprocessorExtensions = map[string]bool{".scss": true, ".sass": true}

// CSSOptions is the normalized stylesheet configuration.
type CSSOptions struct {
	// Enabled turns every stylesheet pass on or off.
	Enabled bool
	// AliasEnabled controls the shorthand subpath; Alias is its key.
	AliasEnabled bool
	Alias        string
	// Extensions selects stylesheet files in the flat pass.
	Extensions []string
}

// DefaultCSSOptions returns stylesheet discovery with the "./style.css"
// alias over plain .css files.
func DefaultCSSOptions() CSSOptions {
	return CSSOptions{
		Enabled:      true,
		AliasEnabled: true,
		Alias:        DefaultAlias,
		Extensions:   append([]string(nil), DefaultStyleExtensions...),
	}
}

// Options drive synthesis. Build them with DefaultOptions and override
// fields; the zero value disables stylesheets and uses no extensions.
type Options struct {
	// DistDir is the output directory relative to the project root.
	DistDir string
	// PackageName is the manifest "name", used for the primary-entry and
	// alias fallbacks.
	PackageName string
	// EntryExtensions are used by the dist/ scan in DiscoverEntries.
	EntryExtensions []string
	CSS             CSSOptions
	// HandleTypes enables the types condition in component mode.
	HandleTypes bool
	// EnabledDevelopment enables the development condition in component mode.
	EnabledDevelopment bool
	// Ignore, when set, hides stylesheet files from discovery. Paths are
	// relative to the project root.
	Ignore func(path string, isDir bool) bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DistDir:         DefaultDistDir,
		EntryExtensions: append([]string(nil), DefaultEntryExtensions...),
		CSS:             DefaultCSSOptions(),
	}
}

// PackageBase returns the last path segment of the package name, so
// "@scope/ui-kit" yields "ui-kit".
func (o Options) PackageBase() string {
	name := strings.TrimRight(o.PackageName, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (o Options) distDir() string {
	if o.DistDir == "" {
		return DefaultDistDir
	}
	return o.DistDir
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
