package exports

import (
	"path"
	"sort"
	"strings"

	"github.com/fulmenhq/exportsync/pkg/vfs"
)

// DeclarationKind tells which shape the build entry configuration had.
type DeclarationKind int

const (
	// DeclNone means no usable entry configuration.
	DeclNone DeclarationKind = iota
	// DeclSingle is a single entry path.
	DeclSingle
	// DeclList is a list of entry paths.
	DeclList
	// DeclNamed is a name → path mapping; it selects component mode.
	DeclNamed
)

func (k DeclarationKind) String() string {
	switch k {
	case DeclSingle:
		return "single"
	case DeclList:
		return "list"
	case DeclNamed:
		return "named"
	default:
		return "none"
	}
}

// NamedEntry is one item of a name → path entry mapping.
type NamedEntry struct {
	Name string
	Path string
}

// Declaration is the build tool's declared entry configuration.
type Declaration struct {
	Kind  DeclarationKind
	Paths []string
	Named []NamedEntry
}

// SingleEntry declares one entry path.
func SingleEntry(p string) Declaration {
	return Declaration{Kind: DeclSingle, Paths: []string{p}}
}

// EntryList declares several entry paths.
func EntryList(paths ...string) Declaration {
	return Declaration{Kind: DeclList, Paths: paths}
}

// NamedEntries declares a name → path mapping in the given order.
func NamedEntries(entries ...NamedEntry) Declaration {
	return Declaration{Kind: DeclNamed, Named: entries}
}

// Names returns the entry names the declaration itself provides: mapping
// keys verbatim, or path basenames without their extension.
func (d Declaration) Names() []string {
	var names []string
	switch d.Kind {
	case DeclNamed:
		for _, e := range d.Named {
			names = append(names, e.Name)
		}
	case DeclSingle, DeclList:
		for _, p := range d.Paths {
			if p == "" {
				continue
			}
			base := path.Base(vfs.Clean(p))
			names = append(names, strings.TrimSuffix(base, path.Ext(base)))
		}
	}
	return unique(names)
}

// DiscoverEntries returns the ordered, de-duplicated entry names. Declared
// names win; otherwise the immediate files of distDir are matched against
// exts. A missing or empty distDir yields an empty result.
func DiscoverEntries(fsys vfs.FS, decl Declaration, distDir string, exts []string) []string {
	if names := decl.Names(); len(names) > 0 {
		return names
	}
	return ScanEntries(fsys, distDir, exts)
}

// ScanEntries lists distDir and strips recognized extensions, so index.js
// and index.d.ts both yield "index".
func ScanEntries(fsys vfs.FS, distDir string, exts []string) []string {
	entries, err := fsys.ReadDir(distDir)
	if err != nil {
		return nil
	}

	// longest first so ".d.ts" wins over ".ts"
	sorted := make([]string, 0, len(exts))
	for _, e := range exts {
		if e = NormalizeExtension(e); e != "" {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	var names []string
	for _, entry := range entries {
		if entry.Dir {
			continue
		}
		lower := strings.ToLower(entry.Name)
		for _, ext := range sorted {
			if strings.HasSuffix(lower, ext) && len(entry.Name) > len(ext) {
				names = append(names, entry.Name[:len(entry.Name)-len(ext)])
				break
			}
		}
	}
	return unique(names)
}

func unique(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
