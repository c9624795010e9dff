package vfs

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ListOptions filter ListFiles results.
type ListOptions struct {
	// Include patterns are doublestar globs matched against the path
	// relative to the listing base. Empty means every file.
	Include []string
	// Exclude patterns remove files that matched Include.
	Exclude []string
	// Skip, when set, is consulted with the path relative to the FS root.
	// A skipped directory is not descended into.
	Skip func(name string, isDir bool) bool
}

// ListFiles returns the files under base that pass opts, relative to base,
// sorted. A missing base yields an empty result, not an error.
func ListFiles(fsys FS, base string, opts ListOptions) ([]string, error) {
	base = Clean(base)
	if !fsys.IsDir(base) {
		return nil, nil
	}

	recursive := len(opts.Include) == 0
	for _, p := range opts.Include {
		if strings.Contains(p, "/") {
			recursive = true
			break
		}
	}

	var files []string
	err := fsys.Walk(base, func(name string, isDir bool) error {
		if name == base {
			return nil
		}
		if opts.Skip != nil && opts.Skip(name, isDir) {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}
		if isDir {
			if !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		rel := relTo(base, name)
		if shouldInclude(rel, opts.Include, opts.Exclude) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether rel matches any of patterns.
func Matches(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func shouldInclude(rel string, include, exclude []string) bool {
	if len(include) > 0 && !Matches(rel, include) {
		return false
	}
	return !Matches(rel, exclude)
}

func relTo(base, name string) string {
	if base == "." {
		return name
	}
	return strings.TrimPrefix(name, base+"/")
}

// Join joins slash path elements and cleans the result.
func Join(elem ...string) string {
	return Clean(path.Join(elem...))
}
