// Package ignore provides gitignore-style filtering for stylesheet discovery
// using go-git's pattern matcher.
package ignore

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// FileName is the project-level ignore file read by NewMatcher.
const FileName = ".exportsyncignore"

// defaultPatterns are always applied, before the project file.
var defaultPatterns = []string{".git", "node_modules"}

// Matcher provides gitignore-based file filtering
type Matcher struct {
	matcher  gitignore.Matcher
	patterns []string
}

// NewMatcher creates a matcher from the default patterns plus the
// .exportsyncignore file at the root of fs, when present.
func NewMatcher(fs billy.Filesystem) (*Matcher, error) {
	lines := append([]string(nil), defaultPatterns...)

	f, err := fs.Open(FileName)
	if err == nil {
		defer func() { _ = f.Close() }()
		data, readErr := io.ReadAll(f)
		if readErr != nil {
			return nil, readErr
		}
		lines = append(lines, ParseLines(data)...)
	}

	return FromPatterns(lines), nil
}

// FromPatterns builds a matcher from raw gitignore lines.
func FromPatterns(lines []string) *Matcher {
	patterns := make([]gitignore.Pattern, 0, len(lines))
	for _, line := range lines {
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &Matcher{
		matcher:  gitignore.NewMatcher(patterns),
		patterns: lines,
	}
}

// ParseLines returns the non-empty, non-comment lines of an ignore file.
func ParseLines(content []byte) []string {
	var patterns []string
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// Patterns returns the effective pattern lines in evaluation order.
func (m *Matcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}

// Match reports whether a slash path relative to the project root is ignored.
func (m *Matcher) Match(path string, isDir bool) bool {
	if m == nil {
		return false
	}
	parts := splitPath(path)
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, isDir)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
