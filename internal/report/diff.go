package report

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// DiffContext is the number of context lines around each hunk.
const DiffContext = 3

// Diff returns a unified diff of a manifest before and after patching, or
// "" when the two are identical.
func Diff(name string, before, after []byte) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(before)),
		B:        splitLinesKeepNL(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  DiffContext,
	}
	return difflib.GetUnifiedDiffString(u)
}

// splitLinesKeepNL splits s into lines, keeping the trailing newline on each.
// A final line without a newline gets one so hunks stay well-formed.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
