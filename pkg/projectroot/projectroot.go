// Package projectroot locates the package that owns a working directory.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fulmenhq/exportsync/pkg/manifest"
)

// ErrNotFound is returned when no ancestor holds a package manifest.
var ErrNotFound = errors.New("project root not found")

// Find walks upward from start until a directory containing package.json
// is found. The returned path is absolute.
func Find(start string) (string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		if st, err := os.Stat(filepath.Join(current, manifest.FileName)); err == nil && !st.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", fmt.Errorf("%w: no %s above %s", ErrNotFound, manifest.FileName, start)
}
