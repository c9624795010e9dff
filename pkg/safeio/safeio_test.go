package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainedPath(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "relative file", input: "package.json"},
		{name: "nested file", input: "dist/index.js"},
		{name: "absolute inside", input: filepath.Join(base, "package.json")},
		{name: "parent traversal", input: "../package.json", wantErr: true},
		{name: "nested traversal", input: "dist/../../x", wantErr: true},
		{name: "absolute outside", input: filepath.Dir(base), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContainedPath(base, tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrOutsideBase), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestReadFileContained(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "package.json"), []byte(`{"name":"x"}`), 0o644))

	data, err := ReadFileContained(base, "package.json")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x"}`, string(data))

	_, err = ReadFileContained(base, "../outside.json")
	assert.ErrorIs(t, err, ErrOutsideBase)

	_, err = ReadFileContained(base, "missing.json")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileAtomicNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")

	require.NoError(t, WriteFileAtomic(path, []byte("{}\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(content))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), st.Mode().Perm())
}

func TestWriteFileAtomicPreservesPerms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, WriteFileAtomic(path, []byte("new")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "package.json"), []byte("x"))
	assert.Error(t, err)
}
