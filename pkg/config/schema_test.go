package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFileAccepts(t *testing.T) {
	tests := []struct {
		file string
		data string
	}{
		{"a.yaml", ""},
		{"a.yaml", "css: false\n"},
		{"a.yaml", "css:\n  alias: false\n  extensions: [.scss]\n"},
		{"a.json", `{"build":{"lib":{"entry":{"button":"lib/button/index.ts"}}},"handle_types":true}`},
		{"a.toml", "dist_dir = \"out\"\n[build.lib]\nentry = [\"src/a.ts\"]\n"},
		{"a.yaml", "modes:\n  production:\n    build:\n      lib:\n        entry: src/index.ts\n"},
	}
	for _, tt := range tests {
		t.Run(tt.file+":"+tt.data, func(t *testing.T) {
			assert.NoError(t, ValidateFile(tt.file, []byte(tt.data)))
		})
	}
}

func TestValidateFileRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"css true", "css: true\n"},
		{"alias empty", "css:\n  alias: ''\n"},
		{"unknown key", "mystery: 1\n"},
		{"entry number", "build:\n  lib:\n    entry: 3\n"},
		{"dist empty", "dist_dir: ''\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile("a.yaml", []byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidateUnparseable(t *testing.T) {
	err := ValidateFile("a.toml", []byte("= broken"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exportsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("handle_types: yes-please\n"), 0o644))

	err := Validate(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, path, verr.File)

	assert.Error(t, Validate(filepath.Join(t.TempDir(), "missing.yaml")))
}
