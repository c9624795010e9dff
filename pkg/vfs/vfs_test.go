package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, files ...string) *BillyFS {
	t.Helper()
	fs := Memory()
	for _, f := range files {
		require.NoError(t, fs.WriteFile(f, []byte("x")))
	}
	return fs
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"":               ".",
		".":              ".",
		"./dist":         "dist",
		"dist/":          "dist",
		"dist//types/.":  "dist/types",
		"lib/../dist/x":  "dist/x",
		`dist\style.css`: filepath.ToSlash(`dist\style.css`),
	}
	for in, want := range tests {
		assert.Equal(t, want, Clean(in), "Clean(%q)", in)
	}
}

func TestBillyFSExistsAndIsDir(t *testing.T) {
	fs := seed(t, "dist/index.js", "dist/types/index.d.ts")

	assert.True(t, fs.Exists("dist/index.js"))
	assert.True(t, fs.Exists("./dist/types/index.d.ts"))
	assert.False(t, fs.Exists("dist/index.cjs"))

	assert.True(t, fs.IsDir("dist"))
	assert.True(t, fs.IsDir("dist/types"))
	assert.False(t, fs.IsDir("dist/index.js"))
	assert.False(t, fs.IsDir("missing"))
}

func TestBillyFSReadDirSorted(t *testing.T) {
	fs := seed(t, "dist/b.js", "dist/a.js", "dist/types/a.d.ts")

	entries, err := fs.ReadDir("dist")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "a.js"},
		{Name: "b.js"},
		{Name: "types", Dir: true},
	}, entries)

	_, err = fs.ReadDir("nope")
	assert.Error(t, err)
}

func TestListFilesRecursive(t *testing.T) {
	fs := seed(t,
		"dist/index.js",
		"dist/style.css",
		"dist/assets/theme.css",
		"dist/assets/theme.scss",
	)

	files, err := ListFiles(fs, "dist", ListOptions{Include: []string{"**/*.css"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/theme.css", "style.css"}, files)
}

func TestListFilesShallowWithExclude(t *testing.T) {
	fs := seed(t,
		"lib/button/_button.scss",
		"lib/button/button.css",
		"lib/button/button.module.css",
		"lib/button/nested/deep.css",
	)

	files, err := ListFiles(fs, "lib/button", ListOptions{
		Include: []string{"*.scss", "*.css"},
		Exclude: []string{"*.module.css", "*.module.scss"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"_button.scss", "button.css"}, files)
}

func TestListFilesSkip(t *testing.T) {
	fs := seed(t, "dist/a.css", "dist/vendor/b.css", "dist/c.css")

	files, err := ListFiles(fs, "dist", ListOptions{
		Include: []string{"**/*.css"},
		Skip: func(name string, isDir bool) bool {
			return name == "dist/vendor" || name == "dist/c.css"
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.css"}, files)
}

func TestListFilesMissingBase(t *testing.T) {
	files, err := ListFiles(Memory(), "dist", ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOSFilesystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist", "types"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist", "index.js"), nil, 0o644))

	fs := OS(dir)
	assert.True(t, fs.IsDir("dist"))
	assert.True(t, fs.Exists("dist/index.js"))

	var seen []string
	require.NoError(t, fs.Walk("dist", func(name string, isDir bool) error {
		seen = append(seen, name)
		return nil
	}))
	assert.Equal(t, []string{"dist", "dist/index.js", "dist/types"}, seen)
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("style.css", []string{"**/*.css"}))
	assert.True(t, Matches("a/b/style.css", []string{"**/*.css"}))
	assert.False(t, Matches("a/style.css", []string{"*.css"}))
	assert.True(t, Matches("x.module.css", []string{"*.module.css"}))
	assert.False(t, Matches("x.css", nil))
}

func TestIsNotExist(t *testing.T) {
	_, err := Memory().ReadDir("missing")
	assert.True(t, IsNotExist(err))
}
