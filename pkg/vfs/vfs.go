// Package vfs is the filesystem capability the export synthesizers run
// against. Paths are slash-separated and relative to the filesystem root
// (the project directory). The default implementation sits on go-billy, so
// tests can swap the OS for an in-memory filesystem.
package vfs

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name string
	Dir  bool
}

// WalkFunc is called for every file and directory under a walk root.
// Returning filepath.SkipDir from a directory skips its contents.
type WalkFunc func(name string, isDir bool) error

// FS is the read-only capability needed by export synthesis.
type FS interface {
	// Exists reports whether name exists. Errors other than "not exist"
	// also resolve to false.
	Exists(name string) bool
	// IsDir reports whether name exists and is a directory.
	IsDir(name string) bool
	// ReadDir lists the immediate children of name sorted by name.
	ReadDir(name string) ([]Entry, error)
	// Walk visits root and everything below it in lexical order.
	Walk(root string, fn WalkFunc) error
}

// BillyFS adapts a billy.Filesystem to FS.
type BillyFS struct {
	fs billy.Filesystem
}

// New wraps an existing billy filesystem.
func New(fs billy.Filesystem) *BillyFS {
	return &BillyFS{fs: fs}
}

// OS returns a filesystem rooted at dir on the host.
func OS(dir string) *BillyFS {
	return New(osfs.New(dir))
}

// Memory returns an empty in-memory filesystem.
func Memory() *BillyFS {
	return New(memfs.New())
}

// Billy exposes the underlying filesystem.
func (b *BillyFS) Billy() billy.Filesystem {
	return b.fs
}

func (b *BillyFS) Exists(name string) bool {
	_, err := b.fs.Stat(native(name))
	return err == nil
}

func (b *BillyFS) IsDir(name string) bool {
	st, err := b.fs.Stat(native(name))
	return err == nil && st.IsDir()
}

func (b *BillyFS) ReadDir(name string) ([]Entry, error) {
	infos, err := b.fs.ReadDir(native(name))
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		out = append(out, Entry{Name: fi.Name(), Dir: fi.IsDir()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (b *BillyFS) Walk(root string, fn WalkFunc) error {
	return util.Walk(b.fs, native(root), func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		return fn(Clean(filepath.ToSlash(p)), info.IsDir())
	})
}

// WriteFile creates name and any missing parents. Used to seed fixtures.
func (b *BillyFS) WriteFile(name string, data []byte) error {
	if dir := path.Dir(Clean(name)); dir != "." {
		if err := b.fs.MkdirAll(native(dir), 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(b.fs, native(name), data, 0o644)
}

// MkdirAll creates a directory and its parents.
func (b *BillyFS) MkdirAll(name string) error {
	return b.fs.MkdirAll(native(name), 0o755)
}

// Clean normalizes a slash path: no leading "./", no trailing slash, "."
// for the root.
func Clean(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

// IsNotExist reports whether err means a missing file or directory.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func native(p string) string {
	return filepath.FromSlash(Clean(p))
}
