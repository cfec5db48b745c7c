package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// skipDirs are directories never descended into.
var skipDirs = []string{".git", ".jj", "node_modules", "elm-stuff"}

// Walker walks source trees.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkDirs yields root and every directory below it, skipping VCS and
// artifact directories and any directory whose absolute path is in ignore.
func (w *Walker) WalkDirs(root string, ignore []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Keep walking past unreadable directories.
				return nil //nolint:nilerr // Intentional
			}
			if !d.IsDir() {
				return nil
			}
			if w.shouldSkip(path, d.Name(), ignore) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// ShouldSkip reports whether events under path should be ignored.
func (w *Walker) ShouldSkip(path string, ignore []string) bool {
	for dir := path; ; {
		if w.shouldSkip(dir, filepath.Base(dir), ignore) {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

func (w *Walker) shouldSkip(path, name string, ignore []string) bool {
	if slices.Contains(skipDirs, name) {
		return true
	}
	return slices.Contains(ignore, filepath.Clean(path))
}
