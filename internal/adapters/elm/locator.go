// Package elm adapts the elm toolchain: locating the executable, compiling
// modules and discovering their imports.
package elm

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ExecutableLocator = (*Locator)(nil)

const executableName = "elm"

// Locator finds the elm executable.
type Locator struct {
	lookPath func(string) (string, error)
}

// NewLocator creates a Locator that falls back to the process PATH.
func NewLocator() *Locator {
	return &Locator{lookPath: exec.LookPath}
}

// Locate returns the absolute path of the elm executable. An explicit
// pathToElm, relative to cwd, must point at an executable. Otherwise
// node_modules/.bin/elm is searched from cwd upward, then PATH.
func (l *Locator) Locate(pathToElm, cwd string) (string, error) {
	if pathToElm != "" {
		path := pathToElm
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if err := findExecutable(path); err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrExecutableNotFound, err.Error()), "path", path)
		}
		return filepath.Clean(path), nil
	}

	for dir := filepath.Clean(cwd); ; {
		candidate := filepath.Join(dir, "node_modules", ".bin", executableName)
		if findExecutable(candidate) == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	path, err := l.lookPath(executableName)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", zerr.With(zerr.Wrap(domain.ErrExecutableNotFound, "install elm or set pathToElm"), "cwd", cwd)
		}
		return "", zerr.Wrap(err, "failed to search PATH for elm")
	}
	return path, nil
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
