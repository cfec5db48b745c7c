package elm

import (
	"context"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyFinder = (*DependencyFinder)(nil)

var importDecl = regexp.MustCompile(`(?m)^import\s+([A-Z][A-Za-z0-9_]*(?:\.[A-Z][A-Za-z0-9_]*)*)`)

// manifest is the subset of elm.json needed to locate modules.
type manifest struct {
	Type              string   `json:"type"`
	SourceDirectories []string `json:"source-directories"`
}

// DependencyFinder discovers the local modules a main module imports,
// transitively, by scanning import declarations.
type DependencyFinder struct{}

// NewDependencyFinder creates a new DependencyFinder.
func NewDependencyFinder() *DependencyFinder {
	return &DependencyFinder{}
}

// FindAllDependencies returns the absolute paths of every local module
// transitively imported by mainPath, in discovery order. Imports with no
// file under a source directory belong to packages and are skipped.
func (f *DependencyFinder) FindAllDependencies(ctx context.Context, mainPath string) ([]string, error) {
	mainPath, err := filepath.Abs(mainPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve module path"), "path", mainPath)
	}

	sourceDirs, err := sourceDirectories(filepath.Dir(mainPath))
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{mainPath: true}
	var deps []string

	var visit func(path string) error
	visit = func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		imports, err := readImports(path)
		if err != nil {
			return err
		}

		for _, name := range imports {
			dep, ok := locateModule(sourceDirs, name)
			if !ok || visited[dep] {
				continue
			}
			visited[dep] = true
			deps = append(deps, dep)
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(mainPath); err != nil {
		return nil, err
	}
	return deps, nil
}

// sourceDirectories finds the nearest elm.json at or above dir and returns
// its source directories as absolute paths.
func sourceDirectories(dir string) ([]string, error) {
	for current := dir; ; {
		path := filepath.Join(current, domain.ElmJSONFileName)
		data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the module location
		if err == nil {
			return parseManifest(current, data)
		}
		if !errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(err, "failed to read elm.json"), "path", path)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, zerr.With(zerr.Wrap(domain.ErrElmJSONNotFound, "cannot discover dependencies"), "dir", dir)
		}
		current = parent
	}
}

func parseManifest(root string, data []byte) ([]string, error) {
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidElmJSON, err.Error()), "dir", root)
	}

	dirs := m.SourceDirectories
	if m.Type == "package" || len(dirs) == 0 {
		dirs = []string{"src"}
	}

	abs := make([]string, len(dirs))
	for i, d := range dirs {
		if filepath.IsAbs(d) {
			abs[i] = filepath.Clean(d)
		} else {
			abs[i] = filepath.Join(root, d)
		}
	}
	return abs, nil
}

// readImports returns the module names imported by the file at path.
func readImports(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from source directories
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read module"), "path", path)
	}

	matches := importDecl.FindAllSubmatch(stripComments(data), -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, string(m[1]))
	}
	return names, nil
}

// stripComments removes line comments and nested block comments from src.
// Newlines inside block comments are kept so declarations stay at the start
// of their lines.
func stripComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	depth := 0
	for i := 0; i < len(src); i++ {
		switch {
		case i+1 < len(src) && src[i] == '{' && src[i+1] == '-':
			depth++
			i++
		case depth > 0 && i+1 < len(src) && src[i] == '-' && src[i+1] == '}':
			depth--
			i++
		case depth > 0:
			if src[i] == '\n' {
				out = append(out, '\n')
			}
		case i+1 < len(src) && src[i] == '-' && src[i+1] == '-':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				out = append(out, '\n')
			}
		default:
			out = append(out, src[i])
		}
	}
	return out
}

// locateModule maps a dotted module name to a file under one of dirs.
func locateModule(dirs []string, name string) (string, bool) {
	rel := filepath.FromSlash(strings.ReplaceAll(name, ".", "/")) + ".elm"
	for _, dir := range dirs {
		candidate := filepath.Join(dir, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
