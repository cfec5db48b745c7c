package domain

import (
	"path/filepath"
	"unique"
)

// ModulePath is a normalized absolute path to a source module.
// Paths are interned since every module path is repeated across many cache
// entries' dependency tables.
type ModulePath struct {
	h unique.Handle[string]
}

// NewModulePath joins base and ref and normalizes the result.
// An absolute ref ignores base.
func NewModulePath(base, ref string) ModulePath {
	p := ref
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, ref)
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return ModulePath{h: unique.Make(filepath.Clean(p))}
}

// ModulePathOf normalizes an already resolved path.
func ModulePathOf(path string) ModulePath {
	return NewModulePath("", path)
}

// String returns the underlying path.
func (p ModulePath) String() string {
	var zero unique.Handle[string]
	if p.h == zero {
		return ""
	}
	return p.h.Value()
}

// IsZero reports whether the path is unset.
func (p ModulePath) IsZero() bool {
	var zero unique.Handle[string]
	return p.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (p ModulePath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ModulePath) UnmarshalText(text []byte) error {
	*p = ModulePathOf(string(text))
	return nil
}
