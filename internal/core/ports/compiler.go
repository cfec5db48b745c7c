package ports

import (
	"context"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
)

// Compiler compiles an Elm main module to JavaScript.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile blocks until the compiler finishes and returns the generated JavaScript.
	// A failed compilation returns an error carrying the compiler's diagnostic text.
	Compile(ctx context.Context, path string, opts domain.CompileOptions) (string, error)
}

// DependencyFinder discovers the modules a main module transitively imports.
type DependencyFinder interface {
	// FindAllDependencies returns every local module imported by mainPath,
	// directly or transitively. The main module itself is excluded.
	FindAllDependencies(ctx context.Context, mainPath string) ([]string, error)
}

// ExecutableLocator finds the compiler binary.
type ExecutableLocator interface {
	// Locate returns the absolute path of the elm binary.
	// pathToElm may be empty, in which case well-known locations are searched.
	Locate(pathToElm, cwd string) (string, error)
}
