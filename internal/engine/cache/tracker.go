package cache

import (
	"context"
	"slices"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Tracker asks the compiler toolchain for a module's transitive imports.
// It never caches: import lists change between passes in watch mode.
type Tracker struct {
	finder ports.DependencyFinder
	group  singleflight.Group
}

// NewTracker creates a Tracker backed by finder.
func NewTracker(finder ports.DependencyFinder) *Tracker {
	return &Tracker{finder: finder}
}

// FindDependencies returns the normalized, de-duplicated dependencies of main,
// excluding main itself. Concurrent calls for the same module share one query.
func (t *Tracker) FindDependencies(ctx context.Context, main domain.ModulePath) ([]domain.ModulePath, error) {
	v, err, _ := t.group.Do(main.String(), func() (any, error) {
		raw, err := t.finder.FindAllDependencies(ctx, main.String())
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to find dependencies"), "module", main.String())
		}

		seen := make(map[domain.ModulePath]struct{}, len(raw))
		deps := make([]domain.ModulePath, 0, len(raw))
		for _, p := range raw {
			dep := domain.ModulePathOf(p)
			if dep == main {
				continue
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			deps = append(deps, dep)
		}
		return deps, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers sharing a flight must not share the backing array.
	return slices.Clone(v.([]domain.ModulePath)), nil
}
