// Package cache implements the incremental compilation cache.
//
// An entry is created when a module is first resolved and lives for the
// lifetime of the Cache. Each load validates the module and every tracked
// dependency against the per-pass metadata table and reuses the stored
// output only when nothing changed.
package cache

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"go.trai.ch/zerr"
)

// Stats counts cache decisions. Misses counts successful recompiles only.
type Stats struct {
	Hits     int64
	Misses   int64
	Failures int64
}

// Sub returns the difference s - o.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		Hits:     s.Hits - o.Hits,
		Misses:   s.Misses - o.Misses,
		Failures: s.Failures - o.Failures,
	}
}

// entry guards one CacheEntry. Resolve and load for one module are
// serialized by the host; the lock makes that explicit.
type entry struct {
	mu    sync.Mutex
	state *domain.CacheEntry
}

// Cache maps main modules to their last successful compilation.
type Cache struct {
	reader   ports.MetadataReader
	compiler ports.Compiler
	logger   ports.Logger

	mu      sync.RWMutex
	entries map[domain.ModulePath]*entry

	hits     atomic.Int64
	misses   atomic.Int64
	failures atomic.Int64
}

// New creates an empty Cache.
func New(reader ports.MetadataReader, compiler ports.Compiler, logger ports.Logger) *Cache {
	return &Cache{
		reader:   reader,
		compiler: compiler,
		logger:   logger,
		entries:  make(map[domain.ModulePath]*entry),
	}
}

// entryFor returns the entry for path, creating an empty one if needed.
func (c *Cache) entryFor(path domain.ModulePath) *entry {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return e
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[path]; ok {
		return e
	}
	e = &entry{state: domain.NewCacheEntry()}
	c.entries[path] = e
	return e
}

// UpdateDependencies replaces the tracked dependency set of path with deps.
// Records for dependencies that are still imported keep their last known
// fingerprint; new ones start undefined; dropped ones are forgotten.
func (c *Cache) UpdateDependencies(path domain.ModulePath, deps []domain.ModulePath) {
	e := c.entryFor(path)

	e.mu.Lock()
	defer e.mu.Unlock()

	next := make(map[domain.ModulePath]*domain.DependencyRecord, len(deps))
	for _, dep := range deps {
		if rec, ok := e.state.Dependencies[dep]; ok {
			next[dep] = rec
			continue
		}
		next[dep] = &domain.DependencyRecord{}
	}
	e.state.Dependencies = next
}

// Check returns the compiled output of path, reusing the cached output when
// neither the module nor any tracked dependency changed. Every failure is
// returned as an error output and leaves the entry untouched.
func (c *Cache) Check(ctx context.Context, path domain.ModulePath, opts domain.CompileOptions) domain.CompileOutput {
	out, err := c.check(ctx, path, opts)
	if err != nil {
		c.failures.Add(1)
		c.logger.Debug(fmt.Sprintf("elm: failed %s", path))
		return domain.ErrorOutput(err)
	}
	return domain.OutputOf(out)
}

func (c *Cache) check(ctx context.Context, path domain.ModulePath, opts domain.CompileOptions) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrEntryNotCached, "cannot load unresolved module"), "module", path.String())
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := c.reader.Fingerprint(ctx, path)
	if err != nil {
		return "", err
	}

	// Every dependency is read even after the first change so the refreshed
	// table is complete when it is committed.
	changed := make(map[domain.ModulePath]domain.Fingerprint)
	for dep, rec := range e.state.Dependencies {
		fp, err := c.reader.Fingerprint(ctx, dep)
		if err != nil {
			return "", err
		}
		if fp != rec.Fingerprint {
			changed[dep] = fp
		}
	}

	if len(changed) == 0 && current == e.state.InputFingerprint {
		c.hits.Add(1)
		c.logger.Debug(fmt.Sprintf("elm: cache hit %s", path))
		return e.state.Output, nil
	}

	start := time.Now()
	out, err := c.compiler.Compile(ctx, path.String(), opts)
	if err != nil {
		return "", err
	}
	c.misses.Add(1)

	e.state.Output = out
	e.state.InputFingerprint = current
	for dep, fp := range changed {
		e.state.Dependencies[dep].Fingerprint = fp
	}

	c.logger.Debug(fmt.Sprintf("elm: compiled %s in %s (%d changed dependencies)",
		path, time.Since(start).Round(time.Millisecond), len(changed)))

	return out, nil
}

// Entry returns a copy of the entry for path.
func (c *Cache) Entry(path domain.ModulePath) (domain.CacheEntry, bool) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok {
		return domain.CacheEntry{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	deps := make(map[domain.ModulePath]*domain.DependencyRecord, len(e.state.Dependencies))
	for dep, rec := range e.state.Dependencies {
		deps[dep] = &domain.DependencyRecord{Fingerprint: rec.Fingerprint}
	}
	return domain.CacheEntry{
		InputFingerprint: e.state.InputFingerprint,
		Output:           e.state.Output,
		Dependencies:     deps,
	}, true
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cumulative counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Failures: c.failures.Load(),
	}
}

// Snapshot captures every entry that holds a successful compilation,
// ordered by path.
func (c *Cache) Snapshot() domain.Snapshot {
	c.mu.RLock()
	paths := slices.SortedFunc(maps.Keys(c.entries), func(a, b domain.ModulePath) int {
		return strings.Compare(a.String(), b.String())
	})
	entries := make([]*entry, len(paths))
	for i, p := range paths {
		entries[i] = c.entries[p]
	}
	c.mu.RUnlock()

	snap := domain.Snapshot{Schema: domain.SnapshotSchemaVersion}
	for i, e := range entries {
		e.mu.Lock()
		if e.state.InputFingerprint.IsDefined() {
			deps := make(map[string]domain.Fingerprint, len(e.state.Dependencies))
			for dep, rec := range e.state.Dependencies {
				deps[dep.String()] = rec.Fingerprint
			}
			snap.Entries = append(snap.Entries, domain.SnapshotEntry{
				Path:             paths[i].String(),
				InputFingerprint: e.state.InputFingerprint,
				Output:           e.state.Output,
				Dependencies:     deps,
			})
		}
		e.mu.Unlock()
	}
	return snap
}

// Restore seeds the cache from snap. Modules already known are left alone.
// It returns the number of restored entries.
func (c *Cache) Restore(snap domain.Snapshot) int {
	if snap.Schema != domain.SnapshotSchemaVersion {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	restored := 0
	for _, se := range snap.Entries {
		path := domain.ModulePathOf(se.Path)
		if _, exists := c.entries[path]; exists {
			continue
		}

		state := domain.NewCacheEntry()
		state.InputFingerprint = se.InputFingerprint
		state.Output = se.Output
		for dep, fp := range se.Dependencies {
			state.Dependencies[domain.ModulePathOf(dep)] = &domain.DependencyRecord{Fingerprint: fp}
		}
		c.entries[path] = &entry{state: state}
		restored++
	}
	return restored
}
