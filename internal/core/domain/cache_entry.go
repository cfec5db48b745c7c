package domain

// DependencyRecord tracks the last observed fingerprint of one dependency.
type DependencyRecord struct {
	Fingerprint Fingerprint
}

// CacheEntry is the cached compilation state of one main module.
type CacheEntry struct {
	// InputFingerprint is the main module's fingerprint at the last successful compile.
	InputFingerprint Fingerprint
	// Output is the compiled JavaScript from the last successful compile.
	Output string
	// Dependencies maps every transitively imported module to its record.
	Dependencies map[ModulePath]*DependencyRecord
}

// NewCacheEntry returns an empty entry that always misses on its first check.
func NewCacheEntry() *CacheEntry {
	return &CacheEntry{
		Dependencies: make(map[ModulePath]*DependencyRecord),
	}
}

// SnapshotEntry is the serialized form of a CacheEntry.
type SnapshotEntry struct {
	Path             string                 `msgpack:"path"`
	InputFingerprint Fingerprint            `msgpack:"input"`
	Output           string                 `msgpack:"output"`
	Dependencies     map[string]Fingerprint `msgpack:"deps"`
}

// Snapshot is the persisted state of a compilation cache.
type Snapshot struct {
	Schema  uint16          `msgpack:"schema"`
	Entries []SnapshotEntry `msgpack:"entries"`
}

// SnapshotSchemaVersion is bumped whenever the Snapshot layout changes.
const SnapshotSchemaVersion uint16 = 1
