package domain

// Fingerprint identifies the observed state of a file.
// Fingerprints are only compared for equality. The zero value is undefined
// and never equals a fingerprint read from disk.
type Fingerprint string

// IsDefined reports whether the fingerprint was read from disk.
func (f Fingerprint) IsDefined() bool {
	return f != ""
}

// FingerprintStrategy selects how fingerprints are derived.
type FingerprintStrategy string

const (
	// FingerprintContent hashes the file contents.
	FingerprintContent FingerprintStrategy = "content"
	// FingerprintModTime combines the modification time and size.
	FingerprintModTime FingerprintStrategy = "mtime"
)
