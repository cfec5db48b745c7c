package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phenax/esbuild-plugin-elm/internal/adapters/fs"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
	}
}

func TestResolver_ResolveInputs_Success(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.js", "b.js", "Main.elm")

	resolver := fs.NewResolver()

	resolved, err := resolver.ResolveInputs([]string{"*.js"}, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a.js"),
		filepath.Join(tmpDir, "b.js"),
	}, resolved)
}

func TestResolver_ResolveInputs_AbsolutePattern(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "src/index.js")

	resolver := fs.NewResolver()

	resolved, err := resolver.ResolveInputs([]string{filepath.Join(tmpDir, "src", "*.js")}, "/elsewhere")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "src", "index.js")}, resolved)
}

func TestResolver_ResolveInputs_GlobError(t *testing.T) {
	tmpDir := t.TempDir()
	resolver := fs.NewResolver()

	// Malformed glob pattern
	_, err := resolver.ResolveInputs([]string{"["}, tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to glob path")
}

func TestResolver_ResolveInputs_NoMatches(t *testing.T) {
	tmpDir := t.TempDir()
	resolver := fs.NewResolver()

	_, err := resolver.ResolveInputs([]string{"*.nonexistent"}, tmpDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestResolver_ResolveInputs_Deduplication(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "index.js")

	resolver := fs.NewResolver()

	resolved, err := resolver.ResolveInputs([]string{"index.js", "*.js", "index.js"}, tmpDir)
	require.NoError(t, err)

	assert.Len(t, resolved, 1)
	assert.Contains(t, resolved[0], "index.js")
}

func TestResolver_ResolveInputs_Sorting(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "z.js", "a.js", "m.js")

	resolver := fs.NewResolver()

	resolved, err := resolver.ResolveInputs([]string{"*.js"}, tmpDir)
	require.NoError(t, err)

	assert.Len(t, resolved, 3)
	assert.Contains(t, resolved[0], "a.js")
	assert.Contains(t, resolved[1], "m.js")
	assert.Contains(t, resolved[2], "z.js")
}
