package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/phenax/esbuild-plugin-elm/internal/adapters/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalker_WalkDirs(t *testing.T) {
	// tmp/
	//   .git/
	//   elm-stuff/0.19.1/
	//   node_modules/elm/
	//   dist/
	//   src/Page/
	tmpDir := t.TempDir()
	for _, dir := range []string{".git", "elm-stuff/0.19.1", "node_modules/elm", "dist", "src/Page"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, dir), 0o750))
	}
	writeFiles(t, tmpDir, "src/Main.elm")

	walker := fs.NewWalker()
	dirs := slices.Collect(walker.WalkDirs(tmpDir, []string{filepath.Join(tmpDir, "dist")}))

	assert.ElementsMatch(t, []string{
		tmpDir,
		filepath.Join(tmpDir, "src"),
		filepath.Join(tmpDir, "src", "Page"),
	}, dirs)
}

func TestWalker_WalkDirs_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "a", "b"), 0o750))

	walker := fs.NewWalker()
	count := 0
	for range walker.WalkDirs(tmpDir, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestWalker_ShouldSkip(t *testing.T) {
	walker := fs.NewWalker()
	ignore := []string{"/project/dist"}

	assert.True(t, walker.ShouldSkip("/project/elm-stuff/0.19.1/i.dat", ignore))
	assert.True(t, walker.ShouldSkip("/project/.git/index", ignore))
	assert.True(t, walker.ShouldSkip("/project/dist/main.js", ignore))
	assert.False(t, walker.ShouldSkip("/project/src/Main.elm", ignore))
	assert.False(t, walker.ShouldSkip("/project/distribution/Main.elm", ignore))
}
