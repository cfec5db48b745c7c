package elm_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/phenax/esbuild-plugin-elm/internal/adapters/elm"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExecutable(t *testing.T, path, script string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(script), 0o700)) //nolint:gosec // Test executable
}

func notFound(string) (string, error) {
	return "", exec.ErrNotFound
}

func TestLocator_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	writeExecutable(t, filepath.Join(tmpDir, "bin", "elm"), "#!/bin/sh\n")

	locator := elm.NewLocatorWithLookPath(notFound)

	path, err := locator.Locate("bin/elm", tmpDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "bin", "elm"), path)
}

func TestLocator_ExplicitPathMissing(t *testing.T) {
	tmpDir := t.TempDir()
	// Present on PATH, but the explicit path wins and fails.
	locator := elm.NewLocatorWithLookPath(func(string) (string, error) { return "/usr/bin/elm", nil })

	_, err := locator.Locate("./node_modules/.bin/elm", tmpDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExecutableNotFound)
}

func TestLocator_ExplicitPathNotExecutable(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "elm"), []byte("data"), 0o600))

	locator := elm.NewLocatorWithLookPath(notFound)

	_, err := locator.Locate("elm", tmpDir)
	assert.ErrorIs(t, err, domain.ErrExecutableNotFound)
}

func TestLocator_NodeModulesUpward(t *testing.T) {
	tmpDir := t.TempDir()
	bin := filepath.Join(tmpDir, "node_modules", ".bin", "elm")
	writeExecutable(t, bin, "#!/bin/sh\n")
	cwd := filepath.Join(tmpDir, "packages", "web")
	require.NoError(t, os.MkdirAll(cwd, 0o750))

	locator := elm.NewLocatorWithLookPath(notFound)

	path, err := locator.Locate("", cwd)
	require.NoError(t, err)
	assert.Equal(t, bin, path)
}

func TestLocator_FallsBackToPath(t *testing.T) {
	tmpDir := t.TempDir()
	locator := elm.NewLocatorWithLookPath(func(name string) (string, error) {
		assert.Equal(t, "elm", name)
		return "/opt/elm/bin/elm", nil
	})

	path, err := locator.Locate("", tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/opt/elm/bin/elm", path)
}

func TestLocator_NotFound(t *testing.T) {
	locator := elm.NewLocatorWithLookPath(notFound)

	_, err := locator.Locate("", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExecutableNotFound)
}

func TestLocator_LookPathError(t *testing.T) {
	boom := errors.New("permission denied")
	locator := elm.NewLocatorWithLookPath(func(string) (string, error) { return "", boom })

	_, err := locator.Locate("", t.TempDir())
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrExecutableNotFound)
}
