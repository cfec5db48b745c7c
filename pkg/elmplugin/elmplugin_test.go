package elmplugin_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/pkg/elmplugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeElm records each invocation in calls.log next to itself.
const fakeElm = `#!/bin/sh
echo "$2" >> "$(dirname "$0")/calls.log"
for arg in "$@"; do
  case "$arg" in
    --output=*) out="${arg#--output=}" ;;
  esac
done
printf 'export const Elm = { page: "home" };' > "$out"
`

func write(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

func TestNew_BuildAndRebuild(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "bin", "elm"), fakeElm, 0o700) //nolint:gosec // test executable
	write(t, filepath.Join(dir, "elm.json"), `{"type": "application", "source-directories": ["src"]}`, 0o600)
	write(t, filepath.Join(dir, "src", "Main.elm"), "module Main exposing (main)\nimport Page\n", 0o600)
	write(t, filepath.Join(dir, "src", "Page.elm"), "module Page exposing (view)\n", 0o600)
	write(t, filepath.Join(dir, "index.js"), "import { Elm } from './src/Main.elm';\nconsole.log(Elm.page);\n", 0o600)

	plugin, err := elmplugin.New(elmplugin.Options{Cwd: dir, PathToElm: "bin/elm"})
	require.NoError(t, err)

	ctx, cerr := api.Context(api.BuildOptions{
		EntryPoints:   []string{filepath.Join(dir, "index.js")},
		Bundle:        true,
		Write:         false,
		LogLevel:      api.LogLevelSilent,
		AbsWorkingDir: dir,
		Plugins:       []api.Plugin{plugin},
	})
	require.Nil(t, cerr)
	defer ctx.Dispose()

	calls := func() int {
		data, err := os.ReadFile(filepath.Join(dir, "bin", "calls.log"))
		if err != nil {
			return 0
		}
		n := 0
		for _, b := range data {
			if b == '\n' {
				n++
			}
		}
		return n
	}

	first := ctx.Rebuild()
	require.Empty(t, first.Errors)
	require.Len(t, first.OutputFiles, 1)
	assert.Contains(t, string(first.OutputFiles[0].Contents), `page: "home"`)
	assert.Equal(t, 1, calls())

	second := ctx.Rebuild()
	require.Empty(t, second.Errors)
	assert.Equal(t, 1, calls(), "unchanged sources reuse the cached output")

	write(t, filepath.Join(dir, "src", "Page.elm"), "module Page exposing (view, title)\n", 0o600)
	third := ctx.Rebuild()
	require.Empty(t, third.Errors)
	assert.Equal(t, 2, calls(), "a changed dependency recompiles the main module")
}

func TestNew_RejectsOptimizeWithDebug(t *testing.T) {
	_, err := elmplugin.New(elmplugin.Options{Optimize: true, Debug: true})
	require.ErrorIs(t, err, domain.ErrOptimizeWithDebug)
}

func TestNew_MissingElm(t *testing.T) {
	_, err := elmplugin.New(elmplugin.Options{Cwd: t.TempDir(), PathToElm: "bin/elm"})
	require.ErrorIs(t, err, domain.ErrExecutableNotFound)
}
