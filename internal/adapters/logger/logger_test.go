package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/phenax/esbuild-plugin-elm/internal/adapters/logger"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	lg.Info("building")
	lg.Warn("slow")

	g := goldie.New(t)
	g.Assert(t, "levels", buf.Bytes())
}

func TestLogger_SetVerbose(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetVerbose(true)
	lg.Debug("elm: cache hit /src/Main.elm")
	lg.SetVerbose(false)
	lg.Debug("not shown")

	assert.Equal(t, "· elm: cache hit /src/Main.elm\n", buf.String())
}

func TestLogger_Error_Chain(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "single zerr error",
			err:        zerr.New("elm executable not found"),
			goldenName: "error_single",
		},
		{
			name: "wrapped with metadata",
			err: zerr.With(
				zerr.Wrap(errors.New("exit status 1"), "failed to compile"),
				"module", "/src/Main.elm",
			),
			goldenName: "error_chain_metadata",
		},
		{
			name: "multiline diagnostic",
			err: zerr.With(
				zerr.New("-- TYPE MISMATCH --- src/Main.elm\n\nThe 1st argument to `text` is not what I expect"),
				"exit_code", 1,
			),
			goldenName: "error_multiline",
		},
		{
			name: "zerr.With on a standard error",
			err: zerr.With(
				zerr.Wrap(
					zerr.With(errors.New("permission denied"), "path", "/cache/elm-1.mp"),
					"failed to save cache snapshot",
				),
				"dir", "/cache",
			),
			goldenName: "error_folded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_StdlibChain(t *testing.T) {
	// fmt.Errorf chains are printed as a single message
	inner := errors.New("no such file or directory")
	outer := fmt.Errorf("failed to read elm.json: %w", inner)

	lg, buf := newTestLogger(t)
	lg.Error(outer)

	assert.Equal(t, "✗ Error: failed to read elm.json: no such file or directory\n", buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String(), "Expected no output for nil error")
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.With(zerr.Wrap(errors.New("exit status 1"), "failed to compile"), "module", "Main.elm"))

	output := buf.String()
	assert.Contains(t, output, `"level":"ERROR"`)
	assert.Contains(t, output, `"error"`)
	assert.Contains(t, output, "failed to compile")
	assert.Contains(t, output, "Main.elm")
	assert.NotContains(t, output, "✗", "JSON format should not have pretty markers")
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetJSON(true)
	lg.Info("json line")
	lg.SetJSON(false)
	lg.Info("pretty line")

	output := buf.String()
	assert.Contains(t, output, `"msg":"json line"`)
	assert.Contains(t, output, "pretty line\n")
}

func TestLogger_SetVerboseSurvivesFormatSwitch(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetVerbose(true)
	lg.SetJSON(true)
	lg.Debug("still visible")

	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}
