package elm

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler by running `elm make`.
type Compiler struct {
	logger ports.Logger
}

// NewCompiler creates a new Compiler.
func NewCompiler(logger ports.Logger) *Compiler {
	return &Compiler{logger: logger}
}

// Compile runs `elm make` on path and returns the generated JavaScript.
// On failure the error message is the compiler's diagnostic.
func (c *Compiler) Compile(ctx context.Context, path string, opts domain.CompileOptions) (string, error) {
	out, err := os.CreateTemp("", "esbuild-elm-*.js")
	if err != nil {
		return "", zerr.Wrap(err, "failed to create output file")
	}
	outPath := out.Name()
	_ = out.Close()
	defer os.Remove(outPath) //nolint:errcheck // Best effort cleanup

	cmd := exec.CommandContext(ctx, opts.PathToElm, makeArgs(path, outPath, opts)...) //nolint:gosec // user configured executable
	if opts.Cwd != "" {
		cmd.Dir = opts.Cwd
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if opts.Verbose {
		w := &logWriter{logger: c.logger}
		cmd.Stdout = w
		defer w.Flush()
	}

	if err := cmd.Run(); err != nil {
		var exitCode int
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1 // Unknown or signal
		}

		diagnostic := strings.TrimSpace(stderr.String())
		if diagnostic == "" {
			return "", zerr.With(zerr.With(zerr.Wrap(domain.ErrCompileFailed, err.Error()), "exit_code", exitCode), "path", path)
		}
		return "", zerr.With(zerr.With(zerr.New(diagnostic), "exit_code", exitCode), "path", path)
	}

	js, err := os.ReadFile(outPath) //nolint:gosec // Path is our own temp file
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read compiled output"), "path", path)
	}
	return string(js), nil
}

func makeArgs(path, output string, opts domain.CompileOptions) []string {
	args := []string{"make", path, "--output=" + output}
	if opts.Optimize {
		args = append(args, "--optimize")
	}
	if opts.Debug {
		args = append(args, "--debug")
	}
	return args
}

// logWriter forwards complete lines to the logger at debug level.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *logWriter) Flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func (w *logWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}
	w.logger.Debug(line)
}
