package app_test

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phenax/esbuild-plugin-elm/internal/adapters/fs"
	"github.com/phenax/esbuild-plugin-elm/internal/adapters/watcher"
	"github.com/phenax/esbuild-plugin-elm/internal/app"
	"github.com/phenax/esbuild-plugin-elm/internal/core/domain"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports"
	"github.com/phenax/esbuild-plugin-elm/internal/core/ports/mocks"
	"github.com/phenax/esbuild-plugin-elm/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	dir      string
	mainPath string
	compiles atomic.Int32
	loader   *mocks.MockConfigLoader
	resolver *mocks.MockInputResolver
	compiler *mocks.MockCompiler
	logger   *mocks.MockLogger
	stderr   *bytes.Buffer
	plugins  plugin.Factory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	f := &fixture{
		dir:      dir,
		mainPath: filepath.Join(dir, "src", "Main.elm"),
		loader:   mocks.NewMockConfigLoader(ctrl),
		resolver: mocks.NewMockInputResolver(ctrl),
		compiler: mocks.NewMockCompiler(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		stderr:   &bytes.Buffer{},
	}

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o750))
	require.NoError(t, os.WriteFile(f.mainPath, []byte("module Main exposing (main)"), 0o600))
	index := "import { Elm } from './src/Main.elm';\nconsole.log(Elm.build);\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), []byte(index), 0o600))

	locator := mocks.NewMockExecutableLocator(ctrl)
	locator.EXPECT().Locate("", dir).Return("/usr/local/bin/elm", nil).AnyTimes()
	finder := mocks.NewMockDependencyFinder(ctrl)
	finder.EXPECT().FindAllDependencies(gomock.Any(), f.mainPath).Return(nil, nil).AnyTimes()

	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.plugins = func(ctx context.Context, opts domain.Options) (*plugin.Plugin, error) {
		return plugin.New(ctx, opts, plugin.Deps{
			Locator:       locator,
			Compiler:      f.compiler,
			Finder:        finder,
			Logger:        f.logger,
			Fingerprinter: fs.NewFingerprinter,
		})
	}
	return f
}

func (f *fixture) config() domain.BuildConfig {
	return domain.BuildConfig{
		Root:        f.dir,
		EntryPoints: []string{"index.js"},
		Outfile:     "dist/app.js",
		Elm:         domain.Options{Cwd: f.dir},
	}
}

func (f *fixture) compileOK() {
	f.compiler.EXPECT().Compile(gomock.Any(), f.mainPath, gomock.Any()).
		DoAndReturn(func(context.Context, string, domain.CompileOptions) (string, error) {
			n := f.compiles.Add(1)
			return fmt.Sprintf("export const Elm = { build: %q };", fmt.Sprintf("elm-build-%d", n)), nil
		}).AnyTimes()
}

func (f *fixture) app(watchers watcher.Factory) *app.App {
	return app.New(f.loader, f.resolver, f.plugins, watchers, f.logger).
		WithStderr(f.stderr).
		WithDebounceWindow(time.Millisecond)
}

func TestApp_Run_Build(t *testing.T) {
	f := newFixture(t)
	f.compileOK()
	f.loader.EXPECT().Load(".", "").Return(f.config(), nil)
	f.resolver.EXPECT().ResolveInputs([]string{"index.js"}, f.dir).
		Return([]string{filepath.Join(f.dir, "index.js")}, nil)

	err := f.app(nil).Run(context.Background(), app.RunOptions{})
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(f.dir, "dist", "app.js"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "elm-build-1")
	assert.Equal(t, int32(1), f.compiles.Load())
}

func TestApp_Run_OverrideApplies(t *testing.T) {
	f := newFixture(t)
	f.compileOK()
	f.loader.EXPECT().Load("project", "custom.yaml").Return(f.config(), nil)
	f.resolver.EXPECT().ResolveInputs(gomock.Any(), f.dir).
		Return([]string{filepath.Join(f.dir, "index.js")}, nil)

	err := f.app(nil).Run(context.Background(), app.RunOptions{
		Cwd:        "project",
		ConfigPath: "custom.yaml",
		Override: func(cfg *domain.BuildConfig) {
			cfg.Outfile = "public/main.js"
		},
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(f.dir, "public", "main.js"))
	assert.NoFileExists(t, filepath.Join(f.dir, "dist", "app.js"))
}

func TestApp_Run_CompileErrorFailsBuild(t *testing.T) {
	f := newFixture(t)
	f.compiler.EXPECT().Compile(gomock.Any(), f.mainPath, gomock.Any()).
		Return("", zerr.New("-- TYPE MISMATCH ---------- src/Main.elm"))
	f.logger.EXPECT().Warn(gomock.Any())
	f.loader.EXPECT().Load(".", "").Return(f.config(), nil)
	f.resolver.EXPECT().ResolveInputs(gomock.Any(), gomock.Any()).
		Return([]string{filepath.Join(f.dir, "index.js")}, nil)

	err := f.app(nil).Run(context.Background(), app.RunOptions{})

	require.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.Contains(t, f.stderr.String(), "TYPE MISMATCH")
	assert.NoFileExists(t, filepath.Join(f.dir, "dist", "app.js"))
}

func TestApp_Run_Errors(t *testing.T) {
	loadErr := zerr.Wrap(domain.ErrConfigNotFound, "explicit config file missing")

	tests := []struct {
		name  string
		setup func(f *fixture)
		want  error
	}{
		{
			name: "config",
			setup: func(f *fixture) {
				f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(domain.BuildConfig{}, loadErr)
			},
			want: domain.ErrConfigNotFound,
		},
		{
			name: "no entry points",
			setup: func(f *fixture) {
				f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(domain.BuildConfig{Root: f.dir}, nil)
			},
			want: domain.ErrNoEntryPoints,
		},
		{
			name: "unmatched entry",
			setup: func(f *fixture) {
				f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(f.config(), nil)
				f.resolver.EXPECT().ResolveInputs(gomock.Any(), gomock.Any()).
					Return(nil, zerr.Wrap(domain.ErrInputNotFound, "no files match"))
			},
			want: domain.ErrInputNotFound,
		},
		{
			name: "plugin options",
			setup: func(f *fixture) {
				cfg := f.config()
				cfg.Elm.Optimize = true
				cfg.Elm.Debug = true
				f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(cfg, nil)
				f.resolver.EXPECT().ResolveInputs(gomock.Any(), gomock.Any()).
					Return([]string{filepath.Join(f.dir, "index.js")}, nil)
			},
			want: domain.ErrOptimizeWithDebug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.app(nil).Run(context.Background(), app.RunOptions{})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

// fakeWatcher delivers events pushed by the test.
type fakeWatcher struct {
	events  chan ports.WatchEvent
	started chan struct{}
	root    string
	ignore  []string
	stopped atomic.Bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		events:  make(chan ports.WatchEvent, 10),
		started: make(chan struct{}),
	}
}

func (w *fakeWatcher) Start(ctx context.Context, root string, ignore []string) error {
	w.root = root
	w.ignore = ignore
	go func() {
		<-ctx.Done()
		close(w.events)
	}()
	close(w.started)
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.stopped.Store(true)
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func TestApp_Run_Watch(t *testing.T) {
	f := newFixture(t)
	f.compileOK()
	cfg := f.config()
	cfg.Watch = true
	f.loader.EXPECT().Load(".", "").Return(cfg, nil)
	f.resolver.EXPECT().ResolveInputs(gomock.Any(), gomock.Any()).
		Return([]string{filepath.Join(f.dir, "index.js")}, nil)

	fw := newFakeWatcher()
	watchers := func() (ports.Watcher, error) { return fw, nil }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- f.app(watchers).Run(ctx, app.RunOptions{})
	}()

	select {
	case <-fw.started:
	case err := <-done:
		t.Fatalf("watch exited early: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("watcher never started")
	}

	outfile := filepath.Join(f.dir, "dist", "app.js")
	assert.Equal(t, f.dir, fw.root)
	assert.Contains(t, fw.ignore, outfile)
	assert.Equal(t, int32(1), f.compiles.Load())

	// An event for an untouched file rebuilds from the cache.
	fw.events <- ports.WatchEvent{Path: filepath.Join(f.dir, "index.js"), Operation: ports.OpWrite}
	require.Eventually(t, func() bool {
		out, err := os.ReadFile(outfile)
		return err == nil && bytes.Contains(out, []byte("elm-build-1"))
	}, 10*time.Second, 10*time.Millisecond)

	// Editing the module recompiles it.
	require.NoError(t, os.WriteFile(f.mainPath, []byte("module Main exposing (main, view)"), 0o600))
	fw.events <- ports.WatchEvent{Path: f.mainPath, Operation: ports.OpWrite}
	require.Eventually(t, func() bool {
		out, err := os.ReadFile(outfile)
		return err == nil && bytes.Contains(out, []byte("elm-build-2"))
	}, 10*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.True(t, fw.stopped.Load())
}

func TestApp_ConfigureLogging(t *testing.T) {
	rec := &recordingLogger{}
	a := app.New(nil, nil, nil, nil, rec)

	a.ConfigureLogging(true, true)

	assert.True(t, rec.json)
	assert.True(t, rec.verbose)
}

type recordingLogger struct {
	json, verbose bool
}

func (l *recordingLogger) SetJSON(enable bool)    { l.json = enable }
func (l *recordingLogger) SetVerbose(enable bool) { l.verbose = enable }
func (l *recordingLogger) Debug(string)           {}
func (l *recordingLogger) Info(string)            {}
func (l *recordingLogger) Warn(string)            {}
func (l *recordingLogger) Error(error)            {}
