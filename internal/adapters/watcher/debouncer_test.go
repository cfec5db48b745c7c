package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/phenax/esbuild-plugin-elm/internal/adapters/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_Add_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/project/src/Main.elm")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []string{"/project/src/Main.elm"}, receivedPaths)
	})
}

func TestDebouncer_Add_CoalescesAndSorts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/project/src/Util.elm")
		d.Add("/project/src/Main.elm")
		d.Add("/project/src/Util.elm")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []string{"/project/src/Main.elm", "/project/src/Util.elm"}, receivedPaths)
	})
}

func TestDebouncer_Add_ResetsWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			callCount++
		})

		d.Add("/project/src/Main.elm")
		time.Sleep(80 * time.Millisecond)
		d.Add("/project/src/Main.elm")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, 0, callCount, "window should restart on every Add")

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_SeparateBatches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var batches [][]string

		d := watcher.NewDebouncer(50*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, paths)
		})

		d.Add("/project/src/A.elm")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/project/src/B.elm")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, [][]string{{"/project/src/A.elm"}, {"/project/src/B.elm"}}, batches)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(time.Hour, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("/project/src/Main.elm")
		d.Flush()

		require.Equal(t, 1, callCount)
		assert.Equal(t, []string{"/project/src/Main.elm"}, receivedPaths)

		// The stopped timer must not fire a second time.
		time.Sleep(2 * time.Hour)
		synctest.Wait()

		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	var called bool
	d := watcher.NewDebouncer(time.Second, func([]string) { called = true })

	d.Flush()

	assert.False(t, called)
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var called bool

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) { called = true })

		d.Add("/project/src/Main.elm")
		d.Stop()

		time.Sleep(200 * time.Millisecond)
		synctest.Wait()

		assert.False(t, called)

		d.Flush()
		assert.False(t, called, "stop discards pending paths")
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)

		d.Add("/project/src/Main.elm")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()

		d.Add("/project/src/Main.elm")
		d.Flush()
	})
}
