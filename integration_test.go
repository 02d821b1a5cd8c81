package fanlog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullLifecycle(t *testing.T) {
	tmpDir := t.TempDir()

	dispatcher, err := NewBuilder().
		Directory(tmpDir).
		LevelString("all").
		RetentionDays(7).
		BufferSize(1000).
		DropReportInterval(0).
		Console(false).
		Build()

	require.NoError(t, err, "Dispatcher creation with builder should succeed")
	require.NotNil(t, dispatcher)

	defer func() {
		err := dispatcher.Shutdown(2 * time.Second)
		assert.NoError(t, err, "Dispatcher shutdown should be clean")
	}()

	// Log at various levels
	dispatcher.Debug("debug message")
	dispatcher.Info("info message")
	dispatcher.Warn("warning message")
	dispatcher.Error("error message")

	// Values concatenate, so callers format pairs themselves
	dispatcher.Info("request served", "status=", 200, " path=", "/health")

	// Runtime mask change
	dispatcher.SetLevel(LevelWarn | LevelError)
	dispatcher.Debug("suppressed after reconfiguration")
	dispatcher.Error("still delivered")

	require.NoError(t, dispatcher.Flush(2*time.Second))

	files, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, files, 1, "one day file should exist")

	content, err := os.ReadFile(dispatcher.Sinks()[0].(*FileSink).ActiveFilePath())
	require.NoError(t, err)
	logOutput := string(content)

	assert.Contains(t, logOutput, "\tDebug\tdebug message")
	assert.Contains(t, logOutput, "\tInfo\tinfo message")
	assert.Contains(t, logOutput, "\tWarn\twarning message")
	assert.Contains(t, logOutput, "\tError\terror message")
	assert.Contains(t, logOutput, "\tInfo\trequest served\tstatus=200 path=/health")
	assert.Contains(t, logOutput, "still delivered")
	assert.NotContains(t, logOutput, "suppressed after reconfiguration")
}

// TestEndToEndFiltering pins the full path from a leveled call to the day
// file: a masked-out level leaves no trace, an enabled one lands exactly once
func TestEndToEndFiltering(t *testing.T) {
	sink, _ := createTestFileSink(t)
	spy := &spySink{}

	dispatcher := NewDispatcher(LevelInfo | LevelError)
	dispatcher.Add(sink)
	dispatcher.Add(spy)

	dispatcher.Debug("invisible")
	dispatcher.Error("fail", 42)

	require.NoError(t, dispatcher.Flush(2*time.Second))

	content := readActiveFile(t, sink)
	assert.NotContains(t, content, "invisible")
	assert.Equal(t, 1, strings.Count(content, "\tError\tfail\t42"))
	assert.Equal(t, 1, strings.Count(content, "\n"))

	entries := spy.snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, LevelError, entries[0].level)
	assert.Equal(t, "fail", entries[0].message)
	assert.Equal(t, []any{42}, entries[0].values)
}

func TestConcurrentOperations(t *testing.T) {
	sink, _ := createTestFileSink(t)
	dispatcher := NewDispatcher()
	dispatcher.Add(sink)
	defer dispatcher.Shutdown(2 * time.Second)

	var wg sync.WaitGroup

	// Concurrent logging
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				dispatcher.Info("worker", id, " log ", j)
			}
		}(i)
	}

	// Concurrent mask changes
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 3; i++ {
			dispatcher.SetLevel(LevelInfo | LevelError)
			time.Sleep(10 * time.Millisecond)
			dispatcher.SetLevel(LevelAll)
		}
	}()

	// Concurrent flushes
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			err := dispatcher.Flush(2 * time.Second)
			assert.NoError(t, err)
			time.Sleep(10 * time.Millisecond)
		}
	}()

	wg.Wait()

	require.NoError(t, dispatcher.Flush(2*time.Second))

	// The queue is larger than the total record count, so nothing drops
	stats := sink.Stats()
	assert.Equal(t, uint64(100), stats.Processed)
	assert.Equal(t, uint64(0), stats.Dropped)

	content := readActiveFile(t, sink)
	assert.Equal(t, 100, strings.Count(content, "\n"))
}

// TestSharedSinkAcrossDispatchers registers one file sink with two
// dispatchers and verifies both deliver into the same day file
func TestSharedSinkAcrossDispatchers(t *testing.T) {
	sink, _ := createTestFileSink(t)

	app := NewDispatcher(LevelInfo | LevelWarn | LevelError)
	audit := NewDispatcher(LevelError)
	app.Add(sink)
	audit.Add(sink)

	app.Info("application event")
	audit.Error("audit event")

	require.NoError(t, sink.Flush(2*time.Second))

	content := readActiveFile(t, sink)
	assert.Contains(t, content, "application event")
	assert.Contains(t, content, "audit event")
	assert.Equal(t, uint64(2), sink.Stats().Processed)
}

func TestErrorRecovery(t *testing.T) {
	t.Run("dispatcher survives a sink that always panics", func(t *testing.T) {
		sink, _ := createTestFileSink(t)
		dispatcher := NewDispatcher()
		dispatcher.SetFallback(&syncBuffer{})

		dispatcher.Add(SinkFunc(func(level Level, message string, values ...any) {
			panic("broken sink")
		}))
		dispatcher.Add(sink)

		for i := 0; i < 10; i++ {
			dispatcher.Info("keeps flowing", i)
		}
		require.NoError(t, dispatcher.Flush(2*time.Second))

		assert.Equal(t, uint64(10), sink.Stats().Processed)
	})

	t.Run("write failures do not stall the queue", func(t *testing.T) {
		sink, tmpDir := createTestFileSink(t)
		diag := &syncBuffer{}
		sink.SetFallback(diag)

		require.NoError(t, os.RemoveAll(tmpDir))

		for i := 0; i < 5; i++ {
			sink.Log(LevelInfo, fmt.Sprintf("doomed %d", i))
		}
		require.NoError(t, sink.Flush(2*time.Second))

		stats := sink.Stats()
		assert.Equal(t, uint64(5), stats.Dropped)
		assert.Equal(t, uint64(0), stats.Processed)
		assert.Contains(t, diag.String(), "failed to open log file")

		// The sink keeps accepting and accounting records afterwards
		sink.Log(LevelInfo, "still accepted")
		require.NoError(t, sink.Flush(2*time.Second))
	})
}
