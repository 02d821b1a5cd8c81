package fanlog

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spySink records every delivery for later inspection
type spySink struct {
	mu      sync.Mutex
	entries []spyEntry
}

type spyEntry struct {
	level   Level
	message string
	values  []any
}

func (s *spySink) Log(level Level, message string, values ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, spyEntry{level: level, message: message, values: values})
}

func (s *spySink) snapshot() []spyEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]spyEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// lifecycleSink counts Flush and Close calls and can fail either
type lifecycleSink struct {
	spySink
	flushCalls int
	closeCalls int
	flushErr   error
	closeErr   error
}

func (s *lifecycleSink) Flush(timeout time.Duration) error {
	s.flushCalls++
	return s.flushErr
}

func (s *lifecycleSink) Close(timeout ...time.Duration) error {
	s.closeCalls++
	return s.closeErr
}

func TestNewDispatcher(t *testing.T) {
	t.Run("default mask enables every level", func(t *testing.T) {
		d := NewDispatcher()
		assert.Equal(t, LevelAll, d.Level())
		assert.Empty(t, d.Sinks())
	})

	t.Run("explicit levels are OR-combined", func(t *testing.T) {
		d := NewDispatcher(LevelInfo, LevelError)
		assert.Equal(t, LevelInfo|LevelError, d.Level())
	})

	t.Run("explicit none silences the dispatcher", func(t *testing.T) {
		d := NewDispatcher(LevelNone)
		assert.Equal(t, LevelNone, d.Level())

		spy := &spySink{}
		d.Add(spy)
		d.Error("should not arrive")
		assert.Empty(t, spy.snapshot())
	})
}

func TestDispatcherMaskGate(t *testing.T) {
	emitters := map[Level]func(*Dispatcher, string){
		LevelDebug: func(d *Dispatcher, msg string) { d.Debug(msg) },
		LevelInfo:  func(d *Dispatcher, msg string) { d.Info(msg) },
		LevelWarn:  func(d *Dispatcher, msg string) { d.Warn(msg) },
		LevelError: func(d *Dispatcher, msg string) { d.Error(msg) },
	}

	tests := []struct {
		name      string
		mask      Level
		delivered []Level
	}{
		{"all levels", LevelAll, []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}},
		{"info and error", LevelInfo | LevelError, []Level{LevelInfo, LevelError}},
		{"error only", LevelError, []Level{LevelError}},
		{"none", LevelNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(tt.mask)
			spy := &spySink{}
			d.Add(spy)

			for level, emit := range emitters {
				emit(d, levelName(level))
			}

			entries := spy.snapshot()
			assert.Len(t, entries, len(tt.delivered))
			for _, entry := range entries {
				assert.Contains(t, tt.delivered, entry.level)
				// Each record carries its own level flag, not the mask
				assert.Equal(t, levelName(entry.level), entry.message)
			}
		})
	}
}

func TestDispatcherSetLevel(t *testing.T) {
	d := NewDispatcher()
	spy := &spySink{}
	d.Add(spy)

	d.Debug("first")
	d.SetLevel(LevelError)
	d.Debug("masked out")
	d.Error("second")
	d.SetLevel(LevelAll)
	d.Debug("third")

	entries := spy.snapshot()
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].message)
	assert.Equal(t, "second", entries[1].message)
	assert.Equal(t, "third", entries[2].message)
}

func TestDispatcherAddRemove(t *testing.T) {
	t.Run("add is identity-based and idempotent", func(t *testing.T) {
		d := NewDispatcher()
		spy := &spySink{}

		d.Add(spy)
		d.Add(spy)
		d.Add(spy)
		assert.Len(t, d.Sinks(), 1)

		d.Info("once")
		assert.Len(t, spy.snapshot(), 1, "duplicate registration must not duplicate delivery")
	})

	t.Run("nil sink is ignored", func(t *testing.T) {
		d := NewDispatcher()
		d.Add(nil)
		d.Remove(nil)
		assert.Empty(t, d.Sinks())
	})

	t.Run("remove preserves remaining order", func(t *testing.T) {
		d := NewDispatcher()
		a, b, c := &spySink{}, &spySink{}, &spySink{}
		d.Add(a)
		d.Add(b)
		d.Add(c)

		d.Remove(b)

		sinks := d.Sinks()
		require.Len(t, sinks, 2)
		assert.True(t, sinks[0] == Sink(a))
		assert.True(t, sinks[1] == Sink(c))
	})

	t.Run("removing an absent sink is a no-op", func(t *testing.T) {
		d := NewDispatcher()
		d.Add(&spySink{})
		d.Remove(&spySink{})
		assert.Len(t, d.Sinks(), 1)
	})

	t.Run("removed sink receives nothing", func(t *testing.T) {
		d := NewDispatcher()
		spy := &spySink{}
		d.Add(spy)
		d.Remove(spy)

		d.SetFallback(&bytes.Buffer{}) // Silence the empty-set diagnostic
		d.Info("after removal")
		assert.Empty(t, spy.snapshot())
	})
}

// TestSinkFuncIdentity verifies that each SinkFunc call yields a distinct
// registerable handle, even when wrapping the same closure
func TestSinkFuncIdentity(t *testing.T) {
	var calls int
	fn := func(level Level, message string, values ...any) { calls++ }

	first := SinkFunc(fn)
	second := SinkFunc(fn)
	require.NotNil(t, first)
	require.NotNil(t, second)

	d := NewDispatcher()
	d.Add(first)
	d.Add(second)
	assert.Len(t, d.Sinks(), 2)

	d.Info("fan out")
	assert.Equal(t, 2, calls)

	d.Remove(first)
	assert.Len(t, d.Sinks(), 1)

	d.Info("second survives")
	assert.Equal(t, 3, calls)

	// Nil closures produce no sink
	assert.Nil(t, SinkFunc(nil))
}

func TestDispatcherFanOutOrder(t *testing.T) {
	d := NewDispatcher()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		d.Add(SinkFunc(func(level Level, message string, values ...any) {
			order = append(order, name)
		}))
	}

	d.Info("ordered delivery")
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestDispatcherPanicIsolation(t *testing.T) {
	d := NewDispatcher()
	var diag bytes.Buffer
	d.SetFallback(&diag)

	panicky := SinkFunc(func(level Level, message string, values ...any) {
		panic("sink exploded")
	})
	spy := &spySink{}
	d.Add(panicky)
	d.Add(spy)

	// Must not panic the caller, and must still reach the second sink
	require.NotPanics(t, func() {
		d.Error("survives panic")
	})

	entries := spy.snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "survives panic", entries[0].message)

	assert.Contains(t, diag.String(), "fanlog: ")
	assert.Contains(t, diag.String(), "sink panic recovered")
	assert.Contains(t, diag.String(), "sink exploded")

	// The panicking sink stays registered and later deliveries still work
	d.Info("again")
	assert.Len(t, spy.snapshot(), 2)
}

func TestDispatcherEmptySet(t *testing.T) {
	t.Run("enabled record reports to fallback", func(t *testing.T) {
		d := NewDispatcher()
		var diag bytes.Buffer
		d.SetFallback(&diag)

		d.Warn("orphan record")

		assert.Contains(t, diag.String(), "fanlog: ")
		assert.Contains(t, diag.String(), "no sink registered")
		assert.Contains(t, diag.String(), "orphan record")
	})

	t.Run("masked-out record stays silent", func(t *testing.T) {
		d := NewDispatcher(LevelError)
		var diag bytes.Buffer
		d.SetFallback(&diag)

		// The level gate runs before the empty-set check
		d.Debug("filtered before the sink check")
		assert.Empty(t, diag.String())
	})

	t.Run("nil fallback restores stderr without panicking", func(t *testing.T) {
		d := NewDispatcher(LevelNone)
		d.SetFallback(nil)
		d.Info("still gated")
	})
}

func TestDispatcherValuesPassThrough(t *testing.T) {
	d := NewDispatcher()
	spy := &spySink{}
	d.Add(spy)

	payload := map[string]int{"a": 1}
	d.Error("fail", 42, "ctx", payload)

	entries := spy.snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, LevelError, entries[0].level)
	assert.Equal(t, "fail", entries[0].message)
	require.Len(t, entries[0].values, 3)
	assert.Equal(t, 42, entries[0].values[0])
	assert.Equal(t, "ctx", entries[0].values[1])
	assert.Equal(t, payload, entries[0].values[2])
}

func TestDispatcherFlush(t *testing.T) {
	t.Run("reaches every flusher", func(t *testing.T) {
		d := NewDispatcher()
		plain := &spySink{}
		flushable := &lifecycleSink{}
		d.Add(plain)
		d.Add(flushable)

		err := d.Flush(time.Second)
		assert.NoError(t, err)
		assert.Equal(t, 1, flushable.flushCalls)
	})

	t.Run("combines errors without short-circuiting", func(t *testing.T) {
		d := NewDispatcher()
		first := &lifecycleSink{flushErr: errors.New("first sink stuck")}
		second := &lifecycleSink{flushErr: errors.New("second sink stuck")}
		d.Add(first)
		d.Add(second)

		err := d.Flush(time.Second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "first sink stuck")
		assert.Contains(t, err.Error(), "second sink stuck")
		assert.Equal(t, 1, first.flushCalls)
		assert.Equal(t, 1, second.flushCalls)
	})
}

func TestDispatcherShutdown(t *testing.T) {
	t.Run("flushes then closes capable sinks", func(t *testing.T) {
		d := NewDispatcher()
		sink := &lifecycleSink{}
		d.Add(sink)

		err := d.Shutdown(time.Second)
		assert.NoError(t, err)
		assert.Equal(t, 1, sink.flushCalls)
		assert.Equal(t, 1, sink.closeCalls)
	})

	t.Run("repeat shutdown is a no-op", func(t *testing.T) {
		d := NewDispatcher()
		sink := &lifecycleSink{}
		d.Add(sink)

		require.NoError(t, d.Shutdown())
		require.NoError(t, d.Shutdown())
		assert.Equal(t, 1, sink.closeCalls, "sinks must not be closed twice")
	})

	t.Run("collects flush and close errors", func(t *testing.T) {
		d := NewDispatcher()
		sink := &lifecycleSink{
			flushErr: errors.New("flush failed"),
			closeErr: errors.New("close failed"),
		}
		d.Add(sink)

		err := d.Shutdown()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flush failed")
		assert.Contains(t, err.Error(), "close failed")
	})
}

// TestDispatcherConcurrency exercises logging, sink churn and mask changes
// from multiple goroutines at once
func TestDispatcherConcurrency(t *testing.T) {
	d := NewDispatcher()
	d.SetFallback(&syncBuffer{}) // Sink churn can leave the set briefly empty
	spy := &spySink{}
	d.Add(spy)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.Info(fmt.Sprintf("goroutine %d log %d", id, j))
			}
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			extra := &spySink{}
			d.Add(extra)
			d.Remove(extra)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			d.SetLevel(LevelAll)
			d.SetLevel(LevelInfo | LevelError)
		}
		d.SetLevel(LevelAll)
	}()

	wg.Wait()

	// Mask churn may drop some records; the registered spy sees the rest
	assert.NotEmpty(t, spy.snapshot())
	assert.Len(t, d.Sinks(), 1)
}
