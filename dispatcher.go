package fanlog

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Dispatcher gates leveled calls by a bit mask and fans accepted records out
// synchronously to every registered sink, in registration order. All methods
// are safe for concurrent use.
type Dispatcher struct {
	mask     atomic.Int64
	sinks    atomic.Value // []Sink snapshot, rebuilt under mu
	fallback atomic.Value // fallbackWriter

	mu             sync.Mutex // guards sink set mutation
	shutdownCalled atomic.Bool
}

// NewDispatcher creates a dispatcher. Without arguments every level is
// enabled; explicit arguments are OR-combined into the mask, so an explicit
// LevelNone yields a dispatcher that delivers nothing until SetLevel.
func NewDispatcher(levels ...Level) *Dispatcher {
	mask := LevelAll
	if len(levels) > 0 {
		mask = LevelNone
		for _, level := range levels {
			mask |= level
		}
	}

	d := &Dispatcher{}
	d.mask.Store(int64(mask))
	d.sinks.Store([]Sink(nil))
	d.fallback.Store(fallbackWriter{w: os.Stderr})
	return d
}

// SetLevel replaces the enabled-level mask.
func (d *Dispatcher) SetLevel(mask Level) {
	d.mask.Store(int64(mask))
}

// Level returns the current enabled-level mask.
func (d *Dispatcher) Level() Level {
	return Level(d.mask.Load())
}

// SetFallback replaces the writer receiving dispatcher diagnostics such as
// sink panics and records arriving with no sink registered. Default is
// os.Stderr; nil restores it.
func (d *Dispatcher) SetFallback(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	d.fallback.Store(fallbackWriter{w: w})
}

// Add registers sink for delivery. Registration is identity-based and
// idempotent: adding an already-registered sink leaves the set unchanged.
// Nil sinks are ignored. Pointer-backed sinks (all sinks in this package)
// get strict identity semantics.
func (d *Dispatcher) Add(sink Sink) {
	if sink == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.currentSinks()
	for _, registered := range current {
		if registered == sink {
			return
		}
	}
	next := make([]Sink, len(current), len(current)+1)
	copy(next, current)
	d.sinks.Store(append(next, sink))
}

// Remove unregisters sink, preserving the order of the remaining sinks.
// Removing an absent or nil sink is a no-op.
func (d *Dispatcher) Remove(sink Sink) {
	if sink == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.currentSinks()
	for i, registered := range current {
		if registered == sink {
			next := make([]Sink, 0, len(current)-1)
			next = append(next, current[:i]...)
			next = append(next, current[i+1:]...)
			d.sinks.Store(next)
			return
		}
	}
}

// Sinks returns a copy of the registered sinks in registration order.
func (d *Dispatcher) Sinks() []Sink {
	current := d.currentSinks()
	out := make([]Sink, len(current))
	copy(out, current)
	return out
}

// Debug logs a message with optional values at debug level.
func (d *Dispatcher) Debug(message string, values ...any) {
	d.emit(LevelDebug, message, values)
}

// Info logs a message with optional values at info level.
func (d *Dispatcher) Info(message string, values ...any) {
	d.emit(LevelInfo, message, values)
}

// Warn logs a message with optional values at warn level.
func (d *Dispatcher) Warn(message string, values ...any) {
	d.emit(LevelWarn, message, values)
}

// Error logs a message with optional values at error level.
func (d *Dispatcher) Error(message string, values ...any) {
	d.emit(LevelError, message, values)
}

// Log logs a message at an arbitrary level flag. Useful when the level is
// selected at runtime.
func (d *Dispatcher) Log(level Level, message string, values ...any) {
	d.emit(level, message, values)
}

// Flush waits on every registered sink implementing Flusher, giving each the
// full timeout. Errors are combined, not short-circuited.
func (d *Dispatcher) Flush(timeout time.Duration) error {
	var finalErr error
	for _, sink := range d.currentSinks() {
		if flusher, ok := sink.(Flusher); ok {
			if err := flusher.Flush(timeout); err != nil {
				finalErr = combineErrors(finalErr, err)
			}
		}
	}
	return finalErr
}

// Shutdown flushes then closes every registered sink that supports it.
// Subsequent calls return nil without touching the sinks again.
func (d *Dispatcher) Shutdown(timeout ...time.Duration) error {
	if !d.shutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	effectiveTimeout := defaultCloseTimeout
	if len(timeout) > 0 {
		effectiveTimeout = timeout[0]
	}

	var finalErr error
	for _, sink := range d.currentSinks() {
		if flusher, ok := sink.(Flusher); ok {
			if err := flusher.Flush(effectiveTimeout); err != nil {
				finalErr = combineErrors(finalErr, err)
			}
		}
		if closer, ok := sink.(Closer); ok {
			if err := closer.Close(effectiveTimeout); err != nil {
				finalErr = combineErrors(finalErr, err)
			}
		}
	}
	return finalErr
}

// emit applies the level gate, then delivers sequentially. Disabled levels
// return before any formatting or sink work happens.
func (d *Dispatcher) emit(level Level, message string, values []any) {
	if Level(d.mask.Load())&level == 0 {
		return
	}

	sinks := d.currentSinks()
	if len(sinks) == 0 {
		d.internalLog("no sink registered, record not delivered: %s\n", message)
		return
	}
	for _, sink := range sinks {
		d.deliver(sink, level, message, values)
	}
}

// deliver isolates a single sink invocation. A panicking sink is reported to
// the fallback writer and never interrupts delivery to the remaining sinks
// or reaches the logging caller.
func (d *Dispatcher) deliver(sink Sink, level Level, message string, values []any) {
	defer func() {
		if r := recover(); r != nil {
			d.internalLog("sink panic recovered: %v\n", r)
		}
	}()
	sink.Log(level, message, values...)
}

func (d *Dispatcher) currentSinks() []Sink {
	return d.sinks.Load().([]Sink)
}

// internalLog reports dispatcher diagnostics to the fallback writer.
func (d *Dispatcher) internalLog(format string, args ...any) {
	fb := d.fallback.Load().(fallbackWriter)
	writeDiag(fb.w, format, args...)
}
