package fanlog

import (
	"time"
)

// Sink is a log output destination. Implementations format and write the
// record themselves; the dispatcher hands over the message and values
// unmodified.
//
// Sinks registered with a Dispatcher must tolerate concurrent Log calls
// when the dispatcher is shared across goroutines.
type Sink interface {
	Log(level Level, message string, values ...any)
}

// Flusher is implemented by sinks that queue records and can wait for the
// queue to empty.
type Flusher interface {
	Flush(timeout time.Duration) error
}

// Closer is implemented by sinks holding resources that need release. The
// timeout bounds the shutdown wait; omitted means the sink's default.
type Closer interface {
	Close(timeout ...time.Duration) error
}

// funcSink adapts a closure to the Sink interface. The pointer wrapper keeps
// each handle comparable, which the dispatcher's identity-based registration
// requires; bare func values cannot be compared.
type funcSink struct {
	fn func(level Level, message string, values ...any)
}

// SinkFunc wraps fn into a registerable Sink. Every call returns a distinct
// handle, even for the same fn.
func SinkFunc(fn func(level Level, message string, values ...any)) Sink {
	if fn == nil {
		return nil
	}
	return &funcSink{fn: fn}
}

func (s *funcSink) Log(level Level, message string, values ...any) {
	s.fn(level, message, values...)
}
