package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/fanlog"
)

// FiberAdapter wraps a fanlog.Dispatcher to implement Fiber's CommonLogger interface
// This provides compatibility with Fiber v2.54.x logging requirements
type FiberAdapter struct {
	dispatcher   *fanlog.Dispatcher
	fatalHandler func(msg string) // Customizable fatal behavior
	panicHandler func(msg string) // Customizable panic behavior
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter
func NewFiberAdapter(dispatcher *fanlog.Dispatcher, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		dispatcher: dispatcher,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior
		},
		panicHandler: func(msg string) {
			panic(msg) // Default behavior
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FiberOption allows customizing adapter behavior
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.fatalHandler = handler
	}
}

// WithFiberPanicHandler sets a custom panic handler
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.panicHandler = handler
	}
}

// --- Logger interface implementation (7 methods) ---

// Trace logs at trace/debug level
func (a *FiberAdapter) Trace(v ...any) {
	a.dispatcher.Debug(fmt.Sprint(v...), "source=fiber", " level=trace")
}

// Debug logs at debug level
func (a *FiberAdapter) Debug(v ...any) {
	a.dispatcher.Debug(fmt.Sprint(v...), "source=fiber")
}

// Info logs at info level
func (a *FiberAdapter) Info(v ...any) {
	a.dispatcher.Info(fmt.Sprint(v...), "source=fiber")
}

// Warn logs at warn level
func (a *FiberAdapter) Warn(v ...any) {
	a.dispatcher.Warn(fmt.Sprint(v...), "source=fiber")
}

// Error logs at error level
func (a *FiberAdapter) Error(v ...any) {
	a.dispatcher.Error(fmt.Sprint(v...), "source=fiber")
}

// Fatal logs at error level and triggers fatal handler
func (a *FiberAdapter) Fatal(v ...any) {
	msg := fmt.Sprint(v...)
	a.dispatcher.Error(msg, "source=fiber", " fatal=true")

	// Ensure records are flushed before exit
	_ = a.dispatcher.Flush(100 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// Panic logs at error level and triggers panic handler
func (a *FiberAdapter) Panic(v ...any) {
	msg := fmt.Sprint(v...)
	a.dispatcher.Error(msg, "source=fiber", " panic=true")

	// Ensure records are flushed before panic
	_ = a.dispatcher.Flush(100 * time.Millisecond)

	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// Write makes FiberAdapter implement io.Writer interface
// This allows it to be used with fiber.Config.ErrorHandler output redirection
func (a *FiberAdapter) Write(p []byte) (n int, err error) {
	msg := string(p)
	// Trim trailing newline if present
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	a.dispatcher.Info(msg, "source=fiber")
	return len(p), nil
}

// --- FormatLogger interface implementation (7 methods) ---

// Tracef logs at trace/debug level with printf-style formatting
func (a *FiberAdapter) Tracef(format string, v ...any) {
	a.dispatcher.Debug(fmt.Sprintf(format, v...), "source=fiber", " level=trace")
}

// Debugf logs at debug level with printf-style formatting
func (a *FiberAdapter) Debugf(format string, v ...any) {
	a.dispatcher.Debug(fmt.Sprintf(format, v...), "source=fiber")
}

// Infof logs at info level with printf-style formatting
func (a *FiberAdapter) Infof(format string, v ...any) {
	a.dispatcher.Info(fmt.Sprintf(format, v...), "source=fiber")
}

// Warnf logs at warn level with printf-style formatting
func (a *FiberAdapter) Warnf(format string, v ...any) {
	a.dispatcher.Warn(fmt.Sprintf(format, v...), "source=fiber")
}

// Errorf logs at error level with printf-style formatting
func (a *FiberAdapter) Errorf(format string, v ...any) {
	a.dispatcher.Error(fmt.Sprintf(format, v...), "source=fiber")
}

// Fatalf logs at error level and triggers fatal handler
func (a *FiberAdapter) Fatalf(format string, v ...any) {
	a.Fatal(fmt.Sprintf(format, v...))
}

// Panicf logs at error level and triggers panic handler
func (a *FiberAdapter) Panicf(format string, v ...any) {
	a.Panic(fmt.Sprintf(format, v...))
}

// --- WithLogger interface implementation (7 methods) ---

// renderPairs converts key-value pairs to concatenable "key=value" values
func renderPairs(keysAndValues []any) []any {
	values := make([]any, 0, len(keysAndValues)/2+1)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		values = append(values, fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	if len(keysAndValues)%2 != 0 {
		values = append(values, fmt.Sprintf(" %v", keysAndValues[len(keysAndValues)-1]))
	}
	return values
}

// Tracew logs at trace/debug level with structured key-value pairs
func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	values := append([]any{"source=fiber", " level=trace"}, renderPairs(keysAndValues)...)
	a.dispatcher.Debug(msg, values...)
}

// Debugw logs at debug level with structured key-value pairs
func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	values := append([]any{"source=fiber"}, renderPairs(keysAndValues)...)
	a.dispatcher.Debug(msg, values...)
}

// Infow logs at info level with structured key-value pairs
func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	values := append([]any{"source=fiber"}, renderPairs(keysAndValues)...)
	a.dispatcher.Info(msg, values...)
}

// Warnw logs at warn level with structured key-value pairs
func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	values := append([]any{"source=fiber"}, renderPairs(keysAndValues)...)
	a.dispatcher.Warn(msg, values...)
}

// Errorw logs at error level with structured key-value pairs
func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	values := append([]any{"source=fiber"}, renderPairs(keysAndValues)...)
	a.dispatcher.Error(msg, values...)
}

// Fatalw logs at error level with structured key-value pairs and triggers fatal handler
func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	values := append([]any{"source=fiber", " fatal=true"}, renderPairs(keysAndValues)...)
	a.dispatcher.Error(msg, values...)

	// Ensure records are flushed before exit
	_ = a.dispatcher.Flush(100 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// Panicw logs at error level with structured key-value pairs and triggers panic handler
func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	values := append([]any{"source=fiber", " panic=true"}, renderPairs(keysAndValues)...)
	a.dispatcher.Error(msg, values...)

	// Ensure records are flushed before panic
	_ = a.dispatcher.Flush(100 * time.Millisecond)

	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}
