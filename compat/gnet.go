package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/fanlog"
)

// GnetAdapter wraps a fanlog.Dispatcher to implement gnet logging.Logger interface
type GnetAdapter struct {
	dispatcher   *fanlog.Dispatcher
	source       string           // Appended to records as a "source=..." value, empty disables
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(dispatcher *fanlog.Dispatcher, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		dispatcher: dispatcher,
		source:     "gnet",
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithSource sets the source tag appended to records; empty disables it
func WithSource(source string) GnetOption {
	return func(a *GnetAdapter) {
		a.source = source
	}
}

// sourceValues returns the record values carrying the source tag and any
// extra tags, space-prefixed after the first since values concatenate.
func (a *GnetAdapter) sourceValues(extra ...string) []any {
	values := make([]any, 0, len(extra)+1)
	if a.source != "" {
		values = append(values, "source="+a.source)
	}
	for _, tag := range extra {
		if len(values) > 0 {
			tag = " " + tag
		}
		values = append(values, tag)
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.dispatcher.Debug(fmt.Sprintf(format, args...), a.sourceValues()...)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.dispatcher.Info(fmt.Sprintf(format, args...), a.sourceValues()...)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.dispatcher.Warn(fmt.Sprintf(format, args...), a.sourceValues()...)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.dispatcher.Error(fmt.Sprintf(format, args...), a.sourceValues()...)
}

// Fatalf logs at error level and triggers fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.dispatcher.Error(msg, a.sourceValues("fatal=true")...)

	// Ensure records are flushed before exit
	_ = a.dispatcher.Flush(100 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
