package fanlog

import (
	"sync"
	"time"
)

// Package-level dispatcher for programs that do not wire their own. It is
// created once, on first use, with every level enabled and a console sink
// registered. There is no re-initialization: programs needing a different
// composition construct a Dispatcher and pass it around instead.
var (
	defaultDispatcher *Dispatcher
	defaultOnce       sync.Once
)

// Default returns the shared package-level dispatcher.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher = NewDispatcher()
		defaultDispatcher.Add(NewConsoleSink())
	})
	return defaultDispatcher
}

// Default package-level functions that delegate to the default dispatcher

// SetLevel replaces the enabled-level mask of the default dispatcher
func SetLevel(mask Level) {
	Default().SetLevel(mask)
}

// Debug logs a message at debug level
func Debug(message string, values ...any) {
	Default().Debug(message, values...)
}

// Info logs a message at info level
func Info(message string, values ...any) {
	Default().Info(message, values...)
}

// Warn logs a message at warning level
func Warn(message string, values ...any) {
	Default().Warn(message, values...)
}

// Error logs a message at error level
func Error(message string, values ...any) {
	Default().Error(message, values...)
}

// Log logs a message at an arbitrary level flag
func Log(level Level, message string, values ...any) {
	Default().Log(level, message, values...)
}

// Flush waits on the default dispatcher's flushable sinks
func Flush(timeout time.Duration) error {
	return Default().Flush(timeout)
}
