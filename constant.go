package fanlog

import (
	"time"
)

// Level is a bit mask of enabled severities. Each base level is an
// independent flag; a dispatcher mask is any OR-combination of them.
type Level int64

// Log level flags
const (
	LevelDebug Level = 1 << iota
	LevelInfo
	LevelWarn
	LevelError
)

// Mask shorthands
const (
	// LevelNone delivers nothing when used as a dispatch mask
	LevelNone Level = 0
	// LevelAll enables every level and is the default mask
	LevelAll = LevelDebug | LevelInfo | LevelWarn | LevelError
)

// File naming
const (
	fileSuffix = ".log"
	// Day file names lead with this layout: 2025-08-25.log
	dateLayout = "2006-01-02"
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Close deadline applied when the caller does not pass one
	defaultCloseTimeout = time.Second
)

// Prefix on every diagnostic line written to a fallback writer
const diagPrefix = "fanlog: "
