package fanlog

import (
	"fmt"
	"strings"
)

// names indexed in flag order
var levelFlags = [...]Level{LevelDebug, LevelInfo, LevelWarn, LevelError}

// levelName returns the record annotation for a single-flag level.
func levelName(level Level) string {
	switch level {
	case LevelDebug:
		return "Debug"
	case LevelInfo:
		return "Info"
	case LevelWarn:
		return "Warn"
	case LevelError:
		return "Error"
	default:
		return fmt.Sprintf("Level(%d)", int64(level))
	}
}

// Enabled reports whether flag is present in the mask.
func (l Level) Enabled(flag Level) bool {
	return l&flag != 0
}

// String renders the mask as pipe-joined level names, e.g. "Info|Error".
func (l Level) String() string {
	if l == LevelNone {
		return "None"
	}
	var parts []string
	for _, flag := range levelFlags {
		if l&flag != 0 {
			parts = append(parts, levelName(flag))
		}
	}
	if rest := l &^ LevelAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("Level(%d)", int64(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseLevel converts a level list string to a mask. Names are separated by
// commas or pipes and matched case-insensitively: "debug", "info", "warn",
// "error", plus the shorthands "all" and "none".
func ParseLevel(levels string) (Level, error) {
	fields := strings.FieldsFunc(levels, func(r rune) bool {
		return r == ',' || r == '|'
	})
	if len(fields) == 0 {
		return 0, fmtErrorf("empty level string")
	}

	var mask Level
	for _, field := range fields {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "debug":
			mask |= LevelDebug
		case "info":
			mask |= LevelInfo
		case "warn":
			mask |= LevelWarn
		case "error":
			mask |= LevelError
		case "all":
			mask |= LevelAll
		case "none":
			// Contributes no flags
		default:
			return 0, fmtErrorf("invalid level name: '%s' (use debug, info, warn, error, all, none)", strings.TrimSpace(field))
		}
	}
	return mask, nil
}
