package fanlog

import (
	"fmt"
	"io"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, diagPrefix) {
		format = diagPrefix + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// fallbackWriter wraps the diagnostic writer for atomic.Value storage,
// which requires a consistent concrete type across stores.
type fallbackWriter struct {
	w io.Writer
}

// writeDiag writes one prefixed diagnostic line to w. Diagnostics are
// best-effort; write errors have nowhere left to go and are discarded.
func writeDiag(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	if !strings.HasPrefix(format, diagPrefix) {
		format = diagPrefix + format
	}
	fmt.Fprintf(w, format, args...)
}
