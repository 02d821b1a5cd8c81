package fanlog

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/fanlog/formatter"
)

// ConsoleSink writes records synchronously to the standard streams: debug
// and info lines to stdout, warn and error lines to stderr.
type ConsoleSink struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	formatter *formatter.Formatter
	now       func() time.Time
}

// NewConsoleSink creates a console sink targeting os.Stdout and os.Stderr,
// with space-separated fields for terminal readability.
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{
		out:       os.Stdout,
		errOut:    os.Stderr,
		formatter: formatter.New().Separator(' '),
		now:       time.Now,
	}
}

// SetWriters replaces the output streams, mainly for tests and stream
// redirection. A nil writer keeps the current stream.
func (c *ConsoleSink) SetWriters(out, errOut io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if out != nil {
		c.out = out
	}
	if errOut != nil {
		c.errOut = errOut
	}
}

// Log writes one formatted line to the stream matching the level. Write
// errors are discarded; a console has no meaningful fallback.
func (c *ConsoleSink) Log(level Level, message string, values ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := c.out
	if level&(LevelWarn|LevelError) != 0 {
		w = c.errOut
	}
	line := c.formatter.Format(c.now(), levelName(level), message, values)
	_, _ = w.Write(line)
}
