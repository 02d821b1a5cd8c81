package fanlog

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fanlog/formatter"
)

// FileSink appends records to date-named files (2025-08-25.log) under a base
// directory. Rotation is lazy: the active file advances when a record's
// local calendar date differs from the current one. Files older than the
// retention window are pruned by best-effort background sweeps.
//
// Log never blocks and never returns errors; queue overflow and write
// failures are counted, reported through the fallback writer and surfaced
// in-stream as drop report records.
type FileSink struct {
	basePath      string
	retentionDays int64

	records   chan record
	state     fileState
	formatter *formatter.Formatter
	fallback  atomic.Value // fallbackWriter

	dropReportInterval time.Duration

	// Injectable clock, fixed in tests to steer rotation and retention
	now func() time.Time
}

// NewFileSink creates a sink writing under dir, keeping retentionDays of
// history, with default queue and report settings. The directory is created
// if missing. Construction starts an asynchronous retention sweep and
// returns without waiting for it.
func NewFileSink(dir string, retentionDays int64) (*FileSink, error) {
	cfg := DefaultConfig()
	cfg.Directory = dir
	cfg.RetentionDays = retentionDays
	return newFileSink(cfg)
}

// newFileSink builds the sink from a configuration, falling back to default
// values for unset queue and format fields.
func newFileSink(cfg *Config) (*FileSink, error) {
	return newFileSinkClock(cfg, time.Now)
}

// newFileSinkClock is newFileSink with an injected clock. The clock must be
// set before the processor starts; it is read concurrently afterwards.
func newFileSinkClock(cfg *Config, clock func() time.Time) (*FileSink, error) {
	if cfg.RetentionDays < 0 {
		return nil, fmtErrorf("retention_days cannot be negative: %d", cfg.RetentionDays)
	}

	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = defaultConfig.BufferSize
	}
	timestampFormat := cfg.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultConfig.TimestampFormat
	}

	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", cfg.Directory, err)
	}

	s := &FileSink{
		basePath:           cfg.Directory,
		retentionDays:      cfg.RetentionDays,
		records:            make(chan record, bufferSize),
		formatter:          formatter.New().TimestampFormat(timestampFormat),
		dropReportInterval: time.Duration(cfg.DropReportIntervalS) * time.Second,
		now:                clock,
	}
	s.fallback.Store(fallbackWriter{w: os.Stderr})
	s.state.flushRequestChan = make(chan chan struct{}, 1)

	currentDate := s.now().Format(dateLayout)
	s.state.activePath.Store(s.filePathFor(currentDate))

	go s.process(currentDate)
	go s.sweepExpired()

	return s, nil
}

// Log queues one record stamped with the current time. The target file is
// decided when the record is processed, so a record straddling midnight
// lands in the file matching its own timestamp.
func (s *FileSink) Log(level Level, message string, values ...any) {
	s.sendRecord(record{
		timestamp: s.now(),
		level:     level,
		message:   message,
		values:    values,
	})
}

// SetFallback replaces the writer receiving sink diagnostics such as open
// and write failures. Default is os.Stderr; nil restores it.
func (s *FileSink) SetFallback(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	s.fallback.Store(fallbackWriter{w: w})
}

// internalLog reports sink diagnostics to the fallback writer.
func (s *FileSink) internalLog(format string, args ...any) {
	fb := s.fallback.Load().(fallbackWriter)
	writeDiag(fb.w, format, args...)
}
