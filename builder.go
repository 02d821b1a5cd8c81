package fanlog

import (
	"time"
)

// Builder provides a fluent API for composing a dispatcher and its sinks.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new dispatcher builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build validates the configuration and returns a dispatcher with the
// enabled sinks registered, file sink first, console sink second.
func (b *Builder) Build() (*Dispatcher, error) {
	if b.err != nil {
		return nil, b.err
	}

	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	mask, err := ParseLevel(b.cfg.Level)
	if err != nil {
		return nil, err
	}
	d := NewDispatcher(mask)

	if b.cfg.EnableFile {
		fileSink, err := newFileSink(b.cfg)
		if err != nil {
			return nil, err
		}
		d.Add(fileSink)
	}
	if b.cfg.EnableConsole {
		d.Add(NewConsoleSink())
	}

	return d, nil
}

// Config replaces the builder's configuration wholesale. The config is
// cloned, so later fluent calls do not modify the caller's copy.
func (b *Builder) Config(cfg *Config) *Builder {
	if cfg == nil {
		b.err = fmtErrorf("configuration cannot be nil")
		return b
	}
	b.cfg = cfg.Clone()
	return b
}

// Level sets the enabled-level mask.
func (b *Builder) Level(mask Level) *Builder {
	b.cfg.Level = mask.String()
	return b
}

// LevelString sets the enabled levels from a list such as "info,error".
func (b *Builder) LevelString(levels string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseLevel(levels); err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levels
	return b
}

// Directory sets the file sink directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// RetentionDays sets how many days of files the file sink keeps.
func (b *Builder) RetentionDays(days int64) *Builder {
	b.cfg.RetentionDays = days
	return b
}

// BufferSize sets the file sink record channel capacity.
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// DropReportInterval sets the period of the in-stream dropped-records
// report. Zero disables the periodic report.
func (b *Builder) DropReportInterval(interval time.Duration) *Builder {
	b.cfg.DropReportIntervalS = int64(interval / time.Second)
	return b
}

// TimestampFormat sets the record timestamp layout.
func (b *Builder) TimestampFormat(format string) *Builder {
	b.cfg.TimestampFormat = format
	return b
}

// Console toggles the console sink.
func (b *Builder) Console(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// File toggles the file sink.
func (b *Builder) File(enable bool) *Builder {
	b.cfg.EnableFile = enable
	return b
}

// Overrides applies "key=value" strings onto the configuration.
func (b *Builder) Overrides(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.cfg.ApplyOverride(overrides...); err != nil {
		b.err = err
	}
	return b
}

// Example usage:
// dispatcher, err := fanlog.NewBuilder().
//
//	Directory("/var/log/app").
//	LevelString("info,error").
//	RetentionDays(30).
//	Console(true).
//	Build()
//
// if err == nil {
//
//	 defer dispatcher.Shutdown()
//	 dispatcher.Info("dispatcher initialized")
//
// }
