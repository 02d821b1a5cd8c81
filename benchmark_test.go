package fanlog

import (
	"testing"
	"time"
)

// createBenchSink creates a file sink sized so queue overflow does not
// dominate the measurement
func createBenchSink(b *testing.B) *FileSink {
	cfg := DefaultConfig()
	cfg.Directory = b.TempDir()
	cfg.BufferSize = 1 << 16
	cfg.DropReportIntervalS = 0

	sink, err := newFileSink(cfg)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { sink.Close(5 * time.Second) })
	return sink
}

// BenchmarkFileSinkLog measures the caller-side cost of the fire-and-forget
// enqueue path
func BenchmarkFileSinkLog(b *testing.B) {
	sink := createBenchSink(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink.Log(LevelInfo, "benchmark message", i)
	}
}

// BenchmarkDispatcherInfo measures a full gated fan-out into one file sink
func BenchmarkDispatcherInfo(b *testing.B) {
	dispatcher := NewDispatcher()
	dispatcher.Add(createBenchSink(b))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dispatcher.Info("benchmark message", i)
	}
}

// BenchmarkDispatcherMaskedOut measures the early-return path for a
// disabled level
func BenchmarkDispatcherMaskedOut(b *testing.B) {
	dispatcher := NewDispatcher(LevelError)
	dispatcher.Add(createBenchSink(b))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dispatcher.Debug("benchmark message", i)
	}
}

// BenchmarkConcurrentLogging measures dispatcher throughput under
// concurrent load
func BenchmarkConcurrentLogging(b *testing.B) {
	dispatcher := NewDispatcher()
	dispatcher.Add(createBenchSink(b))

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			dispatcher.Info("concurrent", i)
			i++
		}
	})
}
