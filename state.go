package fanlog

import (
	"sync"
	"sync/atomic"
	"time"
)

// fileState encapsulates the runtime state of a FileSink shared between
// logging callers, the processor goroutine and retention sweeps.
type fileState struct {
	closed          atomic.Bool
	processorExited atomic.Bool // Tracks if the processor goroutine has exited

	flushRequestChan chan chan struct{} // Channel to request a flush
	flushMutex       sync.Mutex         // Protect concurrent Flush calls

	activePath atomic.Value // stores string, path the next same-date record appends to

	processed       atomic.Uint64 // Records written, including synthetic drop reports
	dropped         atomic.Uint64 // Records lost to overflow, write failure or closed sink
	rotations       atomic.Uint64 // Date rollovers performed
	deletions       atomic.Uint64 // Expired day files removed by retention sweeps
	unreportedDrops atomic.Uint64 // Drops not yet surfaced by a drop report record
}

// FileSinkStats is a point-in-time snapshot of a FileSink's counters.
type FileSinkStats struct {
	Processed uint64
	Dropped   uint64
	Rotations uint64
	Deletions uint64
}

// Stats returns the sink's current counter values.
func (s *FileSink) Stats() FileSinkStats {
	return FileSinkStats{
		Processed: s.state.processed.Load(),
		Dropped:   s.state.dropped.Load(),
		Rotations: s.state.rotations.Load(),
		Deletions: s.state.deletions.Load(),
	}
}

// ActiveFilePath returns the day file writes currently target. The path
// advances when a record carrying a newer local calendar date is processed,
// not at midnight itself.
func (s *FileSink) ActiveFilePath() string {
	return s.state.activePath.Load().(string)
}

// Close stops the sink after draining already-queued records, waiting for
// the processor up to the timeout (default 1s). Records logged after Close
// are counted as dropped. Subsequent calls return nil.
func (s *FileSink) Close(timeout ...time.Duration) error {
	if !s.state.closed.CompareAndSwap(false, true) {
		return nil
	}

	// Closing the channel lets the processor drain the backlog and exit
	close(s.records)

	effectiveTimeout := defaultCloseTimeout
	if len(timeout) > 0 {
		effectiveTimeout = timeout[0]
	}

	deadline := time.Now().Add(effectiveTimeout)
	for time.Now().Before(deadline) {
		if s.state.processorExited.Load() {
			return nil
		}
		time.Sleep(minWaitTime)
	}
	if !s.state.processorExited.Load() {
		return fmtErrorf("file sink processor did not exit within timeout (%v)", effectiveTimeout)
	}
	return nil
}

// Flush blocks until every record queued before the call has been written
// out, or the timeout elapses. It is the deterministic companion to the
// fire-and-forget Log path.
func (s *FileSink) Flush(timeout time.Duration) error {
	s.state.flushMutex.Lock()
	defer s.state.flushMutex.Unlock()

	if s.state.closed.Load() {
		return fmtErrorf("file sink is closed")
	}

	// Create a channel to wait for confirmation from the processor
	confirmChan := make(chan struct{})

	select {
	case s.state.flushRequestChan <- confirmChan:
		// Request sent
	case <-time.After(minWaitTime): // Short timeout to prevent blocking if processor is stuck
		return fmtErrorf("failed to send flush request to processor (possible deadlock or high load)")
	}

	select {
	case <-confirmChan:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}
