package fanlog

import (
	"time"
)

// record is one queued file sink entry. Values travel unrendered; the
// processor formats them when the record reaches the front of the queue.
type record struct {
	timestamp time.Time
	level     Level
	message   string
	values    []any
}

// sendRecord handles safe sending to the record channel. Logging callers
// never block here: a full queue or a closed sink counts the record as
// dropped instead.
func (s *FileSink) sendRecord(rec record) {
	defer func() {
		if r := recover(); r != nil { // Catch panic on send to closed channel
			s.noteDrop()
		}
	}()

	if s.state.closed.Load() {
		// Record drops even after close so late callers are accounted for
		s.noteDrop()
		return
	}

	// Non-blocking send
	select {
	case s.records <- rec:
	default:
		s.noteDrop()
	}
}

// noteDrop counts one lost record for Stats and for the next drop report.
func (s *FileSink) noteDrop() {
	s.state.unreportedDrops.Add(1)
	s.state.dropped.Add(1)
}
