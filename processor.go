package fanlog

import (
	"time"
)

// process is the main record processing loop running in a separate
// goroutine. It is the only writer of currentDate and the only goroutine
// touching the day files, so rotation needs no locking.
func (s *FileSink) process(currentDate string) {
	defer s.state.processorExited.Store(true) // Ensure flag is set on exit

	// Drop report ticker covers quiet periods; write-time reporting covers
	// active ones. Interval 0 leaves only the write-time reports.
	var reportChan <-chan time.Time
	if s.dropReportInterval > 0 {
		reportTicker := time.NewTicker(s.dropReportInterval)
		defer reportTicker.Stop()
		reportChan = reportTicker.C
	}

	// --- Main Loop ---
	for {
		select {
		case rec, ok := <-s.records:
			if !ok {
				// Channel closed: surface remaining drops and exit
				s.writeDropReport(&currentDate)
				return
			}
			s.writeRecord(&currentDate, rec)

		case confirmChan := <-s.state.flushRequestChan:
			s.drainQueued(&currentDate)
			close(confirmChan)

		case <-reportChan:
			s.writeDropReport(&currentDate)
		}
	}
}

// drainQueued writes every record already sitting in the queue. Records sent
// before the flush request was queued are guaranteed to be in the buffer, so
// flushing after them observes their writes.
func (s *FileSink) drainQueued(currentDate *string) {
	for {
		select {
		case rec, ok := <-s.records:
			if !ok {
				return
			}
			s.writeRecord(currentDate, rec)
		default:
			return
		}
	}
}

// writeRecord rotates if the record's local calendar date moved past
// currentDate, then appends one formatted line to the active file.
func (s *FileSink) writeRecord(currentDate *string, rec record) {
	// Surface pending drops in-stream before the triggering record
	if s.state.unreportedDrops.Load() > 0 {
		s.writeDropReport(currentDate)
	}

	recordDate := rec.timestamp.Format(dateLayout)
	if recordDate != *currentDate {
		s.rotate(currentDate, recordDate)
	}

	line := s.formatter.Format(rec.timestamp, levelName(rec.level), rec.message, rec.values)
	if s.appendLine(line) {
		s.state.processed.Add(1)
	} else {
		s.state.dropped.Add(1)
	}
}

// writeDropReport emits a synthetic error record carrying the number of
// records dropped since the previous report, if any.
func (s *FileSink) writeDropReport(currentDate *string) {
	droppedCount := s.state.unreportedDrops.Swap(0)
	if droppedCount == 0 {
		return
	}
	s.writeRecord(currentDate, record{
		timestamp: s.now(),
		level:     LevelError,
		message:   "records dropped",
		values:    []any{droppedCount},
	})
}

// rotate advances the active file to recordDate and triggers a background
// retention sweep so stale days are pruned as new ones open. Runs only on
// the processor goroutine.
func (s *FileSink) rotate(currentDate *string, recordDate string) {
	*currentDate = recordDate
	s.state.activePath.Store(s.filePathFor(recordDate))
	s.state.rotations.Add(1)

	go s.sweepExpired()
}
