package fanlog

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// filePathFor derives the day file path for a YYYY-MM-DD date string.
func (s *FileSink) filePathFor(date string) string {
	return filepath.Join(s.basePath, date+fileSuffix)
}

// appendLine opens the active day file, appends one record line and closes
// it again. Failures are reported to the fallback writer and return false;
// they never reach the logging caller.
func (s *FileSink) appendLine(line []byte) bool {
	path := s.ActiveFilePath()

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		s.internalLog("failed to open log file '%s': %v\n", path, err)
		return false
	}

	_, writeErr := file.Write(line)
	closeErr := file.Close()
	if writeErr != nil {
		s.internalLog("failed to write log file '%s': %v\n", path, writeErr)
		return false
	}
	if closeErr != nil {
		s.internalLog("failed to close log file '%s': %v\n", path, closeErr)
	}
	return true
}

// sweepExpired removes day files whose leading date falls strictly before
// the retention cutoff. Best-effort: failures are reported to the fallback
// writer and skipped, never retried; names without a valid leading date are
// left alone.
func (s *FileSink) sweepExpired() {
	// Calendar comparison, not elapsed time: with retentionDays=10, a file
	// from 10 days ago survives while one from 11 days ago is removed
	cutoff := dateOnly(s.now()).AddDate(0, 0, -int(s.retentionDays))

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		s.internalLog("failed to read log directory '%s' for retention sweep: %v\n", s.basePath, err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileDate, ok := parseDayFileName(entry.Name())
		if !ok {
			continue
		}
		if !fileDate.Before(cutoff) {
			continue
		}

		filePath := filepath.Join(s.basePath, entry.Name())
		if err := os.Remove(filePath); err != nil {
			s.internalLog("failed to remove expired log file '%s': %v\n", filePath, err)
			continue
		}
		s.state.deletions.Add(1)
	}
}

// parseDayFileName extracts the leading calendar date from a day file name.
// Returns ok=false for names missing the log suffix or whose leading
// characters are not a strictly valid date.
func parseDayFileName(name string) (time.Time, bool) {
	if !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, false
	}
	if len(name) < len(dateLayout)+len(fileSuffix) {
		return time.Time{}, false
	}
	fileDate, err := time.ParseInLocation(dateLayout, name[:len(dateLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return fileDate, true
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
