package fanlog

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDropReportOnClose verifies drops still pending when the sink shuts
// down are written before the processor exits
func TestDropReportOnClose(t *testing.T) {
	sink, _ := createTestFileSink(t)

	sink.noteDrop()
	sink.noteDrop()

	require.NoError(t, sink.Close(2*time.Second))

	content := readActiveFile(t, sink)
	assert.Contains(t, content, "\tError\trecords dropped\t2")
	assert.Equal(t, 1, strings.Count(content, "\n"))

	stats := sink.Stats()
	assert.Equal(t, uint64(2), stats.Dropped)
	assert.Equal(t, uint64(1), stats.Processed)
}

// TestDropReportTicker verifies the periodic report surfaces drops during
// quiet stretches with no record writes to piggyback on
func TestDropReportTicker(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Directory = tmpDir
	cfg.BufferSize = 100
	cfg.DropReportIntervalS = 1

	sink, err := newFileSink(cfg)
	require.NoError(t, err)
	defer sink.Close(2 * time.Second)

	for i := 0; i < 5; i++ {
		sink.noteDrop()
	}

	assert.Eventually(t, func() bool {
		content, err := os.ReadFile(sink.ActiveFilePath())
		if err != nil {
			return false
		}
		return strings.Contains(string(content), "records dropped\t5")
	}, 3*time.Second, 50*time.Millisecond, "ticker should write the pending drop report")
}

// TestDropFloodAccounting floods a tiny queue and checks the counters and
// the file agree: every record is either on disk or counted as dropped
func TestDropFloodAccounting(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Directory = tmpDir
	cfg.BufferSize = 1
	cfg.DropReportIntervalS = 0

	sink, err := newFileSink(cfg)
	require.NoError(t, err)

	const flood = 300
	for i := 0; i < flood; i++ {
		sink.Log(LevelInfo, "flood", i)
	}
	require.NoError(t, sink.Close(2*time.Second))

	content := readActiveFile(t, sink)
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	reportLines := 0
	for _, line := range lines {
		if strings.Contains(line, "records dropped") {
			reportLines++
		}
	}

	stats := sink.Stats()
	assert.Greater(t, stats.Dropped, uint64(0), "a one-slot queue under flood must drop")
	assert.Equal(t, uint64(len(lines)), stats.Processed, "every processed record is one file line")
	assert.Equal(t, flood, len(lines)-reportLines+int(stats.Dropped),
		"flood records are either written or counted dropped")
}

// TestDropReportPrecedesTriggeringRecord pins the report's position in the
// stream: it lands immediately before the record whose write surfaced it
func TestDropReportPrecedesTriggeringRecord(t *testing.T) {
	sink, _ := createTestFileSink(t)

	sink.Log(LevelInfo, "clean write")
	require.NoError(t, sink.Flush(2*time.Second))

	sink.noteDrop()
	sink.Log(LevelInfo, "dirty write")
	require.NoError(t, sink.Flush(2*time.Second))

	content := readActiveFile(t, sink)
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "clean write")
	assert.Contains(t, lines[1], "records dropped\t1")
	assert.Contains(t, lines[2], "dirty write")
}
