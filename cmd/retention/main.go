package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/fanlog"
)

const logsDir = "./retention_logs"
const retentionDays = 10

// seedDayFile creates a fake day file dated the given number of days back
func seedDayFile(daysBack int) (string, error) {
	date := time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")
	path := filepath.Join(logsDir, date+".log")
	line := fmt.Sprintf("%s\tInfo\tseeded record\n", time.Now().Format(time.RFC3339))
	return path, os.WriteFile(path, []byte(line), 0644)
}

func main() {
	fmt.Println("--- Retention Sweep Example ---")

	_ = os.RemoveAll(logsDir)
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		os.Exit(1)
	}

	// Seed day files around the retention boundary, plus names the sweep
	// must leave alone
	for _, daysBack := range []int{1, 9, 10, 11, 30} {
		path, err := seedDayFile(daysBack)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %s\n", path)
	}
	for _, name := range []string{"latest.log", "2024-99-99.log", "notes.txt"} {
		path := filepath.Join(logsDir, name)
		if err := os.WriteFile(path, []byte("not a day file\n"), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %s (must survive)\n", path)
	}

	// Construction triggers the sweep in the background
	fileSink, err := fanlog.NewFileSink(logsDir, retentionDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create file sink: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("File sink created with retention_days=%d, active file: %s\n",
		retentionDays, fileSink.ActiveFilePath())

	fileSink.Log(fanlog.LevelInfo, "retention example run")
	if err := fileSink.Flush(time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Flush error: %v\n", err)
	}

	// The sweep is asynchronous; give it a moment before inspecting
	time.Sleep(500 * time.Millisecond)

	entries, err := os.ReadDir(logsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read log directory: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Surviving entries:")
	for _, entry := range entries {
		fmt.Printf("  %s\n", entry.Name())
	}

	stats := fileSink.Stats()
	fmt.Printf("Deletions performed: %d (expected 2: the 11 and 30 day old files)\n", stats.Deletions)

	if err := fileSink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Close error: %v\n", err)
	}
	fmt.Println("--- Example Finished ---")
}
