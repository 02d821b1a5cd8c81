package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/fanlog"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 1000
	numWorkers     = 50
)

const logsDir = "./stress_logs"

var levels = []fanlog.Level{
	fanlog.LevelDebug,
	fanlog.LevelInfo,
	fanlog.LevelWarn,
	fanlog.LevelError,
}

var dispatcher *fanlog.Dispatcher

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msgSize := rand.Intn(maxMessageSize) + 10
		msg := generateRandomMessage(msgSize)
		values := []any{
			"wkr=", burstID % numWorkers,
			" bst=", burstID,
			" seq=", i,
			" rnd=", rand.Int63(),
		}
		dispatcher.Log(level, msg, values...)
	}
}

// worker goroutine function
func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
		}
	}
}

func main() {
	fmt.Println("--- Dispatcher Stress Test ---")

	_ = os.RemoveAll(logsDir) // Clean previous run's log directory before starting

	// --- Build Dispatcher ---
	// Small buffer and short report interval to surface drop accounting
	var err error
	dispatcher, err = fanlog.NewBuilder().
		Directory(logsDir).
		BufferSize(64).
		DropReportInterval(5 * time.Second).
		Console(false).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dispatcher: %v\n", err)
		os.Exit(1)
	}
	fileSink := dispatcher.Sinks()[0].(*fanlog.FileSink)
	fmt.Printf("Dispatcher ready. Logs will be written to: %s\n", logsDir)

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Watch for 'records dropped' entries in the day file.")
	fmt.Println("Press Ctrl+C to stop early.")

	// --- Setup Workers and Signal Handling ---
	burstChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts)
	}

	// --- Run Test ---
	startTime := time.Now()
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			goto endLoop
		}
	}
endLoop:
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	// --- Shutdown ---
	fmt.Println("Shutting down dispatcher (allowing up to 10s)...")
	err = dispatcher.Shutdown(10 * time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Dispatcher shutdown error: %v\n", err)
	} else {
		fmt.Println("Dispatcher shutdown complete.")
	}

	stats := fileSink.Stats()
	fmt.Printf("File sink stats: processed=%d dropped=%d rotations=%d deletions=%d\n",
		stats.Processed, stats.Dropped, stats.Rotations, stats.Deletions)
	fmt.Printf("Check log files in '%s'.\n", logsDir)
}
