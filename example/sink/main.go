package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/fanlog"
)

const logDirectory = "./temp_logs"

// main walks through the sink composition scenarios.
func main() {
	// Ensure a clean state by removing the previous log directory.
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}

	fmt.Println("--- Sink Composition Examples ---")
	fmt.Printf("! All file-based records will be in the '%s' directory.\n\n", logDirectory)

	testClosureSink()
	testIdentityRegistration()
	testPanicIsolation()
	testEmptySet()
	testMixedFanOut()

	fmt.Println("\n--- Sink Composition Examples Complete ---")
	fmt.Printf("Check the '%s' directory for day files.\n", logDirectory)
}

// testClosureSink wires a counting closure through SinkFunc.
func testClosureSink() {
	fmt.Println("[1] Closure sink via SinkFunc")

	var delivered int
	counter := fanlog.SinkFunc(func(level fanlog.Level, message string, values ...any) {
		delivered++
		fmt.Printf("  closure got: level=%v message=%q values=%v\n", level, message, values)
	})

	dispatcher := fanlog.NewDispatcher(fanlog.LevelInfo | fanlog.LevelError)
	dispatcher.Add(counter)

	dispatcher.Debug("filtered out")       // Debug not in mask
	dispatcher.Info("delivered", "id=", 1) // Passes
	dispatcher.Error("also delivered")     // Passes

	fmt.Printf("  delivered=%d (expected 2)\n\n", delivered)
}

// testIdentityRegistration shows idempotent add and order-preserving remove.
func testIdentityRegistration() {
	fmt.Println("[2] Identity-based registration")

	first := fanlog.SinkFunc(func(fanlog.Level, string, ...any) {})
	second := fanlog.SinkFunc(func(fanlog.Level, string, ...any) {})

	dispatcher := fanlog.NewDispatcher()
	dispatcher.Add(first)
	dispatcher.Add(second)
	dispatcher.Add(first) // Same handle, no-op
	fmt.Printf("  after duplicate add: %d sinks (expected 2)\n", len(dispatcher.Sinks()))

	dispatcher.Remove(first)
	fmt.Printf("  after remove: %d sinks (expected 1)\n", len(dispatcher.Sinks()))

	dispatcher.Remove(first) // Already gone, no-op
	fmt.Printf("  after repeat remove: %d sinks (expected 1)\n\n", len(dispatcher.Sinks()))
}

// testPanicIsolation shows a failing sink not breaking the fan-out.
func testPanicIsolation() {
	fmt.Println("[3] Panic isolation")

	var survived bool
	bad := fanlog.SinkFunc(func(fanlog.Level, string, ...any) {
		panic("sink exploded")
	})
	good := fanlog.SinkFunc(func(fanlog.Level, string, ...any) {
		survived = true
	})

	dispatcher := fanlog.NewDispatcher()
	dispatcher.Add(bad)
	dispatcher.Add(good)

	// The panic is reported to the fallback writer (stderr) and swallowed
	dispatcher.Info("still delivered to the second sink")
	fmt.Printf("  second sink reached: %v (expected true)\n\n", survived)
}

// testEmptySet shows the no-sink diagnostic.
func testEmptySet() {
	fmt.Println("[4] Empty sink set (watch stderr for the diagnostic)")

	dispatcher := fanlog.NewDispatcher()
	dispatcher.Info("nowhere to go")
	fmt.Println()
}

// testMixedFanOut combines file, console and closure sinks on one dispatcher.
func testMixedFanOut() {
	fmt.Println("[5] Mixed fan-out: file + console + closure")

	fileSink, err := fanlog.NewFileSink(logDirectory, 7)
	if err != nil {
		fmt.Printf("  ERROR: failed to create file sink: %v\n", err)
		os.Exit(1)
	}

	var count int
	counter := fanlog.SinkFunc(func(fanlog.Level, string, ...any) { count++ })

	dispatcher := fanlog.NewDispatcher()
	dispatcher.Add(fileSink)
	dispatcher.Add(fanlog.NewConsoleSink())
	dispatcher.Add(counter)

	dispatcher.Info("fan-out record", "run=", time.Now().Unix())
	dispatcher.Error("error record reaches all three sinks")

	// Flush reaches the file sink through the dispatcher
	if err := dispatcher.Flush(time.Second); err != nil {
		fmt.Printf("  WARNING: flush error: %v\n", err)
	}
	fmt.Printf("  closure count=%d (expected 2), active file: %s\n", count, fileSink.ActiveFilePath())

	if err := dispatcher.Shutdown(time.Second); err != nil {
		fmt.Printf("  WARNING: shutdown error: %v\n", err)
	}
}
