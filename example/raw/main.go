package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/fanlog"
)

// TestPayload defines a struct for testing complex type serialization.
type TestPayload struct {
	RequestID uint64
	User      string
	Metrics   map[string]float64
}

func main() {
	fmt.Println("--- Value Serialization Test ---")

	// --- 1. Define the records to be tested ---
	// Record 1: A byte slice with special characters (newline, tab, null).
	// The record sanitizer escapes these so the line structure survives.
	byteRecord := []byte("binary\ndata\twith\x00null")

	// Record 2: A struct containing a uint64, a string, and a map.
	// Complex types are dumped through spew with sorted keys.
	structRecord := TestPayload{
		RequestID: 9223372036854775807, // A large uint64
		User:      "test_user",
		Metrics: map[string]float64{
			"latency_ms":  15.7,
			"cpu_percent": 88.2,
		},
	}

	// --- 2. Write each value kind through a file sink ---
	fmt.Println("\n[1] Writing typed values through a file sink")
	fileSink, err := fanlog.NewFileSink("./value_logs", 7)
	if err != nil {
		fmt.Printf("Failed to create file sink: %v\n", err)
		os.Exit(1)
	}

	dispatcher := fanlog.NewDispatcher()
	dispatcher.Add(fileSink)

	dispatcher.Info("byte record", byteRecord)
	dispatcher.Info("struct record", structRecord)
	dispatcher.Info("scalar records", "str", 42, int64(-7), uint64(9000), 3.14, true, nil)
	dispatcher.Info("time and error", time.Unix(0, 0).UTC(), " ", errors.New("wrapped failure"))

	if err := dispatcher.Flush(time.Second); err != nil {
		fmt.Printf("Flush error: %v\n", err)
	}

	// --- 3. Show the resulting lines ---
	fmt.Println("\n[2] Resulting day file content:")
	content, err := os.ReadFile(fileSink.ActiveFilePath())
	if err != nil {
		fmt.Printf("Failed to read day file: %v\n", err)
	} else {
		fmt.Print(string(content))
	}

	if err := dispatcher.Shutdown(time.Second); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
	fmt.Println("\n--- Test Finished ---")
}
