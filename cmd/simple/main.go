package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/fanlog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[fanlog]
  level = "all"
  directory = "./simple_logs"
  retention_days = 7
  buffer_size = 1024
  drop_report_interval_s = 60
  enable_console = true
  enable_file = true
`

func main() {
	fmt.Println("--- Simple Dispatcher Example ---")

	// --- Setup Config ---
	// Create dummy config file
	err := os.WriteFile(configFile, []byte(tomlContent), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		// Continue with defaults potentially
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
		// defer os.Remove(configFile) // Remove to keep the config file
		// defer os.RemoveAll("./simple_logs") // Remove to keep the log directory
	}

	// Load config from file; missing files fall back to defaults
	cfg, err := fanlog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// --- Build Dispatcher ---
	dispatcher, err := fanlog.NewBuilder().Config(cfg).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dispatcher: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Dispatcher built.")

	// --- Logging ---
	dispatcher.Debug("This is a debug message.", "user_id=", 123)
	dispatcher.Info("Application starting...")
	dispatcher.Warn("Potential issue detected.", "threshold=", 0.95)
	dispatcher.Error("An error occurred!", "code=", 500)

	// Logging from goroutines
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			dispatcher.Info("Goroutine started", "id=", id)
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			dispatcher.Info("Goroutine finished", "id=", id)
		}(i)
	}

	// Wait for goroutines to finish before shutting down
	wg.Wait()
	fmt.Println("Goroutines finished.")

	// --- Shutdown ---
	fmt.Println("Shutting down dispatcher...")
	// Provide a reasonable timeout for records to flush
	err = dispatcher.Shutdown(2 * time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Dispatcher shutdown error: %v\n", err)
	} else {
		fmt.Println("Dispatcher shutdown complete.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Println("Check log files in './simple_logs'.")
}
