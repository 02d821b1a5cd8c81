package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fanlog"
)

// Simulate rapid runtime reconfiguration: the level mask flips and sinks
// churn while another goroutine logs continuously.
func main() {
	var attempted atomic.Int64
	var delivered atomic.Int64

	counter := fanlog.SinkFunc(func(fanlog.Level, string, ...any) {
		delivered.Add(1)
	})

	dispatcher := fanlog.NewDispatcher()
	dispatcher.Add(counter)

	// Log something constantly
	done := make(chan struct{})
	go func() {
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			dispatcher.Info("test record", "i=", i)
			attempted.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	// Flip masks and churn sinks rapidly
	masks := []fanlog.Level{
		fanlog.LevelAll,
		fanlog.LevelInfo | fanlog.LevelError,
		fanlog.LevelNone,
		fanlog.LevelError,
		fanlog.LevelAll,
	}
	for i := 0; i < 10; i++ {
		dispatcher.SetLevel(masks[i%len(masks)])

		// Churn a transient sink to exercise snapshot rebuilds
		transient := fanlog.SinkFunc(func(fanlog.Level, string, ...any) {})
		dispatcher.Add(transient)
		time.Sleep(10 * time.Millisecond)
		dispatcher.Remove(transient)
	}

	time.Sleep(100 * time.Millisecond)
	close(done)
	time.Sleep(10 * time.Millisecond)

	// Delivered is lower than attempted because some records hit masks
	// without the info flag
	fmt.Printf("Attempted: %d, delivered: %d\n", attempted.Load(), delivered.Load())
	fmt.Printf("Final mask: %v, sinks: %d\n", dispatcher.Level(), len(dispatcher.Sinks()))

	if err := dispatcher.Shutdown(time.Second); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
}
