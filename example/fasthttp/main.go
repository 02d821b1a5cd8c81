package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/fanlog"
	"github.com/lixenwraith/fanlog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	// Create and configure dispatcher
	dispatcher, err := fanlog.NewBuilder().
		Directory("/var/log/fasthttp").
		LevelString("info,warn,error").
		BufferSize(2048).
		Build()
	if err != nil {
		panic(err)
	}
	defer dispatcher.Shutdown()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		dispatcher,
		compat.WithDefaultLevel(fanlog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) fanlog.Level {
	// Custom logic to detect log levels
	// Can inspect specific fasthttp message patterns

	if strings.Contains(msg, "connection cannot be served") {
		return fanlog.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return fanlog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
