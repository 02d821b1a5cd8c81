package compat

import (
	"fmt"

	"github.com/lixenwraith/fanlog"
)

// Builder provides a flexible way to create configured logger adapters for gnet and fasthttp
// It can use an existing *fanlog.Dispatcher instance or create a new one from a *fanlog.Config
type Builder struct {
	dispatcher *fanlog.Dispatcher
	cfg        *fanlog.Config
	err        error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithDispatcher specifies an existing dispatcher to use for the adapters
// Recommended for applications that already have a central dispatcher instance
// If this is set WithConfig is ignored
func (b *Builder) WithDispatcher(d *fanlog.Dispatcher) *Builder {
	if d == nil {
		b.err = fmt.Errorf("fanlog/compat: provided dispatcher cannot be nil")
		return b
	}
	b.dispatcher = d
	return b
}

// WithConfig provides a configuration for a new dispatcher instance
// This is used only if an existing dispatcher is NOT provided via WithDispatcher
// If neither WithDispatcher nor WithConfig is used, a default dispatcher will be built
func (b *Builder) WithConfig(cfg *fanlog.Config) *Builder {
	b.cfg = cfg
	return b
}

// getDispatcher resolves the dispatcher to be used, building one if necessary
func (b *Builder) getDispatcher() (*fanlog.Dispatcher, error) {
	if b.err != nil {
		return nil, b.err
	}

	// An existing dispatcher was provided, so we use it
	if b.dispatcher != nil {
		return b.dispatcher, nil
	}

	// Build a new dispatcher instance
	builder := fanlog.NewBuilder()
	if b.cfg != nil {
		builder = builder.Config(b.cfg)
	}
	d, err := builder.Build()
	if err != nil {
		return nil, err
	}

	// Cache the newly built dispatcher for subsequent builds with this builder
	b.dispatcher = d
	return d, nil
}

// BuildGnet creates a gnet adapter
// It can be used for servers that require a standard gnet logger
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	d, err := b.getDispatcher()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(d, opts...), nil
}

// BuildStructuredGnet creates a gnet adapter that attempts to extract structured
// fields from log messages for richer, queryable logs
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	d, err := b.getDispatcher()
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(d, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	d, err := b.getDispatcher()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(d, opts...), nil
}

// BuildFiber creates a Fiber v2.54.x adapter
func (b *Builder) BuildFiber(opts ...FiberOption) (*FiberAdapter, error) {
	d, err := b.getDispatcher()
	if err != nil {
		return nil, err
	}
	return NewFiberAdapter(d, opts...), nil
}

// GetDispatcher returns the underlying *fanlog.Dispatcher instance
// If a dispatcher has not been provided or built yet, it will be built
func (b *Builder) GetDispatcher() (*fanlog.Dispatcher, error) {
	return b.getDispatcher()
}

// --- Example Usage ---
//
// The following demonstrates how to integrate fanlog with gnet, fasthttp, and Fiber
// using a single, shared dispatcher instance
//
//	// 1. Create and configure application's main dispatcher
//	dispatcher, err := fanlog.NewBuilder().
//		Directory("/var/log/app").
//		LevelString("debug,info,warn,error").
//		Console(true).
//		Build()
//	if err != nil {
//		panic(fmt.Sprintf("failed to build dispatcher: %v", err))
//	}
//
//	// 2. Create a builder and provide the existing dispatcher
//	builder := compat.NewBuilder().WithDispatcher(dispatcher)
//
//	// 3. Build the required adapters
//	gnetLogger, err := builder.BuildGnet()
//	if err != nil { /* handle error */ }
//
//	fasthttpLogger, err := builder.BuildFastHTTP()
//	if err != nil { /* handle error */ }
//
//	fiberLogger, err := builder.BuildFiber()
//	if err != nil { /* handle error */ }
//
//	// 4. Configure your servers with the adapters
//
//	// For gnet:
//	var events gnet.EventHandler // your-event-handler
//	// The adapter is passed directly into the gnet options
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	// For fasthttp:
//	// The adapter is assigned directly to the server's Logger field
//	server := &fasthttp.Server{
//		Handler: func(ctx *fasthttp.RequestCtx) {
//			ctx.WriteString("Hello, world!")
//		},
//		Logger: fasthttpLogger,
//	}
//	go server.ListenAndServe(":8080")
//
//	// For Fiber v2.54.x:
//	// The adapter is passed to fiber.New() via the config
//	app := fiber.New(fiber.Config{
//		AppName: "My Application",
//	})
//	// fiber uses internal logging, adapter can be used in custom middleware
//	go app.Listen(":3000")
