package main

import (
	"github.com/lixenwraith/fanlog"
	"github.com/lixenwraith/fanlog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	// Method 1: Simple adapter
	dispatcher, err := fanlog.NewBuilder().
		Directory("/var/log/gnet").
		LevelString("all").
		Build()
	if err != nil {
		panic(err)
	}
	defer dispatcher.Shutdown()

	gnetAdapter := compat.NewGnetAdapter(dispatcher)

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
