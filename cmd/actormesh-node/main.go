// MIT License
//
// Copyright (c) 2026 ActorMesh Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command actormesh-node boots one mesh node: an actor.System for local
// processes, an EndpointManager for the remote side, and the ConnectRPC
// server the rest of the mesh dials into.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/actormesh/actormesh/actor"
	"github.com/actormesh/actormesh/endpoint"
	"github.com/actormesh/actormesh/internal/grpcremote"
	"github.com/actormesh/actormesh/internal/metric"
	"github.com/actormesh/actormesh/internal/workerpool"
	"github.com/actormesh/actormesh/log"
	"github.com/actormesh/actormesh/remote"
	"github.com/actormesh/actormesh/serialization"
)

func main() {
	host := flag.String("host", "127.0.0.1", "address this node binds to and advertises to peers")
	port := flag.Int("port", 9000, "port this node's remoting server listens on")
	debug := flag.Bool("debug", false, "enable debug-level logging")
	flag.Parse()

	logger := log.NewZap(log.InfoLevel, os.Stdout)
	if *debug {
		logger = log.NewZap(log.DebugLevel, os.Stdout)
	}

	if err := run(*host, *port, logger); err != nil {
		logger.Fatal(err)
	}
}

// echoActor replies to every message by logging it; it exists so a freshly
// booted node has at least one remotely spawnable kind to demonstrate
// against.
type echoActor struct {
	logger log.Logger
}

func (e *echoActor) Receive(_ context.Context, envelope *actor.MessageEnvelope) {
	e.logger.Infof("echo received %T from %s", envelope.Message, envelope.Sender)
}

func run(host string, port int, logger log.Logger) error {
	address := net.JoinHostPort(host, strconv.Itoa(port))

	config := remote.NewConfig(host, port,
		remote.WithRemoteKinds(map[string]any{
			"echo": &echoActor{logger: logger},
		}),
	)
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid remote config: %w", err)
	}

	registry := serialization.NewRegistry()
	system := actor.New(address, logger)

	kinds := make(map[string]endpoint.KindFactory, len(config.RemoteKinds()))
	for name := range config.RemoteKinds() {
		kinds[name] = func() actor.Actor { return &echoActor{logger: logger} }
	}

	pool := workerpool.NewWorkerPool()
	pool.Start()
	defer pool.Stop()

	manager := endpoint.NewEndpointManager(address, config, registry, pool, system, logger)
	system.SetRemoteNotifier(manager.NotifyRemote)

	if err := manager.EnableMetrics(metric.NewProvider().Meter()); err != nil {
		logger.Error(fmt.Errorf("metrics disabled: %w", err))
	}

	reader := endpoint.NewReader(address, registry, config, system, system, manager, kinds, logger)
	path, handler := grpcremote.NewRemotingServiceHandler(reader)

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := &http.Server{
		Addr:              address,
		ReadTimeout:       5 * time.Minute,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       config.IdleTimeout(),
	}

	var serverTLS *tls.Config
	if tlsInfo := config.TLSInfo(); tlsInfo != nil {
		serverTLS = tlsInfo.ServerTLS
	}

	if serverTLS != nil {
		server.TLSConfig = serverTLS
		server.Handler = mux
	} else {
		server.Handler = h2c.NewHandler(mux, &http2.Server{
			MaxReadFrameSize: config.MaxFrameSize(),
			IdleTimeout:      config.IdleTimeout(),
			ReadIdleTimeout:  config.ReadIdleTimeout(),
			WriteByteTimeout: config.WriteTimeout(),
		})
	}

	go func() {
		logger.Infof("actormesh node listening on %s", address)
		var err error
		if serverTLS != nil {
			err = server.ListenAndServeTLS("", "")
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Panic(fmt.Errorf("remoting server failed: %w", err))
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	manager.Shutdown()
	if err := system.Shutdown(ctx); err != nil {
		logger.Error(err)
	}
	return server.Shutdown(ctx)
}
