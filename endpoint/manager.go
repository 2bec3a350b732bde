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

package endpoint

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/flowchartsman/retry"
	"go.opentelemetry.io/otel/metric"

	"github.com/actormesh/actormesh/actor"
	"github.com/actormesh/actormesh/internal/grpcremote"
	"github.com/actormesh/actormesh/internal/transporthttp"
	"github.com/actormesh/actormesh/internal/workerpool"
	"github.com/actormesh/actormesh/internal/xsync"
	"github.com/actormesh/actormesh/log"
	"github.com/actormesh/actormesh/pid"
	"github.com/actormesh/actormesh/remote"
	"github.com/actormesh/actormesh/serialization"
)

// EndpointManager owns every Endpoint this node has dialed or been dialed
// by, dials new ones with a bounded retry-with-backoff budget, and is the
// RemoteNotifier actor.System calls into when a locally-stopped actor has a
// watcher living at a remote address.
type EndpointManager struct {
	localAddress string
	config       *remote.Config
	registry     *serialization.Registry
	pool         *workerpool.WorkerPool
	dispatcher   Dispatcher
	logger       log.Logger
	httpClient   *http.Client
	metrics      *Metrics

	endpoints *xsync.Map[string, *Endpoint]
	watchers  *xsync.Map[string, *EndpointWatcher]
}

// NewEndpointManager wires a manager for localAddress. dispatcher is usually
// the node's *actor.System.
func NewEndpointManager(
	localAddress string,
	config *remote.Config,
	registry *serialization.Registry,
	pool *workerpool.WorkerPool,
	dispatcher Dispatcher,
	logger log.Logger,
) *EndpointManager {
	if logger == nil {
		logger = log.DiscardLogger
	}

	httpClient := transporthttp.NewClient(config.MaxFrameSize())
	if tlsInfo := config.TLSInfo(); tlsInfo != nil && tlsInfo.ClientTLS != nil {
		httpClient = transporthttp.NewTLSClient(tlsInfo.ClientTLS, config.MaxFrameSize())
	}

	return &EndpointManager{
		localAddress: localAddress,
		config:       config,
		registry:     registry,
		pool:         pool,
		dispatcher:   dispatcher,
		logger:       logger,
		httpClient:   httpClient,
		endpoints:    xsync.NewMap[string, *Endpoint](),
		watchers:     xsync.NewMap[string, *EndpointWatcher](),
	}
}

// EnableMetrics builds this manager's OpenTelemetry instruments from meter.
// Endpoints dialed after this call, and their writers, report
// connect/suspend/terminate counts and outbound batch size through it;
// writers constructed before the call keep recording nothing. A manager
// that never calls EnableMetrics simply records nothing.
func (m *EndpointManager) EnableMetrics(meter metric.Meter) error {
	metrics, err := NewMetrics(meter)
	if err != nil {
		return err
	}
	m.metrics = metrics
	return nil
}

// Get returns the already-dialed endpoint for address, if any.
func (m *EndpointManager) Get(address string) (*Endpoint, bool) {
	return m.endpoints.Get(address)
}

// GetOrDial returns the endpoint for address, dialing it with
// retry-with-backoff (bounded by the config's MaxRetries/RetryBackOff) if
// none is open yet.
func (m *EndpointManager) GetOrDial(ctx context.Context, address string) (*Endpoint, error) {
	if ep, ok := m.endpoints.Get(address); ok {
		return ep, nil
	}

	writer := NewEndpointWriter(
		m.localAddress, address,
		m.registry, m.pool, m.config,
		m.dispatcher, m.logger, m.metrics,
		func(reason error) { m.handleTerminated(address, reason) },
	)

	baseURL := transporthttp.URL(hostOf(address), portOf(address))
	if tlsInfo := m.config.TLSInfo(); tlsInfo != nil && tlsInfo.ClientTLS != nil {
		baseURL = transporthttp.URLs(hostOf(address), portOf(address))
	}
	client := grpcremote.NewRemotingServiceClient(m.httpClient, baseURL)

	dialCtx, cancel := context.WithTimeout(ctx, m.config.RetryTimeSpan())
	defer cancel()

	retrier := retry.NewRetrier(m.config.MaxRetries(), m.config.RetryBackOff(), m.config.RetryBackOff())
	if err := retrier.RunContext(dialCtx, func(ctx context.Context) error {
		return writer.Connect(ctx, client)
	}); err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}

	ep := newEndpoint(m.localAddress, address, writer)
	ep.setState(Connected)
	m.endpoints.Set(address, ep)
	m.watchers.Set(address, NewEndpointWatcher())
	m.metrics.recordConnect(ctx, address)
	return ep, nil
}

// Deliver routes message to target, dialing target's endpoint lazily on
// first reference. serializerId selects the serialization.Serializer the
// writer encodes message with on the wire.
func (m *EndpointManager) Deliver(ctx context.Context, target, sender pid.PID, hasSender bool, message any, header map[string]string, serializerId uint32) error {
	ep, err := m.GetOrDial(ctx, target.Address)
	if err != nil {
		return err
	}
	ep.writer.Deliver(target, sender, hasSender, message, header, serializerId)
	return nil
}

// Watch registers watcher's interest in watchee (a PID at a remote address),
// both locally (so RemoteTerminate can find it again on peer loss) and over
// the wire (so the peer knows to send a Terminated frame back).
func (m *EndpointManager) Watch(ctx context.Context, watcher, watchee pid.PID) error {
	ep, err := m.GetOrDial(ctx, watchee.Address)
	if err != nil {
		return err
	}

	w, _ := m.watchers.Get(watchee.Address)
	w.RemoteWatch(watcher, watchee)

	ep.writer.SendControl(&grpcremote.Frame{
		Kind: grpcremote.FrameKindWatch,
		Watch: &grpcremote.WatchFrame{
			WatcherAddress: watcher.Address,
			WatcherId:      watcher.Id,
			WatcheeId:      watchee.Id,
		},
	})
	return nil
}

// Unwatch is Watch's inverse.
func (m *EndpointManager) Unwatch(watcher, watchee pid.PID) {
	ep, ok := m.endpoints.Get(watchee.Address)
	if !ok {
		return
	}

	if w, ok := m.watchers.Get(watchee.Address); ok {
		w.RemoteUnwatch(watcher, watchee)
	}

	ep.writer.SendControl(&grpcremote.Frame{
		Kind: grpcremote.FrameKindUnwatch,
		Unwatch: &grpcremote.WatchFrame{
			WatcherAddress: watcher.Address,
			WatcherId:      watcher.Id,
			WatcheeId:      watchee.Id,
		},
	})
}

// NotifyRemote implements actor.RemoteNotifier: it sends a wire Terminated
// frame to the endpoint at watcher.Address rather than attempting a local
// Tell, which would otherwise silently dead-letter.
func (m *EndpointManager) NotifyRemote(ctx context.Context, watcher, watchee pid.PID, event *actor.Terminated) {
	ep, err := m.GetOrDial(ctx, watcher.Address)
	if err != nil {
		m.logger.Warnf("endpoint manager: cannot notify %s of %s termination: %v", watcher, watchee, err)
		return
	}

	ep.writer.SendControl(&grpcremote.Frame{
		Kind: grpcremote.FrameKindTerminated,
		Terminated: &grpcremote.TerminatedFrame{
			WatcheeAddress:    watchee.Address,
			WatcheeId:         watchee.Id,
			AddressTerminated: event.AddressTerminated,
		},
	})
}

// NotifyTerminated implements RemoteWatchers: it delivers a local Terminated
// to every watcher this node registered against watcheeId at peerAddress,
// in response to peerAddress itself reporting (via a wire Terminated frame)
// that the actor stopped. This is the normal-stop counterpart to
// handleTerminated, which instead fires on transport failure for every
// watchee at that address at once.
func (m *EndpointManager) NotifyTerminated(ctx context.Context, peerAddress, watcheeId string, addressTerminated bool) {
	w, ok := m.watchers.Get(peerAddress)
	if !ok {
		return
	}

	watchee := pid.New(peerAddress, watcheeId)
	event := &actor.Terminated{Actor: watchee, AddressTerminated: addressTerminated}
	for _, watcher := range w.TerminateWatchee(watchee) {
		if err := m.dispatcher.Deliver(ctx, watcher, watchee, event, nil); err != nil {
			m.logger.Warnf("endpoint manager: failed to notify %s of %s termination: %v", watcher, watchee, err)
		}
	}
}

// handleTerminated reacts to an endpoint's writer reporting transport
// failure: the endpoint is removed and every outbound watcher registered
// against that address is told the watchee is gone.
func (m *EndpointManager) handleTerminated(address string, reason error) {
	m.logger.Warnf("endpoint %s terminated: %v", address, reason)
	m.metrics.recordTerminate(context.Background(), address)

	m.endpoints.Delete(address)
	w, ok := m.watchers.Get(address)
	m.watchers.Delete(address)
	if !ok {
		return
	}

	for _, n := range w.RemoteTerminate(address) {
		_ = m.dispatcher.Deliver(context.Background(), n.Watcher, n.Watchee, &actor.Terminated{Actor: n.Watchee, AddressTerminated: true}, nil)
	}
}

// Shutdown stops every managed writer.
func (m *EndpointManager) Shutdown() {
	for _, ep := range m.endpoints.Values() {
		ep.writer.Stop()
	}
}

// hostOf and portOf split a "host:port" node address, defaulting the port to
// 0 if address carries none (GetOrDial then fails the dial, which is the
// correct outcome for a malformed address).
func hostOf(address string) string {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return address
	}
	return host
}

func portOf(address string) int {
	_, port, err := net.SplitHostPort(address)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return 0
	}
	return n
}
