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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/actormesh/actormesh/actor"
	"github.com/actormesh/actormesh/pid"
	"github.com/actormesh/actormesh/remote"
	"github.com/actormesh/actormesh/serialization"
)

func TestHostOfAndPortOf(t *testing.T) {
	assert.Equal(t, "10.0.0.1", hostOf("10.0.0.1:9000"))
	assert.Equal(t, 9000, portOf("10.0.0.1:9000"))

	assert.Equal(t, "not-a-host-port", hostOf("not-a-host-port"))
	assert.Equal(t, 0, portOf("not-a-host-port"))
}

func TestEndpointManager_HandleTerminated_NotifiesAndClears(t *testing.T) {
	dispatcher := newFakeDispatcher("node-1")
	manager := NewEndpointManager("node-1", remote.DefaultConfig(), serialization.NewRegistry(), nil, dispatcher, nil)

	watchee := pid.New("node-2", "worker")
	watcher := pid.New("node-1", "caller")

	w := NewEndpointWatcher()
	w.RemoteWatch(watcher, watchee)
	manager.watchers.Set("node-2", w)
	manager.endpoints.Set("node-2", newEndpoint("node-1", "node-2", nil))

	manager.handleTerminated("node-2", assert.AnError)

	_, stillThere := manager.endpoints.Get("node-2")
	assert.False(t, stillThere)
	_, stillWatching := manager.watchers.Get("node-2")
	assert.False(t, stillWatching)

	require.Len(t, dispatcher.delivered, 1)
	got := dispatcher.delivered[0]
	assert.Equal(t, watcher, got.target)
	assert.Equal(t, watchee, got.sender)
	assert.Equal(t, &actor.Terminated{Actor: watchee, AddressTerminated: true}, got.message)
}

func TestEndpointManager_NotifyTerminated_DeliversToMatchingWatcherOnly(t *testing.T) {
	dispatcher := newFakeDispatcher("node-1")
	manager := NewEndpointManager("node-1", remote.DefaultConfig(), serialization.NewRegistry(), nil, dispatcher, nil)

	stopped := pid.New("node-2", "worker-1")
	survivor := pid.New("node-2", "worker-2")
	watcher := pid.New("node-1", "caller")

	w := NewEndpointWatcher()
	w.RemoteWatch(watcher, stopped)
	w.RemoteWatch(watcher, survivor)
	manager.watchers.Set("node-2", w)

	manager.NotifyTerminated(context.Background(), "node-2", "worker-1", false)

	require.Len(t, dispatcher.delivered, 1)
	got := dispatcher.delivered[0]
	assert.Equal(t, watcher, got.target)
	assert.Equal(t, stopped, got.sender)
	assert.Equal(t, &actor.Terminated{Actor: stopped, AddressTerminated: false}, got.message)

	// the sibling watchee's registration must survive
	_, stillRegistered := manager.watchers.Get("node-2")
	assert.True(t, stillRegistered)
	assert.Equal(t, []pid.PID{watcher}, w.TerminateWatchee(survivor))
}

func TestEndpointManager_NotifyTerminated_UnknownAddressIsNoop(t *testing.T) {
	dispatcher := newFakeDispatcher("node-1")
	manager := NewEndpointManager("node-1", remote.DefaultConfig(), serialization.NewRegistry(), nil, dispatcher, nil)

	assert.NotPanics(t, func() {
		manager.NotifyTerminated(context.Background(), "node-9", "worker", false)
	})
	assert.Empty(t, dispatcher.delivered)
}

func TestEndpointManager_EnableMetrics_InstallsInstruments(t *testing.T) {
	dispatcher := newFakeDispatcher("node-1")
	manager := NewEndpointManager("node-1", remote.DefaultConfig(), serialization.NewRegistry(), nil, dispatcher, nil)

	require.Nil(t, manager.metrics)
	require.NoError(t, manager.EnableMetrics(noop.NewMeterProvider().Meter("test")))
	assert.NotNil(t, manager.metrics)
}

func TestEndpointManager_HandleTerminated_UnknownAddressIsNoop(t *testing.T) {
	dispatcher := newFakeDispatcher("node-1")
	manager := NewEndpointManager("node-1", remote.DefaultConfig(), serialization.NewRegistry(), nil, dispatcher, nil)

	assert.NotPanics(t, func() {
		manager.handleTerminated("node-9", assert.AnError)
	})
	assert.Empty(t, dispatcher.delivered)
}
