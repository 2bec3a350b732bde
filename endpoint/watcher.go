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
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/actormesh/actormesh/pid"
)

// EndpointWatcher is this node's outbound remote-watch registry: a multimap
// from watchee id (a remote PID's string form) to the set of local PIDs
// watching it. One EndpointWatcher exists per remote address.
//
// RemoteTerminate fires exactly one Terminated notification per registered
// watcher, then clears every entry for that address, matching the
// at-most-once delivery spec.md requires on peer loss.
type EndpointWatcher struct {
	mu       sync.Mutex
	byWatchee map[string]mapset.Set[pid.PID]
	watchees  map[string]pid.PID
}

// NewEndpointWatcher returns an empty watch registry.
func NewEndpointWatcher() *EndpointWatcher {
	return &EndpointWatcher{
		byWatchee: make(map[string]mapset.Set[pid.PID]),
		watchees:  make(map[string]pid.PID),
	}
}

// RemoteWatch registers watcher's interest in watchee. Idempotent: watching
// the same pair twice leaves the registry unchanged.
func (w *EndpointWatcher) RemoteWatch(watcher, watchee pid.PID) {
	key := watchee.String()

	w.mu.Lock()
	defer w.mu.Unlock()

	set, ok := w.byWatchee[key]
	if !ok {
		set = mapset.NewSet[pid.PID]()
		w.byWatchee[key] = set
		w.watchees[key] = watchee
	}
	set.Add(watcher)
}

// RemoteUnwatch removes watcher's interest in watchee. Not an error if the
// pair was never registered.
func (w *EndpointWatcher) RemoteUnwatch(watcher, watchee pid.PID) {
	key := watchee.String()

	w.mu.Lock()
	defer w.mu.Unlock()

	set, ok := w.byWatchee[key]
	if !ok {
		return
	}
	set.Remove(watcher)
	if set.Cardinality() == 0 {
		delete(w.byWatchee, key)
		delete(w.watchees, key)
	}
}

// TerminateWatchee reports that one specific watchee stopped normally, as
// opposed to RemoteTerminate's whole-address peer loss. Every watcher
// registered against it is returned exactly once, then that one entry is
// cleared; other watchees at the same address are untouched.
func (w *EndpointWatcher) TerminateWatchee(watchee pid.PID) []pid.PID {
	key := watchee.String()

	w.mu.Lock()
	defer w.mu.Unlock()

	set, ok := w.byWatchee[key]
	if !ok {
		return nil
	}
	watchers := set.ToSlice()
	delete(w.byWatchee, key)
	delete(w.watchees, key)
	return watchers
}

// RemoteTerminate reports that the endpoint for address has gone down. Every
// watcher registered against a watchee at that address is returned exactly
// once, paired with the watchee it was watching, then the registry entries
// for that address are cleared.
func (w *EndpointWatcher) RemoteTerminate(address string) []WatchNotification {
	w.mu.Lock()
	defer w.mu.Unlock()

	var notifications []WatchNotification
	for key, watchee := range w.watchees {
		if watchee.Address != address {
			continue
		}
		for _, watcher := range w.byWatchee[key].ToSlice() {
			notifications = append(notifications, WatchNotification{Watcher: watcher, Watchee: watchee})
		}
		delete(w.byWatchee, key)
		delete(w.watchees, key)
	}
	return notifications
}

// WatchNotification pairs a watcher with the watchee it must be told about.
type WatchNotification struct {
	Watcher pid.PID
	Watchee pid.PID
}
