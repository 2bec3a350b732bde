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

	"github.com/actormesh/actormesh/actor"
	"github.com/actormesh/actormesh/pid"
)

// Dispatcher is the local-delivery surface a Reader needs. *actor.System
// satisfies it; Reader depends on this narrow interface instead of the whole
// System so it can be driven by a fake in tests.
type Dispatcher interface {
	Deliver(ctx context.Context, target, sender pid.PID, message any, header map[string]string) error
	DeadLetter(sender, receiver pid.PID, message any, reason string)

	// Watch and Unwatch let Reader bridge an inbound remote Watch/Unwatch
	// frame onto the local actor.System's existing watch machinery: the
	// peer is registered as a watcher whose PID carries its own remote
	// address, so when the watchee later stops, System.notifyWatchers
	// routes the notification back out through the RemoteNotifier instead
	// of attempting a meaningless local Tell.
	Watch(watcher, watchee pid.PID) error
	Unwatch(watcher, watchee pid.PID) error

	// Address is this node's own advertised address, needed by Reader to
	// build the sentinel watcher PID for an inbound Watch frame.
	Address() string
}

// Spawner is the subset of *actor.System a Reader needs to satisfy a remote
// ActorPidRequest: look up an already-running actor by name, or start a
// fresh one.
type Spawner interface {
	Spawn(name string, a actor.Actor) (pid.PID, error)
	Lookup(name string) (pid.PID, bool)
}

// KindFactory builds a fresh Actor instance for a kind name registered
// through remote.Config's RemoteKinds. It is the local equivalent of
// looking up a prototype and cloning it.
type KindFactory func() actor.Actor
