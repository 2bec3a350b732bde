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

package actor

import (
	"context"

	"github.com/actormesh/actormesh/pid"
)

// Actor is the behavior a spawned process runs. Receive is invoked once per
// mailbox message, in order, from a single goroutine at a time — an actor
// never needs its own locking to stay consistent across messages.
type Actor interface {
	Receive(ctx context.Context, envelope *MessageEnvelope)
}

// ReceiveFunc adapts a plain function to the Actor interface, the way
// http.HandlerFunc adapts a function to http.Handler.
type ReceiveFunc func(ctx context.Context, envelope *MessageEnvelope)

// Receive calls f.
func (f ReceiveFunc) Receive(ctx context.Context, envelope *MessageEnvelope) {
	f(ctx, envelope)
}

// Terminated is delivered to a watcher's mailbox once its watched actor
// stops, mirroring the wire-level Terminated frame a remote watch receives.
// AddressTerminated distinguishes why: false means Actor stopped gracefully
// and the watcher learned about it directly; true means the watcher lost the
// whole remote address (endpoint/transport failure) and cannot tell whether
// Actor itself is still running.
type Terminated struct {
	Actor             pid.PID
	AddressTerminated bool
}
