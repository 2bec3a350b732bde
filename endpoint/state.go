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

// Package endpoint implements the remote side of the mesh: one Endpoint per
// peer address, each backed by a writer that batches and ships outbound
// traffic and a watcher that tracks cross-node Watch/Unwatch registrations.
// Inbound traffic is handled by a Reader that implements
// grpcremote.RemotingServiceHandler and resolves each delivery against a
// local Dispatcher (satisfied by *actor.System).
package endpoint

// State is the lifecycle of an Endpoint. EndpointManager moves a freshly
// dialed endpoint to Connected; no code in this package moves one to
// Suspended, and a failed transport removes the endpoint instead of
// re-establishing it.
type State int32

const (
	// Connecting is the state from creation until the first successful
	// handshake.
	Connecting State = iota
	// Connected means the writer's stream is up and accepting traffic.
	Connected
	// Suspended means delivery is paused. The writer does not retry a
	// failed transport, so nothing returns an endpoint from here to
	// Connected.
	Suspended
	// Terminated is final: the endpoint has been torn down and will not be
	// reused. A fresh outbound reference creates a new Endpoint.
	Terminated
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Suspended:
		return "Suspended"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
