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
	"go.uber.org/atomic"

	"github.com/actormesh/actormesh/pid"
)

// Endpoint is the per-remote-address session: one Endpoint exists for every
// distinct address this node has ever sent to or been watched from. It owns
// a writer (outbound batching + transport) and a watcher (remote watch
// bookkeeping), each addressable by a synthetic local PID for logging and
// dead-letter attribution, not because they are themselves actor.System
// actors.
type Endpoint struct {
	Address    string
	WriterPID  pid.PID
	WatcherPID pid.PID

	state  *atomic.Int32
	writer *EndpointWriter
}

func newEndpoint(localAddress, remoteAddress string, writer *EndpointWriter) *Endpoint {
	return &Endpoint{
		Address:    remoteAddress,
		WriterPID:  pid.New(localAddress, "endpoint-writer:"+remoteAddress),
		WatcherPID: pid.New(localAddress, "endpoint-watcher:"+remoteAddress),
		state:      atomic.NewInt32(int32(Connecting)),
		writer:     writer,
	}
}

// State returns the endpoint's current lifecycle state.
func (e *Endpoint) State() State {
	return State(e.state.Load())
}

func (e *Endpoint) setState(s State) {
	e.state.Store(int32(s))
}
