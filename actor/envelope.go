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

// Package actor implements the local actor runtime: a process registry, a
// worker-pool-backed mailbox per actor, and the dead-letter/lifecycle event
// stream. Remote delivery lives in the endpoint package, which resolves
// incoming envelopes against a System the same way a local sender would.
package actor

import "github.com/actormesh/actormesh/pid"

// MessageEnvelope carries a single message into an actor's mailbox, whether
// it originated from a local Tell or arrived over the wire through endpoint.
// Header carries propagated metadata (trace ids, deadlines) the way
// remote.ContextPropagator injects it on the wire path.
type MessageEnvelope struct {
	Sender  pid.PID
	Message any
	Header  map[string]string
}
