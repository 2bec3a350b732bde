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
	"github.com/actormesh/actormesh/internal/grpcremote"
	"github.com/actormesh/actormesh/pid"
)

// RemoteDeliver is the remote-specific counterpart to actor.MessageEnvelope:
// it additionally carries the serializer id a message must be encoded with
// once it leaves the node, and the target PID it is addressed to (the local
// mailbox envelope has no need for a target field since it already lives in
// that target's mailbox).
type RemoteDeliver struct {
	Header       map[string]string
	Message      any
	Target       pid.PID
	Sender       pid.PID
	HasSender    bool
	SerializerId uint32
}

// System messages an EndpointWriter's mailbox carries on its system queue,
// ahead of and with priority over any queued RemoteDeliver.

// SuspendMailbox pauses user-queue delivery until an EndpointConnectedEvent
// clears it. The writer's run loop sets suspended=true on processing this;
// it does not retry the transport while suspended.
type SuspendMailbox struct{}

// EndpointConnectedEvent announces that the writer's stream is up (or has
// been re-established); it clears suspended.
type EndpointConnectedEvent struct {
	Address string
}

// EndpointTerminatedEvent announces that the endpoint's transport has failed:
// the writer pushes it as soon as a send on its stream fails, without
// retrying the send. The manager reacts by removing the endpoint and
// telling every watcher registered against that address that its watchee
// is gone.
type EndpointTerminatedEvent struct {
	Address string
	Reason  error
}

// Stop asks the writer to drain its user queue to dead letters and halt.
type Stop struct{}

// ControlFrame asks the writer to send frame directly on the stream, ahead
// of any queued MessageBatch. EndpointManager uses this for Watch, Unwatch,
// and Terminated frames: control-plane traffic that bypasses
// serialization and batching entirely.
type ControlFrame struct {
	Frame *grpcremote.Frame
}
