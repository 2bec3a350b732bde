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

// Package grpcremote holds the wire types and ConnectRPC service definitions
// for the bidirectional streaming RPC endpoint writers and readers exchange
// frames over. The types here play the role generated protobuf code would
// normally play; they are hand-written instead of protoc-generated because
// this repository has no .proto sources of its own, but they are transported
// the same way generated types are: as the Req/Res type parameters of
// connect.Client/connect.Handler, marshaled by the codec in codec.go.
package grpcremote

// FrameKind discriminates which field of Frame is populated. Only one of
// Frame's pointer fields is non-nil for a given Kind.
type FrameKind int32

const (
	FrameKindUnknown FrameKind = iota
	FrameKindConnect
	FrameKindBatch
	FrameKindWatch
	FrameKindUnwatch
	FrameKindTerminated
	FrameKindActorPidRequest
	FrameKindActorPidResponse
)

func (k FrameKind) String() string {
	switch k {
	case FrameKindConnect:
		return "connect"
	case FrameKindBatch:
		return "batch"
	case FrameKindWatch:
		return "watch"
	case FrameKindUnwatch:
		return "unwatch"
	case FrameKindTerminated:
		return "terminated"
	case FrameKindActorPidRequest:
		return "actor_pid_request"
	case FrameKindActorPidResponse:
		return "actor_pid_response"
	default:
		return "unknown"
	}
}

// Frame is the single message type exchanged over the Connect stream.
// It multiplexes every wire verb spec.md §6 names onto one channel: a
// handshake, batched user/system deliveries, and the watch/unwatch/spawn
// control verbs. Exactly one payload field is set, matching Kind.
type Frame struct {
	Kind FrameKind `json:"kind"`

	Connect           *ConnectFrame      `json:"connect,omitempty"`
	Batch             *MessageBatch      `json:"batch,omitempty"`
	Watch             *WatchFrame        `json:"watch,omitempty"`
	Unwatch           *WatchFrame        `json:"unwatch,omitempty"`
	Terminated        *TerminatedFrame   `json:"terminated,omitempty"`
	ActorPidRequest   *ActorPidRequest   `json:"actorPidRequest,omitempty"`
	ActorPidResponse  *ActorPidResponse  `json:"actorPidResponse,omitempty"`
}

// ConnectFrame is the first frame an endpoint writer sends after opening the
// stream: it advertises the address the reader should register this stream
// under.
type ConnectFrame struct {
	Address string `json:"address"`
}

// PID is the wire form of pid.PID. grpcremote does not import the pid
// package to keep the wire types free of any dependency beyond what the
// codec needs; endpoint/ converts between this and pid.PID at the boundary.
type PID struct {
	Address string `json:"address"`
	Id      string `json:"id"`
}

// Envelope is one message inside a MessageBatch. TargetIndex and
// SenderIndex index into MessageBatch.Targets; TypeIndex indexes into
// MessageBatch.TypeNames. Using small-int handles instead of repeating the
// PID/type-name on every envelope keeps batches with many messages to the
// same handful of targets compact.
type Envelope struct {
	TargetIndex   int32             `json:"targetIndex"`
	TypeIndex     int32             `json:"typeIndex"`
	SerializerId  uint32            `json:"serializerId"`
	Data          []byte            `json:"data"`
	SenderIndex   int32             `json:"senderIndex,omitempty"`
	HasSender     bool              `json:"hasSender,omitempty"`
	Header        map[string]string `json:"header,omitempty"`
	MessageHeader map[string]string `json:"messageHeader,omitempty"`
}

// MessageBatch carries one or more Envelopes, plus the deduplicated type
// name and target/sender PID tables the envelopes index into.
type MessageBatch struct {
	TypeNames []string    `json:"typeNames"`
	Targets   []PID       `json:"targets"`
	Envelopes []*Envelope `json:"envelopes"`
}

// WatchFrame carries both RemoteWatch and RemoteUnwatch requests; Kind on
// the enclosing Frame distinguishes which verb it is.
type WatchFrame struct {
	WatcherAddress string `json:"watcherAddress"`
	WatcherId      string `json:"watcherId"`
	WatcheeId      string `json:"watcheeId"`
}

// TerminatedFrame notifies a remote watcher that a watched actor is gone.
type TerminatedFrame struct {
	WatcheeAddress     string `json:"watcheeAddress"`
	WatcheeId          string `json:"watcheeId"`
	AddressTerminated  bool   `json:"addressTerminated"`
}

// StatusCode mirrors spec.md §6's closed set of remote-spawn outcomes.
type StatusCode int32

const (
	StatusOK StatusCode = iota
	StatusUnavailable
	StatusTimeout
	StatusProcessNameAlreadyExist
	StatusError
)

func (s StatusCode) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusUnavailable:
		return "Unavailable"
	case StatusTimeout:
		return "Timeout"
	case StatusProcessNameAlreadyExist:
		return "ProcessNameAlreadyExist"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ActorPidRequest is spawnNamed's wire form: spawn an actor of Kind under
// Name at the receiving node, or, when Singleton is set, first look up an
// actor already running under Name and return it instead.
type ActorPidRequest struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Singleton   bool   `json:"singleton,omitempty"`
	Relocatable bool   `json:"relocatable,omitempty"`
}

// ActorPidResponse answers an ActorPidRequest.
type ActorPidResponse struct {
	Pid          *PID       `json:"pid,omitempty"`
	StatusCode   StatusCode `json:"statusCode"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}
