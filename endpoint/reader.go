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
	"errors"
	"io"

	"connectrpc.com/connect"

	aerrors "github.com/actormesh/actormesh/errors"
	"github.com/actormesh/actormesh/internal/grpcremote"
	"github.com/actormesh/actormesh/log"
	"github.com/actormesh/actormesh/pid"
	"github.com/actormesh/actormesh/remote"
	"github.com/actormesh/actormesh/serialization"
)

// RemoteWatchers resolves which local actors are watching a remote PID, so
// an inbound Terminated frame (the watchee's home node reporting a normal
// stop) can be turned into a local delivery. *EndpointManager satisfies it.
type RemoteWatchers interface {
	NotifyTerminated(ctx context.Context, peerAddress, watcheeId string, addressTerminated bool)
}

// Reader is the inbound half of this node's remoting surface: it implements
// grpcremote.RemotingServiceHandler, decoding each peer's Frame stream and
// routing batches, watch requests, and spawn requests onto the local
// Dispatcher/Spawner.
type Reader struct {
	localAddress   string
	registry       *serialization.Registry
	config         *remote.Config
	dispatcher     Dispatcher
	spawner        Spawner
	remoteWatchers RemoteWatchers
	kinds          map[string]KindFactory
	logger         log.Logger
}

// NewReader builds a Reader. kinds maps a remote.Config RemoteKinds name to
// the factory Spawn uses to build a fresh actor of that kind. remoteWatchers
// may be nil, in which case inbound Terminated frames are dropped rather
// than forwarded to a local watcher.
func NewReader(
	localAddress string,
	registry *serialization.Registry,
	config *remote.Config,
	dispatcher Dispatcher,
	spawner Spawner,
	remoteWatchers RemoteWatchers,
	kinds map[string]KindFactory,
	logger log.Logger,
) *Reader {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &Reader{
		localAddress:   localAddress,
		registry:       registry,
		config:         config,
		dispatcher:     dispatcher,
		spawner:        spawner,
		remoteWatchers: remoteWatchers,
		kinds:          kinds,
		logger:         logger,
	}
}

// Connect drains frames from stream for the lifetime of one peer connection.
// The first frame must be a Connect handshake; every frame after that is
// dispatched by Kind. The loop returns (closing the stream) only on a
// transport-level read error; protocol-level problems (an unresolved
// target, an unknown kind) are reported as dead letters or error responses
// without tearing down the connection.
func (r *Reader) Connect(ctx context.Context, stream *connect.BidiStream[grpcremote.Frame, grpcremote.Frame]) error {
	var peerAddress string

	for {
		frame, err := stream.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if peerAddress != "" {
				r.logger.Warnf("endpoint reader: stream from %s closed: %v", peerAddress, err)
			}
			break
		}

		switch frame.Kind {
		case grpcremote.FrameKindConnect:
			peerAddress = frame.Connect.Address
			r.logger.Debugf("endpoint reader: peer %s connected", peerAddress)

		case grpcremote.FrameKindBatch:
			r.handleBatch(ctx, peerAddress, frame.Batch)

		case grpcremote.FrameKindWatch:
			r.handleWatch(frame.Watch)

		case grpcremote.FrameKindUnwatch:
			r.handleUnwatch(frame.Unwatch)

		case grpcremote.FrameKindTerminated:
			r.handleTerminated(ctx, frame.Terminated)

		default:
			r.logger.Warnf("endpoint reader: unexpected frame kind %s from %s", frame.Kind, peerAddress)
		}
	}

	return nil
}

func (r *Reader) handleBatch(ctx context.Context, peerAddress string, batch *grpcremote.MessageBatch) {
	if batch == nil {
		return
	}

	for _, env := range batch.Envelopes {
		if env.TargetIndex < 0 || int(env.TargetIndex) >= len(batch.Targets) {
			continue
		}
		targetWire := batch.Targets[env.TargetIndex]
		target := pid.New(targetWire.Address, targetWire.Id)

		var typeName string
		if env.TypeIndex >= 0 && int(env.TypeIndex) < len(batch.TypeNames) {
			typeName = batch.TypeNames[env.TypeIndex]
		}

		message, err := r.registry.Deserialize(env.SerializerId, env.Data)
		if err != nil {
			r.logger.Warnf("endpoint reader: failed to deserialize %s from %s: %v", typeName, peerAddress, err)
			r.dispatcher.DeadLetter(pid.PID{}, target, nil, err.Error())
			continue
		}

		var sender pid.PID
		if env.HasSender && int(env.SenderIndex) < len(batch.Targets) {
			senderWire := batch.Targets[env.SenderIndex]
			sender = pid.New(senderWire.Address, senderWire.Id)
		}

		if err := r.dispatcher.Deliver(ctx, target, sender, message, env.MessageHeader); err != nil {
			r.logger.Warnf("endpoint reader: undeliverable message to %s: %v", target, err)
		}
	}
}

// handleWatch bridges an inbound remote Watch request onto the local watch
// machinery: the peer is registered as a watcher under a sentinel PID
// carrying its own (non-local) address, so actor.System.notifyWatchers
// later routes the eventual Terminated notification through the
// RemoteNotifier instead of a meaningless local Tell.
func (r *Reader) handleWatch(frame *grpcremote.WatchFrame) {
	if frame == nil {
		return
	}
	watcher := pid.New(frame.WatcherAddress, frame.WatcherId)
	watchee := pid.New(r.dispatcher.Address(), frame.WatcheeId)
	if err := r.dispatcher.Watch(watcher, watchee); err != nil {
		r.logger.Warnf("endpoint reader: remote watch of %s by %s failed: %v", watchee, watcher, err)
	}
}

// handleTerminated forwards a peer's report that one of its own actors
// stopped to whichever local actor registered a remote watch on it.
func (r *Reader) handleTerminated(ctx context.Context, frame *grpcremote.TerminatedFrame) {
	if frame == nil || r.remoteWatchers == nil {
		return
	}
	r.remoteWatchers.NotifyTerminated(ctx, frame.WatcheeAddress, frame.WatcheeId, frame.AddressTerminated)
}

func (r *Reader) handleUnwatch(frame *grpcremote.WatchFrame) {
	if frame == nil {
		return
	}
	watcher := pid.New(frame.WatcherAddress, frame.WatcherId)
	watchee := pid.New(r.dispatcher.Address(), frame.WatcheeId)
	_ = r.dispatcher.Unwatch(watcher, watchee)
}

// Spawn answers a remote spawn/lookup request: Singleton requests first try
// Lookup by name and only spawn if nothing is running under that name yet; a
// plain spawn always creates a fresh actor of Kind.
func (r *Reader) Spawn(_ context.Context, req *connect.Request[grpcremote.ActorPidRequest]) (*connect.Response[grpcremote.ActorPidResponse], error) {
	in := req.Msg

	if in.Singleton {
		if existing, ok := r.spawner.Lookup(in.Name); ok {
			return connect.NewResponse(&grpcremote.ActorPidResponse{
				Pid:        &grpcremote.PID{Address: existing.Address, Id: existing.Id},
				StatusCode: grpcremote.StatusOK,
			}), nil
		}
	}

	factory, ok := r.kinds[in.Kind]
	if !ok {
		return connect.NewResponse(&grpcremote.ActorPidResponse{
			StatusCode:   grpcremote.StatusError,
			ErrorMessage: "unknown actor kind: " + in.Kind,
		}), nil
	}

	id, err := r.spawner.Spawn(in.Name, factory())
	switch {
	case err == nil:
		return connect.NewResponse(&grpcremote.ActorPidResponse{
			Pid:        &grpcremote.PID{Address: id.Address, Id: id.Id},
			StatusCode: grpcremote.StatusOK,
		}), nil
	case isDuplicateName(err):
		resp := &grpcremote.ActorPidResponse{
			StatusCode:   grpcremote.StatusProcessNameAlreadyExist,
			ErrorMessage: err.Error(),
		}
		if existing, ok := r.spawner.Lookup(in.Name); ok {
			resp.Pid = &grpcremote.PID{Address: existing.Address, Id: existing.Id}
		}
		return connect.NewResponse(resp), nil
	default:
		return connect.NewResponse(&grpcremote.ActorPidResponse{
			StatusCode:   grpcremote.StatusError,
			ErrorMessage: err.Error(),
		}), nil
	}
}

func isDuplicateName(err error) bool {
	return errors.Is(err, aerrors.ErrProcessNameAlreadyExists)
}
