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

	"connectrpc.com/connect"
	"github.com/zeebo/xxh3"

	"github.com/actormesh/actormesh/internal/grpcremote"
	"github.com/actormesh/actormesh/internal/workerpool"
	"github.com/actormesh/actormesh/log"
	"github.com/actormesh/actormesh/pid"
	"github.com/actormesh/actormesh/remote"
	"github.com/actormesh/actormesh/serialization"
)

// EndpointWriter owns the outbound half of one Endpoint: a two-queue
// mailbox, a single open Frame stream, and a run loop that batches queued
// RemoteDeliver values into MessageBatch frames. It makes exactly one
// connection attempt; reconnection after failure is the EndpointManager's
// job; EndpointWriter's own responsibility ends at reporting the failure via
// onTerminated.
type EndpointWriter struct {
	localAddress  string
	remoteAddress string

	registry *serialization.Registry
	pool     *workerpool.WorkerPool
	config   *remote.Config
	logger   log.Logger

	dispatcher   Dispatcher
	onTerminated func(error)
	metrics      *Metrics

	mailbox *writerMailbox
	stream  *connect.BidiStreamForClient[grpcremote.Frame, grpcremote.Frame]
}

// NewEndpointWriter returns a writer for remoteAddress. The writer does not
// connect until Connect is called. metrics may be nil, in which case this
// writer records nothing.
func NewEndpointWriter(
	localAddress, remoteAddress string,
	registry *serialization.Registry,
	pool *workerpool.WorkerPool,
	config *remote.Config,
	dispatcher Dispatcher,
	logger log.Logger,
	metrics *Metrics,
	onTerminated func(error),
) *EndpointWriter {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &EndpointWriter{
		localAddress:  localAddress,
		remoteAddress: remoteAddress,
		registry:      registry,
		pool:          pool,
		config:        config,
		dispatcher:    dispatcher,
		onTerminated:  onTerminated,
		metrics:       metrics,
		logger:        logger,
		mailbox:       newWriterMailbox(),
	}
}

// Connect opens the bidirectional stream against client and sends the
// handshake Connect frame. A single failed send or open aborts the attempt;
// the caller (EndpointManager) decides whether to retry.
func (w *EndpointWriter) Connect(ctx context.Context, client *grpcremote.RemotingServiceClient) error {
	stream := client.Connect(ctx)
	if err := stream.Send(&grpcremote.Frame{
		Kind:    grpcremote.FrameKindConnect,
		Connect: &grpcremote.ConnectFrame{Address: w.localAddress},
	}); err != nil {
		return err
	}

	w.stream = stream
	w.mailbox.pushSystem(EndpointConnectedEvent{Address: w.remoteAddress})
	w.schedule()
	return nil
}

// Deliver enqueues message for target on the user queue, to be batched and
// sent on the writer's next scheduled run.
func (w *EndpointWriter) Deliver(target, sender pid.PID, hasSender bool, message any, header map[string]string, serializerId uint32) {
	w.mailbox.pushUser(&RemoteDeliver{
		Header:       header,
		Message:      message,
		Target:       target,
		Sender:       sender,
		HasSender:    hasSender,
		SerializerId: serializerId,
	})
	w.schedule()
}

// Stop asks the writer to drain its user queue to dead letters and halt.
func (w *EndpointWriter) Stop() {
	w.mailbox.pushSystem(Stop{})
	w.schedule()
}

// SendControl asks the writer to send frame on the stream ahead of any
// queued MessageBatch, for Watch/Unwatch/Terminated control traffic.
func (w *EndpointWriter) SendControl(frame *grpcremote.Frame) {
	w.mailbox.pushSystem(ControlFrame{Frame: frame})
	w.schedule()
}

func (w *EndpointWriter) schedule() {
	if !w.mailbox.schedule() {
		return
	}
	if err := w.pool.AddTask(w.run); err != nil {
		w.mailbox.setIdle()
	}
}

// run implements the writer mailbox run loop: at most one system message,
// then — unless suspended — up to EndpointBatchSize user messages batched
// into a single frame. Idle is set last, and a missed wakeup is recovered by
// re-checking queue lengths once more before returning.
func (w *EndpointWriter) run() {
	stopped := w.handleSystemMessage()
	if stopped {
		w.mailbox.setIdle()
		return
	}

	if !w.mailbox.suspended.Load() {
		w.sendBatch()
	}

	w.mailbox.setIdle()
	if w.mailbox.systemNonEmpty() || (w.mailbox.userNonEmpty() && !w.mailbox.suspended.Load()) {
		w.schedule()
	}
}

func (w *EndpointWriter) handleSystemMessage() (stopped bool) {
	msg, ok := w.mailbox.popSystem()
	if !ok {
		return false
	}

	switch m := msg.(type) {
	case EndpointConnectedEvent:
		w.mailbox.suspended.Store(false)
	case SuspendMailbox:
		w.mailbox.suspended.Store(true)
		w.metrics.recordSuspend(context.Background(), w.remoteAddress)
	case EndpointTerminatedEvent:
		w.mailbox.suspended.Store(true)
		w.metrics.recordSuspend(context.Background(), w.remoteAddress)
		if w.onTerminated != nil {
			w.onTerminated(m.Reason)
		}
	case Stop:
		w.drainToDeadLetters()
		return true
	case ControlFrame:
		if err := w.stream.Send(m.Frame); err != nil {
			w.mailbox.pushSystem(EndpointTerminatedEvent{Address: w.remoteAddress, Reason: err})
		}
	}
	return false
}

func (w *EndpointWriter) drainToDeadLetters() {
	for {
		d, ok := w.mailbox.popUser()
		if !ok {
			return
		}
		if w.dispatcher != nil {
			w.dispatcher.DeadLetter(d.Sender, d.Target, d.Message, "endpoint stopped")
		}
	}
}

func (w *EndpointWriter) sendBatch() {
	batch := w.collectBatch()
	if batch == nil {
		return
	}
	w.metrics.recordBatchSize(context.Background(), w.remoteAddress, len(batch.Envelopes))

	if err := w.stream.Send(&grpcremote.Frame{Kind: grpcremote.FrameKindBatch, Batch: batch}); err != nil {
		w.mailbox.pushSystem(EndpointTerminatedEvent{Address: w.remoteAddress, Reason: err})
	}
}

// collectBatch pops up to the configured batch size of RemoteDeliver values
// and packs them into one MessageBatch, deduplicating target/sender PIDs and
// type names into small-int handle tables keyed by an xxh3 hash of the PID's
// string form — the same hashed-key-over-a-map shape the teacher's pidMap
// uses for its own PID-keyed lookup table.
func (w *EndpointWriter) collectBatch() *grpcremote.MessageBatch {
	batchSize := w.config.EndpointBatchSize()
	if batchSize <= 0 {
		batchSize = 1
	}

	batch := &grpcremote.MessageBatch{}
	typeIndex := make(map[string]int32)
	pidIndex := make(map[uint64]int32)

	indexOfPID := func(p pid.PID) int32 {
		key := xxh3.HashString(p.String())
		if idx, ok := pidIndex[key]; ok {
			return idx
		}
		idx := int32(len(batch.Targets))
		batch.Targets = append(batch.Targets, grpcremote.PID{Address: p.Address, Id: p.Id})
		pidIndex[key] = idx
		return idx
	}

	indexOfType := func(name string) int32 {
		if idx, ok := typeIndex[name]; ok {
			return idx
		}
		idx := int32(len(batch.TypeNames))
		batch.TypeNames = append(batch.TypeNames, name)
		typeIndex[name] = idx
		return idx
	}

	for i := 0; i < batchSize; i++ {
		d, ok := w.mailbox.popUser()
		if !ok {
			break
		}

		data, err := w.registry.Serialize(d.SerializerId, d.Message)
		if err != nil {
			w.logger.Warnf("endpoint writer %s: dropping undeliverable message to %s: %v", w.remoteAddress, d.Target, err)
			if w.dispatcher != nil {
				w.dispatcher.DeadLetter(d.Sender, d.Target, d.Message, err.Error())
			}
			continue
		}

		// Header carries remote.ContextPropagator metadata (not threaded
		// through RemoteDeliver at the batch layer); MessageHeader carries
		// the application-level header attached to the originating
		// MessageEnvelope.
		env := &grpcremote.Envelope{
			TargetIndex:   indexOfPID(d.Target),
			TypeIndex:     indexOfType(w.registry.NameOf(d.Message)),
			SerializerId:  d.SerializerId,
			Data:          data,
			MessageHeader: d.Header,
		}
		if d.HasSender {
			env.HasSender = true
			env.SenderIndex = indexOfPID(d.Sender)
		}
		batch.Envelopes = append(batch.Envelopes, env)
	}

	if len(batch.Envelopes) == 0 {
		return nil
	}
	return batch
}
