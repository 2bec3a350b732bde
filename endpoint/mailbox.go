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

	"github.com/actormesh/actormesh/internal/queue"
)

// MailboxStatus is the CAS-gated run state of a writerMailbox.
type MailboxStatus int32

const (
	// Idle means no worker-pool task currently owns the mailbox.
	Idle MailboxStatus = iota
	// Busy means a run is already in flight; schedule is a no-op.
	Busy
)

// writerMailbox is the endpoint writer's inbox: two unbounded FIFO queues —
// system (SuspendMailbox, EndpointConnectedEvent, Stop) and user
// (RemoteDeliver) — drained by a single run loop gated by one atomic status.
// System messages always take priority: the run loop pops at most one
// system message before touching the user queue at all.
type writerMailbox struct {
	system *queue.Linked[any]
	user   *queue.Linked[*RemoteDeliver]

	systemLen *atomic.Int64
	userLen   *atomic.Int64

	status    *atomic.Int32
	suspended *atomic.Bool
}

func newWriterMailbox() *writerMailbox {
	return &writerMailbox{
		system:    queue.NewLinked[any](),
		user:      queue.NewLinked[*RemoteDeliver](),
		systemLen: atomic.NewInt64(0),
		userLen:   atomic.NewInt64(0),
		status:    atomic.NewInt32(int32(Idle)),
		suspended: atomic.NewBool(false),
	}
}

func (m *writerMailbox) pushSystem(msg any) {
	m.system.Push(msg)
	m.systemLen.Inc()
}

func (m *writerMailbox) pushUser(d *RemoteDeliver) {
	m.user.Push(d)
	m.userLen.Inc()
}

func (m *writerMailbox) popSystem() (any, bool) {
	msg, ok := m.system.Pop()
	if ok {
		m.systemLen.Dec()
	}
	return msg, ok
}

func (m *writerMailbox) popUser() (*RemoteDeliver, bool) {
	d, ok := m.user.Pop()
	if ok {
		m.userLen.Dec()
	}
	return d, ok
}

func (m *writerMailbox) systemNonEmpty() bool {
	return m.systemLen.Load() > 0
}

func (m *writerMailbox) userNonEmpty() bool {
	return m.userLen.Load() > 0
}

// schedule claims Idle→Busy. Returns false when a run is already in flight.
func (m *writerMailbox) schedule() bool {
	return m.status.CompareAndSwap(int32(Idle), int32(Busy))
}

func (m *writerMailbox) setIdle() {
	m.status.Store(int32(Idle))
}
