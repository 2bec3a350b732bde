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
	"go.uber.org/atomic"

	"github.com/actormesh/actormesh/internal/queue"
)

// mailbox is the per-actor inbox: an unbounded, lock-free FIFO guarded by a
// scheduled flag so at most one worker-pool goroutine drains it at a time.
// Pushers never block and never run actor code themselves; they only decide
// whether they need to schedule a drain.
type mailbox struct {
	queue     *queue.Linked[*MessageEnvelope]
	length    *atomic.Int64
	scheduled *atomic.Bool
}

func newMailbox() *mailbox {
	return &mailbox{
		queue:     queue.NewLinked[*MessageEnvelope](),
		length:    atomic.NewInt64(0),
		scheduled: atomic.NewBool(false),
	}
}

func (m *mailbox) push(envelope *MessageEnvelope) {
	m.queue.Push(envelope)
	m.length.Inc()
}

func (m *mailbox) pop() (*MessageEnvelope, bool) {
	envelope, ok := m.queue.Pop()
	if ok {
		m.length.Dec()
	}
	return envelope, ok
}

func (m *mailbox) len() int64 {
	return m.length.Load()
}

// trySchedule claims the right to drain the mailbox on a worker-pool
// goroutine. It returns false when another goroutine already holds it, in
// which case the caller need not do anything further: the holder will see
// this push before it gives up the claim.
func (m *mailbox) trySchedule() bool {
	return m.scheduled.CompareAndSwap(false, true)
}

// release gives up the drain claim. Callers must re-check len after
// releasing: a push that raced in just before release would otherwise sit
// unscheduled.
func (m *mailbox) release() {
	m.scheduled.Store(false)
}
