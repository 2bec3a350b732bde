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

	"go.uber.org/atomic"

	"github.com/actormesh/actormesh/internal/workerpool"
	"github.com/actormesh/actormesh/internal/xsync"
	"github.com/actormesh/actormesh/pid"
)

// ref is the running instance backing a spawned actor: its identity, its
// behavior, and the mailbox feeding it. Message dispatch rides the system's
// shared worker pool rather than a dedicated goroutine per actor.
type ref struct {
	id      pid.PID
	name    string
	actor   Actor
	mailbox *mailbox
	pool    *workerpool.WorkerPool

	watchers *xsync.List[pid.PID]
	stopped  *atomic.Bool
}

func newRef(id pid.PID, name string, actor Actor, pool *workerpool.WorkerPool) *ref {
	return &ref{
		id:       id,
		name:     name,
		actor:    actor,
		mailbox:  newMailbox(),
		pool:     pool,
		watchers: xsync.NewList[pid.PID](),
		stopped:  atomic.NewBool(false),
	}
}

// deliver enqueues envelope and ensures a drain is scheduled. Delivery to a
// stopped ref is a silent no-op; callers that care about liveness check
// stopped themselves before calling deliver (see System.Tell).
func (r *ref) deliver(envelope *MessageEnvelope) {
	r.mailbox.push(envelope)
	r.schedule()
}

func (r *ref) schedule() {
	if r.stopped.Load() {
		return
	}
	if !r.mailbox.trySchedule() {
		return
	}
	if err := r.pool.AddTask(r.run); err != nil {
		// pool not started or shutting down; release the claim so a later
		// System.Start leaves no permanently-stuck mailbox.
		r.mailbox.release()
	}
}

// run drains the mailbox until empty, then releases the drain claim. A
// message pushed after the last pop but before release is not lost: once
// released, len() is re-checked and a fresh drain is scheduled if needed.
func (r *ref) run() {
	for {
		envelope, ok := r.mailbox.pop()
		if !ok {
			break
		}
		if r.stopped.Load() {
			continue
		}
		r.actor.Receive(context.Background(), envelope)
	}
	r.mailbox.release()
	if r.mailbox.len() > 0 && !r.stopped.Load() {
		r.schedule()
	}
}
