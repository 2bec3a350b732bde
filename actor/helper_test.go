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
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

// captureActor records every envelope it receives, in order, and signals a
// WaitGroup once per message so tests can block until delivery happens.
type captureActor struct {
	mu       sync.Mutex
	received []*MessageEnvelope
	wg       *sync.WaitGroup
}

func newCaptureActor(wg *sync.WaitGroup) *captureActor {
	return &captureActor{wg: wg}
}

func (c *captureActor) Receive(_ context.Context, envelope *MessageEnvelope) {
	c.mu.Lock()
	c.received = append(c.received, envelope)
	c.mu.Unlock()
	if c.wg != nil {
		c.wg.Done()
	}
}

func (c *captureActor) messages() []*MessageEnvelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*MessageEnvelope, len(c.received))
	copy(out, c.received)
	return out
}
