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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	cases := map[State]string{
		Connecting:  "Connecting",
		Connected:   "Connected",
		Suspended:   "Suspended",
		Terminated:  "Terminated",
		State(99):   "Unknown",
	}
	for state, want := range cases {
		assert.Equal(t, want, state.String())
	}
}

func TestEndpoint_StateTransitions(t *testing.T) {
	ep := newEndpoint("node-1", "node-2", nil)
	assert.Equal(t, Connecting, ep.State())

	ep.setState(Connected)
	assert.Equal(t, Connected, ep.State())

	ep.setState(Suspended)
	assert.Equal(t, Suspended, ep.State())
}
