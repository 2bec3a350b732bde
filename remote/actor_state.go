// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
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

package remote

// ActorState names an aspect of an actor's lifecycle or configuration. The
// values are fixed at 0 through 5 and String gives each a lower-case name.
// Nothing else in this module reads, evaluates or sends an ActorState.
type ActorState uint32

const (
	// ActorStateUnknown is the zero value and indicates an unspecified or unrecognized
	// state.
	ActorStateUnknown ActorState = 0

	// ActorStateRunning indicates the actor is active and processing messages.
	ActorStateRunning ActorState = 1

	// ActorStateSuspended indicates the actor has been suspended (e.g., via
	// passivation or explicit suspend).
	ActorStateSuspended ActorState = 2

	// ActorStateStopping indicates the actor is in the process of shutting down.
	ActorStateStopping ActorState = 3

	// ActorStateRelocatable indicates the actor is configured for relocation.
	ActorStateRelocatable ActorState = 4

	// ActorStateSingleton indicates the actor is a cluster singleton.
	ActorStateSingleton ActorState = 5
)

// String returns a human-readable representation of the state for logging and debugging.
func (s ActorState) String() string {
	switch s {
	case ActorStateUnknown:
		return "unknown"
	case ActorStateRunning:
		return "running"
	case ActorStateSuspended:
		return "suspended"
	case ActorStateStopping:
		return "stopping"
	case ActorStateRelocatable:
		return "relocatable"
	case ActorStateSingleton:
		return "singleton"
	default:
		return "unknown"
	}
}
