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

// Package pid implements process identifiers for actors addressable both
// locally and across the network.
package pid

import (
	"strings"

	"github.com/google/uuid"
)

// WireTypeName is the fully-qualified wire name the serialization registry
// uses to resolve this type on both the binary and JSON paths.
const WireTypeName = "actor.PID"

// PID uniquely names an actor within the whole mesh. Address identifies the
// node the actor lives on; Id identifies the actor instance on that node.
// PID is a value type: it is freely copied, embedded in messages, sent over
// the wire, and compared with Equals.
type PID struct {
	Address string `json:"address"`
	Id      string `json:"id"`
}

// New returns a PID for the given address and id.
func New(address, id string) PID {
	return PID{Address: address, Id: id}
}

// NewID generates a fresh, random actor instance id suitable for use as
// PID.Id when the caller has no natural name for the actor.
func NewID() string {
	return uuid.NewString()
}

// Equals reports whether two PIDs name the same actor. Equality is
// structural: both Address and Id must match exactly.
func (p PID) Equals(other PID) bool {
	return p.Address == other.Address && p.Id == other.Id
}

// IsLocal reports whether p names an actor on localAddress, the node's own
// advertised address. An empty Address is treated as local, matching the
// convention that the literal local address names this node.
func (p PID) IsLocal(localAddress string) bool {
	return p.Address == "" || p.Address == localAddress
}

// IsZero reports whether p is the zero-value PID (no address, no id).
func (p PID) IsZero() bool {
	return p.Address == "" && p.Id == ""
}

// String renders a PID in "address/id" form, matching the convention used by
// log lines and dead-letter diagnostics throughout the mesh.
func (p PID) String() string {
	var b strings.Builder
	b.WriteString(p.Address)
	b.WriteByte('/')
	b.WriteString(p.Id)
	return b.String()
}
