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

// Package serialization implements the wire-level type registry and the
// serializer set a [RemoteDeliver] envelope's serializerId selects between:
// id 0 (binary/protobuf), id 1 (JSON), and ids 2+ for additional
// user-registered serializers such as CBOR.
package serialization

// Serializer converts between a Go value and its wire representation. Each
// serializer advertises a stable numeric ID used on the wire so a receiver
// can pick the matching serializer without out-of-band negotiation.
type Serializer interface {
	// ID returns the serializer's wire identifier.
	ID() uint32
	// Serialize encodes message to its wire form.
	Serialize(message any) ([]byte, error)
	// Deserialize decodes data produced by Serialize back into a Go value.
	Deserialize(data []byte) (any, error)
}

// Reserved serializer ids, per the wire protocol.
const (
	BinaryID uint32 = 0
	JSONID   uint32 = 1
	// CBORID is the id this repository assigns its CBOR serializer under the
	// "ids 2+ reserved for user serializers" clause. A different deployment
	// could register a different serializer under this id; there is nothing
	// structurally special about CBOR getting id 2 beyond being the first
	// user serializer this repository ships.
	CBORID uint32 = 2
)
