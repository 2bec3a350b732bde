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

package serialization

import "errors"

var (
	// ErrUnknownSerializer is returned when a serializerId carried on the wire
	// has no registered [Serializer].
	ErrUnknownSerializer = errors.New("serialization: no serializer registered for id")

	// ErrUnknownWireType is returned when a decoded wire type name cannot be
	// resolved to a registered Go type.
	ErrUnknownWireType = errors.New("serialization: unknown wire type")

	// ErrInvalidFrame is returned when a binary or CBOR frame is truncated or
	// has an internally inconsistent length header.
	ErrInvalidFrame = errors.New("serialization: malformed or truncated frame")
)
