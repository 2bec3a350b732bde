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

import (
	"encoding/binary"
	"errors"
	"unsafe"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

// ProtoSerializer errors.
var (
	// ErrNotProtoMessage is returned by [ProtoSerializer.Serialize] when the
	// supplied value does not implement [proto.Message].
	ErrNotProtoMessage = errors.New("remote: value does not implement proto.Message")

	// ErrInvalidFrame is returned by [ProtoSerializer.Deserialize] when the
	// byte slice is too short or whose length header fields are inconsistent
	// with the actual payload size.
	ErrInvalidFrame = errors.New("remote: malformed or truncated proto frame")

	// ErrUnknownMessageType is returned when the frame's type name has no
	// corresponding entry in the global proto type registry.
	ErrUnknownMessageType = errors.New("remote: unknown proto message type")

	// ErrDeserializeFailed is returned when proto unmarshaling fails. It wraps
	// the underlying protobuf library error.
	ErrDeserializeFailed = errors.New("remote: failed to deserialize proto message")
)

// ProtoSerializer is the default [Serializer] (wire id=0) registered for every
// [proto.Message] implementation. It encodes messages using the standard
// protobuf binary wire format, wrapped in the same length-prefixed,
// self-describing frame used by [CBORSerializer]:
//
// ┌──────────┬──────────┬────────────┬──────────────┐
// │ totalLen │ nameLen  │ type name  │ proto bytes  │
// │ 4 bytes  │ 4 bytes  │ N bytes    │ M bytes      │
// │ uint32BE │ uint32BE │ full name  │ raw protobuf │
// └──────────┴──────────┴────────────┴──────────────┘
//
// The type name is the message's fully-qualified protobuf name (as returned
// by [proto.MessageName]), resolved on the receive path against the global
// [protoregistry.GlobalTypes] — every generated or well-known proto type
// registers itself there on import, so no separate registration step is
// required for proto types, unlike [CBORSerializer].
type ProtoSerializer struct{}

var _ Serializer = (*ProtoSerializer)(nil)

// NewProtoSerializer returns a ready-to-use ProtoSerializer. It is stateless
// and safe for concurrent use.
func NewProtoSerializer() *ProtoSerializer {
	return &ProtoSerializer{}
}

// Serialize implements [Serializer].
func (s *ProtoSerializer) Serialize(message any) ([]byte, error) {
	msg, ok := message.(proto.Message)
	if !ok {
		return nil, ErrNotProtoMessage
	}

	name := string(proto.MessageName(msg))
	payload, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Join(ErrDeserializeFailed, err)
	}

	nameLen := len(name)
	totalLen := 4 + 4 + nameLen + len(payload)
	out := make([]byte, 0, totalLen)

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(totalLen))
	binary.BigEndian.PutUint32(hdr[4:8], uint32(nameLen))
	out = append(out, hdr[:]...)
	out = append(out, name...)
	out = append(out, payload...)
	return out, nil
}

// Deserialize implements [Serializer].
func (s *ProtoSerializer) Deserialize(data []byte) (any, error) {
	if len(data) < 8 {
		return nil, ErrInvalidFrame
	}

	totalLen := int(binary.BigEndian.Uint32(data[0:4]))
	if len(data) < totalLen || totalLen < 8 {
		return nil, ErrInvalidFrame
	}

	nameLen := int(binary.BigEndian.Uint32(data[4:8]))
	if 8+nameLen > totalLen {
		return nil, ErrInvalidFrame
	}

	name := unsafe.String(unsafe.SliceData(data[8:8+nameLen]), nameLen)

	msgType, err := protoregistry.GlobalTypes.FindMessageByName(protoreflect.FullName(name))
	if err != nil {
		return nil, errors.Join(ErrUnknownMessageType, err)
	}

	msg := msgType.New().Interface()
	if err := proto.Unmarshal(data[8+nameLen:totalLen], msg); err != nil {
		return nil, errors.Join(ErrDeserializeFailed, err)
	}

	return msg, nil
}
