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

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"google.golang.org/protobuf/proto"
)

// BinarySerializer is the wire id-0 serializer. Messages that implement
// proto.Message are framed with their protobuf type name and encoded with
// proto.Marshal. [pid.PID] and any other plain Go struct have no protobuf
// encoding, so BinarySerializer falls back to the registry-backed JSON
// encoding for them, keeping a single length-prefixed frame format
// regardless of payload kind.
//
// # Frame layout
//
// ┌──────────┬──────────┬────────────┬──────────────┐
// │ totalLen │ nameLen  │ type name  │ payload      │
// │ 4 bytes  │ 4 bytes  │ N bytes    │ M bytes      │
// │ uint32BE │ uint32BE │            │              │
// └──────────┴──────────┴────────────┴──────────────┘
type BinarySerializer struct {
	registry *Registry
}

var _ Serializer = (*BinarySerializer)(nil)

// NewBinarySerializer returns a BinarySerializer backed by registry for
// resolving non-proto wire type names on the decode path.
func NewBinarySerializer(registry *Registry) *BinarySerializer {
	return &BinarySerializer{registry: registry}
}

// ID returns BinaryID.
func (s *BinarySerializer) ID() uint32 { return BinaryID }

// Serialize encodes message into a length-prefixed, self-describing frame.
func (s *BinarySerializer) Serialize(message any) ([]byte, error) {
	if msg, ok := message.(proto.Message); ok {
		name := string(proto.MessageName(msg))
		payload, err := proto.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("serialization: proto marshal failed: %w", err)
		}
		return frame(name, payload), nil
	}

	name := s.registry.NameOf(message)
	payload, err := jsonMarshal(message)
	if err != nil {
		return nil, fmt.Errorf("serialization: fallback json marshal failed: %w", err)
	}
	return frame(name, payload), nil
}

// Deserialize decodes a frame produced by Serialize. When the frame's type
// name resolves to a registered proto.Message, the payload is parsed with
// proto.Unmarshal; otherwise the registry-backed JSON fallback is used.
func (s *BinarySerializer) Deserialize(data []byte) (any, error) {
	name, payload, err := unframe(data)
	if err != nil {
		return nil, err
	}

	if mt, err := protoTypeByName(name); err == nil {
		msg := mt.New().Interface()
		if err := proto.Unmarshal(payload, msg); err != nil {
			return nil, fmt.Errorf("serialization: proto unmarshal failed: %w", err)
		}
		return msg, nil
	}

	elemType, ok := s.registry.TypeOf(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWireType, name)
	}
	ptr := reflect.New(elemType)
	if err := jsonUnmarshal(payload, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("serialization: fallback json unmarshal failed: %w", err)
	}
	return ptr.Interface(), nil
}

// frame builds the shared [totalLen][nameLen][name][payload] wire layout
// used by both BinarySerializer and CBORSerializer.
func frame(name string, payload []byte) []byte {
	nameLen := len(name)
	totalLen := 4 + 4 + nameLen + len(payload)
	out := make([]byte, 0, totalLen)

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(totalLen))
	binary.BigEndian.PutUint32(hdr[4:8], uint32(nameLen))
	out = append(out, hdr[:]...)
	out = append(out, name...)
	out = append(out, payload...)
	return out
}

// unframe parses the shared wire layout, validating length consistency.
func unframe(data []byte) (name string, payload []byte, err error) {
	if len(data) < 8 {
		return "", nil, ErrInvalidFrame
	}
	totalLen := int(binary.BigEndian.Uint32(data[0:4]))
	if totalLen < 8 || len(data) < totalLen {
		return "", nil, ErrInvalidFrame
	}
	nameLen := int(binary.BigEndian.Uint32(data[4:8]))
	if 8+nameLen > totalLen {
		return "", nil, ErrInvalidFrame
	}
	name = unsafe.String(unsafe.SliceData(data[8:8+nameLen]), nameLen)
	return name, data[8+nameLen : totalLen], nil
}

var errNotAProtoType = errors.New("serialization: not a registered proto type")
