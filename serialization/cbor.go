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
	"errors"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortNone,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnixDynamic,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8DecodeInvalid,
	}
)

// CBORSerializer is the wire id-2 "user" serializer: the concrete example the
// wire protocol's reserved id>=2 range is built for. It frames messages the
// same way [BinarySerializer] does but encodes the payload as CBOR instead of
// protobuf or JSON, trading proto's codegen requirement for a registry-driven
// reflect.New on decode.
type CBORSerializer struct {
	registry *Registry
	encMode  cbor.EncMode
	decMode  cbor.DecMode
}

var _ Serializer = (*CBORSerializer)(nil)

// NewCBORSerializer returns a CBORSerializer backed by registry for wire type
// name resolution on the decode path.
func NewCBORSerializer(registry *Registry) *CBORSerializer {
	encMode, _ := cborEncOpts.EncMode()
	decMode, _ := cborDecOpts.DecMode()
	return &CBORSerializer{registry: registry, encMode: encMode, decMode: decMode}
}

// ID returns CBORID.
func (s *CBORSerializer) ID() uint32 { return CBORID }

// Serialize CBOR-encodes message and frames it with its registry wire name.
func (s *CBORSerializer) Serialize(message any) ([]byte, error) {
	name := s.registry.NameOf(message)
	payload, err := s.encMode.Marshal(message)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("serialization: cbor marshal failed for %s", name), err)
	}
	return frame(name, payload), nil
}

// Deserialize decodes a frame produced by Serialize, resolving the type name
// against the registry before unmarshaling the CBOR payload.
func (s *CBORSerializer) Deserialize(data []byte) (any, error) {
	name, payload, err := unframe(data)
	if err != nil {
		return nil, err
	}

	elemType, ok := s.registry.TypeOf(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWireType, name)
	}

	ptr := reflect.New(elemType)
	if err := s.decMode.Unmarshal(payload, ptr.Interface()); err != nil {
		return nil, errors.Join(ErrInvalidFrame, err)
	}
	return ptr.Interface(), nil
}
