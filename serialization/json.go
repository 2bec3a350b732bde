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
	"encoding/json"
	"fmt"
	"reflect"
)

// JsonMessage is the wire-id-1 envelope: a type name alongside the raw JSON
// body, letting the receiver resolve the concrete Go type before decoding.
type JsonMessage struct {
	TypeName string          `json:"typeName"`
	Body     json.RawMessage `json:"body"`
}

// JSONSerializer is the wire id-1 serializer. It wraps every message in a
// [JsonMessage] envelope so the receiver can resolve the concrete type from
// the registry before unmarshaling the body.
type JSONSerializer struct {
	registry *Registry
}

var _ Serializer = (*JSONSerializer)(nil)

// NewJSONSerializer returns a JSONSerializer backed by registry.
func NewJSONSerializer(registry *Registry) *JSONSerializer {
	return &JSONSerializer{registry: registry}
}

// ID returns JSONID.
func (s *JSONSerializer) ID() uint32 { return JSONID }

// Serialize wraps message in a JsonMessage envelope carrying its registry
// wire name.
func (s *JSONSerializer) Serialize(message any) ([]byte, error) {
	body, err := jsonMarshal(message)
	if err != nil {
		return nil, fmt.Errorf("serialization: json marshal failed: %w", err)
	}
	envelope := JsonMessage{TypeName: s.registry.NameOf(message), Body: body}
	out, err := jsonMarshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("serialization: json envelope marshal failed: %w", err)
	}
	return out, nil
}

// Deserialize unwraps a JsonMessage envelope, resolves TypeName against the
// registry, and unmarshals Body into a fresh instance of the resolved type.
func (s *JSONSerializer) Deserialize(data []byte) (any, error) {
	var envelope JsonMessage
	if err := jsonUnmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("serialization: json envelope unmarshal failed: %w", err)
	}

	elemType, ok := s.registry.TypeOf(envelope.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWireType, envelope.TypeName)
	}

	ptr := reflect.New(elemType)
	if err := jsonUnmarshal(envelope.Body, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("serialization: json body unmarshal failed: %w", err)
	}
	return ptr.Interface(), nil
}
