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
	"fmt"
	"reflect"
	"sync"

	"github.com/actormesh/actormesh/internal/types"
	"github.com/actormesh/actormesh/pid"
)

// Registry is the per-node serialization registry: a type-name→reflect.Type
// index used to resolve wire type names on the decode path, plus the set of
// serializers indexed by their wire id. A Registry is created once per
// ActorSystem/Remote instance and pre-registers [pid.PID] under its fixed
// wire name so PID round-trips without any caller setup.
type Registry struct {
	types       types.Registry
	mu          sync.RWMutex
	serializers map[uint32]Serializer
}

// NewRegistry returns a Registry with the binary and JSON serializers
// already registered under ids 0 and 1, and [pid.PID] pre-registered as a
// known wire type.
func NewRegistry() *Registry {
	r := &Registry{
		types:       types.NewRegistry(),
		serializers: make(map[uint32]Serializer),
	}
	r.types.Register(new(pid.PID))
	r.RegisterSerializer(NewBinarySerializer(r))
	r.RegisterSerializer(NewJSONSerializer(r))
	return r
}

// RegisterType adds v's Go type to the registry under its wire name, so a
// peer-delivered message carrying that name can be decoded into a fresh
// instance. Pass a pointer to the zero value, e.g. RegisterType(new(Order)).
func (r *Registry) RegisterType(v any) {
	r.types.Register(v)
}

// NameOf returns the wire name a value of v's type is registered (or would
// be registered) under. [pid.PID] always resolves to [pid.WireTypeName];
// every other type uses its lowercased, trimmed package-qualified name.
func (r *Registry) NameOf(v any) string {
	if isPID(v) {
		return pid.WireTypeName
	}
	return types.TypeName(v)
}

// TypeOf resolves a wire type name to the registered Go type. The boolean
// result is false when name has not been registered.
func (r *Registry) TypeOf(name string) (reflect.Type, bool) {
	if name == pid.WireTypeName {
		return reflect.TypeOf(pid.PID{}), true
	}
	return r.types.TypeOf(name)
}

// RegisterSerializer adds s to the set of serializers this registry can
// dispatch to by wire id, overwriting any serializer previously registered
// under the same id.
func (r *Registry) RegisterSerializer(s Serializer) {
	r.mu.Lock()
	r.serializers[s.ID()] = s
	r.mu.Unlock()
}

// Serializer returns the serializer registered under id, if any.
func (r *Registry) Serializer(id uint32) (Serializer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.serializers[id]
	return s, ok
}

// Serialize encodes message using the serializer registered under id.
func (r *Registry) Serialize(id uint32, message any) ([]byte, error) {
	s, ok := r.Serializer(id)
	if !ok {
		return nil, fmt.Errorf("serialization: %w: id=%d", ErrUnknownSerializer, id)
	}
	return s.Serialize(message)
}

// Deserialize decodes data using the serializer registered under id.
func (r *Registry) Deserialize(id uint32, data []byte) (any, error) {
	s, ok := r.Serializer(id)
	if !ok {
		return nil, fmt.Errorf("serialization: %w: id=%d", ErrUnknownSerializer, id)
	}
	return s.Deserialize(data)
}

func isPID(v any) bool {
	switch v.(type) {
	case pid.PID, *pid.PID:
		return true
	default:
		return false
	}
}
