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
	"context"
	"errors"
	nethttp "net/http"
)

// nonProtoMsg is an arbitrary type with no registered serializer.
type nonProtoMsg struct{ value string }

// errInjectPropagator is a ContextPropagator whose Inject always returns an error.
type errInjectPropagator struct{}

func (errInjectPropagator) Inject(context.Context, nethttp.Header) error {
	return errors.New("inject error")
}

func (errInjectPropagator) Extract(ctx context.Context, _ nethttp.Header) (context.Context, error) {
	return ctx, nil
}

// headerPropagator injects a fixed header key and value on every Inject.
type headerPropagator struct{ key, value string }

func (h headerPropagator) Inject(_ context.Context, headers nethttp.Header) error {
	headers.Set(h.key, h.value)
	return nil
}

func (h headerPropagator) Extract(ctx context.Context, _ nethttp.Header) (context.Context, error) {
	return ctx, nil
}

// mockPropagator is a no-op ContextPropagator used where option tests only
// need a distinguishable, comparable value.
type mockPropagator struct{}

func (mockPropagator) Inject(context.Context, nethttp.Header) error { return nil }

func (mockPropagator) Extract(ctx context.Context, _ nethttp.Header) (context.Context, error) {
	return ctx, nil
}
