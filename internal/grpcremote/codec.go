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

package grpcremote

import (
	"encoding/json"

	"github.com/actormesh/actormesh/internal/bufferpool"
)

// CodecName is the connect codec name this package registers its frames
// under. It deliberately does not collide with connect's built-in "proto"
// and "json" names (the latter requires proto.Message) so a RemotingService
// endpoint never silently falls back to a codec that can't marshal Frame.
const CodecName = "meshframe"

// frameCodec implements connect.Codec for the hand-written wire types in
// this package. There is no protobuf descriptor to marshal against, so it
// encodes with plain encoding/json; compression (brotli/zstd) is handled by
// connect's compression option, layered independently of the codec.
type frameCodec struct{}

func newFrameCodec() *frameCodec { return &frameCodec{} }

func (*frameCodec) Name() string { return CodecName }

// Marshal encodes v through a pooled buffer rather than allocating a fresh
// one per MessageBatch frame, the same buffer-reuse shape goakt's worker
// pool applies to its own hot allocation path.
func (*frameCodec) Marshal(v any) ([]byte, error) {
	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func (*frameCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
