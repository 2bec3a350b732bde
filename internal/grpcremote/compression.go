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
	"connectrpc.com/connect"

	"github.com/actormesh/actormesh/internal/compression/brotli"
	"github.com/actormesh/actormesh/internal/compression/zstd"
	"github.com/actormesh/actormesh/remote"
)

// CompressionOption returns the connect.Option that registers the named
// algorithm's compressor/decompressor pair; a NewRemotingServiceClient and a
// NewRemotingServiceHandler both given it negotiate that wire compression.
// No caller in this module passes it to either. NoCompression returns nil;
// callers should skip a nil option rather than pass it to connect.
func CompressionOption(c remote.Compression) connect.Option {
	switch c {
	case remote.BrotliCompression:
		return brotli.WithCompression()
	case remote.ZstdCompression:
		return zstd.WithCompression()
	default:
		return nil
	}
}
