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
	"context"

	"connectrpc.com/connect"
)

// RemotingServiceClient is the client-side counterpart of
// RemotingServiceHandler, used by the endpoint writer to open the Frame
// stream and by the remote spawn client to issue Spawn calls.
type RemotingServiceClient struct {
	connectClient *connect.Client[Frame, Frame]
	spawnClient   *connect.Client[ActorPidRequest, ActorPidResponse]
}

// NewRemotingServiceClient returns a client bound to baseURL (the peer's
// "scheme://host:port"), using httpClient for transport.
func NewRemotingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RemotingServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(newFrameCodec())}, opts...)
	return &RemotingServiceClient{
		connectClient: connect.NewClient[Frame, Frame](httpClient, baseURL+ConnectProcedure, opts...),
		spawnClient:   connect.NewClient[ActorPidRequest, ActorPidResponse](httpClient, baseURL+SpawnProcedure, opts...),
	}
}

// Connect opens the bidirectional Frame stream to the peer.
func (c *RemotingServiceClient) Connect(ctx context.Context) *connect.BidiStreamForClient[Frame, Frame] {
	return c.connectClient.CallBidiStream(ctx)
}

// Spawn issues a remote spawn/lookup request.
func (c *RemotingServiceClient) Spawn(ctx context.Context, req *connect.Request[ActorPidRequest]) (*connect.Response[ActorPidResponse], error) {
	return c.spawnClient.CallUnary(ctx, req)
}
