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
	"net/http"

	"connectrpc.com/connect"
)

// ServiceName is the fully-qualified RemotingService name, used to build
// procedure paths the same way protoc-gen-connect-go would.
const ServiceName = "actormesh.remoting.v1.RemotingService"

const (
	// ConnectProcedure is the bidirectional streaming procedure endpoint
	// writers dial to exchange Frames with an endpoint reader.
	ConnectProcedure = "/" + ServiceName + "/Connect"

	// SpawnProcedure is the unary procedure for remote spawn requests.
	SpawnProcedure = "/" + ServiceName + "/Spawn"
)

// RemotingServiceHandler is implemented by the endpoint reader side: it
// drives the bidirectional Frame stream and answers spawn requests.
type RemotingServiceHandler interface {
	// Connect handles one peer's bidirectional Frame stream for the
	// lifetime of the connection.
	Connect(ctx context.Context, stream *connect.BidiStream[Frame, Frame]) error

	// Spawn answers a remote spawn/lookup request.
	Spawn(ctx context.Context, req *connect.Request[ActorPidRequest]) (*connect.Response[ActorPidResponse], error)
}

// NewRemotingServiceHandler builds the mux path and http.Handler for svc,
// mirroring the shape a protoc-gen-connect-go RemotingServiceHandler
// constructor would have.
func NewRemotingServiceHandler(svc RemotingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(newFrameCodec())}, opts...)

	mux := http.NewServeMux()

	connectHandler := connect.NewBidiStreamHandler(
		ConnectProcedure,
		svc.Connect,
		opts...,
	)
	mux.Handle(ConnectProcedure, connectHandler)

	spawnHandler := connect.NewUnaryHandler(
		SpawnProcedure,
		svc.Spawn,
		opts...,
	)
	mux.Handle(SpawnProcedure, spawnHandler)

	return "/" + ServiceName + "/", mux
}
