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

package endpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectrpc.com/connect"

	aerrors "github.com/actormesh/actormesh/errors"
	"github.com/actormesh/actormesh/future"
	"github.com/actormesh/actormesh/internal/grpcremote"
	"github.com/actormesh/actormesh/pid"
)

// SpawnRequest describes a remote spawn/lookup call.
type SpawnRequest struct {
	Name        string
	Kind        string
	Singleton   bool
	Relocatable bool
}

// SpawnNamed issues a remote spawn request against client and waits up to
// timeout for a reply, wrapped in a future.Future the same way a local Ask
// wraps a long-running call. A non-StatusOK reply is translated into the
// matching sentinel from the errors package rather than returned as a raw
// wire status.
func SpawnNamed(ctx context.Context, client *grpcremote.RemotingServiceClient, req SpawnRequest, timeout time.Duration) (pid.PID, error) {
	f := future.New(func() (any, error) {
		resp, err := client.Spawn(ctx, connect.NewRequest(&grpcremote.ActorPidRequest{
			Name:        req.Name,
			Kind:        req.Kind,
			Singleton:   req.Singleton,
			Relocatable: req.Relocatable,
		}))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", aerrors.ErrUnavailable, err)
		}
		return resp.Msg, nil
	})

	awaitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := f.Await(awaitCtx)
	if err != nil {
		// Await surfaces awaitCtx.Err() itself on a genuine deadline/cancel;
		// any other error is the task's own (already-wrapped) failure and
		// must propagate unchanged so errors.Is against it keeps working.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return pid.PID{}, fmt.Errorf("%w: %v", aerrors.ErrRequestTimeout, err)
		}
		return pid.PID{}, err
	}

	return decodeSpawnResponse(result.(*grpcremote.ActorPidResponse), req.Name)
}

// decodeSpawnResponse translates a wire ActorPidResponse into a PID or the
// matching sentinel error, isolated from SpawnNamed so the status-mapping
// logic can be tested without a live RPC round trip.
func decodeSpawnResponse(resp *grpcremote.ActorPidResponse, name string) (pid.PID, error) {
	switch resp.StatusCode {
	case grpcremote.StatusOK:
		return pid.New(resp.Pid.Address, resp.Pid.Id), nil
	case grpcremote.StatusProcessNameAlreadyExist:
		return pid.PID{}, aerrors.NewErrProcessNameAlreadyExists(name)
	case grpcremote.StatusTimeout:
		return pid.PID{}, aerrors.ErrRequestTimeout
	case grpcremote.StatusUnavailable:
		return pid.PID{}, aerrors.ErrUnavailable
	default:
		return pid.PID{}, fmt.Errorf("remote spawn failed: %s", resp.ErrorMessage)
	}
}
