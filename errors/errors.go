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

// Package errors declares the sentinel errors and error-wrapper types shared
// across the serialization, endpoint and remote-watch packages.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when deserialize is asked to resolve a wire
	// type name that is not registered.
	ErrUnknownType = errors.New("unknown type")

	// ErrUnavailable indicates a transport failure: the peer connection could
	// not be reached or an in-flight write/read failed at the transport
	// layer. Only the initial dial is retried with backoff; once connected,
	// a failed send terminates the endpoint without a retry.
	ErrUnavailable = errors.New("remote peer unavailable")

	// ErrRequestTimeout indicates a request/response call did not receive a
	// reply within its deadline. In-flight side effects are not rolled back.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrProcessNameAlreadyExists is returned by remote spawn when the
	// requested name collides with an existing process at the target node.
	// The response still carries the existing PID.
	ErrProcessNameAlreadyExists = errors.New("process name already exists")

	// ErrAddressNotFound is returned when a PID's address cannot be resolved
	// to a live endpoint.
	ErrAddressNotFound = errors.New("address not found")

	// ErrActorNotFound indicates a target actor-id is not registered at the
	// node that owns it.
	ErrActorNotFound = errors.New("actor not found")

	// ErrRemotingDisabled is returned when remote messaging is attempted but
	// the actor system was started without remoting enabled.
	ErrRemotingDisabled = errors.New("remoting is not enabled")

	// ErrKindNotRegistered is returned by remote spawn when the requested
	// kind has no matching entry in the node's RemoteKinds map.
	ErrKindNotRegistered = errors.New("remote kind is not registered")

	// ErrEndpointTerminated is returned by operations attempted against an
	// endpoint that has already torn down.
	ErrEndpointTerminated = errors.New("endpoint is terminated")

	// ErrInvalidHost is returned when a configured host or advertised
	// address cannot be resolved.
	ErrInvalidHost = errors.New("invalid host")

	// ErrNotLocal is returned when an operation that requires a live local
	// actor (mailbox, supervision) is invoked on a PID whose address names a
	// remote node. Use pid.IsLocal to guard before calling such operations.
	ErrNotLocal = errors.New("operation requires a local actor PID")
)

// NewErrActorNotFound formats ErrActorNotFound with the given actor id.
func NewErrActorNotFound(id string) error {
	return fmt.Errorf("actor=(%s): %w", id, ErrActorNotFound)
}

// NewErrAddressNotFound formats ErrAddressNotFound with the given address.
func NewErrAddressNotFound(address string) error {
	return fmt.Errorf("address=(%s): %w", address, ErrAddressNotFound)
}

// NewErrProcessNameAlreadyExists formats ErrProcessNameAlreadyExists with the
// colliding name.
func NewErrProcessNameAlreadyExists(name string) error {
	return fmt.Errorf("name=(%s): %w", name, ErrProcessNameAlreadyExists)
}

// NewErrKindNotRegistered formats ErrKindNotRegistered with the requested
// kind name.
func NewErrKindNotRegistered(kind string) error {
	return fmt.Errorf("kind=(%s): %w", kind, ErrKindNotRegistered)
}

// SpawnError wraps a failure that occurred while creating or re-creating an
// actor, whether locally or via a remote spawn request.
type SpawnError struct {
	err error
}

var _ error = (*SpawnError)(nil)

// NewSpawnError returns an instance of SpawnError wrapping err.
func NewSpawnError(err error) *SpawnError {
	return &SpawnError{err: fmt.Errorf("spawn error: %w", err)}
}

// Error implements the standard error interface.
func (e *SpawnError) Error() string {
	return e.err.Error()
}

// Unwrap exposes the wrapped error for errors.Is/As.
func (e *SpawnError) Unwrap() error {
	return e.err
}

// InternalError wraps an error raised by a component itself rather than by a
// caller's input, e.g. a transport or codec failure inside the endpoint
// writer. It is used when the escalation path needs to distinguish
// infrastructure faults from message-handling faults.
type InternalError struct {
	err error
}

var _ error = (*InternalError)(nil)

// NewInternalError returns an instance of InternalError wrapping err.
func NewInternalError(err error) *InternalError {
	return &InternalError{err: fmt.Errorf("internal error: %w", err)}
}

// Error implements the standard error interface.
func (e *InternalError) Error() string {
	return e.err.Error()
}

// Unwrap exposes the wrapped error for errors.Is/As.
func (e *InternalError) Unwrap() error {
	return e.err
}
