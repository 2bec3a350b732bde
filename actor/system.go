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

package actor

import (
	"context"

	"golang.org/x/sync/errgroup"

	aerrors "github.com/actormesh/actormesh/errors"
	"github.com/actormesh/actormesh/internal/eventstream"
	"github.com/actormesh/actormesh/internal/workerpool"
	"github.com/actormesh/actormesh/internal/xsync"
	"github.com/actormesh/actormesh/log"
	"github.com/actormesh/actormesh/pid"
)

// System is the local actor runtime: a process registry keyed by both name
// and id, a worker pool every spawned actor is dispatched on, and the
// dead-letter/lifecycle event stream. System knows nothing about the wire;
// endpoint resolves remote deliveries against it the same way a local Tell
// does, through Deliver.
type System struct {
	address string
	logger  log.Logger
	pool    *workerpool.WorkerPool
	events  eventstream.Stream

	byID   *xsync.Map[string, *ref]
	byName *xsync.Map[string, *ref]

	remoteNotifier RemoteNotifier
}

// RemoteNotifier is called instead of a local Tell when a watcher registered
// through Watch turns out to live at a non-local address. endpoint's
// EndpointManager supplies this so a remote watcher learns about a local
// stop through a wire Terminated frame rather than a Tell that would
// otherwise silently vanish into an unknown-target dead letter.
type RemoteNotifier func(ctx context.Context, watcher, watchee pid.PID, event *Terminated)

// SetRemoteNotifier installs fn as the delivery path for watchers whose
// address is not this system's own. Passing nil restores the default
// behavior of attempting (and dead-lettering) a local Tell.
func (s *System) SetRemoteNotifier(fn RemoteNotifier) {
	s.remoteNotifier = fn
}

// New creates a System advertising address as the node address stamped into
// every PID it spawns. A nil logger defaults to log.DiscardLogger.
func New(address string, logger log.Logger) *System {
	if logger == nil {
		logger = log.DiscardLogger
	}

	pool := workerpool.NewWorkerPool()
	pool.Start()

	return &System{
		address: address,
		logger:  logger,
		pool:    pool,
		events:  eventstream.New(),
		byID:    xsync.NewMap[string, *ref](),
		byName:  xsync.NewMap[string, *ref](),
	}
}

// Address returns the node address this system stamps into spawned PIDs.
func (s *System) Address() string {
	return s.address
}

// Shutdown concurrently stops every actor still registered with this system,
// then stops the worker pool and closes the event stream. It does not wait
// for the resulting Terminated notifications to be delivered to watchers.
func (s *System) Shutdown(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range s.byID.Values() {
		r := r
		g.Go(func() error {
			return s.Stop(gctx, r.id)
		})
	}
	err := g.Wait()

	s.pool.Stop()
	s.events.Close()
	return err
}

// Events returns the dead-letter / lifecycle event stream.
func (s *System) Events() eventstream.Stream {
	return s.events
}

// Spawn starts actor under name and returns its PID. name must be unique
// within this system; a second Spawn under the same name returns
// ErrProcessNameAlreadyExists without disturbing the existing actor.
func (s *System) Spawn(name string, actor Actor) (pid.PID, error) {
	if _, exists := s.byName.Get(name); exists {
		return pid.PID{}, aerrors.NewErrProcessNameAlreadyExists(name)
	}

	id := pid.New(s.address, name)
	r := newRef(id, name, actor, s.pool)
	s.byName.Set(name, r)
	s.byID.Set(id.Id, r)

	s.logger.Debugf("spawned %s", id)
	return id, nil
}

// Lookup resolves name to the PID it was spawned under, if any.
func (s *System) Lookup(name string) (pid.PID, bool) {
	r, ok := s.byName.Get(name)
	if !ok {
		return pid.PID{}, false
	}
	return r.id, true
}

// Tell delivers message to target's mailbox, attributing sender. Targets
// this system does not know about, or that have already stopped, produce a
// dead letter and ErrActorNotFound rather than panicking the caller.
func (s *System) Tell(_ context.Context, target, sender pid.PID, message any, header map[string]string) error {
	r, ok := s.byID.Get(target.Id)
	if !ok || r.stopped.Load() {
		s.deadLetter(sender, target, message, aerrors.NewErrActorNotFound(target.Id).Error())
		return aerrors.NewErrActorNotFound(target.Id)
	}
	r.deliver(&MessageEnvelope{Sender: sender, Message: message, Header: header})
	return nil
}

// Deliver hands a remotely-received message to the addressed local actor. It
// has the same signature and dead-letter behavior as Tell and exists so
// endpoint's reader can depend on a narrow Dispatcher interface instead of
// the whole System.
func (s *System) Deliver(ctx context.Context, target, sender pid.PID, message any, header map[string]string) error {
	return s.Tell(ctx, target, sender, message, header)
}

// Stop terminates target: no further messages are delivered to it, and any
// watchers registered through Watch receive a Terminated notification.
// Stopping an already-stopped or unknown target is a no-op beyond surfacing
// ErrActorNotFound for the unknown case.
func (s *System) Stop(_ context.Context, target pid.PID) error {
	r, ok := s.byID.Get(target.Id)
	if !ok {
		return aerrors.NewErrActorNotFound(target.Id)
	}
	if !r.stopped.CompareAndSwap(false, true) {
		return nil
	}

	// the stopped ref stays in byID so a repeated Stop finds it and returns
	// nil; Tell and Watch treat a stopped ref as not found.
	s.byName.Delete(r.name)
	s.notifyWatchers(r)
	return nil
}

// Watch registers watcher to receive a Terminated message when watchee
// stops. watchee must already be spawned on this system.
func (s *System) Watch(watcher, watchee pid.PID) error {
	r, ok := s.byID.Get(watchee.Id)
	if !ok || r.stopped.Load() {
		return aerrors.NewErrActorNotFound(watchee.Id)
	}
	if !r.watchers.Contains(watcher) {
		r.watchers.Append(watcher)
	}
	return nil
}

// Unwatch removes watcher from watchee's watcher list. It is not an error to
// unwatch an actor that was never watched by watcher.
func (s *System) Unwatch(watcher, watchee pid.PID) error {
	r, ok := s.byID.Get(watchee.Id)
	if !ok {
		return aerrors.NewErrActorNotFound(watchee.Id)
	}

	remaining := r.watchers.Items()
	r.watchers.Reset()
	for _, w := range remaining {
		if !w.Equals(watcher) {
			r.watchers.Append(w)
		}
	}
	return nil
}

func (s *System) notifyWatchers(r *ref) {
	for _, watcher := range r.watchers.Items() {
		event := &Terminated{Actor: r.id}
		if watcher.Address != "" && watcher.Address != s.address && s.remoteNotifier != nil {
			s.remoteNotifier(context.Background(), watcher, r.id, event)
			continue
		}
		_ = s.Tell(context.Background(), watcher, r.id, event, nil)
	}
}

// DeadLetter publishes message as a dead letter from sender to receiver with
// reason. It is exported so endpoint's reader and writer can report
// unresolved or undeliverable remote traffic through the same event stream
// local dead letters use.
func (s *System) DeadLetter(sender, receiver pid.PID, message any, reason string) {
	s.deadLetter(sender, receiver, message, reason)
}

func (s *System) deadLetter(sender, receiver pid.PID, message any, reason string) {
	s.events.Publish(DeadLetterTopic, &DeadLetter{
		Sender:   sender,
		Receiver: receiver,
		Message:  message,
		Reason:   reason,
	})
}
