/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package remote

import (
	"reflect"
	"time"

	"github.com/actormesh/actormesh/internal/types"
)

// WithTLS configures this node's remoting to dial peers and serve its own
// listener over TLS using info. Passing a nil info is a no-op, leaving any
// previously configured TLSInfo untouched.
//
// Ensure that peers share a root Certificate Authority, or handshakes will
// fail. A node may set only one of ClientTLS/ServerTLS, e.g. to dial TLS
// peers while itself serving cleartext traffic.
func WithTLS(info *TLSInfo) Option {
	return OptionFunc(func(config *Config) {
		if info == nil {
			return
		}
		config.tlsInfo = info
	})
}

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithWriteTimeout sets the write timeout
func WithWriteTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.writeTimeout = timeout
	})
}

// WithReadIdleTimeout sets the read timeout
// ReadIdleTimeout is the timeout after which a health check using a ping
// frame will be carried out if no frame is received on the connection.
// If zero, no health check is performed.
func WithReadIdleTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.readIdleTimeout = timeout
	})
}

// WithMaxFrameSize specifies the largest frame
// this server is willing to read. A valid value is between
// 16k and 16M, inclusive. If zero or otherwise invalid, an error will be thrown.
func WithMaxFrameSize(size uint32) Option {
	return OptionFunc(func(config *Config) {
		config.maxFrameSize = size
	})
}

// WithCompression records a compression algorithm in the Config. The
// remoting transport in this module does not read it; see [Compression].
func WithCompression(compression Compression) Option {
	return OptionFunc(func(config *Config) {
		config.compression = compression
	})
}

// WithContextPropagator sets the ContextPropagator used to inject and extract
// context-derived metadata across remoting boundaries. A nil propagator is
// ignored, leaving any previously configured propagator untouched.
func WithContextPropagator(propagator ContextPropagator) Option {
	return OptionFunc(func(config *Config) {
		if propagator == nil {
			return
		}
		config.contextPropagator = propagator
	})
}

// WithSerializers registers serializer for msg, which may be either a
// concrete value (registered under its exact dynamic type) or a nil typed
// interface pointer such as (*proto.Message)(nil) (registered under the
// interface type itself, matched via [reflect.Type.Implements] at dispatch
// time). A nil serializer is ignored.
func WithSerializers(msg any, serializer Serializer) Option {
	return OptionFunc(func(config *Config) {
		if serializer == nil {
			return
		}

		typ := reflect.TypeOf(msg)
		if typ == nil {
			return
		}

		if typ.Kind() == reflect.Ptr && typ.Elem().Kind() == reflect.Interface {
			config.serializers[typ.Elem()] = serializer
			return
		}

		config.serializers[typ] = serializer
		types.RegisterSerializerType(msg, serializer)
	})
}

// WithEndpointBatchSize sets how many user messages an endpoint writer pops
// from its mailbox in one run-loop pass.
func WithEndpointBatchSize(n int) Option {
	return OptionFunc(func(config *Config) {
		config.endpointBatchSize = n
	})
}

// WithMaxRetries sets the retry limit EndpointManager.GetOrDial applies when
// dialling a peer. A send that fails once the endpoint is connected is not
// retried.
func WithMaxRetries(n int) Option {
	return OptionFunc(func(config *Config) {
		config.maxRetries = n
	})
}

// WithRetryTimeSpan sets the overall deadline for the dial retry sequence in
// EndpointManager.GetOrDial.
func WithRetryTimeSpan(d time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.retryTimeSpan = d
	})
}

// WithRetryBackOff sets the delay between dial attempts in
// EndpointManager.GetOrDial.
func WithRetryBackOff(d time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.retryBackOff = d
	})
}

// WithRemoteKinds registers one or more named actor kinds a remote spawn
// request may reference. Each prototype is typically the zero value of the
// Go type the kind resolves to.
func WithRemoteKinds(kinds map[string]any) Option {
	return OptionFunc(func(config *Config) {
		for name, prototype := range kinds {
			config.remoteKinds[name] = prototype
		}
	})
}
