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

// Package transporthttp builds the HTTP/2 clients endpoint.EndpointManager
// dials peers with, and the URL helpers it builds base URLs from.
package transporthttp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/http2"
)

// NewClient returns an HTTP/2 cleartext (h2c) client tuned for high-frequency
// endpoint-to-endpoint RPC: a custom dialer with keep-alive for connection
// reuse, and reduced ping/read-idle timeouts so a dead peer is detected well
// before EndpointManager's own retry budget runs out.
func NewClient(maxReadFrameSize uint32) *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout: 30 * time.Second,
		Transport: &http2.Transport{
			TLSClientConfig:    nil,
			AllowHTTP:          true,
			MaxReadFrameSize:   maxReadFrameSize,
			DisableCompression: false,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialer.DialContext(ctx, network, addr)
			},
			PingTimeout:     10 * time.Second,
			ReadIdleTimeout: 20 * time.Second,
		},
	}
}

// NewTLSClient is the TLS counterpart of NewClient, for deployments that
// terminate remoting traffic over an encrypted connection.
func NewTLSClient(clientTLS *tls.Config, maxReadFrameSize uint32) *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout: 30 * time.Second,
		Transport: &http2.Transport{
			DisableCompression: false,
			MaxReadFrameSize:   maxReadFrameSize,
			TLSClientConfig:    clientTLS,
			PingTimeout:        10 * time.Second,
			ReadIdleTimeout:    20 * time.Second,
			DialTLSContext: func(ctx context.Context, network, addr string, config *tls.Config) (net.Conn, error) {
				conn, err := dialer.DialContext(ctx, network, addr)
				if err != nil {
					return nil, err
				}
				return tls.Client(conn, config), nil
			},
		},
	}
}

// URL builds a cleartext base URL from a host and port.
func URL(host string, port int) string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, strconv.Itoa(port)))
}

// URLs builds a TLS base URL from a host and port.
func URLs(host string, port int) string {
	return fmt.Sprintf("https://%s", net.JoinHostPort(host, strconv.Itoa(port)))
}
