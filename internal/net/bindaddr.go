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

package net

import (
	"fmt"
	"net"

	"github.com/hashicorp/go-sockaddr"
)

// GetHostPort splits address into its resolved IP and port.
func GetHostPort(address string) (string, int, error) {
	addr, err := net.ResolveTCPAddr("tcp", address)
	if err != nil {
		return "", 0, err
	}
	return addr.IP.String(), addr.Port, nil
}

// GetBindIP returns the concrete IP a node should advertise to peers for
// address. When address is already bound to a specific interface it is
// returned unchanged. When it is bound to the wildcard 0.0.0.0, a routable
// private address is substituted, falling back to a public address when no
// private interface is found.
func GetBindIP(address string) (string, error) {
	bindIP, _, err := GetHostPort(address)
	if err != nil {
		return "", fmt.Errorf("invalid address: %w", err)
	}

	if bindIP != "0.0.0.0" {
		return bindIP, nil
	}

	ipStr, err := sockaddr.GetPrivateIP()
	if err != nil {
		return "", fmt.Errorf("failed to get private interface addresses: %w", err)
	}

	if ipStr == "" {
		ipStr, err = sockaddr.GetPublicIP()
		if err != nil {
			return "", fmt.Errorf("failed to get public interface addresses: %w", err)
		}
	}

	if ipStr == "" {
		return "", ErrNoRoutableAddress
	}

	parsed := net.ParseIP(ipStr)
	if parsed == nil {
		return "", fmt.Errorf("failed to parse resolved bind IP %q", ipStr)
	}
	return parsed.String(), nil
}
