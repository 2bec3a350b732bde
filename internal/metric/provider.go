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

// Package metric wraps the global OpenTelemetry MeterProvider behind a
// single instrumentation scope, so every package that needs a Meter asks
// this package rather than calling otel.GetMeterProvider() directly.
package metric

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/actormesh/actormesh/endpoint"

// Provider hands out the one Meter this module's instruments are registered
// against. A nil *Provider is valid and yields a nil Meter; callers that
// build instruments from it should treat meter == nil as "metrics disabled"
// rather than erroring.
type Provider struct {
	meter metric.Meter
}

// NewProvider returns a Provider backed by the process-wide MeterProvider.
// When no MeterProvider has been registered via otel.SetMeterProvider, this
// resolves to OpenTelemetry's no-op implementation.
func NewProvider() *Provider {
	return &Provider{meter: otel.GetMeterProvider().Meter(instrumentationName)}
}

// Meter returns the instrumentation-scoped Meter.
func (p *Provider) Meter() metric.Meter {
	if p == nil {
		return nil
	}
	return p.meter
}
