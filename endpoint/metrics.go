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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics groups the OpenTelemetry instruments describing endpoint
// lifecycle and outbound batching. A nil *Metrics is valid everywhere it is
// used: every recording method no-ops on a nil receiver, so instrumentation
// stays optional without every call site needing its own nil check.
type Metrics struct {
	connectCount   metric.Int64Counter
	suspendCount   metric.Int64Counter
	terminateCount metric.Int64Counter
	batchSize      metric.Int64Histogram
}

// NewMetrics creates the endpoint instruments using meter. It returns an
// error if any instrument cannot be created so telemetry initialization
// failures are surfaced early rather than silently dropping data.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	if m.connectCount, err = meter.Int64Counter(
		"endpoint.connect.count",
		metric.WithDescription("Total number of endpoint connections established"),
	); err != nil {
		return nil, err
	}

	if m.suspendCount, err = meter.Int64Counter(
		"endpoint.suspend.count",
		metric.WithDescription("Total number of times an endpoint's outbound delivery was suspended"),
	); err != nil {
		return nil, err
	}

	if m.terminateCount, err = meter.Int64Counter(
		"endpoint.terminate.count",
		metric.WithDescription("Total number of endpoint terminations"),
	); err != nil {
		return nil, err
	}

	if m.batchSize, err = meter.Int64Histogram(
		"endpoint.batch.size",
		metric.WithDescription("Number of envelopes packed into a single outbound MessageBatch"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Metrics) recordConnect(ctx context.Context, address string) {
	if m == nil {
		return
	}
	m.connectCount.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint.address", address)))
}

func (m *Metrics) recordSuspend(ctx context.Context, address string) {
	if m == nil {
		return
	}
	m.suspendCount.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint.address", address)))
}

func (m *Metrics) recordTerminate(ctx context.Context, address string) {
	if m == nil {
		return
	}
	m.terminateCount.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint.address", address)))
}

func (m *Metrics) recordBatchSize(ctx context.Context, address string, size int) {
	if m == nil {
		return
	}
	m.batchSize.Record(ctx, int64(size), metric.WithAttributes(attribute.String("endpoint.address", address)))
}
