// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics records batch outcomes for the node_exporter textfile collector.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

const namespace = "sof"

// 📈 Recorder collects per-operation metrics for one command run
type Recorder struct {
	command  string
	registry *prometheus.Registry
	now      func() time.Time

	operations  *prometheus.CounterVec
	items       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	lastRun     prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// 🏗️ NewRecorder creates a recorder with its own registry
func NewRecorder(command string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"command": command}

	return &Recorder{
		command:  command,
		registry: reg,
		now:      time.Now,

		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "operations_total",
				Help:        "Total number of per-site operations run",
				ConstLabels: constLabels,
			},
			[]string{"operation", "result"}, // result: success, failure
		),

		items: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "items_deleted_total",
				Help:        "Total number of listed items passed to a deletion step",
				ConstLabels: constLabels,
			},
			[]string{"operation"},
		),

		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Name:        "operation_duration_seconds",
				Help:        "Duration of per-site operations in seconds",
				ConstLabels: constLabels,
				Buckets:     []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"operation"},
		),

		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Name:        "last_run_timestamp_seconds",
				Help:        "Unix time the last run finished",
				ConstLabels: constLabels,
			},
		),

		lastSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Name:        "last_run_success",
				Help:        "Whether the last run succeeded (1) or failed (0)",
				ConstLabels: constLabels,
			},
		),
	}
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveResult implements operation.Observer
func (r *Recorder) ObserveResult(res *operation.Result) {
	result := "success"
	if !res.Success() {
		result = "failure"
	}
	r.operations.WithLabelValues(res.Operation, result).Inc()
	r.duration.WithLabelValues(res.Operation).Observe(res.Duration.Seconds())

	if res.Deleted() && !res.DryRun {
		r.items.WithLabelValues(res.Operation).Add(float64(len(res.Items)))
	}
}

// Finish stamps the run outcome
func (r *Recorder) Finish(success bool) {
	r.lastRun.Set(float64(r.now().Unix()))
	if success {
		r.lastSuccess.Set(1)
	} else {
		r.lastSuccess.Set(0)
	}
}

// 💾 WriteTextfile writes the registry atomically in the text exposition format
func (r *Recorder) WriteTextfile(ctx context.Context, path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Errorf("writing metrics to %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Str("command", r.command).Msg("metrics written")
	return nil
}

var _ operation.Observer = (*Recorder)(nil)
