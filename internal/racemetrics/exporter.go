// Copyright 2026 The Sortrace Authors.
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

// Package racemetrics exports Prometheus counters and gauges driven by
// race engine ticks. It lives entirely outside the core: the engine
// and its Sorters never import this package, never see a
// *prometheus.Registry, and never do network I/O. An Exporter is
// wired in by the host as a raceengine.Observer.
package racemetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"sortrace/internal/raceengine"
)

// Exporter implements raceengine.Observer, turning each TickResult
// into Prometheus series scoped to a dedicated registry so a host can
// run several races (or races and unrelated services) without metric
// name collisions.
type Exporter struct {
	registry *prometheus.Registry

	comparisonsTotal *prometheus.CounterVec
	movesTotal       *prometheus.CounterVec
	budgetGiven      *prometheus.CounterVec
	tickDuration     prometheus.Histogram
	activeSorters    prometheus.Gauge
	progress         *prometheus.GaugeVec
}

// NewExporter creates an Exporter and registers its collectors on a
// fresh registry.
func NewExporter() *Exporter {
	e := &Exporter{registry: prometheus.NewRegistry()}

	e.comparisonsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sortrace_comparisons_total",
		Help: "Cumulative comparisons performed, per Sorter.",
	}, []string{"sorter"})

	e.movesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sortrace_moves_total",
		Help: "Cumulative positional moves performed, per Sorter.",
	}, []string{"sorter"})

	e.budgetGiven = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sortrace_budget_given_total",
		Help: "Cumulative comparison budget allocated by the fairness policy, per Sorter.",
	}, []string{"sorter"})

	e.tickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sortrace_tick_duration_seconds",
		Help:    "Wall-clock duration of a single RaceEngine.Tick call.",
		Buckets: prometheus.DefBuckets,
	})

	e.activeSorters = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sortrace_active_sorters",
		Help: "Number of Sorters that have not yet completed.",
	})

	e.progress = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sortrace_progress_hint",
		Help: "Most recent progress_hint reported by each Sorter.",
	}, []string{"sorter"})

	e.registry.MustRegister(
		e.comparisonsTotal,
		e.movesTotal,
		e.budgetGiven,
		e.tickDuration,
		e.activeSorters,
		e.progress,
	)
	return e
}

// Registry exposes the Exporter's registry so the host can mount it
// behind promhttp.HandlerFor on whatever path and server it chooses.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// OnTick implements raceengine.Observer.
func (e *Exporter) OnTick(result raceengine.TickResult) {
	active := 0
	for _, st := range result.PerSorter {
		e.comparisonsTotal.WithLabelValues(st.Name).Add(float64(st.ComparisonsUsed))
		e.movesTotal.WithLabelValues(st.Name).Add(float64(st.MovesMade))
		e.budgetGiven.WithLabelValues(st.Name).Add(float64(st.BudgetGiven))
		e.progress.WithLabelValues(st.Name).Set(st.Telemetry.ProgressHint)
		if st.Continued {
			active++
		}
	}
	e.activeSorters.Set(float64(active))
}

// ObserveTickDuration records the wall-clock cost of one Tick call.
// The race engine itself does not measure this; the host measures
// around its own Tick() call and reports it here.
func (e *Exporter) ObserveTickDuration(seconds float64) {
	e.tickDuration.Observe(seconds)
}
