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

package racemetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"sortrace/internal/raceengine"
	"sortrace/pkg/sorter"
)

func counterValue(t *testing.T, c *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.WithLabelValues(labels...).(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestExporterAccumulatesAcrossTicks(t *testing.T) {
	e := NewExporter()

	e.OnTick(raceengine.TickResult{
		AllComplete: false,
		PerSorter: []raceengine.SorterTick{
			{Name: "Bubble Sort", ComparisonsUsed: 4, MovesMade: 2, Continued: true,
				Telemetry: sorter.Telemetry{ProgressHint: 0.1}},
			{Name: "Quick Sort", ComparisonsUsed: 6, MovesMade: 3, Continued: true,
				Telemetry: sorter.Telemetry{ProgressHint: 0.3}},
		},
	})
	e.OnTick(raceengine.TickResult{
		AllComplete: true,
		PerSorter: []raceengine.SorterTick{
			{Name: "Bubble Sort", ComparisonsUsed: 5, MovesMade: 1, Continued: false,
				Telemetry: sorter.Telemetry{ProgressHint: 1.0}},
			{Name: "Quick Sort", ComparisonsUsed: 2, MovesMade: 0, Continued: false,
				Telemetry: sorter.Telemetry{ProgressHint: 1.0}},
		},
	})

	if got := counterValue(t, e.comparisonsTotal, "Bubble Sort"); got != 9 {
		t.Errorf("Bubble Sort comparisons_total = %v, want 9", got)
	}
	if got := counterValue(t, e.comparisonsTotal, "Quick Sort"); got != 8 {
		t.Errorf("Quick Sort comparisons_total = %v, want 8", got)
	}
	if got := counterValue(t, e.movesTotal, "Bubble Sort"); got != 3 {
		t.Errorf("Bubble Sort moves_total = %v, want 3", got)
	}

	families, err := e.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) == 0 {
		t.Error("Gather() returned no metric families")
	}
}

func TestExporterActiveSortersGauge(t *testing.T) {
	e := NewExporter()
	e.OnTick(raceengine.TickResult{
		PerSorter: []raceengine.SorterTick{
			{Name: "A", Continued: true, Telemetry: sorter.Telemetry{}},
			{Name: "B", Continued: false, Telemetry: sorter.Telemetry{}},
		},
	})

	m := &dto.Metric{}
	if err := e.activeSorters.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := m.GetGauge().GetValue(); got != 1 {
		t.Errorf("active_sorters = %v, want 1", got)
	}
}
