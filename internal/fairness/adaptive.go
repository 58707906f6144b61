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

package fairness

// adaptiveEpsilon keeps the inverse-rate weight finite when a Sorter
// has made no measured progress yet.
const adaptiveEpsilon = 1e-6

// Adaptive tracks an exponentially-weighted average of each Sorter's
// progress rate (progress delta per budget unit spent) and allocates
// inversely to it, so Sorters that are progressing slowly relative to
// the budget they are given are handed more comparisons on
// subsequent ticks.
type Adaptive struct {
	eta  float64
	rate map[int]float64
}

// NewAdaptive validates eta (must lie in (0, 1]) and returns the
// policy.
func NewAdaptive(eta float64) (*Adaptive, error) {
	if eta <= 0 || eta > 1 {
		return nil, &ConfigError{Policy: "Adaptive", Reason: "learning_rate must be in (0, 1]"}
	}
	return &Adaptive{eta: eta, rate: make(map[int]float64)}, nil
}

func (p *Adaptive) Allocate(snapshots []Snapshot, total int) []int {
	active := activeIndices(snapshots)
	weights := make([]float64, len(active))
	for i, idx := range active {
		weights[i] = 1 / (adaptiveEpsilon + p.rate[idx])
	}
	return allocateShares(len(snapshots), active, weights, total, true)
}

func (p *Adaptive) Observe(fb Feedback) {
	if fb.BudgetGiven <= 0 {
		return
	}
	sample := (fb.ProgressAfter - fb.ProgressBefore) / float64(fb.BudgetGiven)
	if sample < 0 {
		sample = 0
	}
	prev := p.rate[fb.SorterIndex]
	p.rate[fb.SorterIndex] = (1-p.eta)*prev + p.eta*sample
}

// Reset discards every per-Sorter progress-rate EMA.
func (p *Adaptive) Reset() {
	p.rate = make(map[int]float64)
}

func (p *Adaptive) Name() string { return "Adaptive" }
