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

// Weighted allocates inversely to a cumulative work score
// s_i = alpha*comparisons_i + beta*moves_i, so Sorters that have done
// more work so far receive a smaller share next tick. Raw weight is
// w_i = 1/(1+s_i), normalized and distributed by largest remainder
// with a guaranteed floor of 1 per active Sorter.
type Weighted struct {
	Alpha float64
	Beta  float64
}

// NewWeighted validates alpha and beta (both must be > 0) and returns
// the policy.
func NewWeighted(alpha, beta float64) (*Weighted, error) {
	if alpha <= 0 {
		return nil, &ConfigError{Policy: "Weighted", Reason: "alpha must be > 0"}
	}
	if beta <= 0 {
		return nil, &ConfigError{Policy: "Weighted", Reason: "beta must be > 0"}
	}
	return &Weighted{Alpha: alpha, Beta: beta}, nil
}

func (p *Weighted) Allocate(snapshots []Snapshot, total int) []int {
	active := activeIndices(snapshots)
	weights := make([]float64, len(active))
	for i, idx := range active {
		s := snapshots[idx]
		score := p.Alpha*float64(s.Comparisons) + p.Beta*float64(s.Moves)
		weights[i] = 1 / (1 + score)
	}
	return allocateShares(len(snapshots), active, weights, total, true)
}

func (p *Weighted) Observe(Feedback) {}

func (p *Weighted) Reset() {}

func (p *Weighted) Name() string { return "Weighted" }
