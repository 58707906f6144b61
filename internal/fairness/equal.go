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

// EqualComparisons splits the total tick budget evenly across active
// Sorters, distributing the remainder one unit at a time over the
// active set in index order. KDefault is the suggested total when the
// host has no other preference; it is not itself enforced here.
type EqualComparisons struct {
	KDefault int
}

// NewEqualComparisons validates kDefault and returns the policy.
func NewEqualComparisons(kDefault int) (*EqualComparisons, error) {
	if kDefault < 1 {
		return nil, &ConfigError{Policy: "EqualComparisons", Reason: "k_default must be >= 1"}
	}
	return &EqualComparisons{KDefault: kDefault}, nil
}

func (p *EqualComparisons) Allocate(snapshots []Snapshot, total int) []int {
	active := activeIndices(snapshots)
	weights := make([]float64, len(active))
	for i := range weights {
		weights[i] = 1
	}
	return allocateShares(len(snapshots), active, weights, total, true)
}

func (p *EqualComparisons) Observe(Feedback) {}

func (p *EqualComparisons) Reset() {}

func (p *EqualComparisons) Name() string { return "EqualComparisons" }
