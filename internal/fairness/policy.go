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

// Package fairness computes per-tick comparison-budget allocations
// across a set of still-running Sorters. A Policy never touches a
// Sorter directly: it reads a Snapshot of cumulative telemetry and
// returns how many comparisons each Sorter may spend next tick.
package fairness

import "fmt"

// Snapshot is the slice of a Sorter's state a Policy needs to make an
// allocation decision. It is derived from sorter.Telemetry and
// sorter.IsComplete by the caller (the race engine); this package has
// no dependency on the sorter package itself.
type Snapshot struct {
	Comparisons  uint64
	Moves        uint64
	ProgressHint float64
	Complete     bool
}

// Feedback is reported back to a Policy after a Sorter's step so that
// time-aware policies (WallTime, Adaptive) can update their internal
// state. Policies that ignore feedback implement Observe as a no-op.
type Feedback struct {
	SorterIndex     int
	Elapsed         float64 // seconds
	ComparisonsUsed int
	BudgetGiven     int
	ProgressBefore  float64
	ProgressAfter   float64
}

// Policy computes a per-tick allocation vector over a set of Sorters.
// Allocate's postconditions (enforced by every implementation in this
// package): len(result) == len(snapshots); every entry is >= 0; the
// entries sum to exactly total whenever at least one Sorter is
// incomplete (with none incomplete, every entry is 0); a complete
// Sorter always receives 0; an incomplete Sorter receives >= 1
// whenever total >= count(incomplete).
type Policy interface {
	Allocate(snapshots []Snapshot, total int) []int

	// Observe records feedback from one Sorter's most recent step.
	// Stateless policies implement this as a no-op.
	Observe(fb Feedback)

	// Reset discards any accumulated per-Sorter state (EMA samples,
	// progress-rate history). Called when the engine starts a new
	// race over the same Policy instance. Stateless policies
	// implement this as a no-op.
	Reset()

	// Name returns a stable identifier for the policy, used in logs
	// and in the construction interface's policy_choice echo.
	Name() string
}

// ConfigError reports a rejected policy configuration. It is returned
// by the validating constructors in this package (NewEqualComparisons,
// NewWeighted, NewAdaptive) rather than letting an invalid policy
// reach the race engine.
type ConfigError struct {
	Policy string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("fairness: invalid %s configuration: %s", e.Policy, e.Reason)
}

// activeIndices returns the indices of incomplete Sorters, preserving
// input order. This is the stable iteration order every policy in
// this package uses for remainder distribution.
func activeIndices(snapshots []Snapshot) []int {
	active := make([]int, 0, len(snapshots))
	for i, s := range snapshots {
		if !s.Complete {
			active = append(active, i)
		}
	}
	return active
}

// allocateShares distributes total across the Sorters named by active
// in proportion to weights (same length and order as active), using
// the largest-remainder method so the sum is exactly total. If
// reserveFloor is true and total allows it, every active Sorter is
// guaranteed at least 1 before proportional shares are added.
func allocateShares(n int, active []int, weights []float64, total int, reserveFloor bool) []int {
	result := make([]int, n)
	if len(active) == 0 || total <= 0 {
		return result
	}

	budget := total
	floor := 0
	if reserveFloor && total >= len(active) {
		floor = 1
		budget -= len(active)
	}

	weightSum := 0.0
	for _, w := range weights {
		weightSum += w
	}
	if weightSum <= 0 {
		// Degenerate weights: fall back to an equal split of the
		// remaining budget so the sum invariant still holds.
		weights = make([]float64, len(active))
		for i := range weights {
			weights[i] = 1
		}
		weightSum = float64(len(active))
	}

	type residual struct {
		idx int
		r   float64
	}
	residuals := make([]residual, len(active))
	assigned := 0
	for i, sorterIdx := range active {
		exact := weights[i] / weightSum * float64(budget)
		whole := int(exact)
		result[sorterIdx] = floor + whole
		residuals[i] = residual{idx: sorterIdx, r: exact - float64(whole)}
		assigned += whole
	}

	remainder := budget - assigned
	// Stable sort by descending residual; ties broken by original
	// (active-list) order, which is already ascending index order.
	for i := 1; i < len(residuals); i++ {
		for j := i; j > 0 && residuals[j].r > residuals[j-1].r; j-- {
			residuals[j], residuals[j-1] = residuals[j-1], residuals[j]
		}
	}
	for i := 0; i < remainder && i < len(residuals); i++ {
		result[residuals[i].idx]++
	}

	return result
}
