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

import "testing"

func allPolicies(t *testing.T) map[string]Policy {
	eq, err := NewEqualComparisons(16)
	if err != nil {
		t.Fatalf("NewEqualComparisons: %v", err)
	}
	wt, err := NewWeighted(1, 1)
	if err != nil {
		t.Fatalf("NewWeighted: %v", err)
	}
	ad, err := NewAdaptive(0.5)
	if err != nil {
		t.Fatalf("NewAdaptive: %v", err)
	}
	return map[string]Policy{
		"EqualComparisons": eq,
		"Weighted":         wt,
		"WallTime":         NewWallTime(),
		"Adaptive":         ad,
	}
}

func TestAllocationConservation(t *testing.T) {
	fixtures := []struct {
		name      string
		snapshots []Snapshot
		total     int
	}{
		{"all-active", []Snapshot{{}, {}, {}}, 10},
		{"one-complete", []Snapshot{{Complete: true}, {}, {}}, 10},
		{"uneven-work", []Snapshot{{Comparisons: 100}, {Comparisons: 1}, {Moves: 50}}, 17},
		{"total-less-than-active", []Snapshot{{}, {}, {}, {}}, 2},
		{"single-sorter", []Snapshot{{}}, 5},
	}

	for name, p := range allPolicies(t) {
		for _, fx := range fixtures {
			t.Run(name+"/"+fx.name, func(t *testing.T) {
				got := p.Allocate(fx.snapshots, fx.total)
				if len(got) != len(fx.snapshots) {
					t.Fatalf("len(Allocate()) = %d, want %d", len(got), len(fx.snapshots))
				}
				sum := 0
				for i, v := range got {
					if v < 0 {
						t.Errorf("Allocate()[%d] = %d, want >= 0", i, v)
					}
					if fx.snapshots[i].Complete && v != 0 {
						t.Errorf("completed Sorter %d received %d, want 0", i, v)
					}
					sum += v
				}
				if sum != fx.total {
					t.Errorf("sum(Allocate()) = %d, want %d", sum, fx.total)
				}
			})
		}
	}
}

func TestFairnessFloor(t *testing.T) {
	snapshots := []Snapshot{
		{Comparisons: 1000},
		{Comparisons: 1},
		{Complete: true},
		{Moves: 500},
	}
	incomplete := 3
	for name, p := range allPolicies(t) {
		t.Run(name, func(t *testing.T) {
			got := p.Allocate(snapshots, incomplete)
			for i, s := range snapshots {
				if !s.Complete && got[i] < 1 {
					t.Errorf("incomplete Sorter %d received %d, want >= 1 when total == count(incomplete)", i, got[i])
				}
			}
		})
	}
}

func TestWeightedFavorsLessWork(t *testing.T) {
	p, err := NewWeighted(1, 1)
	if err != nil {
		t.Fatalf("NewWeighted: %v", err)
	}
	snapshots := []Snapshot{
		{Comparisons: 900}, // Bubble, lots of work done
		{Comparisons: 5},   // Quick, little work done
	}
	got := p.Allocate(snapshots, 10)
	if got[1] <= got[0] {
		t.Errorf("Allocate() = %v, want second entry (less cumulative work) to receive a larger share", got)
	}
}

func TestAdaptiveFavorsSlowerProgress(t *testing.T) {
	p, err := NewAdaptive(0.5)
	if err != nil {
		t.Fatalf("NewAdaptive: %v", err)
	}
	// Sorter 0 progresses slowly per unit budget; Sorter 1 progresses fast.
	for i := 0; i < 20; i++ {
		p.Observe(Feedback{SorterIndex: 0, BudgetGiven: 10, ProgressBefore: 0, ProgressAfter: 0.01})
		p.Observe(Feedback{SorterIndex: 1, BudgetGiven: 10, ProgressBefore: 0, ProgressAfter: 0.5})
	}
	got := p.Allocate([]Snapshot{{}, {}}, 10)
	if got[0] <= got[1] {
		t.Errorf("Allocate() = %v, want slower-progressing Sorter 0 to receive a larger share", got)
	}
}

func TestWallTimeFavorsSlowerCost(t *testing.T) {
	p := NewWallTime()
	for i := 0; i < 20; i++ {
		p.Observe(Feedback{SorterIndex: 0, Elapsed: 0.001, ComparisonsUsed: 10}) // slow: 100us/comp
		p.Observe(Feedback{SorterIndex: 1, Elapsed: 0.00001, ComparisonsUsed: 10}) // fast: 1us/comp
	}
	got := p.Allocate([]Snapshot{{}, {}}, 10)
	if got[1] <= got[0] {
		t.Errorf("Allocate() = %v, want faster Sorter 1 to receive a larger share", got)
	}
}

func TestUniformFirstTick(t *testing.T) {
	// Before any Observe calls, WallTime and Adaptive treat all active
	// Sorters as equal, same as EqualComparisons would.
	for _, p := range []Policy{NewWallTime(), mustAdaptive(t, 0.5)} {
		t.Run(p.Name(), func(t *testing.T) {
			got := p.Allocate([]Snapshot{{}, {}}, 10)
			if got[0] != got[1] {
				t.Errorf("Allocate() = %v, want equal shares on first tick", got)
			}
		})
	}
}

func mustAdaptive(t *testing.T, eta float64) *Adaptive {
	p, err := NewAdaptive(eta)
	if err != nil {
		t.Fatalf("NewAdaptive: %v", err)
	}
	return p
}

func TestConstructorValidation(t *testing.T) {
	if _, err := NewEqualComparisons(0); err == nil {
		t.Error("NewEqualComparisons(0) = nil error, want ConfigError")
	}
	if _, err := NewWeighted(0, 1); err == nil {
		t.Error("NewWeighted(0, 1) = nil error, want ConfigError")
	}
	if _, err := NewWeighted(1, -1); err == nil {
		t.Error("NewWeighted(1, -1) = nil error, want ConfigError")
	}
	if _, err := NewAdaptive(0); err == nil {
		t.Error("NewAdaptive(0) = nil error, want ConfigError")
	}
	if _, err := NewAdaptive(1.5); err == nil {
		t.Error("NewAdaptive(1.5) = nil error, want ConfigError")
	}
	if _, err := Build("bogus", Params{}); err == nil {
		t.Error(`Build("bogus", ...) = nil error, want error`)
	}
}
