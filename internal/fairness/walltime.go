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

// wallTimeAlpha is the EMA smoothing factor for ns-per-comparison
// samples. Fixed rather than configurable: the construction interface
// only exposes an empty parameter set for WallTime (see §6 of the
// design this package implements).
const wallTimeAlpha = 0.2

// WallTime allocates shares inversely proportional to each Sorter's
// observed wall-clock cost per comparison, so a Sorter running slower
// per comparison (e.g. due to cache behavior or host contention)
// receives fewer comparisons per tick rather than monopolizing wall
// time. EMA state is keyed by Sorter index and grows lazily as
// Observe is called; allocations before any feedback treat every
// Sorter as equally fast.
type WallTime struct {
	emaNsPerComp map[int]float64
}

// NewWallTime returns a ready-to-use WallTime policy. It takes no
// parameters: the construction interface recognizes WallTime: {}.
func NewWallTime() *WallTime {
	return &WallTime{emaNsPerComp: make(map[int]float64)}
}

func (p *WallTime) Allocate(snapshots []Snapshot, total int) []int {
	active := activeIndices(snapshots)
	weights := make([]float64, len(active))
	for i, idx := range active {
		ns, known := p.emaNsPerComp[idx]
		if !known || ns <= 0 {
			weights[i] = 1
			continue
		}
		weights[i] = 1 / ns
	}
	return allocateShares(len(snapshots), active, weights, total, true)
}

func (p *WallTime) Observe(fb Feedback) {
	if fb.ComparisonsUsed <= 0 {
		return
	}
	nsPerComp := fb.Elapsed * 1e9 / float64(fb.ComparisonsUsed)
	prev, known := p.emaNsPerComp[fb.SorterIndex]
	if !known {
		p.emaNsPerComp[fb.SorterIndex] = nsPerComp
		return
	}
	p.emaNsPerComp[fb.SorterIndex] = (1-wallTimeAlpha)*prev + wallTimeAlpha*nsPerComp
}

// Reset discards every per-Sorter EMA sample, returning the policy to
// its uniform-first-tick state.
func (p *WallTime) Reset() {
	p.emaNsPerComp = make(map[int]float64)
}

func (p *WallTime) Name() string { return "WallTime" }
