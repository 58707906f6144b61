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

package sorter

// Bubble is a resumable bubble sort. Continuation state is the pass
// index, the inner comparison cursor, and whether a swap happened
// during the current pass (an early-exit signal once a pass is clean).
type Bubble struct {
	baseState
	pass    int
	inner   int
	swapped bool
}

// NewBubble creates a Bubble sorter owning a copy of data.
func NewBubble(data []Element) *Bubble {
	b := &Bubble{}
	b.Reset(data)
	return b
}

func (b *Bubble) Step(budget int) StepResult {
	if budget < 1 {
		panic("sorter: step budget must be >= 1")
	}
	if b.complete {
		return StepResult{}
	}

	n := len(b.data)
	startComparisons, startMoves := b.comparisons, b.moves

	for budget > 0 {
		boundary := n - 1 - b.pass
		if b.inner >= boundary {
			b.pass++
			b.inner = 0
			if !b.swapped || b.pass >= n-1 {
				b.complete = true
				break
			}
			b.swapped = false
			continue
		}

		budget--
		b.comparisons++
		if b.data[b.inner] > b.data[b.inner+1] {
			b.data[b.inner], b.data[b.inner+1] = b.data[b.inner+1], b.data[b.inner]
			b.moves += 2
			b.swapped = true
		}
		b.inner++
	}

	b.recordMem(dataMemory(n))
	return StepResult{
		ComparisonsUsed: int(b.comparisons - startComparisons),
		MovesMade:       int(b.moves - startMoves),
		Continued:       !b.complete,
	}
}

func (b *Bubble) IsComplete() bool { return b.complete }

func (b *Bubble) Telemetry() Telemetry {
	n := len(b.data)
	var highlights []int
	if !b.complete && b.inner+1 < n {
		highlights = []int{b.inner, b.inner + 1}
	}

	status := "Completed"
	if !b.complete {
		status = "Comparing adjacent pair in pass"
	}

	var progress float64
	if n <= 1 {
		progress = 1
	} else {
		remaining := float64(n - b.pass)
		progress = clampProgress(1 - (remaining*remaining)/float64(n*n))
	}
	if b.complete {
		progress = 1
	}

	return Telemetry{
		TotalComparisons: b.comparisons,
		TotalMoves:       b.moves,
		MemoryCurrent:    dataMemory(n),
		MemoryPeak:       b.memPeak,
		Highlights:       highlights,
		Markers:          Markers{Cursors: highlights},
		StatusText:       status,
		ProgressHint:     progress,
	}
}

func (b *Bubble) Reset(newArray []Element) {
	b.resetBase(newArray)
	b.pass = 0
	b.inner = 0
	b.swapped = false
	b.recordMem(dataMemory(len(newArray)))
}

func (b *Bubble) ArrayView() []Element { return b.data }
func (b *Bubble) MemoryUsage() int     { return dataMemory(len(b.data)) }
func (b *Bubble) Name() string         { return "Bubble Sort" }
