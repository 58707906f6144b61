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

type heapPhase int

const (
	heapPhaseBuild heapPhase = iota
	heapPhaseExtract
)

type siftStage int

const (
	siftCheckLeft siftStage = iota
	siftCheckRight
	siftDecide
)

// Heap is a resumable heap sort. Unlike the other algorithms, its
// interruption point is mid-descent of a single sift-down: the heap
// property need not hold globally between yields, but it is always
// restored before the sift in progress finishes.
type Heap struct {
	baseState
	phase        heapPhase
	buildIndex   int
	buildStart   int
	boundary     int
	siftActive   bool
	siftNode     int
	siftLargest  int
	siftStage    siftStage
}

// NewHeap creates a Heap sorter owning a copy of data.
func NewHeap(data []Element) *Heap {
	h := &Heap{}
	h.Reset(data)
	return h
}

func (h *Heap) Step(budget int) StepResult {
	if budget < 1 {
		panic("sorter: step budget must be >= 1")
	}
	if h.complete {
		return StepResult{}
	}

	n := len(h.data)
	startComparisons, startMoves := h.comparisons, h.moves

	for budget > 0 {
		switch h.phase {
		case heapPhaseBuild:
			if !h.siftActive {
				if h.buildIndex < 0 {
					h.phase = heapPhaseExtract
					h.boundary = n
					continue
				}
				h.startSift(h.buildIndex)
			}
			justFinished := h.advanceSift(&budget)
			if justFinished {
				h.buildIndex--
			}
		case heapPhaseExtract:
			if !h.siftActive {
				if h.boundary <= 1 {
					h.complete = true
					return h.finish(startComparisons, startMoves, n)
				}
				h.data[0], h.data[h.boundary-1] = h.data[h.boundary-1], h.data[0]
				h.moves += 2
				h.boundary--
				h.startSift(0)
			}
			h.advanceSift(&budget)
		}
	}

	return h.finish(startComparisons, startMoves, n)
}

func (h *Heap) finish(startComparisons, startMoves uint64, n int) StepResult {
	h.recordMem(dataMemory(n))
	return StepResult{
		ComparisonsUsed: int(h.comparisons - startComparisons),
		MovesMade:       int(h.moves - startMoves),
		Continued:       !h.complete,
	}
}

func (h *Heap) startSift(node int) {
	h.siftActive = true
	h.siftNode = node
	h.siftLargest = node
	h.siftStage = siftCheckLeft
}

// advanceSift performs one bounded unit of work on the active sift-down
// and reports whether the sift (not just this call) has completed.
func (h *Heap) advanceSift(budget *int) bool {
	limit := h.boundary

	left := 2*h.siftNode + 1
	right := 2*h.siftNode + 2

	switch h.siftStage {
	case siftCheckLeft:
		if left < limit {
			*budget--
			h.comparisons++
			if h.data[left] > h.data[h.siftLargest] {
				h.siftLargest = left
			}
		}
		h.siftStage = siftCheckRight
		return false
	case siftCheckRight:
		if right < limit {
			*budget--
			h.comparisons++
			if h.data[right] > h.data[h.siftLargest] {
				h.siftLargest = right
			}
		}
		h.siftStage = siftDecide
		return false
	default: // siftDecide
		if h.siftLargest != h.siftNode {
			h.data[h.siftNode], h.data[h.siftLargest] = h.data[h.siftLargest], h.data[h.siftNode]
			h.moves += 2
			h.siftNode = h.siftLargest
			h.siftStage = siftCheckLeft
			return false
		}
		h.siftActive = false
		return true
	}
}

func (h *Heap) siftLimit() int {
	return h.boundary
}

func (h *Heap) IsComplete() bool { return h.complete }

func (h *Heap) Telemetry() Telemetry {
	n := len(h.data)
	var cursors []int
	var boundaryPtr *int

	if !h.complete {
		if h.boundary < n {
			b := h.boundary
			boundaryPtr = &b
		}
		if h.siftActive {
			cursors = []int{h.siftNode}
			left := 2*h.siftNode + 1
			if left < h.siftLimit() {
				cursors = append(cursors, left)
			}
			right := 2*h.siftNode + 2
			if right < h.siftLimit() {
				cursors = append(cursors, right)
			}
		}
	}

	status := "Completed"
	if !h.complete {
		if h.phase == heapPhaseBuild {
			status = "Building heap"
		} else {
			status = "Extracting maximum"
		}
	}

	return Telemetry{
		TotalComparisons: h.comparisons,
		TotalMoves:       h.moves,
		MemoryCurrent:    dataMemory(n),
		MemoryPeak:       h.memPeak,
		Highlights:       cursors,
		Markers:          Markers{HeapBoundary: boundaryPtr, Cursors: cursors},
		StatusText:       status,
		ProgressHint:     h.progress(n),
	}
}

func (h *Heap) progress(n int) float64 {
	if h.complete || n <= 1 {
		return 1
	}
	buildTotal := h.buildStart + 1
	if h.phase == heapPhaseBuild {
		completed := h.buildStart - h.buildIndex
		return clampProgress(0.5 * float64(completed) / float64(buildTotal))
	}
	extracted := n - h.boundary
	return clampProgress(0.5 + 0.5*float64(extracted)/float64(n))
}

func (h *Heap) Reset(newArray []Element) {
	h.resetBase(newArray)
	n := len(newArray)
	h.phase = heapPhaseBuild
	h.buildStart = n/2 - 1
	h.buildIndex = h.buildStart
	h.boundary = n
	h.siftActive = false
	if h.buildStart < 0 {
		h.buildIndex = -1
	}
	h.recordMem(dataMemory(n))
}

func (h *Heap) ArrayView() []Element { return h.data }
func (h *Heap) MemoryUsage() int     { return dataMemory(len(h.data)) }
func (h *Heap) Name() string         { return "Heap Sort" }
