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

// Merge is a resumable bottom-up (iterative) merge sort. It repeatedly
// merges adjacent runs of width w = 1, 2, 4, ... until w covers the
// whole array, rather than recursing top-down. Continuation state is
// the current run width, the start of the left run being merged, and
// the three cursors (i, j, k) into the left run, right run, and the
// shared auxiliary buffer.
//
// The auxiliary buffer is allocated once in Reset and reused across
// every merge, so it counts toward memory_usage alongside the data
// slice rather than being allocated per call.
type Merge struct {
	baseState
	aux     []Element
	width   int
	left    int
	mid     int
	right   int
	i, j, k int
	merging bool
}

// NewMerge creates a Merge sorter owning a copy of data.
func NewMerge(data []Element) *Merge {
	m := &Merge{}
	m.Reset(data)
	return m
}

func (m *Merge) Step(budget int) StepResult {
	if budget < 1 {
		panic("sorter: step budget must be >= 1")
	}
	if m.complete {
		return StepResult{}
	}

	n := len(m.data)
	startComparisons, startMoves := m.comparisons, m.moves

	for budget > 0 {
		if m.width >= n {
			m.complete = true
			break
		}
		if !m.merging {
			if m.left >= n {
				m.width *= 2
				m.left = 0
				continue
			}
			m.mid = min(m.left+m.width, n)
			m.right = min(m.left+2*m.width, n)
			if m.mid >= m.right {
				// Lone trailing run, nothing to merge it against.
				m.left += 2 * m.width
				continue
			}
			m.i, m.j, m.k = m.left, m.mid, m.left
			m.merging = true
		}

		if m.i < m.mid && m.j < m.right {
			budget--
			m.comparisons++
			if m.data[m.i] <= m.data[m.j] {
				m.aux[m.k] = m.data[m.i]
				m.i++
			} else {
				m.aux[m.k] = m.data[m.j]
				m.j++
			}
			m.moves++
			m.k++
			continue
		}
		if m.i < m.mid {
			m.aux[m.k] = m.data[m.i]
			m.i++
			m.k++
			m.moves++
			continue
		}
		if m.j < m.right {
			m.aux[m.k] = m.data[m.j]
			m.j++
			m.k++
			m.moves++
			continue
		}

		copy(m.data[m.left:m.right], m.aux[m.left:m.right])
		m.left += 2 * m.width
		m.merging = false
	}

	m.recordMem(dataMemory(n) + dataMemory(n))
	return StepResult{
		ComparisonsUsed: int(m.comparisons - startComparisons),
		MovesMade:       int(m.moves - startMoves),
		Continued:       !m.complete,
	}
}

func (m *Merge) IsComplete() bool { return m.complete }

func (m *Merge) Telemetry() Telemetry {
	n := len(m.data)
	var highlights []int
	var runs []Range
	if !m.complete && m.merging {
		highlights = []int{m.i}
		if m.j < n {
			highlights = append(highlights, m.j)
		}
		runs = []Range{{Start: m.left, End: m.mid}, {Start: m.mid, End: m.right}}
	}

	status := "Completed"
	if !m.complete {
		status = "Merging adjacent runs"
	}

	progress := 1.0
	if !m.complete && n > 0 {
		totalPasses := ceilLog2(n)
		if totalPasses == 0 {
			totalPasses = 1
		}
		passesDone := 0
		for w := 1; w < m.width; w *= 2 {
			passesDone++
		}
		within := float64(m.left) / float64(n)
		progress = clampProgress((float64(passesDone) + within) / float64(totalPasses))
	}
	if m.complete {
		progress = 1
	}

	return Telemetry{
		TotalComparisons: m.comparisons,
		TotalMoves:       m.moves,
		MemoryCurrent:    dataMemory(n) + dataMemory(n),
		MemoryPeak:       m.memPeak,
		Highlights:       highlights,
		Markers:          Markers{MergeRuns: runs, Cursors: highlights},
		StatusText:       status,
		ProgressHint:     progress,
	}
}

func (m *Merge) Reset(newArray []Element) {
	m.resetBase(newArray)
	n := len(newArray)
	m.aux = make([]Element, n)
	m.width = 1
	m.left = 0
	m.merging = false
	m.recordMem(dataMemory(n) + dataMemory(n))
}

func (m *Merge) ArrayView() []Element { return m.data }
func (m *Merge) MemoryUsage() int     { return dataMemory(len(m.data)) + dataMemory(len(m.aux)) }
func (m *Merge) Name() string         { return "Merge Sort" }

func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	passes := 0
	for w := 1; w < n; w *= 2 {
		passes++
	}
	return passes
}
