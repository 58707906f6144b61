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

// quickRange is a pending [low, high) sub-range awaiting partition.
type quickRange struct {
	low, high int
}

// quickPartition holds the in-progress Lomuto partition of the range
// currently at the top of the stack. The pivot is the last element of
// the range; i tracks the boundary of the "less than pivot" region and
// j is the scan cursor.
type quickPartition struct {
	active bool
	low    int
	high   int
	pivot  Element
	i, j   int
}

// Quick is a resumable quicksort using an explicit stack of pending
// ranges instead of recursion. To bound stack depth to O(log N), each
// partition step pushes its larger sub-range before its smaller one,
// so the smaller half is partitioned next while the larger halves of
// prior splits wait on the stack.
// Equal-key elements are left of the pivot only when strictly smaller;
// ties go to the right, matching a standard Lomuto scheme.
type Quick struct {
	baseState
	stack []quickRange
	part  quickPartition
}

// NewQuick creates a Quick sorter owning a copy of data.
func NewQuick(data []Element) *Quick {
	q := &Quick{}
	q.Reset(data)
	return q
}

func (q *Quick) Step(budget int) StepResult {
	if budget < 1 {
		panic("sorter: step budget must be >= 1")
	}
	if q.complete {
		return StepResult{}
	}

	n := len(q.data)
	startComparisons, startMoves := q.comparisons, q.moves

	for budget > 0 {
		if !q.part.active {
			if !q.popNextRange() {
				q.complete = true
				break
			}
			continue
		}

		if q.part.j < q.part.high-1 {
			budget--
			q.comparisons++
			if q.data[q.part.j] < q.part.pivot {
				if q.part.i != q.part.j {
					q.data[q.part.i], q.data[q.part.j] = q.data[q.part.j], q.data[q.part.i]
					q.moves += 2
				}
				q.part.i++
			}
			q.part.j++
			continue
		}

		if q.part.i != q.part.high-1 {
			q.data[q.part.i], q.data[q.part.high-1] = q.data[q.part.high-1], q.data[q.part.i]
			q.moves += 2
		}
		pivotIndex := q.part.i
		low, high := q.part.low, q.part.high
		q.part.active = false

		leftLen := pivotIndex - low
		rightLen := high - (pivotIndex + 1)
		if leftLen >= rightLen {
			q.pushRange(low, pivotIndex)
			q.pushRange(pivotIndex+1, high)
		} else {
			q.pushRange(pivotIndex+1, high)
			q.pushRange(low, pivotIndex)
		}
	}

	q.recordMem(dataMemory(n) + stackMemory(len(q.stack)))
	return StepResult{
		ComparisonsUsed: int(q.comparisons - startComparisons),
		MovesMade:       int(q.moves - startMoves),
		Continued:       !q.complete,
	}
}

// pushRange pushes a sub-range onto the stack, skipping ranges too
// small to need partitioning (size 0 or 1).
func (q *Quick) pushRange(low, high int) {
	if high-low > 1 {
		q.stack = append(q.stack, quickRange{low: low, high: high})
	}
}

// popNextRange pops the next pending range and starts partitioning it.
// Returns false once the stack is empty.
func (q *Quick) popNextRange() bool {
	if len(q.stack) == 0 {
		return false
	}
	top := q.stack[len(q.stack)-1]
	q.stack = q.stack[:len(q.stack)-1]
	q.part = quickPartition{
		active: true,
		low:    top.low,
		high:   top.high,
		pivot:  q.data[top.high-1],
		i:      top.low,
		j:      top.low,
	}
	return true
}

func (q *Quick) IsComplete() bool { return q.complete }

func (q *Quick) Telemetry() Telemetry {
	n := len(q.data)
	var highlights []int
	var pivotPtr *int
	if !q.complete && q.part.active {
		pivotIdx := q.part.high - 1
		pivotPtr = &pivotIdx
		highlights = []int{q.part.i, q.part.j, pivotIdx}
	}

	status := "Completed"
	if !q.complete {
		status = "Partitioning range around pivot"
	}

	progress := 1.0
	if !q.complete {
		sorted := n - q.unsortedSpan()
		if n > 0 {
			progress = clampProgress(float64(sorted) / float64(n))
		} else {
			progress = 1
		}
	}

	return Telemetry{
		TotalComparisons: q.comparisons,
		TotalMoves:       q.moves,
		MemoryCurrent:    dataMemory(n) + stackMemory(len(q.stack)),
		MemoryPeak:       q.memPeak,
		Highlights:       highlights,
		Markers:          Markers{Pivot: pivotPtr, Cursors: highlights},
		StatusText:       status,
		ProgressHint:     progress,
	}
}

// unsortedSpan estimates the total size of ranges still awaiting or
// undergoing partition, for a rough progress hint.
func (q *Quick) unsortedSpan() int {
	span := 0
	if q.part.active {
		span += q.part.high - q.part.low
	}
	for _, r := range q.stack {
		span += r.high - r.low
	}
	return span
}

func (q *Quick) Reset(newArray []Element) {
	q.resetBase(newArray)
	n := len(newArray)
	q.stack = q.stack[:0]
	q.part = quickPartition{}
	q.pushRange(0, n)
	q.recordMem(dataMemory(n) + stackMemory(len(q.stack)))
}

func (q *Quick) ArrayView() []Element { return q.data }
func (q *Quick) MemoryUsage() int     { return dataMemory(len(q.data)) + stackMemory(len(q.stack)) }
func (q *Quick) Name() string         { return "Quick Sort" }

// stackMemory estimates the byte footprint of a range stack of depth n.
func stackMemory(n int) int {
	return n * 16
}
