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

// Package sorter provides resumable sorting algorithms re-expressed as
// state machines that make bounded progress per call to Step. Each
// algorithm owns an independent copy of the input array and advances
// through arbitrarily many bounded steps until it reports completion.
//
// The contract is intentionally narrow: a Sorter knows nothing about
// fairness, scheduling, or rendering. It exposes a constant-time
// telemetry snapshot after every step and otherwise keeps its
// continuation state private.
package sorter

// Element is the array element type sorted by every algorithm in this
// package: a signed 32-bit integer compared and positionally moved.
type Element = int32

// StepResult is returned by every call to Step. ComparisonsUsed never
// exceeds the requested budget. Continued is false iff the algorithm
// is complete when the call returns, including a call made after it
// had already completed.
type StepResult struct {
	ComparisonsUsed int
	MovesMade       int
	Continued       bool
}

// Markers carries algorithm-specific visual-intent indices. A zero value
// means "nothing to highlight" for that field. All indices are within
// [0, N) of the owning Sorter's array.
type Markers struct {
	Pivot        *int
	HeapBoundary *int
	Gap          *int
	MergeRuns    []Range
	Cursors      []int
}

// Range is an inclusive-exclusive index range, used for merge-run markers.
type Range struct {
	Start, End int
}

// Telemetry is the read-only snapshot a Sorter publishes after each step.
// It is returned by value; the renderer never reaches into Sorter
// internals.
type Telemetry struct {
	TotalComparisons uint64
	TotalMoves       uint64
	MemoryCurrent    int
	MemoryPeak       int
	Highlights       []int
	Markers          Markers
	StatusText       string
	ProgressHint     float64
}

// Sorter is the uniform operation set every algorithm in this package
// implements. A Sorter must not fail under normal conditions: an
// out-of-range index or a multiset violation is a programming error,
// not a recoverable result, and implementations panic rather than
// return an error for those cases.
type Sorter interface {
	// Step performs work until either the algorithm completes, it has
	// used exactly budget comparisons, or it reaches an internal yield
	// point. budget must be >= 1. Step never uses more than budget
	// comparisons.
	Step(budget int) StepResult

	// IsComplete reports whether the owned array is sorted
	// non-decreasing and no further work remains. Latched: once true,
	// it stays true until the next Reset.
	IsComplete() bool

	// Telemetry returns a constant-time snapshot. Safe to call between
	// steps.
	Telemetry() Telemetry

	// Reset reinitializes the Sorter with a new array, discarding
	// continuation state and zeroing counters. IsComplete becomes false
	// unless len(newArray) <= 1.
	Reset(newArray []Element)

	// ArrayView returns the current array contents. Callers must not
	// mutate the returned slice.
	ArrayView() []Element

	// MemoryUsage returns the bytes currently held for sorting: the
	// data array plus any algorithm-specific auxiliary structures.
	MemoryUsage() int

	// Name returns a stable identifier for the algorithm.
	Name() string
}

const elementSize = 4 // bytes, int32

// baseState holds the bookkeeping every algorithm shares: the owned
// array, monotonic counters, completion latch, and peak memory.
type baseState struct {
	data        []Element
	comparisons uint64
	moves       uint64
	complete    bool
	memPeak     int
}

func (b *baseState) recordMem(current int) {
	if current > b.memPeak {
		b.memPeak = current
	}
}

func (b *baseState) resetBase(data []Element) {
	b.data = data
	b.comparisons = 0
	b.moves = 0
	b.memPeak = 0
	b.complete = len(data) <= 1
}

// dataMemory is the byte footprint of the owned array alone.
func dataMemory(n int) int {
	return n * elementSize
}

// clampProgress keeps a progress hint within [0, 1].
func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
