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

// Selection is a resumable selection sort. Continuation state is the
// outer cursor, the scan cursor sweeping the unsorted tail, and the
// index of the smallest element seen so far in the current scan.
type Selection struct {
	baseState
	outer    int
	scan     int
	minIndex int
	scanning bool
}

// NewSelection creates a Selection sorter owning a copy of data.
func NewSelection(data []Element) *Selection {
	s := &Selection{}
	s.Reset(data)
	return s
}

func (s *Selection) Step(budget int) StepResult {
	if budget < 1 {
		panic("sorter: step budget must be >= 1")
	}
	if s.complete {
		return StepResult{}
	}

	n := len(s.data)
	startComparisons, startMoves := s.comparisons, s.moves

	for budget > 0 {
		if s.outer >= n-1 {
			s.complete = true
			break
		}
		if !s.scanning {
			s.minIndex = s.outer
			s.scan = s.outer + 1
			s.scanning = true
		}
		if s.scan < n {
			budget--
			s.comparisons++
			if s.data[s.scan] < s.data[s.minIndex] {
				s.minIndex = s.scan
			}
			s.scan++
			continue
		}
		if s.minIndex != s.outer {
			s.data[s.outer], s.data[s.minIndex] = s.data[s.minIndex], s.data[s.outer]
			s.moves += 2
		}
		s.outer++
		s.scanning = false
	}

	s.recordMem(dataMemory(n))
	return StepResult{
		ComparisonsUsed: int(s.comparisons - startComparisons),
		MovesMade:       int(s.moves - startMoves),
		Continued:       !s.complete,
	}
}

func (s *Selection) IsComplete() bool { return s.complete }

func (s *Selection) Telemetry() Telemetry {
	n := len(s.data)
	var highlights []int
	if !s.complete && s.scanning {
		highlights = []int{s.minIndex}
		if s.scan < n {
			highlights = append(highlights, s.scan)
		}
	}

	status := "Completed"
	if !s.complete {
		status = "Scanning unsorted tail for minimum"
	}

	progress := 1.0
	if n > 0 {
		progress = clampProgress(float64(s.outer) / float64(n))
	}
	if s.complete {
		progress = 1
	}

	return Telemetry{
		TotalComparisons: s.comparisons,
		TotalMoves:       s.moves,
		MemoryCurrent:    dataMemory(n),
		MemoryPeak:       s.memPeak,
		Highlights:       highlights,
		Markers:          Markers{Cursors: highlights},
		StatusText:       status,
		ProgressHint:     progress,
	}
}

func (s *Selection) Reset(newArray []Element) {
	s.resetBase(newArray)
	s.outer = 0
	s.scan = 0
	s.minIndex = 0
	s.scanning = false
	s.recordMem(dataMemory(len(newArray)))
}

func (s *Selection) ArrayView() []Element { return s.data }
func (s *Selection) MemoryUsage() int     { return dataMemory(len(s.data)) }
func (s *Selection) Name() string         { return "Selection Sort" }
