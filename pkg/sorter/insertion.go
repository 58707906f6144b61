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

// Insertion is a resumable insertion sort. Continuation state is the
// outer cursor (the element currently being inserted), the inner
// cursor sliding it into place, and the held key value.
type Insertion struct {
	baseState
	outer  int
	inner  int
	key    Element
	hasKey bool
}

// NewInsertion creates an Insertion sorter owning a copy of data.
func NewInsertion(data []Element) *Insertion {
	s := &Insertion{}
	s.Reset(data)
	return s
}

func (s *Insertion) Step(budget int) StepResult {
	if budget < 1 {
		panic("sorter: step budget must be >= 1")
	}
	if s.complete {
		return StepResult{}
	}

	n := len(s.data)
	startComparisons, startMoves := s.comparisons, s.moves

	for budget > 0 {
		if s.outer >= n {
			s.complete = true
			break
		}
		if !s.hasKey {
			s.key = s.data[s.outer]
			s.inner = s.outer
			s.hasKey = true
		}
		if s.inner > 0 {
			budget--
			s.comparisons++
			if s.data[s.inner-1] > s.key {
				s.data[s.inner] = s.data[s.inner-1]
				s.moves++
				s.inner--
				continue
			}
		}
		s.data[s.inner] = s.key
		s.moves++
		s.outer++
		s.hasKey = false
	}

	s.recordMem(dataMemory(n))
	return StepResult{
		ComparisonsUsed: int(s.comparisons - startComparisons),
		MovesMade:       int(s.moves - startMoves),
		Continued:       !s.complete,
	}
}

func (s *Insertion) IsComplete() bool { return s.complete }

func (s *Insertion) Telemetry() Telemetry {
	n := len(s.data)
	var highlights []int
	if !s.complete {
		if s.inner > 0 {
			highlights = []int{s.inner - 1, s.inner}
		} else {
			highlights = []int{s.inner}
		}
	}

	status := "Completed"
	if !s.complete {
		status = "Sliding element into sorted prefix"
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

func (s *Insertion) Reset(newArray []Element) {
	s.resetBase(newArray)
	s.outer = 1
	s.inner = 0
	s.hasKey = false
	s.recordMem(dataMemory(len(newArray)))
}

func (s *Insertion) ArrayView() []Element { return s.data }
func (s *Insertion) MemoryUsage() int     { return dataMemory(len(s.data)) }
func (s *Insertion) Name() string         { return "Insertion Sort" }
