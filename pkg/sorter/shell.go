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

// Shell is a resumable shell sort using Knuth's 3k+1 gap sequence,
// descending to a final pass with gap 1. Continuation state is the
// current gap, the outer and inner cursors of the gapped insertion
// pass, and the held key value.
type Shell struct {
	baseState
	gaps   []int
	gapIdx int
	outer  int
	inner  int
	key    Element
	hasKey bool
}

// NewShell creates a Shell sorter owning a copy of data.
func NewShell(data []Element) *Shell {
	s := &Shell{}
	s.Reset(data)
	return s
}

// knuthGaps returns the 3k+1 gap sequence, descending from the first
// term that is >= n/3 (integer division) down to 1.
func knuthGaps(n int) []int {
	if n <= 1 {
		return nil
	}
	var ascending []int
	gap := 1
	for gap < n/3 {
		ascending = append(ascending, gap)
		gap = gap*3 + 1
	}
	ascending = append(ascending, gap)

	gaps := make([]int, len(ascending))
	for i, g := range ascending {
		gaps[len(ascending)-1-i] = g
	}
	return gaps
}

func (s *Shell) Step(budget int) StepResult {
	if budget < 1 {
		panic("sorter: step budget must be >= 1")
	}
	if s.complete {
		return StepResult{}
	}

	n := len(s.data)
	startComparisons, startMoves := s.comparisons, s.moves

	for budget > 0 {
		if s.gapIdx >= len(s.gaps) {
			s.complete = true
			break
		}
		gap := s.gaps[s.gapIdx]
		if s.outer >= n {
			s.gapIdx++
			if s.gapIdx >= len(s.gaps) {
				s.complete = true
				break
			}
			s.outer = s.gaps[s.gapIdx]
			s.hasKey = false
			continue
		}
		if !s.hasKey {
			s.key = s.data[s.outer]
			s.inner = s.outer
			s.hasKey = true
		}
		if s.inner >= gap {
			budget--
			s.comparisons++
			if s.data[s.inner-gap] > s.key {
				s.data[s.inner] = s.data[s.inner-gap]
				s.moves++
				s.inner -= gap
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

func (s *Shell) IsComplete() bool { return s.complete }

func (s *Shell) Telemetry() Telemetry {
	n := len(s.data)
	var highlights []int
	var gapPtr *int
	if !s.complete && s.gapIdx < len(s.gaps) {
		gap := s.gaps[s.gapIdx]
		gapPtr = &gap
		if s.inner >= gap {
			highlights = []int{s.inner - gap, s.inner}
		} else if s.inner < n {
			highlights = []int{s.inner}
		}
	}

	status := "Completed"
	if !s.complete {
		status = "Gapped insertion pass"
	}

	progress := 1.0
	if !s.complete && n > 0 && len(s.gaps) > 0 {
		within := float64(s.outer) / float64(n)
		progress = clampProgress((float64(s.gapIdx) + within) / float64(len(s.gaps)))
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
		Markers:          Markers{Gap: gapPtr, Cursors: highlights},
		StatusText:       status,
		ProgressHint:     progress,
	}
}

func (s *Shell) Reset(newArray []Element) {
	s.resetBase(newArray)
	s.gaps = knuthGaps(len(newArray))
	s.gapIdx = 0
	if len(s.gaps) > 0 {
		s.outer = s.gaps[0]
	} else {
		s.outer = 0
	}
	s.hasKey = false
	s.recordMem(dataMemory(len(newArray)))
}

func (s *Shell) ArrayView() []Element { return s.data }
func (s *Shell) MemoryUsage() int     { return dataMemory(len(s.data)) }
func (s *Shell) Name() string         { return "Shell Sort" }
