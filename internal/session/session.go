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

// Package session tracks the race currently in progress and keeps a
// capped history of completed races for a demo host to show ("who
// usually wins on this distribution", "how long did races average").
// Nothing here is written to disk or a network peer: history is lost
// when the process exits, which is what keeps this outside the
// "persistent storage" the core's Non-goals exclude.
package session

import (
	"time"

	"sortrace/internal/raceengine"
)

// RaceResult is the outcome of one race, one entry per Sorter aligned
// by index with the names the race was configured with.
type RaceResult struct {
	ArraySize      int
	Distribution   string
	PolicyName     string
	AlgorithmNames []string
	CompletionTime []time.Duration // zero Duration means "did not complete"
	Completed      []bool
	MemoryUsage    []int
	Winner         string
	RaceStart      time.Time
	RaceEnd        time.Time
	TotalDuration  time.Duration
}

func newRaceResult(arraySize int, distribution, policyName string, names []string) *RaceResult {
	return &RaceResult{
		ArraySize:      arraySize,
		Distribution:   distribution,
		PolicyName:     policyName,
		AlgorithmNames: append([]string(nil), names...),
		CompletionTime: make([]time.Duration, len(names)),
		Completed:      make([]bool, len(names)),
		MemoryUsage:    make([]int, len(names)),
		RaceStart:      time.Now(),
	}
}

func (r *RaceResult) setCompletionTime(index int, d time.Duration) {
	if index < 0 || index >= len(r.Completed) || r.Completed[index] {
		return
	}
	r.Completed[index] = true
	r.CompletionTime[index] = d
	if r.Winner == "" {
		r.Winner = r.AlgorithmNames[index]
	}
}

func (r *RaceResult) setMemoryUsage(index, bytes int) {
	if index < 0 || index >= len(r.MemoryUsage) {
		return
	}
	r.MemoryUsage[index] = bytes
}

func (r *RaceResult) complete() {
	r.RaceEnd = time.Now()
	r.TotalDuration = r.RaceEnd.Sub(r.RaceStart)
}

// IsComplete reports whether this race has been folded into history.
func (r *RaceResult) IsComplete() bool { return !r.RaceEnd.IsZero() }

// State tracks the in-progress race (if any) and a capped history of
// completed ones. State implements raceengine.Observer: subscribe it
// to a RaceEngine to have it update automatically on every tick.
type State struct {
	maxHistory int
	history    []*RaceResult
	current    *RaceResult
	started    time.Time
	totalRaces int
}

// New creates a State retaining at most maxHistory completed races.
// maxHistory <= 0 is treated as 1.
func New(maxHistory int) *State {
	if maxHistory <= 0 {
		maxHistory = 1
	}
	return &State{maxHistory: maxHistory, started: time.Now()}
}

// StartNewRace begins tracking a new race. Any previous race that was
// never completed is discarded rather than added to history.
func (s *State) StartNewRace(arraySize int, distribution, policyName string, names []string) {
	s.current = newRaceResult(arraySize, distribution, policyName, names)
}

// OnTick implements raceengine.Observer. It updates the in-progress
// race's memory readings and records each Sorter's first completion,
// mirroring SessionState::update_race_progress.
func (s *State) OnTick(result raceengine.TickResult) {
	if s.current == nil {
		return
	}
	for i, st := range result.PerSorter {
		s.current.setMemoryUsage(i, st.Telemetry.MemoryCurrent)
		if !st.Continued {
			s.current.setCompletionTime(i, time.Since(s.current.RaceStart))
		}
	}
}

// CompleteCurrentRace folds the in-progress race into history. A call
// with no race in progress is a no-op.
func (s *State) CompleteCurrentRace() {
	if s.current == nil {
		return
	}
	s.current.complete()
	s.history = append(s.history, s.current)
	if len(s.history) > s.maxHistory {
		s.history = s.history[len(s.history)-s.maxHistory:]
	}
	s.totalRaces++
	s.current = nil
}

// HasCurrentRace reports whether a race is in progress.
func (s *State) HasCurrentRace() bool { return s.current != nil }

// CurrentRace returns the in-progress race, or nil if none.
func (s *State) CurrentRace() *RaceResult { return s.current }

// History returns completed races, oldest first, capped at maxHistory.
func (s *State) History() []*RaceResult { return s.history }

// ClearHistory discards all recorded races and resets the total count.
func (s *State) ClearHistory() {
	s.history = nil
	s.totalRaces = 0
	s.current = nil
}

// SessionDuration is the wall-clock time since New was called.
func (s *State) SessionDuration() time.Duration { return time.Since(s.started) }

// AverageRaceDuration returns the mean TotalDuration across recorded
// history, or zero if history is empty.
func (s *State) AverageRaceDuration() time.Duration {
	if len(s.history) == 0 {
		return 0
	}
	var total time.Duration
	for _, r := range s.history {
		total += r.TotalDuration
	}
	return total / time.Duration(len(s.history))
}

// MostCommonWinner returns the algorithm name that won the most
// races in history, or "" if history is empty or no race had a
// winner.
func (s *State) MostCommonWinner() string {
	counts := make(map[string]int)
	for _, r := range s.history {
		if r.Winner != "" {
			counts[r.Winner]++
		}
	}
	best := ""
	bestCount := 0
	for _, r := range s.history {
		if r.Winner == "" {
			continue
		}
		if c := counts[r.Winner]; c > bestCount {
			bestCount = c
			best = r.Winner
		}
	}
	return best
}

// Statistics is a summary snapshot of State, grounded on
// SessionStatistics::from_session.
type Statistics struct {
	TotalRaces          int
	SessionDuration     time.Duration
	AverageRaceDuration time.Duration
	MostCommonWinner    string
	WinCounts           map[string]int
	AverageArraySize    float64
}

// Stats computes a Statistics snapshot from the current history.
func (s *State) Stats() Statistics {
	winCounts := make(map[string]int)
	var totalSize int64
	for _, r := range s.history {
		if r.Winner != "" {
			winCounts[r.Winner]++
		}
		totalSize += int64(r.ArraySize)
	}
	avgSize := 0.0
	if len(s.history) > 0 {
		avgSize = float64(totalSize) / float64(len(s.history))
	}
	return Statistics{
		TotalRaces:          s.totalRaces,
		SessionDuration:     s.SessionDuration(),
		AverageRaceDuration: s.AverageRaceDuration(),
		MostCommonWinner:    s.MostCommonWinner(),
		WinCounts:           winCounts,
		AverageArraySize:    avgSize,
	}
}
