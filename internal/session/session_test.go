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

package session

import (
	"testing"

	"sortrace/internal/raceengine"
	"sortrace/pkg/sorter"
)

func TestSessionCreation(t *testing.T) {
	s := New(10)
	if s.HasCurrentRace() {
		t.Error("HasCurrentRace() = true on a fresh State")
	}
	if len(s.History()) != 0 {
		t.Error("History() not empty on a fresh State")
	}
}

func TestRaceLifecycle(t *testing.T) {
	s := New(10)
	s.StartNewRace(3, "shuffled", "EqualComparisons", []string{"Bubble Sort", "Quick Sort"})
	if !s.HasCurrentRace() {
		t.Fatal("HasCurrentRace() = false after StartNewRace")
	}

	s.OnTick(raceengine.TickResult{
		PerSorter: []raceengine.SorterTick{
			{Name: "Bubble Sort", Continued: true, Telemetry: sorter.Telemetry{MemoryCurrent: 12}},
			{Name: "Quick Sort", Continued: false, Telemetry: sorter.Telemetry{MemoryCurrent: 20}},
		},
	})

	s.CompleteCurrentRace()
	if s.HasCurrentRace() {
		t.Error("HasCurrentRace() = true after CompleteCurrentRace")
	}
	hist := s.History()
	if len(hist) != 1 {
		t.Fatalf("len(History()) = %d, want 1", len(hist))
	}
	result := hist[0]
	if result.Winner != "Quick Sort" {
		t.Errorf("Winner = %q, want %q", result.Winner, "Quick Sort")
	}
	if !result.Completed[1] || result.Completed[0] {
		t.Errorf("Completed = %v, want [false true]", result.Completed)
	}
	if !result.IsComplete() {
		t.Error("IsComplete() = false after CompleteCurrentRace")
	}
}

func TestHistoryCapped(t *testing.T) {
	s := New(2)
	for i := 0; i < 5; i++ {
		s.StartNewRace(1, "sorted", "EqualComparisons", []string{"Bubble Sort"})
		s.CompleteCurrentRace()
	}
	if len(s.History()) != 2 {
		t.Fatalf("len(History()) = %d, want 2 (capped)", len(s.History()))
	}
}

func TestClearHistory(t *testing.T) {
	s := New(10)
	s.StartNewRace(1, "sorted", "EqualComparisons", []string{"Bubble Sort"})
	s.CompleteCurrentRace()
	s.ClearHistory()
	if len(s.History()) != 0 {
		t.Error("History() not empty after ClearHistory")
	}
	if s.Stats().TotalRaces != 0 {
		t.Error("TotalRaces != 0 after ClearHistory")
	}
}

func TestMostCommonWinnerAndStats(t *testing.T) {
	s := New(10)
	for i := 0; i < 3; i++ {
		s.StartNewRace(1, "sorted", "EqualComparisons", []string{"Bubble Sort", "Quick Sort"})
		s.OnTick(raceengine.TickResult{PerSorter: []raceengine.SorterTick{
			{Name: "Bubble Sort", Continued: false},
			{Name: "Quick Sort", Continued: false},
		}})
		s.CompleteCurrentRace()
	}
	if got := s.MostCommonWinner(); got != "Bubble Sort" {
		t.Errorf("MostCommonWinner() = %q, want %q", got, "Bubble Sort")
	}
	stats := s.Stats()
	if stats.TotalRaces != 3 {
		t.Errorf("TotalRaces = %d, want 3", stats.TotalRaces)
	}
	if stats.WinCounts["Bubble Sort"] != 3 {
		t.Errorf("WinCounts[Bubble Sort] = %d, want 3", stats.WinCounts["Bubble Sort"])
	}
}

func TestAverageRaceDurationEmpty(t *testing.T) {
	s := New(10)
	if s.AverageRaceDuration() != 0 {
		t.Error("AverageRaceDuration() != 0 for an empty history")
	}
}
