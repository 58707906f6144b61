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

// Package raceengine drives a fixed set of sorter.Sorter instances
// through a shared fairness.Policy, one tick at a time, on a single
// goroutine. It owns no timers and does no I/O; the host calls Tick
// at whatever cadence it chooses.
package raceengine

import (
	"fmt"
	"time"

	"sortrace/internal/fairness"
	"sortrace/pkg/sorter"
)

// Config is the engine's construction interface: it accepts the same
// fields a CLI or interactive menu would collect before building a
// race. NewConfig validates every field and returns a typed error
// rather than letting bad input reach the engine.
type Config struct {
	Sorters     []sorter.Sorter
	Names       []string
	Policy      fairness.Policy
	TotalBudget int
}

// ConfigError reports a rejected engine configuration.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("raceengine: invalid configuration: %s", e.Reason)
}

// NewConfig validates cfg and returns it unchanged on success.
func NewConfig(cfg Config) (Config, error) {
	if len(cfg.Sorters) == 0 {
		return Config{}, &ConfigError{Reason: "sorter list must not be empty"}
	}
	if len(cfg.Names) != len(cfg.Sorters) {
		return Config{}, &ConfigError{Reason: "names must have one entry per sorter"}
	}
	if cfg.Policy == nil {
		return Config{}, &ConfigError{Reason: "policy must not be nil"}
	}
	if cfg.TotalBudget < 1 {
		return Config{}, &ConfigError{Reason: "total_budget must be >= 1"}
	}
	return cfg, nil
}

// SorterTick is one Sorter's contribution to a TickResult.
type SorterTick struct {
	Name            string
	Telemetry       sorter.Telemetry
	BudgetGiven     int
	ComparisonsUsed int
	MovesMade       int
	Continued       bool
}

// TickResult is the aggregate outcome of a single Tick call.
type TickResult struct {
	AllComplete bool
	PerSorter   []SorterTick
}

// Observer is notified synchronously after every Tick, before Tick
// returns. Implementations must not block; they exist to let outer
// layers (metrics export, session recording) watch the race without
// the engine importing them.
type Observer interface {
	OnTick(result TickResult)
}

// RaceEngine is the tick loop described by this package's doc
// comment. The zero value is not usable; construct with New.
type RaceEngine struct {
	sorters     []sorter.Sorter
	names       []string
	policy      fairness.Policy
	totalBudget int
	observers   []Observer
}

// New constructs a RaceEngine from a validated Config.
func New(cfg Config) (*RaceEngine, error) {
	cfg, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &RaceEngine{
		sorters:     cfg.Sorters,
		names:       cfg.Names,
		policy:      cfg.Policy,
		totalBudget: cfg.TotalBudget,
	}, nil
}

// Configure adopts new components. Per the contract this implements,
// callers must only invoke it between races or while ticking is
// paused; the engine does not itself track a running/paused flag.
func (e *RaceEngine) Configure(cfg Config) error {
	cfg, err := NewConfig(cfg)
	if err != nil {
		return err
	}
	e.sorters = cfg.Sorters
	e.names = cfg.Names
	e.policy = cfg.Policy
	e.totalBudget = cfg.TotalBudget
	return nil
}

// Subscribe registers an Observer to be notified after every Tick.
func (e *RaceEngine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

// Tick performs one engine step: allocate the tick's total budget
// across active Sorters, step each one with its share, feed timing
// and progress feedback back to the policy, and return the aggregate
// outcome.
func (e *RaceEngine) Tick() TickResult {
	snapshots := make([]fairness.Snapshot, len(e.sorters))
	for i, s := range e.sorters {
		tel := s.Telemetry()
		snapshots[i] = fairness.Snapshot{
			Comparisons:  tel.TotalComparisons,
			Moves:        tel.TotalMoves,
			ProgressHint: tel.ProgressHint,
			Complete:     s.IsComplete(),
		}
	}

	allocation := e.policy.Allocate(snapshots, e.totalBudget)
	if len(allocation) != len(e.sorters) {
		panic("raceengine: policy returned a mismatched allocation length")
	}
	sum, active := 0, 0
	for i, b := range allocation {
		sum += b
		if !snapshots[i].Complete {
			active++
		}
	}
	// With no active Sorter the policy returns all zeros and the tick
	// steps nothing.
	if active > 0 && sum != e.totalBudget {
		panic("raceengine: policy allocation does not sum to total_budget")
	}

	result := TickResult{
		AllComplete: true,
		PerSorter:   make([]SorterTick, len(e.sorters)),
	}

	for i, s := range e.sorters {
		budget := allocation[i]
		progressBefore := snapshots[i].ProgressHint

		var stepRes sorter.StepResult
		var elapsed time.Duration
		if budget > 0 && !s.IsComplete() {
			start := time.Now()
			stepRes = s.Step(budget)
			elapsed = time.Since(start)
		} else {
			// Not stepped this tick: report whether it is still running.
			stepRes.Continued = !s.IsComplete()
		}

		tel := s.Telemetry()
		e.policy.Observe(fairness.Feedback{
			SorterIndex:     i,
			Elapsed:         elapsed.Seconds(),
			ComparisonsUsed: stepRes.ComparisonsUsed,
			BudgetGiven:     budget,
			ProgressBefore:  progressBefore,
			ProgressAfter:   tel.ProgressHint,
		})

		result.PerSorter[i] = SorterTick{
			Name:            e.names[i],
			Telemetry:       tel,
			BudgetGiven:     budget,
			ComparisonsUsed: stepRes.ComparisonsUsed,
			MovesMade:       stepRes.MovesMade,
			Continued:       stepRes.Continued,
		}
		if !s.IsComplete() {
			result.AllComplete = false
		}
	}

	for _, o := range e.observers {
		o.OnTick(result)
	}
	return result
}

// ResetWith broadcasts a reset to every Sorter with its own copy of
// newArray and clears the current Policy's accumulated state.
func (e *RaceEngine) ResetWith(newArray []sorter.Element) {
	for _, s := range e.sorters {
		cp := make([]sorter.Element, len(newArray))
		copy(cp, newArray)
		s.Reset(cp)
	}
	e.policy.Reset()
}

// RaceComplete reports whether every Sorter is complete.
func (e *RaceEngine) RaceComplete() bool {
	for _, s := range e.sorters {
		if !s.IsComplete() {
			return false
		}
	}
	return true
}

// Sorters returns the engine's owned Sorters in configured order.
// Callers must not mutate the returned slice's contents by replacing
// entries; stepping them directly bypasses the engine's bookkeeping.
func (e *RaceEngine) Sorters() []sorter.Sorter {
	return e.sorters
}

// Names returns the stable names paired with Sorters(), same order.
func (e *RaceEngine) Names() []string {
	return e.names
}
