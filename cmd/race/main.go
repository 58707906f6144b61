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

// Command race runs a demo algorithm race end to end on the terminal:
// it generates one seeded input array, builds the selected Sorters
// and fairness policy, and ticks the race engine on a fixed cadence
// until every Sorter completes or it is interrupted.
//
// This binary is the only place in the module that touches flags,
// signals, or the network. Everything it wires — sorter,
// fairness, raceengine, generator, session — stays ignorant of this
// file's existence.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sortrace/internal/fairness"
	"sortrace/internal/generator"
	"sortrace/internal/raceengine"
	"sortrace/internal/racemetrics"
	"sortrace/internal/session"
	"sortrace/pkg/sorter"
)

func main() {
	size := flag.Int("size", 200, "number of elements in the race array")
	seed := flag.Uint64("seed", 1, "seed for the input generator; same seed + distribution reproduces the same array")
	distribution := flag.String("distribution", "shuffled", "input distribution: shuffled, sorted, reversed, nearly-sorted, few-unique, with-duplicates")
	algorithms := flag.String("algorithms", "bubble,insertion,selection,shell,heap,merge,quick", "comma-separated list of algorithms to race")
	policyChoice := flag.String("policy", "equal", "fairness policy: equal, weighted, walltime, adaptive")
	totalBudget := flag.Int("budget", 64, "total comparison budget distributed across active Sorters each tick")
	tickInterval := flag.Duration("tick_interval", 20*time.Millisecond, "wall-clock delay between engine ticks")
	maxHistory := flag.Int("history", 20, "number of completed races the session recorder retains")
	metricsAddr := flag.String("metrics_addr", "", "if non-empty, expose Prometheus /metrics on this address (e.g., :9090)")
	weightedAlpha := flag.Float64("weighted_alpha", 1.0, "Weighted policy: weight of cumulative comparisons in the work score (must be > 0)")
	weightedBeta := flag.Float64("weighted_beta", 1.0, "Weighted policy: weight of cumulative moves in the work score (must be > 0)")
	adaptiveLearningRate := flag.Float64("adaptive_learning_rate", 0.2, "Adaptive policy: EMA learning rate for progress-rate tracking")
	equalK := flag.Int("equal_k", 16, "EqualComparisons policy: suggested total budget (recorded by the policy, not enforced; -budget sets the tick total)")
	flag.Parse()

	logger := log.New(os.Stderr, "race: ", log.LstdFlags)

	names, sorters, err := buildSorters(*algorithms)
	if err != nil {
		logger.Fatalf("building sorters: %v", err)
	}

	policy, err := fairness.Build(*policyChoice, fairness.Params{
		KDefault:     *equalK,
		Alpha:        *weightedAlpha,
		Beta:         *weightedBeta,
		LearningRate: *adaptiveLearningRate,
	})
	if err != nil {
		logger.Fatalf("building fairness policy: %v", err)
	}

	engine, err := raceengine.New(raceengine.Config{
		Sorters:     sorters,
		Names:       names,
		Policy:      policy,
		TotalBudget: *totalBudget,
	})
	if err != nil {
		logger.Fatalf("constructing race engine: %v", err)
	}

	gen := generator.New(*seed)
	dist := generator.Distribution(*distribution)
	array := gen.Generate(*size, dist)
	engine.ResetWith(array)

	sess := session.New(*maxHistory)
	sess.StartNewRace(*size, string(dist), *policyChoice, names)
	engine.Subscribe(sess)

	exporter := racemetrics.NewExporter()
	engine.Subscribe(exporter)

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(exporter.Registry(), promhttp.HandlerOpts{}))
		server := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			logger.Printf("metrics listening on %s", *metricsAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatalf("metrics http: %v", err)
			}
		}()
		defer server.Close()
	}

	logger.Printf("racing %d sorters over %d elements (%s, seed=%d, policy=%s)", len(names), *size, dist, *seed, *policyChoice)
	runRace(engine, sess, exporter, *tickInterval, logger)
}

// buildSorters resolves a comma-separated algorithm list into fresh
// Sorter instances paired with display names, in the order given.
// Every Sorter starts over a placeholder array; the caller is
// expected to ResetWith the real array before ticking.
func buildSorters(list string) ([]string, []sorter.Sorter, error) {
	var names []string
	var sorters []sorter.Sorter
	for _, raw := range strings.Split(list, ",") {
		name := strings.TrimSpace(strings.ToLower(raw))
		if name == "" {
			continue
		}
		switch name {
		case "bubble":
			names = append(names, "Bubble Sort")
			sorters = append(sorters, sorter.NewBubble(nil))
		case "insertion":
			names = append(names, "Insertion Sort")
			sorters = append(sorters, sorter.NewInsertion(nil))
		case "selection":
			names = append(names, "Selection Sort")
			sorters = append(sorters, sorter.NewSelection(nil))
		case "shell":
			names = append(names, "Shell Sort")
			sorters = append(sorters, sorter.NewShell(nil))
		case "heap":
			names = append(names, "Heap Sort")
			sorters = append(sorters, sorter.NewHeap(nil))
		case "merge":
			names = append(names, "Merge Sort")
			sorters = append(sorters, sorter.NewMerge(nil))
		case "quick":
			names = append(names, "Quick Sort")
			sorters = append(sorters, sorter.NewQuick(nil))
		default:
			return nil, nil, fmt.Errorf("unknown algorithm: %s", name)
		}
	}
	if len(sorters) == 0 {
		return nil, nil, fmt.Errorf("no algorithms selected")
	}
	return names, sorters, nil
}

// runRace drives engine.Tick on a fixed cadence until every Sorter
// completes or the process receives an interrupt, mirroring the
// ticker/stopChan shape the teacher's generator loop uses.
func runRace(engine *raceengine.RaceEngine, sess *session.State, exporter *racemetrics.Exporter, interval time.Duration, logger *log.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			logger.Printf("interrupted, stopping race")
			return
		case <-ticker.C:
			start := time.Now()
			result := engine.Tick()
			exporter.ObserveTickDuration(time.Since(start).Seconds())
			if result.AllComplete {
				sess.CompleteCurrentRace()
				logger.Printf("race complete: winner %s", sess.History()[len(sess.History())-1].Winner)
				return
			}
		}
	}
}
