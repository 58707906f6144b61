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

// Package generator produces deterministic seeded input arrays for a
// race, named by the distribution shape they exhibit. It sits outside
// the core the race engine implements: Sorters accept an array from
// wherever the host obtained one, and never import this package.
package generator

import (
	"math/rand"

	"sortrace/pkg/sorter"
)

// Distribution names one of the array shapes this package can
// produce.
type Distribution string

const (
	Shuffled       Distribution = "shuffled"
	NearlySorted   Distribution = "nearly-sorted"
	Reversed       Distribution = "reversed"
	FewUnique      Distribution = "few-unique"
	Sorted         Distribution = "sorted"
	WithDuplicates Distribution = "with-duplicates"
)

// Generator produces arrays deterministically from a fixed seed: the
// same seed and Distribution always yield byte-identical output,
// which is what lets end-to-end scenarios pin down an exact final
// array.
type Generator struct {
	seed uint64
}

// New creates a Generator that derives every array it produces from
// seed.
func New(seed uint64) *Generator {
	return &Generator{seed: seed}
}

// Generate returns a new array of size elements shaped according to
// distribution. size == 0 always returns an empty, non-nil slice.
func (g *Generator) Generate(size int, distribution Distribution) []sorter.Element {
	if size == 0 {
		return []sorter.Element{}
	}
	switch distribution {
	case Shuffled:
		return g.shuffled(size)
	case NearlySorted:
		return g.nearlySorted(size)
	case Reversed:
		return g.reversed(size)
	case FewUnique:
		return g.fewUnique(size)
	case Sorted:
		return g.sorted(size)
	case WithDuplicates:
		return g.withDuplicates(size)
	default:
		panic("generator: unknown distribution " + string(distribution))
	}
}

func (g *Generator) rng() *rand.Rand {
	return rand.New(rand.NewSource(int64(g.seed)))
}

func ascending(size int) []sorter.Element {
	arr := make([]sorter.Element, size)
	for i := range arr {
		arr[i] = sorter.Element(i + 1)
	}
	return arr
}

// fisherYates performs an in-place Fisher-Yates shuffle using r.
func fisherYates(arr []sorter.Element, r *rand.Rand) {
	for i := len(arr) - 1; i >= 1; i-- {
		j := r.Intn(i + 1)
		arr[i], arr[j] = arr[j], arr[i]
	}
}

func (g *Generator) shuffled(size int) []sorter.Element {
	arr := ascending(size)
	fisherYates(arr, g.rng())
	return arr
}

func (g *Generator) sorted(size int) []sorter.Element {
	return ascending(size)
}

func (g *Generator) reversed(size int) []sorter.Element {
	arr := ascending(size)
	for i, j := 0, len(arr)-1; i < j; i, j = i+1, j-1 {
		arr[i], arr[j] = arr[j], arr[i]
	}
	return arr
}

// nearlySorted starts from a sorted array and applies a small number
// of random transpositions, roughly 10% of size (at least one).
func (g *Generator) nearlySorted(size int) []sorter.Element {
	arr := ascending(size)
	r := g.rng()
	swaps := size / 10
	if swaps < 1 {
		swaps = 1
	}
	for k := 0; k < swaps; k++ {
		i := r.Intn(size)
		j := r.Intn(size)
		arr[i], arr[j] = arr[j], arr[i]
	}
	return arr
}

// fewUnique draws every element from a pool of roughly 10% of size
// distinct values (at least 3, never more than size).
func (g *Generator) fewUnique(size int) []sorter.Element {
	uniqueCount := size / 10
	if uniqueCount < 3 {
		uniqueCount = 3
	}
	if uniqueCount > size {
		uniqueCount = size
	}
	values := ascending(uniqueCount)

	r := g.rng()
	arr := make([]sorter.Element, size)
	for i := range arr {
		arr[i] = values[r.Intn(len(values))]
	}
	return arr
}

// withDuplicates fills the first half with sequential values and the
// second half with values resampled from the first half, then
// shuffles the whole array so duplicates are spread throughout.
func (g *Generator) withDuplicates(size int) []sorter.Element {
	r := g.rng()
	half := size / 2
	arr := make([]sorter.Element, size)
	for i := range arr {
		if i < half {
			arr[i] = sorter.Element(i + 1)
		} else if half > 0 {
			arr[i] = sorter.Element(r.Intn(half) + 1)
		} else {
			arr[i] = 1
		}
	}
	fisherYates(arr, r)
	return arr
}

// Validate reports whether array plausibly matches size and
// distribution: an exact ordering check for Sorted and Reversed,
// a range sanity check otherwise.
func Validate(array []sorter.Element, size int, distribution Distribution) bool {
	if len(array) != size {
		return false
	}
	if size == 0 {
		return true
	}
	switch distribution {
	case Sorted:
		for i := 1; i < len(array); i++ {
			if array[i-1] > array[i] {
				return false
			}
		}
		return true
	case Reversed:
		for i := 1; i < len(array); i++ {
			if array[i-1] < array[i] {
				return false
			}
		}
		return true
	default:
		for _, v := range array {
			if v <= 0 || int(v) > size*2 {
				return false
			}
		}
		return true
	}
}
