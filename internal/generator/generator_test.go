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

package generator

import (
	"testing"

	"sortrace/pkg/sorter"
)

func TestDeterministicGeneration(t *testing.T) {
	g1 := New(42)
	g2 := New(42)

	a1 := g1.Generate(10, Shuffled)
	a2 := g2.Generate(10, Shuffled)

	if len(a1) != len(a2) {
		t.Fatalf("length mismatch: %d vs %d", len(a1), len(a2))
	}
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("Generate() differs at index %d: %d vs %d", i, a1[i], a2[i])
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a1 := New(42).Generate(10, Shuffled)
	a2 := New(43).Generate(10, Shuffled)

	same := true
	for i := range a1 {
		if a1[i] != a2[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Generate() with different seeds produced identical arrays")
	}
}

func TestSortedDistributionExact(t *testing.T) {
	got := New(42).Generate(10, Sorted)
	want := []sorter.Element{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Generate(Sorted)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestReversedDistributionExact(t *testing.T) {
	got := New(42).Generate(10, Reversed)
	want := []sorter.Element{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Generate(Reversed)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEmptyArray(t *testing.T) {
	got := New(42).Generate(0, Shuffled)
	if len(got) != 0 {
		t.Errorf("Generate(0, ...) length = %d, want 0", len(got))
	}
}

func TestValidateArray(t *testing.T) {
	g := New(42)
	for _, dist := range []Distribution{Sorted, Reversed, Shuffled, NearlySorted, FewUnique, WithDuplicates} {
		t.Run(string(dist), func(t *testing.T) {
			arr := g.Generate(20, dist)
			if !Validate(arr, 20, dist) {
				t.Errorf("Validate() = false for Generate(20, %s)", dist)
			}
		})
	}
}

func TestShuffledIsPermutation(t *testing.T) {
	arr := New(7).Generate(50, Shuffled)
	seen := make(map[sorter.Element]bool, len(arr))
	for _, v := range arr {
		if seen[v] {
			t.Fatalf("value %d appears more than once", v)
		}
		seen[v] = true
	}
	for i := 1; i <= 50; i++ {
		if !seen[sorter.Element(i)] {
			t.Fatalf("value %d missing from shuffled array", i)
		}
	}
}

func TestFewUniqueBoundedDistinctValues(t *testing.T) {
	arr := New(1).Generate(100, FewUnique)
	distinct := make(map[sorter.Element]bool)
	for _, v := range arr {
		distinct[v] = true
	}
	if len(distinct) > 10 {
		t.Errorf("FewUnique produced %d distinct values for size 100, want <= 10", len(distinct))
	}
}
