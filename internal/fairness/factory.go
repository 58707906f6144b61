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

package fairness

import "fmt"

// Params carries the policy_params of the construction interface: the
// union of every recognized policy's configuration knobs. Only the
// fields relevant to the selected policy are consulted.
type Params struct {
	KDefault     int
	Alpha        float64
	Beta         float64
	LearningRate float64
}

// Build constructs a Policy by name, validating params before the
// policy (and by extension the race engine) ever sees it. Unknown
// names are rejected the same way an unknown persistence adapter
// would be: a descriptive error, never a silent default.
func Build(policyChoice string, params Params) (Policy, error) {
	switch policyChoice {
	case "", "equal", "EqualComparisons":
		k := params.KDefault
		if k <= 0 {
			k = 16
		}
		return NewEqualComparisons(k)
	case "weighted", "Weighted":
		return NewWeighted(params.Alpha, params.Beta)
	case "walltime", "WallTime":
		return NewWallTime(), nil
	case "adaptive", "Adaptive":
		return NewAdaptive(params.LearningRate)
	default:
		return nil, fmt.Errorf("fairness: unknown policy_choice: %s", policyChoice)
	}
}
