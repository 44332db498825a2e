// Copyright (c) 2014, Kevin Walsh.  All rights reserved.
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

package term

// Universe is a finite Herbrand universe H+: for each sort, the set of
// standard names available for grounding. It is always finite (spec.md 1:
// "No open-universe reasoning; H+ is always finitised per query").
type Universe map[uint64][]Term

// NewUniverse returns an empty universe.
func NewUniverse() Universe { return make(Universe) }

// Add inserts n into the universe, keyed by its sort, skipping duplicates.
func (u Universe) Add(n Term) {
	key := n.sort.id
	for _, existing := range u[key] {
		if existing.Equal(n) {
			return
		}
	}
	u[key] = append(u[key], n)
}

// AddAll inserts every name in ns.
func (u Universe) AddAll(ns []Term) {
	for _, n := range ns {
		u.Add(n)
	}
}

// Names returns the names of the given sort known to the universe.
func (u Universe) Names(sort Sort) []Term {
	return u[sort.id]
}

// Merge adds every name of other into u.
func (u Universe) Merge(other Universe) {
	for _, ns := range other {
		u.AddAll(ns)
	}
}

// Size returns the total number of names across all sorts.
func (u Universe) Size() int {
	n := 0
	for _, ns := range u {
		n += len(ns)
	}
	return n
}
