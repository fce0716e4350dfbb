// Copyright 2026 EngFlow Inc. All rights reserved.
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

package collections

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Set of comparable values. The zero value is a valid empty set for reading; use make or SetOf before adding.
type Set[T comparable] map[T]struct{}

func SetOf[T comparable](elems ...T) Set[T] {
	return ToSet(elems)
}

// ToSet collects the slice, dropping duplicates.
func ToSet[T comparable](slice []T) Set[T] {
	return make(Set[T], len(slice)).AddSlice(slice)
}

// Add inserts elem and returns the set for chaining.
func (s Set[T]) Add(elem T) Set[T] {
	s[elem] = struct{}{}
	return s
}

func (s Set[T]) AddSlice(elems []T) Set[T] {
	for _, elem := range elems {
		s.Add(elem)
	}
	return s
}

func (s Set[T]) Contains(elem T) bool {
	_, exists := s[elem]
	return exists
}

// Join adds every element of other to s (union in place).
func (s Set[T]) Join(other Set[T]) Set[T] {
	for elem := range other {
		s.Add(elem)
	}
	return s
}

// All iterates the elements in no particular order.
func (s Set[T]) All() iter.Seq[T] {
	return maps.Keys(s)
}

// Sorted returns the elements of a set of ordered values in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	return slices.Sorted(s.All())
}
