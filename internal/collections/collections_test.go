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
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSlice(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, MapSlice([]int{1, 2, 3}, func(x int) string { return fmt.Sprint(x) }))
	assert.Empty(t, MapSlice([]int(nil), func(x int) string { return fmt.Sprint(x) }))
}

func TestFilterSlice(t *testing.T) {
	isUpper := func(s string) bool { return strings.ToUpper(s) == s }
	assert.Equal(t, []string{"A", "C"}, FilterSlice([]string{"A", "b", "C"}, isUpper))
}

func TestFlatMapSlice(t *testing.T) {
	table := map[string][]string{"math": {"add", "sqrt"}, "str": {"upper"}, "empty": nil}
	result := FlatMapSlice([]string{"math", "empty", "str"}, func(ns string) []string { return table[ns] })
	assert.Equal(t, []string{"add", "sqrt", "upper"}, result)
}

func TestSet(t *testing.T) {
	s := SetOf("fun", "use", "fun")
	assert.Len(t, s, 2)
	assert.True(t, s.Contains("fun"))
	assert.False(t, s.Contains("show"))

	s.Join(SetOf("show")).Add("read")
	assert.Equal(t, []string{"fun", "read", "show", "use"}, Sorted(s))

	var empty Set[string]
	assert.False(t, empty.Contains("anything"))
}

func ExampleFlatMapSlice() {
	result := FlatMapSlice(
		[]int{1, 2},
		func(x int) []int { return []int{x, x} },
	)
	fmt.Println(result)
	// Output: [1 1 2 2]
}

func ExampleFilterSeq() {
	seq := FilterSeq(
		slices.Values([]int{1, 2, 3, 4}),
		func(x int) bool { return x%2 == 0 },
	)
	fmt.Println(slices.Collect(seq))
	// Output: [2 4]
}
