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

package lexer

import (
	"strings"
	"testing"
)

func runBenchmark(b *testing.B, input string) {
	b.Helper()
	lx := Default()
	for b.Loop() {
		for line := range lx.Lines(input) {
			_ = line.Tokens
		}
	}
}

func BenchmarkRepeatedToken(b *testing.B) {
	runBenchmark(b, strings.Repeat(";", 1000))
}

const helloWorldInput = `
use math

# entry point
fun main() {
    name: str = "World"
    show <green> "Hello, {name}! sqrt(2) = {math::sqrt(2)}"
    return 0
}
`

func BenchmarkHelloWorld(b *testing.B) {
	runBenchmark(b, helloWorldInput)
}

func BenchmarkRepeatedHelloWorld(b *testing.B) {
	runBenchmark(b, strings.Repeat(helloWorldInput, 100))
}
