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
	"maps"
	"slices"

	"github.com/EngFlow/razen/internal/collections"
)

// ClassifierSets holds the static membership tables used to classify identifiers and symbol runs. Built once by
// NewClassifierSets and never mutated afterwards.
type ClassifierSets struct {
	Keywords         collections.Set[string]
	TypeKeywords     collections.Set[string]
	ReadTypeKeywords collections.Set[string]
	ReceiverKeywords collections.Set[string]
	ColorKeywords    collections.Set[string]
	Operators        collections.Set[string]

	// Keys of StandardLibrary.
	Namespaces collections.Set[string]
	// Values of StandardLibrary, flattened.
	Functions collections.Set[string]
}

var (
	keywords = []string{
		"var", "const", "if", "else", "while", "for", "is", "when", "not",
		"append", "remove", "key", "value", "store", "box", "ref", "show",
		"read", "fun", "async", "await", "class", "return", "continue", "break", "import",
		"export", "use", "from", "to", "lib", "true", "false", "null", "struct", "match", "in",
	}
	typeKeywords     = []string{"num", "str", "bool", "map", "list", "arr", "obj", "tuple", "int", "float"}
	readTypeKeywords = []string{"num", "str", "int", "float"}
	receiverKeywords = []string{"self"}
	colorKeywords    = []string{
		"cyan", "red", "yellow", "green", "blue", "magenta", "white",
		"light_cyan", "light_red", "light_yellow", "light_green", "light_blue", "light_magenta", "light_white",
	}
	operators = []string{
		"=", ">", "<", "!", "~", "?", ":", "==", "<=", ">=", "!=",
		"&&", "||", "++", "--", "+", "-", "*", "/", "&", "|", "^", "%",
		"->", "=>",
	}
)

// NewClassifierSets builds the classifier tables from the literal keyword lists and StandardLibrary.
func NewClassifierSets() *ClassifierSets {
	namespaces := slices.Sorted(maps.Keys(StandardLibrary))
	return &ClassifierSets{
		Keywords:         collections.ToSet(keywords),
		TypeKeywords:     collections.ToSet(typeKeywords),
		ReadTypeKeywords: collections.ToSet(readTypeKeywords),
		ReceiverKeywords: collections.ToSet(receiverKeywords),
		ColorKeywords:    collections.ToSet(colorKeywords),
		Operators:        collections.ToSet(operators),
		Namespaces:       collections.ToSet(namespaces),
		Functions: collections.ToSet(collections.FlatMapSlice(namespaces, func(ns string) []string {
			return StandardLibrary[ns]
		})),
	}
}

// IsLibraryReference reports whether a dotted module path starts with a standard library namespace.
func (cs *ClassifierSets) IsLibraryReference(path string) bool {
	return cs.Namespaces.Contains(firstSegment(path))
}
