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

// Package razen bundles everything an embedding editor needs to support the Razen language: the registration
// descriptor, the syntax configuration consumed by the editor itself, the tokenizer and the color profiles.
package razen

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/EngFlow/razen/language/internal/razen/lexer"
	"github.com/EngFlow/razen/language/internal/razen/theme"
)

const LanguageID = "razen"

// Extensions lists the file extensions associated with the language, with the leading dot.
var Extensions = []string{".rzn", ".ryx"}

// Pair of opening and closing delimiters.
type Pair struct {
	Open, Close string
}

type Registration struct {
	ID         string
	Extensions []string
	Aliases    []string
}

// SyntaxConfig is consumed by the editor for comment toggling, bracket matching and auto-closing; the tokenizer
// does not use it.
type SyntaxConfig struct {
	LineComment      string
	BlockComment     Pair
	Brackets         []Pair
	AutoClosingPairs []Pair
	SurroundingPairs []Pair
}

// Definition is the immutable language value an editor holds on to.
type Definition struct {
	Registration Registration
	Syntax       SyntaxConfig
	Lexer        *lexer.Lexer
	Themes       map[string]*theme.Profile
}

type options struct {
	revision lexer.Revision
}

type Option func(*options)

// WithRevision selects the generic parameter syntax. Defaults to lexer.RevisionAngle.
func WithRevision(revision lexer.Revision) Option {
	return func(o *options) {
		o.revision = revision
	}
}

func NewDefinition(opts ...Option) *Definition {
	o := options{revision: lexer.RevisionAngle}
	for _, opt := range opts {
		opt(&o)
	}

	brackets := []Pair{{"{", "}"}, {"[", "]"}, {"(", ")"}}
	quoted := append(slices.Clone(brackets), Pair{`"`, `"`}, Pair{"'", "'"})

	themes := make(map[string]*theme.Profile)
	for _, name := range theme.Names() {
		themes[name], _ = theme.Lookup(name)
	}

	lx := lexer.Default()
	if o.revision != lx.Revision() {
		lx = lexer.NewLexer(o.revision)
	}

	return &Definition{
		Registration: Registration{
			ID:         LanguageID,
			Extensions: slices.Clone(Extensions),
			Aliases:    []string{"Razen", "razen"},
		},
		Syntax: SyntaxConfig{
			LineComment:      "#",
			BlockComment:     Pair{"/*", "*/"},
			Brackets:         brackets,
			AutoClosingPairs: quoted,
			SurroundingPairs: slices.Clone(quoted),
		},
		Lexer:  lx,
		Themes: themes,
	}
}

// HasSourceExtension reports whether the file name has one of the language extensions.
func HasSourceExtension(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}
