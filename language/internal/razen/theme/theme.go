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

// Package 'theme' maps token kinds to colors.
//
// It provides:
//   - The Profile type, a named color table plus the canvas background and foreground
//   - The built-in "dark" and "light" profiles, also known as "razen-dark" and "razen-light"
//   - Hierarchical lookup: "number.hex" falls back to "number", then to the foreground
package theme

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/EngFlow/razen/language/internal/razen/lexer"
)

// Color in "#rrggbb" form.
type Color string

// Scope is a dotted token category name, as returned by lexer.TokenKind.String.
type Scope string

// Parent returns the scope with its last segment removed, or "" for a top level scope.
func (s Scope) Parent() Scope {
	if i := strings.LastIndexByte(string(s), '.'); i >= 0 {
		return s[:i]
	}
	return ""
}

type Profile struct {
	name       string
	background Color
	foreground Color
	scopes     map[Scope]Color
}

func (p *Profile) Name() string      { return p.name }
func (p *Profile) Background() Color { return p.background }
func (p *Profile) Foreground() Color { return p.foreground }

// ColorOf returns the color of the most specific scope of kind defined by the profile. Kinds without any matching
// scope use the foreground color.
func (p *Profile) ColorOf(kind lexer.TokenKind) Color {
	return p.ColorOfScope(Scope(kind.String()))
}

func (p *Profile) ColorOfScope(scope Scope) Color {
	for ; scope != ""; scope = scope.Parent() {
		if color, ok := p.scopes[scope]; ok {
			return color
		}
	}
	return p.foreground
}

// Table returns the full theme contract: the color of every token kind plus "background" and "foreground".
func (p *Profile) Table() map[string]Color {
	table := map[string]Color{
		"background": p.background,
		"foreground": p.foreground,
	}
	for _, kind := range lexer.AllTokenKinds {
		table[kind.String()] = p.ColorOf(kind)
	}
	return table
}

// Rules returns the scopes the profile defines explicitly, sorted by name.
func (p *Profile) Rules() []Scope {
	return slices.Sorted(maps.Keys(p.scopes))
}

var ErrUnknownProfile = errors.New("unknown theme profile")

var (
	dark = &Profile{
		name:       "dark",
		background: "#1e1e2e",
		foreground: "#d4d4d4",
		scopes: map[Scope]Color{
			"comment":         "#608b4e",
			"namespace":       "#98c379",
			"function":        "#fff59d",
			"metatag":         "#3cb371",
			"type.identifier": "#3cb371",
			"string":          "#ce9178",
			"keyword":         "#c586c0",
			"operator":        "#d4d4d4",
			"number":          "#b5cea8",
			"delimiter":       "#d4d4d4",
		},
	}

	light = &Profile{
		name:       "light",
		background: "#ffffff",
		foreground: "#000000",
		scopes: map[Scope]Color{
			"comment":         "#6a737d",
			"namespace":       "#2e8b57",
			"function":        "#ffd54f",
			"metatag":         "#2e8b57",
			"type.identifier": "#2e8b57",
			"string":          "#a31515",
			"keyword":         "#0000ff",
			"operator":        "#000000",
			"number":          "#098658",
			"delimiter":       "#000000",
		},
	}

	profiles = map[string]*Profile{
		dark.name:  dark,
		light.name: light,
	}

	// Names used by editors that register the profiles in a global theme namespace.
	profileAlias = map[string]string{
		"razen-dark":  dark.name,
		"razen-light": light.name,
	}
)

func Dark() *Profile  { return dark }
func Light() *Profile { return light }

// Names returns the canonical profile names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(profiles))
}

// Lookup returns the profile with the given name or alias.
func Lookup(name string) (*Profile, error) {
	if canonical, ok := profileAlias[name]; ok {
		name = canonical
	}
	if profile, ok := profiles[name]; ok {
		return profile, nil
	}
	return nil, fmt.Errorf("%w %q, expected one of %v", ErrUnknownProfile, name, Names())
}
