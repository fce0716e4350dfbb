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

// Package razen is a Gazelle extension generating Bazel rules for Razen sources.
package razen

import (
	"github.com/EngFlow/razen/internal/collections"
	"github.com/bazelbuild/bazel-gazelle/config"
	"github.com/bazelbuild/bazel-gazelle/language"
	"github.com/bazelbuild/bazel-gazelle/rule"
)

const languageName = "razen"

type razenLanguage struct {
	// Ambiguous modules already reported, warn only once per module
	reportedAmbiguous collections.Set[string]
}

// Import extracted from a use or import statement.
type razenImport struct {
	// Module path as written in the source, without quotes
	rawPath string
	// Repository root relative form of quoted paths, rawPath for dotted modules
	normalizedPath string
	// True when the module was written as a quoted path
	isPath bool
}

type razenImports struct {
	imports []razenImport
}

func NewLanguage() language.Language {
	return &razenLanguage{reportedAmbiguous: make(collections.Set[string])}
}

// language.Language methods
func (*razenLanguage) Kinds() map[string]rule.KindInfo {
	return map[string]rule.KindInfo{
		"razen_library": {
			NonEmptyAttrs:  map[string]bool{"srcs": true},
			MergeableAttrs: map[string]bool{"srcs": true, "deps": true},
			ResolveAttrs:   map[string]bool{"deps": true},
		},
		"razen_binary": {
			NonEmptyAttrs:  map[string]bool{"srcs": true},
			MergeableAttrs: map[string]bool{"srcs": true, "deps": true},
			ResolveAttrs:   map[string]bool{"deps": true},
		},
		"razen_test": {
			NonEmptyAttrs:  map[string]bool{"srcs": true},
			MergeableAttrs: map[string]bool{"srcs": true, "deps": true},
			ResolveAttrs:   map[string]bool{"deps": true},
		},
	}
}

var razenRuleDefs = []string{"razen_library", "razen_binary", "razen_test"}

func (*razenLanguage) Loads() []rule.LoadInfo {
	return []rule.LoadInfo{
		{
			Name:    "@rules_razen//razen:defs.bzl",
			Symbols: razenRuleDefs,
		},
	}
}

func (*razenLanguage) Fix(c *config.Config, f *rule.File) {}
