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

// Package indexer maps Razen Bazel targets (razen_library) to the module paths their sources can be used under. The
// resulting index is consumed by the razen_dependency_index directive to resolve use statements of external code.
//
// Key types:
//   - Module: an external Bazel repository and its Razen targets.
//   - Target: a single razen_library with its sources.
package indexer

import (
	"path"
	"slices"
	"strings"

	"github.com/EngFlow/razen/internal/collections"
	"github.com/EngFlow/razen/internal/index"
	"github.com/bazelbuild/bazel-gazelle/label"
)

type (
	// Module groups the targets of one repository
	Module struct {
		// Name of external repository, or empty if targets are defined in the same Bazel repository
		Repository string
		Targets    []Target
	}
	// Target is an indexable razen_library
	Target struct {
		Name label.Label
		// Source files relative to the package of the target
		Srcs collections.Set[string]
	}
)

// CreateModuleIndex maps every module path reachable through the targets' sources to the targets providing it.
func CreateModuleIndex(modules []Module) index.DependencyIndex {
	modulesMapping := make(index.DependencyIndex)
	for _, module := range modules {
		for _, target := range module.Targets {
			// The label needs the module repository to be usable from other repositories
			targetLabel := label.New(module.Repository, target.Name.Pkg, target.Name.Name)
			for _, src := range collections.Sorted(target.Srcs) {
				modulePaths := IndexableModulePaths(target, src)
				// The dotted form has the same segments as the path form
				if len(modulePaths) == 0 || shouldExcludeModule(modulePaths[0]) {
					continue
				}
				for _, modulePath := range modulePaths {
					modulesMapping[modulePath] = append(modulesMapping[modulePath], targetLabel)
				}
			}
		}
	}
	return modulesMapping
}

// Extensions of Razen sources, matching the ones handled by the Gazelle extension.
var sourceExtensions = []string{".rzn", ".ryx"}

func hasSourceExtension(name string) bool {
	return slices.Contains(sourceExtensions, strings.ToLower(path.Ext(name)))
}

func shouldExcludeModule(modulePath string) bool {
	// Exclude blank paths.
	if strings.TrimSpace(modulePath) == "" {
		return true
	}

	// Exclude possibly hidden files or directories
	for segment := range strings.SplitSeq(modulePath, "/") {
		if strings.HasPrefix(segment, ".") || strings.HasPrefix(segment, "_") {
			return true
		}
		switch strings.ToLower(segment) {
		case "test", "tests", "internal", "testdata":
			return true
		}
	}
	return false
}

// IndexableModulePaths returns the forms under which src of the target can be used: the package relative path
// without extension, as written in quoted imports, and its dotted form, as written in use statements. Sources that
// are not Razen files are not importable.
func IndexableModulePaths(target Target, src string) []string {
	if !hasSourceExtension(src) {
		return nil
	}
	modulePath := path.Join(target.Name.Pkg, strings.TrimSuffix(src, path.Ext(src)))
	if modulePath == "" || strings.HasPrefix(modulePath, "../") {
		return nil
	}
	dotted := strings.ReplaceAll(modulePath, "/", ".")
	if dotted == modulePath {
		return []string{modulePath}
	}
	return []string{modulePath, dotted}
}
