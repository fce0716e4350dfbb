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

package indexer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/EngFlow/razen/internal/collections"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/bazelbuild/buildtools/build"
)

// ParseBuildFile reads a BUILD file of the package pkg and returns its razen_library targets.
func ParseBuildFile(buildFilePath, pkg string) ([]Target, error) {
	content, err := os.ReadFile(buildFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", buildFilePath, err)
	}
	file, err := build.ParseBuild(filepath.Base(buildFilePath), content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", buildFilePath, err)
	}
	return ExtractLibraries(pkg, file), nil
}

// ExtractLibraries collects the razen_library calls of a BUILD file with a literal name. Only literal string lists
// are taken from srcs; globs and other computed values are skipped.
func ExtractLibraries(pkg string, file *build.File) []Target {
	result := []Target{}
	for _, stmt := range file.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}
		receiver, ok := call.X.(*build.Ident)
		if !ok || receiver.Name != "razen_library" {
			continue
		}
		var name string
		srcs := make(collections.Set[string])
		for _, arg := range call.List {
			assign, ok := arg.(*build.AssignExpr)
			if !ok {
				continue
			}
			param, ok := assign.LHS.(*build.Ident)
			if !ok {
				continue
			}
			switch param.Name {
			case "name":
				if rhs, ok := assign.RHS.(*build.StringExpr); ok {
					name = rhs.Value
				}
			case "srcs":
				if rhs, ok := assign.RHS.(*build.ListExpr); ok {
					for _, elem := range rhs.List {
						if src, ok := elem.(*build.StringExpr); ok {
							srcs.Add(src.Value)
						}
					}
				}
			}
		}
		if name == "" {
			continue
		}
		result = append(result, Target{Name: label.New("", pkg, name), Srcs: srcs})
	}
	return result
}
