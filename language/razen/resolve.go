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

package razen

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"path"
	"slices"
	"sort"
	"strings"

	definition "github.com/EngFlow/razen/language/internal/razen"
	"github.com/EngFlow/razen/internal/collections"
	"github.com/bazelbuild/bazel-gazelle/config"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/bazelbuild/bazel-gazelle/repo"
	"github.com/bazelbuild/bazel-gazelle/resolve"
	"github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/bazelbuild/bazel-gazelle/walk"
	bzl "github.com/bazelbuild/buildtools/build"
	"github.com/bmatcuk/doublestar/v4"
)

// resolve.Resolver methods
func (*razenLanguage) Name() string                                        { return languageName }
func (*razenLanguage) Embeds(r *rule.Rule, from label.Label) []label.Label { return nil }

// Imports indexes every source of a razen_library under both the slash separated path used by quoted imports and the
// dotted module path used by use statements, e.g. "app/models/user" and "app.models.user".
func (*razenLanguage) Imports(c *config.Config, r *rule.Rule, f *rule.File) []resolve.ImportSpec {
	if r.Kind() != "razen_library" {
		return nil
	}
	srcs, err := collectStringsAttr(c, r, f.Pkg, "srcs")
	if err != nil {
		log.Printf("%v: failed to collect srcs of %s(name = %q): %v", f.Pkg, r.Kind(), r.Name(), err)
		return nil
	}
	return generateLibraryImportSpecs(f.Pkg, srcs)
}

func generateLibraryImportSpecs(pkg string, srcs []string) []resolve.ImportSpec {
	imports := make([]resolve.ImportSpec, 0, 2*len(srcs))
	for _, src := range srcs {
		if !definition.HasSourceExtension(src) {
			continue
		}
		modulePath := path.Join(pkg, strings.TrimSuffix(src, path.Ext(src)))
		imports = append(imports, resolve.ImportSpec{Lang: languageName, Imp: modulePath})
		if dotted := strings.ReplaceAll(modulePath, "/", "."); dotted != modulePath {
			imports = append(imports, resolve.ImportSpec{Lang: languageName, Imp: dotted})
		}
	}
	return imports
}

func (lang *razenLanguage) Resolve(c *config.Config, ix *resolve.RuleIndex, rc *repo.RemoteCache, r *rule.Rule, imports any, from label.Label) {
	if imports == nil {
		return
	}
	razenImports := imports.(razenImports)

	deps := make(collections.Set[label.Label])
	for _, imp := range razenImports.imports {
		resolvedLabel := lang.resolveImportSpec(c, ix, from, resolve.ImportSpec{Lang: languageName, Imp: imp.normalizedPath})
		if resolvedLabel == label.NoLabel && imp.rawPath != imp.normalizedPath {
			// Quoted paths might also be written relative to the repository root
			resolvedLabel = lang.resolveImportSpec(c, ix, from, resolve.ImportSpec{Lang: languageName, Imp: imp.rawPath})
		}
		if resolvedLabel == label.NoLabel {
			continue // failed to resolve
		}
		deps.Add(resolvedLabel.Rel(from.Repo, from.Pkg))
	}
	if len(deps) > 0 {
		r.SetAttr("deps", slices.SortedStableFunc(maps.Keys(deps), func(l, r label.Label) int {
			return strings.Compare(l.String(), r.String())
		}))
	}
}

func (lang *razenLanguage) resolveImportSpec(c *config.Config, ix *resolve.RuleIndex, from label.Label, importSpec resolve.ImportSpec) label.Label {
	conf := getRazenConfig(c)
	// Resolve the gazelle:resolve overrides if defined
	if resolvedLabel, ok := resolve.FindRuleWithOverride(c, importSpec, languageName); ok {
		return resolvedLabel
	}

	// Resolve using imports registered in Imports
	for _, searchResult := range ix.FindRulesByImportWithConfig(c, importSpec, languageName) {
		if !searchResult.IsSelfImport(from) {
			return searchResult.Label
		}
	}

	for _, dependencyIndex := range conf.dependencyIndexes {
		resolvedLabel, ambiguous := dependencyIndex.Lookup(importSpec.Imp)
		if ambiguous {
			if !lang.reportedAmbiguous.Contains(importSpec.Imp) {
				lang.reportedAmbiguous.Add(importSpec.Imp)
				log.Printf("%v: module %v is provided by multiple targets in the dependency index, add a gazelle:resolve directive to select one", from, importSpec.Imp)
			}
			continue
		}
		if resolvedLabel != label.NoLabel {
			return resolvedLabel
		}
	}

	return label.NoLabel
}

// collectStringsAttr collects the values of the given attribute from the rule. The attribute may be a list of
// strings, a glob expanded relative to pkg, or a concatenation of both.
func collectStringsAttr(c *config.Config, r *rule.Rule, pkg, attrName string) ([]string, error) {
	// Fast path: plain list of strings in the BUILD file.
	if ss := r.AttrStrings(attrName); ss != nil {
		return ss, nil
	}
	return collectStringsExpr(c, pkg, r.Attr(attrName)) // nil if the attribute is not present
}

func collectStringsExpr(c *config.Config, pkg string, expr bzl.Expr) ([]string, error) {
	if globValue, ok := rule.ParseGlobExpr(expr); ok {
		return expandGlob(c, pkg, globValue)
	}
	switch expr := expr.(type) {
	case nil:
		return nil, nil
	case *bzl.ListExpr:
		var values []string
		for _, elem := range expr.List {
			if str, ok := elem.(*bzl.StringExpr); ok {
				values = append(values, str.Value)
			}
		}
		return values, nil
	case *bzl.BinaryExpr:
		if expr.Op != "+" {
			return nil, fmt.Errorf("expression could not be matched: binary expression with unsupported operator %q", expr.Op)
		}
		lhs, err := collectStringsExpr(c, pkg, expr.X)
		if err != nil {
			return nil, err
		}
		rhs, err := collectStringsExpr(c, pkg, expr.Y)
		if err != nil {
			return nil, err
		}
		return slices.Concat(lhs, rhs), nil
	default:
		return nil, fmt.Errorf("expression could not be matched: unexpected expression type %T", expr)
	}
}

// expandGlob returns the sorted paths, relative to pkg, of the files matching the glob. It does not use I/O, the
// directory listing comes from walk.GetDirInfo, so the package must have been walked already. Subdirectories
// containing a BUILD file belong to another package and are skipped.
func expandGlob(c *config.Config, pkg string, glob rule.GlobValue) ([]string, error) {
	validatedPatterns := func(patterns []string) []string {
		return collections.FilterSlice(patterns, doublestar.ValidatePattern)
	}

	includePatterns := validatedPatterns(glob.Patterns)
	if len(includePatterns) == 0 {
		return nil, errors.New("no valid include patterns found")
	}
	excludePatterns := validatedPatterns(glob.Excludes)
	matches := func(patterns []string, name string) bool {
		return slices.ContainsFunc(patterns, func(pattern string) bool { return doublestar.MatchUnvalidated(pattern, name) })
	}

	matched := []string{}
	var traverse func(string)
	traverse = func(relativePath string) {
		di, err := walk.GetDirInfo(path.Join(pkg, relativePath))
		if err != nil {
			return // swallow errors
		}
		if relativePath != "" && slices.ContainsFunc(di.RegularFiles, c.IsValidBuildFileName) {
			return
		}
		for _, file := range di.RegularFiles {
			name := path.Join(relativePath, file)
			if matches(includePatterns, name) && !matches(excludePatterns, name) {
				matched = append(matched, name)
			}
		}
		for _, dir := range di.Subdirs {
			traverse(path.Join(relativePath, dir))
		}
	}
	traverse("")
	sort.Strings(matched)
	return matched, nil
}
