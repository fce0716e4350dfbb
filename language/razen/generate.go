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
	"log"
	"path/filepath"
	"strings"

	"github.com/EngFlow/razen/internal/collections"
	"github.com/bazelbuild/bazel-gazelle/language"
	"github.com/bazelbuild/bazel-gazelle/rule"
)

func (lang *razenLanguage) GenerateRules(args language.GenerateArgs) language.GenerateResult {
	conf := getRazenConfig(args.Config)

	var srcs, mainSrcs, testSrcs []fileInfo
	for _, file := range args.RegularFiles {
		if conf.isExcluded(args.Rel, file) {
			continue
		}
		info, err := getFileInfo(conf.lexer, args.Dir, args.Rel, file)
		if errors.Is(err, errUnmatchedExtension) {
			continue
		}
		if err != nil {
			log.Printf("%v: %v", args.Rel, err)
			continue
		}
		switch info.kind {
		case testSrcKind:
			testSrcs = append(testSrcs, info)
		case binSrcKind:
			mainSrcs = append(mainSrcs, info)
		case libSrcKind:
			srcs = append(srcs, info)
		}
	}

	var result language.GenerateResult
	if len(srcs) > 0 {
		rule := rule.NewRule("razen_library", filepath.Base(args.Dir))
		rule.SetAttr("srcs", fileNames(srcs))
		if args.File == nil || !args.File.HasDefaultVisibility() {
			rule.SetAttr("visibility", []string{"//visibility:public"})
		}
		result.Gen = append(result.Gen, rule)
		result.Imports = append(result.Imports, collectImports(srcs))
	}

	for _, mainSrc := range mainSrcs {
		rule := rule.NewRule("razen_binary", ruleNameOf(mainSrc.name))
		rule.SetAttr("srcs", []string{mainSrc.name})
		result.Gen = append(result.Gen, rule)
		result.Imports = append(result.Imports, collectImports([]fileInfo{mainSrc}))
	}

	for _, testSrc := range testSrcs {
		// The rule is named the same as the test file
		rule := rule.NewRule("razen_test", ruleNameOf(testSrc.name))
		rule.SetAttr("srcs", []string{testSrc.name})
		result.Gen = append(result.Gen, rule)
		result.Imports = append(result.Imports, collectImports([]fileInfo{testSrc}))
	}

	return result
}

func ruleNameOf(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}

func fileNames(infos []fileInfo) []string {
	return collections.MapSlice(infos, func(info fileInfo) string { return info.name })
}

// collectImports merges the imports of files, dropping duplicates but keeping the first-seen order.
func collectImports(infos []fileInfo) razenImports {
	seen := make(collections.Set[razenImport])
	var imports []razenImport
	for _, info := range infos {
		for _, imp := range info.imports {
			if seen.Contains(imp) {
				continue
			}
			seen.Add(imp)
			imports = append(imports, imp)
		}
	}
	return razenImports{imports: imports}
}
