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
	"flag"
	"testing"

	"github.com/EngFlow/razen/internal/index"
	"github.com/bazelbuild/bazel-gazelle/config"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/bazelbuild/bazel-gazelle/resolve"
	"github.com/bazelbuild/bazel-gazelle/rule"
	bzl "github.com/bazelbuild/buildtools/build"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImports(t *testing.T) {
	lang := &razenLanguage{}

	testCases := []struct {
		name            string
		ruleKind        string
		ruleAttrs       map[string]interface{}
		pkg             string
		expectedImports []resolve.ImportSpec
	}{
		{
			name:     "razen_library",
			ruleKind: "razen_library",
			ruleAttrs: map[string]interface{}{
				"srcs": []string{"user.rzn", "nested/account.ryx", "README.md"},
			},
			pkg: "app/models",
			expectedImports: []resolve.ImportSpec{
				{Lang: languageName, Imp: "app/models/user"},
				{Lang: languageName, Imp: "app.models.user"},
				{Lang: languageName, Imp: "app/models/nested/account"},
				{Lang: languageName, Imp: "app.models.nested.account"},
			},
		},
		{
			name:     "razen_library in root package",
			ruleKind: "razen_library",
			ruleAttrs: map[string]interface{}{
				"srcs": []string{"util.rzn"},
			},
			pkg: "",
			expectedImports: []resolve.ImportSpec{
				{Lang: languageName, Imp: "util"},
			},
		},
		{
			name:     "razen_library with concatenated srcs",
			ruleKind: "razen_library",
			ruleAttrs: map[string]interface{}{
				"srcs": &bzl.BinaryExpr{
					Op: "+",
					X:  &bzl.ListExpr{List: []bzl.Expr{&bzl.StringExpr{Value: "a.rzn"}}},
					Y:  &bzl.ListExpr{List: []bzl.Expr{&bzl.StringExpr{Value: "b.rzn"}}},
				},
			},
			pkg: "lib",
			expectedImports: []resolve.ImportSpec{
				{Lang: languageName, Imp: "lib/a"},
				{Lang: languageName, Imp: "lib.a"},
				{Lang: languageName, Imp: "lib/b"},
				{Lang: languageName, Imp: "lib.b"},
			},
		},
		{
			name:     "razen_library with unsupported srcs",
			ruleKind: "razen_library",
			ruleAttrs: map[string]interface{}{
				"srcs": &bzl.Ident{Name: "SRCS"},
			},
			pkg: "lib",
		},
		{
			name:     "razen_binary is not importable",
			ruleKind: "razen_binary",
			ruleAttrs: map[string]interface{}{
				"srcs": []string{"cli.rzn"},
			},
			pkg: "app",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := config.New()
			lang.Configure(c, "", nil)
			r := rule.NewRule(tc.ruleKind, "test")
			for key, value := range tc.ruleAttrs {
				r.SetAttr(key, value)
			}
			imports := lang.Imports(c, r, &rule.File{Pkg: tc.pkg})
			if tc.expectedImports == nil {
				assert.Empty(t, imports)
			} else {
				assert.Equal(t, tc.expectedImports, imports)
			}
		})
	}
}

func TestCollectStringsExprError(t *testing.T) {
	c := config.New()
	_, err := collectStringsExpr(c, "lib", &bzl.BinaryExpr{
		Op: "-",
		X:  &bzl.ListExpr{},
		Y:  &bzl.ListExpr{},
	})
	assert.ErrorContains(t, err, `unsupported operator "-"`)
}

func TestResolve(t *testing.T) {
	lang := NewLanguage().(*razenLanguage)
	c := config.New()
	resolveConfigurer := &resolve.Configurer{}
	resolveConfigurer.RegisterFlags(flag.NewFlagSet("gazelle", flag.ContinueOnError), "update", c)
	resolveConfigurer.Configure(c, "", nil)
	lang.Configure(c, "", nil)

	conf := getRazenConfig(c)
	conf.dependencyIndexes = []index.DependencyIndex{{
		"http.client": {label.New("razen_http", "client", "http_client")},
		"json.codec": {
			label.New("razen_json", "", "codec"),
			label.New("razen_json_fast", "", "codec"),
		},
	}}

	ix := resolve.NewRuleIndex(func(r *rule.Rule, pkgRel string) resolve.Resolver { return lang })
	models := rule.NewRule("razen_library", "models")
	models.SetAttr("srcs", []string{"user.rzn", "base.rzn"})
	ix.AddRule(c, models, &rule.File{Pkg: "app/models"})
	util := rule.NewRule("razen_library", "util")
	util.SetAttr("srcs", []string{"strings.rzn"})
	ix.AddRule(c, util, &rule.File{Pkg: "util"})
	ix.Finish()

	from := label.New("", "app/models", "models")
	r := rule.NewRule("razen_library", "models")
	lang.Resolve(c, ix, nil, r, razenImports{imports: []razenImport{
		{rawPath: "app.models.base", normalizedPath: "app.models.base"}, // self import
		{rawPath: "http.client", normalizedPath: "http.client"},
		{rawPath: "json.codec", normalizedPath: "json.codec"}, // ambiguous
		{rawPath: "unknown.module", normalizedPath: "unknown.module"},
	}}, from)
	assert.Equal(t, []string{"@razen_http//client:http_client"}, r.AttrStrings("deps"))
	assert.True(t, lang.reportedAmbiguous.Contains("json.codec"))

	from = label.New("", "app", "cli")
	r = rule.NewRule("razen_binary", "cli")
	lang.Resolve(c, ix, nil, r, razenImports{imports: []razenImport{
		{rawPath: "app.models.user", normalizedPath: "app.models.user"},
		{rawPath: "../util/strings", normalizedPath: "util/strings", isPath: true},
		{rawPath: "util/strings", normalizedPath: "app/util/strings", isPath: true},
	}}, from)
	assert.Equal(t, []string{"//app/models", "//util"}, r.AttrStrings("deps"))

	r = rule.NewRule("razen_test", "cli_test")
	lang.Resolve(c, ix, nil, r, razenImports{}, from)
	require.Nil(t, r.Attr("deps"))
}
