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
	"os"
	"path/filepath"
	"testing"

	"github.com/EngFlow/razen/internal/collections"
	"github.com/EngFlow/razen/internal/index"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexableModulePaths(t *testing.T) {
	testCases := []struct {
		pkg      string
		src      string
		expected []string
	}{
		{pkg: "client", src: "http.rzn", expected: []string{"client/http", "client.http"}},
		{pkg: "client", src: "v2/pool.ryx", expected: []string{"client/v2/pool", "client.v2.pool"}},
		{pkg: "", src: "util.rzn", expected: []string{"util"}},
		{pkg: "client", src: "README.md", expected: nil},
		{pkg: "client", src: "../escape.rzn", expected: []string{"escape"}},
		{pkg: "", src: "../escape.rzn", expected: nil},
	}

	for _, tc := range testCases {
		target := Target{Name: label.New("", tc.pkg, "lib")}
		assert.Equal(t, tc.expected, IndexableModulePaths(target, tc.src), "pkg=%q, src=%q", tc.pkg, tc.src)
	}
}

func TestCreateModuleIndex(t *testing.T) {
	modules := []Module{
		{
			Repository: "razen_http",
			Targets: []Target{
				{Name: label.New("", "client", "client"), Srcs: collections.SetOf("http.rzn", "pool.rzn")},
				{Name: label.New("", "internal", "impl"), Srcs: collections.SetOf("conn.rzn")},
				{Name: label.New("", "client/_gen", "gen"), Srcs: collections.SetOf("stub.rzn")},
			},
		},
		{
			Repository: "razen_http_compat",
			Targets: []Target{
				{Name: label.New("", "client", "http"), Srcs: collections.SetOf("http.rzn")},
			},
		},
	}

	client := label.New("razen_http", "client", "client")
	compat := label.New("razen_http_compat", "client", "http")
	expected := index.DependencyIndex{
		"client/http": {client, compat},
		"client.http": {client, compat},
		"client/pool": {client},
		"client.pool": {client},
	}
	result := CreateModuleIndex(modules)
	assert.Equal(t, expected, result)
	assert.Equal(t, []string{"client.http", "client/http"}, result.Ambiguous())
}

func TestParseBuildFile(t *testing.T) {
	buildFile := filepath.Join(t.TempDir(), "BUILD.bazel")
	require.NoError(t, os.WriteFile(buildFile, []byte(`
load("@rules_razen//razen:defs.bzl", "razen_binary", "razen_library")

razen_library(
    name = "client",
    srcs = ["http.rzn", "pool.rzn"],
    visibility = ["//visibility:public"],
)

razen_library(
    name = "generated",
    srcs = glob(["*.rzn"]),
)

razen_library(srcs = ["unnamed.rzn"])

razen_binary(
    name = "cli",
    srcs = ["cli.rzn"],
)
`), 0o644))

	targets, err := ParseBuildFile(buildFile, "client")
	require.NoError(t, err)
	assert.Equal(t, []Target{
		{Name: label.New("", "client", "client"), Srcs: collections.SetOf("http.rzn", "pool.rzn")},
		{Name: label.New("", "client", "generated"), Srcs: collections.SetOf[string]()},
	}, targets)

	_, err = ParseBuildFile(filepath.Join(t.TempDir(), "BUILD"), "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
