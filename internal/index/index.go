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

// Package index defines the serializable mapping of Razen module paths to the Bazel targets providing them. Indexes
// are plain JSON files, optionally xz compressed, referenced with the razen_dependency_index directive.
package index

import (
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/ulikunitz/xz"

	"github.com/EngFlow/razen/internal/collections"
)

type (
	// labelUnmarshaler is a wrapper around label.Label that is parsable from
	// JSON text.
	labelUnmarshaler label.Label

	// DependencyIndex maps module paths, as written in use statements, to the Bazel targets (more than one in case of
	// ambiguity). Serializable to/from JSON.
	DependencyIndex map[string][]label.Label
)

var (
	_ encoding.TextUnmarshaler = (*labelUnmarshaler)(nil)
	_ json.Marshaler           = (*DependencyIndex)(nil)
	_ json.Unmarshaler         = (*DependencyIndex)(nil)
)

func (lm *labelUnmarshaler) UnmarshalText(data []byte) error {
	parsedLabel, err := label.Parse(string(data))
	*lm = labelUnmarshaler(parsedLabel)
	return err
}

func (index DependencyIndex) MarshalJSON() ([]byte, error) {
	jsonDict := make(map[string][]string, len(index))
	for module, labels := range index {
		jsonDict[module] = collections.MapSlice(labels, label.Label.String)
	}
	return json.Marshal(jsonDict)
}

func (index *DependencyIndex) UnmarshalJSON(data []byte) error {
	var jsonDict map[string][]labelUnmarshaler
	if err := json.Unmarshal(data, &jsonDict); err != nil {
		return err
	}

	*index = make(DependencyIndex, len(jsonDict))
	for module, labels := range jsonDict {
		(*index)[module] = collections.MapSlice(labels, func(lbl labelUnmarshaler) label.Label { return label.Label(lbl) })
	}
	return nil
}

// Lookup returns the target providing module. Modules provided by several targets are ambiguous and not resolved.
func (index DependencyIndex) Lookup(module string) (lbl label.Label, ambiguous bool) {
	switch labels := index[module]; len(labels) {
	case 0:
		return label.NoLabel, false
	case 1:
		return labels[0], false
	default:
		return label.NoLabel, true
	}
}

// Ambiguous returns the sorted modules mapped to more than one target.
func (index DependencyIndex) Ambiguous() []string {
	return slices.Sorted(collections.FilterSeq(maps.Keys(index), func(module string) bool { return len(index[module]) > 1 }))
}

func isCompressed(path string) bool {
	return strings.HasSuffix(path, ".xz")
}

// Load reads an index from a JSON file. Files with the ".xz" suffix are decompressed first.
func Load(path string) (DependencyIndex, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dependency index: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if isCompressed(path) {
		if reader, err = xz.NewReader(file); err != nil {
			return nil, fmt.Errorf("failed to decompress dependency index %s: %w", path, err)
		}
	}

	var index DependencyIndex
	if err := json.NewDecoder(reader).Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to parse dependency index %s: %w", path, err)
	}
	return index, nil
}

// Save writes the index as JSON, compressed with xz if path has the ".xz" suffix.
func (index DependencyIndex) Save(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dependency index: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	var writer io.WriteCloser = nopCloser{file}
	if isCompressed(path) {
		if writer, err = xz.NewWriter(file); err != nil {
			return fmt.Errorf("failed to compress dependency index %s: %w", path, err)
		}
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "\t")
	if err := encoder.Encode(index); err != nil {
		return fmt.Errorf("failed to write dependency index %s: %w", path, err)
	}
	return writer.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
