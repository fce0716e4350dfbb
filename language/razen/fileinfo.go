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
	"os"
	"path"
	"path/filepath"
	"strings"

	definition "github.com/EngFlow/razen/language/internal/razen"
	"github.com/EngFlow/razen/language/internal/razen/lexer"
	"github.com/bazelbuild/bazel-gazelle/pathtools"
)

// fileKind determines which kind of rule (razen_library, razen_binary, razen_test) a source file is assigned to.
type fileKind byte

const (
	// unknownKind is assigned to files not handled by this extension.
	unknownKind fileKind = iota

	// libSrcKind is a source file outside of test directories without a main function.
	libSrcKind

	// binSrcKind is a source file declaring a main function.
	binSrcKind

	// testSrcKind is a source file in a test directory or with the "_test" suffix.
	testSrcKind
)

func (k fileKind) String() string {
	switch k {
	case libSrcKind:
		return "library"
	case binSrcKind:
		return "binary"
	case testSrcKind:
		return "test"
	default:
		return "unknown"
	}
}

// fileInfo collects metadata about an individual source file.
type fileInfo struct {
	// Relative path to the file from the directory containing the build file.
	name string

	kind fileKind

	hasMain bool

	// Modules used by this file, standard library namespaces excluded.
	imports []razenImport
}

var errUnmatchedExtension = errors.New("unmatched file extension")

// getFileInfo reads and tokenizes a file. rel is the slash separated path of its directory relative to the
// repository root.
func getFileInfo(lx *lexer.Lexer, dir, rel, name string) (fileInfo, error) {
	if !definition.HasSourceExtension(name) {
		return fileInfo{}, errUnmatchedExtension
	}
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fileInfo{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return parseFileInfo(lx, rel, name, string(content)), nil
}

func parseFileInfo(lx *lexer.Lexer, rel, name, content string) fileInfo {
	source := scanSource(lx, content)
	imports := make([]razenImport, 0, len(source.modules))
	for _, module := range source.modules {
		imports = append(imports, newRazenImport(rel, module))
	}

	inTestDirectory := pathtools.Index(rel, "test") >= 0 || pathtools.Index(rel, "tests") >= 0
	base := path.Base(name)
	stem := strings.TrimSuffix(base, path.Ext(base))

	var kind fileKind
	switch {
	case inTestDirectory, strings.HasSuffix(stem, "_test"):
		kind = testSrcKind
	case source.hasMain:
		kind = binSrcKind
	default:
		kind = libSrcKind
	}

	return fileInfo{
		name:    name,
		kind:    kind,
		hasMain: source.hasMain,
		imports: imports,
	}
}

// Module referenced by a use statement, either a dotted path or a quoted file path.
type usedModule struct {
	path   string
	quoted bool
}

type sourceSummary struct {
	modules []usedModule
	hasMain bool
}

// scanSource walks the token stream and collects the targets of use and import statements. The use statement state
// of the lexer classifies standard library modules as namespaces, those are provided by the toolchain and skipped.
func scanSource(lx *lexer.Lexer, content string) sourceSummary {
	var summary sourceSummary
	// Keyword of the statement waiting for its operand, empty when none
	var pending string
	for _, token := range lx.AllTokens(content) {
		if token.Kind == lexer.TokenKind_White || token.Kind == lexer.TokenKind_Comment {
			continue
		}
		switch pending {
		case "use", "import":
			switch token.Kind {
			case lexer.TokenKind_Identifier:
				summary.modules = append(summary.modules, usedModule{path: token.Text})
			case lexer.TokenKind_String:
				unquoted := strings.TrimSuffix(strings.TrimPrefix(token.Text, `"`), `"`)
				summary.modules = append(summary.modules, usedModule{path: unquoted, quoted: true})
			}
		case "fun":
			if token.Kind == lexer.TokenKind_Function && token.Text == "main" {
				summary.hasMain = true
			}
		}
		pending = ""
		if token.Kind == lexer.TokenKind_Keyword {
			switch token.Text {
			case "use", "import", "fun":
				pending = token.Text
			}
		}
	}
	return summary
}

func newRazenImport(rel string, module usedModule) razenImport {
	if !module.quoted {
		return razenImport{rawPath: module.path, normalizedPath: module.path}
	}
	// Quoted paths are relative to the importing file and may name the source file itself.
	rawPath := module.path
	if definition.HasSourceExtension(rawPath) {
		rawPath = strings.TrimSuffix(rawPath, path.Ext(rawPath))
	}
	return razenImport{
		rawPath:        path.Clean(rawPath),
		normalizedPath: path.Join(rel, rawPath),
		isPath:         true,
	}
}
