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
	"log"
	"path"
	"path/filepath"
	"slices"

	"github.com/EngFlow/razen/internal/index"
	"github.com/EngFlow/razen/language/internal/razen/lexer"
	"github.com/bazelbuild/bazel-gazelle/config"
	"github.com/bazelbuild/bazel-gazelle/pathtools"
	"github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/bmatcuk/doublestar/v4"
)

const (
	revisionDirective        = "razen_revision"
	excludeDirective         = "razen_exclude"
	dependencyIndexDirective = "razen_dependency_index"
)

func (*razenLanguage) RegisterFlags(fs *flag.FlagSet, cmd string, c *config.Config) {}
func (*razenLanguage) CheckFlags(fs *flag.FlagSet, c *config.Config) error          { return nil }

func (*razenLanguage) KnownDirectives() []string {
	return []string{
		revisionDirective,
		excludeDirective,
		dependencyIndexDirective,
	}
}

func (*razenLanguage) Configure(c *config.Config, rel string, f *rule.File) {
	var conf *razenConfig
	if parentConf, ok := c.Exts[languageName]; !ok {
		conf = newRazenConfig()
	} else {
		conf = parentConf.(*razenConfig).clone()
	}
	c.Exts[languageName] = conf

	if f == nil {
		return
	}
	for _, d := range f.Directives {
		switch d.Key {
		case revisionDirective:
			if d.Value == "default" {
				conf.setRevision(lexer.RevisionAngle)
				continue
			}
			revision, err := lexer.ParseRevision(d.Value)
			if err != nil {
				log.Printf("%v is invalid value for directive %v: %v", d.Value, d.Key, err)
				continue
			}
			conf.setRevision(revision)
		case excludeDirective:
			if !doublestar.ValidatePattern(d.Value) {
				log.Printf("%v is invalid value for directive %v, expected a glob pattern", d.Value, d.Key)
				continue
			}
			conf.excludes = append(conf.excludes, excludePattern{rel: rel, pattern: d.Value})
		case dependencyIndexDirective:
			indexPath := filepath.Join(c.RepoRoot, d.Value)
			dependencyIndex, err := index.Load(indexPath)
			if err != nil {
				log.Printf("%v: failed to load dependency index %v: %v", rel, d.Value, err)
				continue
			}
			conf.dependencyIndexes = append(conf.dependencyIndexes, dependencyIndex)
		}
	}
}

type razenConfig struct {
	lexer *lexer.Lexer
	// Sources excluded from generation, inherited by subdirectories
	excludes []excludePattern
	// Loaded razen_dependency_index files, in declaration order
	dependencyIndexes []index.DependencyIndex
}

func getRazenConfig(c *config.Config) *razenConfig {
	return c.Exts[languageName].(*razenConfig)
}

func newRazenConfig() *razenConfig {
	return &razenConfig{lexer: lexer.Default()}
}

func (conf *razenConfig) clone() *razenConfig {
	copy := *conf
	copy.excludes = slices.Clone(conf.excludes)
	copy.dependencyIndexes = slices.Clone(conf.dependencyIndexes)
	return &copy
}

func (conf *razenConfig) setRevision(revision lexer.Revision) {
	if revision == lexer.RevisionAngle {
		conf.lexer = lexer.Default()
	} else if conf.lexer.Revision() != revision {
		conf.lexer = lexer.NewLexer(revision)
	}
}

// excludePattern is a glob relative to rel, the directory of the BUILD file declaring it.
type excludePattern struct {
	rel     string
	pattern string
}

// isExcluded reports whether the file name in the package rel matches any inherited exclude pattern.
func (conf *razenConfig) isExcluded(rel, name string) bool {
	filePath := path.Join(rel, name)
	return slices.ContainsFunc(conf.excludes, func(exclude excludePattern) bool {
		return doublestar.MatchUnvalidated(exclude.pattern, pathtools.TrimPrefix(filePath, exclude.rel))
	})
}
