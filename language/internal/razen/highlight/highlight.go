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

// Package highlight exposes the Razen tokenizer and color profiles to the Chroma highlighting library, so that any
// Chroma formatter (terminal, HTML, ...) can render Razen sources.
package highlight

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/EngFlow/razen/language/internal/razen"
	"github.com/EngFlow/razen/language/internal/razen/lexer"
	"github.com/EngFlow/razen/language/internal/razen/theme"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Chroma token type of every token kind. Kinds sharing a type must share a color in every profile.
var tokenTypes = map[lexer.TokenKind]chroma.TokenType{
	lexer.TokenKind_Invalid:         chroma.Error,
	lexer.TokenKind_White:           chroma.TextWhitespace,
	lexer.TokenKind_Comment:         chroma.Comment,
	lexer.TokenKind_Keyword:         chroma.Keyword,
	lexer.TokenKind_Identifier:      chroma.Name,
	lexer.TokenKind_TypeIdentifier:  chroma.KeywordType,
	lexer.TokenKind_Namespace:       chroma.NameNamespace,
	lexer.TokenKind_Function:        chroma.NameFunction,
	lexer.TokenKind_Metatag:         chroma.NameDecorator,
	lexer.TokenKind_Number:          chroma.LiteralNumberInteger,
	lexer.TokenKind_NumberFloat:     chroma.LiteralNumberFloat,
	lexer.TokenKind_NumberHex:       chroma.LiteralNumberHex,
	lexer.TokenKind_NumberBinary:    chroma.LiteralNumberBin,
	lexer.TokenKind_NumberOctal:     chroma.LiteralNumberOct,
	lexer.TokenKind_String:          chroma.LiteralStringDouble,
	lexer.TokenKind_StringQuote:     chroma.LiteralStringDelimiter,
	lexer.TokenKind_StringRaw:       chroma.LiteralStringOther,
	lexer.TokenKind_StringChar:      chroma.LiteralStringChar,
	lexer.TokenKind_StringInvalid:   chroma.LiteralString,
	lexer.TokenKind_Escape:          chroma.LiteralStringEscape,
	lexer.TokenKind_EscapeInvalid:   chroma.GenericError,
	lexer.TokenKind_Operator:        chroma.Operator,
	lexer.TokenKind_Bracket:         chroma.Punctuation,
	lexer.TokenKind_Delimiter:       chroma.Punctuation,
	lexer.TokenKind_DelimiterCurly:  chroma.LiteralStringInterpol,
	lexer.TokenKind_DelimiterAngle:  chroma.Punctuation,
	lexer.TokenKind_DelimiterSquare: chroma.Punctuation,
}

// TokenType returns the Chroma token type used for kind.
func TokenType(kind lexer.TokenKind) chroma.TokenType {
	if tt, ok := tokenTypes[kind]; ok {
		return tt
	}
	return chroma.Text
}

// Lexer adapts lexer.Lexer to chroma.Lexer.
type Lexer struct {
	lexer    *lexer.Lexer
	config   *chroma.Config
	registry *chroma.LexerRegistry
	analyser func(text string) float32
}

func NewLexer(lx *lexer.Lexer) *Lexer {
	filenames := make([]string, 0, len(razen.Extensions))
	for _, ext := range razen.Extensions {
		filenames = append(filenames, "*"+ext)
	}
	return &Lexer{
		lexer: lx,
		config: &chroma.Config{
			Name:      "Razen",
			Aliases:   []string{razen.LanguageID, strings.TrimPrefix(razen.Extensions[1], ".")},
			Filenames: filenames,
			MimeTypes: []string{"text/x-razen"},
		},
		analyser: analyse,
	}
}

func (l *Lexer) Config() *chroma.Config {
	return l.config
}

// Tokenise lexes the whole text line by line and joins the lines with newline tokens.
func (l *Lexer) Tokenise(options *chroma.TokeniseOptions, text string) (chroma.Iterator, error) {
	if options != nil && options.EnsureLF {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	var tokens []chroma.Token
	for line := range l.lexer.Lines(text) {
		if line.Index > 0 {
			tokens = append(tokens, chroma.Token{Type: chroma.TextWhitespace, Value: "\n"})
		}
		for _, token := range line.Tokens {
			tokens = append(tokens, chroma.Token{Type: TokenType(token.Kind), Value: token.Text})
		}
	}
	return chroma.Literator(tokens...), nil
}

func (l *Lexer) SetRegistry(registry *chroma.LexerRegistry) chroma.Lexer {
	l.registry = registry
	return l
}

func (l *Lexer) SetAnalyser(analyser func(text string) float32) chroma.Lexer {
	l.analyser = analyser
	return l
}

func (l *Lexer) AnalyseText(text string) float32 {
	if l.analyser == nil {
		return 0
	}
	return l.analyser(text)
}

// Constructs that no other language registered in Chroma shares.
var signatures = []string{"show <", "fun main(", "read:", "::"}

func analyse(text string) float32 {
	var score float32
	for _, signature := range signatures {
		if strings.Contains(text, signature) {
			score += 0.25
		}
	}
	return score
}

// Style converts a color profile into a Chroma style named "razen-<profile>".
func Style(profile *theme.Profile) (*chroma.Style, error) {
	entries := chroma.StyleEntries{
		chroma.Background: fmt.Sprintf("bg:%s %s", profile.Background(), profile.Foreground()),
	}
	for _, kind := range lexer.AllTokenKinds {
		tt := TokenType(kind)
		if _, exists := entries[tt]; !exists {
			entries[tt] = string(profile.ColorOf(kind))
		}
	}
	return chroma.NewStyle(StyleName(profile), entries)
}

func StyleName(profile *theme.Profile) string {
	return "razen-" + profile.Name()
}

var (
	registerOnce     sync.Once
	registeredLexer  chroma.Lexer
	registeredStyles []*chroma.Style
)

// Register adds the Razen lexer and styles to the global Chroma registries. Safe to call many times; only the first
// call registers anything.
func Register() chroma.Lexer {
	registerOnce.Do(func() {
		registeredLexer = lexers.Register(NewLexer(lexer.Default()))
		for _, name := range theme.Names() {
			profile, _ := theme.Lookup(name)
			style, err := Style(profile)
			if err != nil {
				panic(fmt.Sprintf("invalid built-in profile %s: %v", name, err))
			}
			registeredStyles = append(registeredStyles, styles.Register(style))
		}
	})
	return registeredLexer
}

// Formatter returns the named Chroma formatter. "html" produces a standalone page with inline styles.
func Formatter(name string) (chroma.Formatter, error) {
	if name == "html" {
		return html.New(html.Standalone(true), html.WithClasses(false)), nil
	}
	if formatter, ok := formatters.Registry[name]; ok {
		return formatter, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// Format renders text with the given lexer, profile and formatter name.
func Format(w io.Writer, text string, lx *lexer.Lexer, profile *theme.Profile, format string) error {
	formatter, err := Formatter(format)
	if err != nil {
		return err
	}
	style, err := Style(profile)
	if err != nil {
		return err
	}
	iterator, err := NewLexer(lx).Tokenise(nil, text)
	if err != nil {
		return err
	}
	return formatter.Format(w, style, iterator)
}
