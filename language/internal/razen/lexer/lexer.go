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

// Package lexer provides an incremental, line oriented tokenizer for the Razen language. Every line is lexed on its
// own, starting from the state stack the previous line ended with, so an editor can re-lex a single changed line and
// stop as soon as the stack leaving a line is the same as before.
//
// Each lexer state owns an ordered list of rules. The first rule matching at the current offset classifies the
// matched text and may push or pop states; when nothing matches, a single character is emitted as TokenKind_Invalid.
// Lexing therefore never fails and always consumes the whole line.
package lexer

import (
	"iter"
	"strings"
	"sync"
	"unicode/utf8"
)

// Lexer tokenizes Razen source lines. It holds only read-only tables, so a single instance may be shared between
// goroutines.
type Lexer struct {
	revision Revision
	sets     *ClassifierSets
	rules    *ruleTable
}

func NewLexer(revision Revision) *Lexer {
	sets := NewClassifierSets()
	return &Lexer{
		revision: revision,
		sets:     sets,
		rules:    newRuleTable(sets, revision),
	}
}

var defaultLexer = sync.OnceValue(func() *Lexer {
	return NewLexer(RevisionAngle)
})

// Default returns the shared lexer for the angle bracket revision.
func Default() *Lexer {
	return defaultLexer()
}

// Tokenize lexes a single line with the default lexer. See Lexer.Tokenize.
func Tokenize(line string, prior StateStack) ([]Token, StateStack) {
	return defaultLexer().Tokenize(line, prior)
}

func (lx *Lexer) Revision() Revision {
	return lx.revision
}

func (lx *Lexer) Sets() *ClassifierSets {
	return lx.sets
}

// Tokenize lexes a single line, without its line terminator, starting in the prior state stack. Returns the tokens
// covering the whole line in order and the stack to start the next line with.
//
// The result depends only on the arguments. Literal states that cannot span lines are unwound before returning.
func (lx *Lexer) Tokenize(line string, prior StateStack) ([]Token, StateStack) {
	var tokens []Token
	stack := prior
	offset := 0
	for offset < len(line) {
		length, kind, next, ok := lx.step(line[offset:], stack)
		if !ok {
			_, length = utf8.DecodeRuneInString(line[offset:])
			kind, next = TokenKind_Invalid, stack
		}
		stack = next
		if length == 0 {
			continue
		}
		tokens = append(tokens, Token{Kind: kind, Start: offset, Length: length, Text: line[offset : offset+length]})
		offset += length
	}
	return tokens, stack.unwindSingleLine()
}

// step applies the first matching rule of the active state. A zero length result is a pure stack transition.
func (lx *Lexer) step(input string, stack StateStack) (length int, kind TokenKind, next StateStack, ok bool) {
	frame := stack.Top()
	for _, rule := range lx.rules[frame.State] {
		length = rule.matchingImpl.matchPrefix(input)
		if length < 0 {
			continue
		}
		if length == 0 {
			// Consuming nothing must change the stack, otherwise the lexer would spin in place.
			if rule.action.silent && stack.Len() > 1 {
				return 0, TokenKind_Unassigned, stack.Pop(), true
			}
			continue
		}
		kind, tr := rule.action.resolve(input[:length])
		if kind == TokenKind_Unassigned {
			kind = frame.Close
			if kind == TokenKind_Unassigned {
				kind = TokenKind_Delimiter
			}
		}
		return length, kind, tr.apply(stack), true
	}
	return 0, TokenKind_Unassigned, stack, false
}

// Line is the result of lexing one line of a multi-line text.
type Line struct {
	// Zero based line index.
	Index  int
	Text   string
	Tokens []Token
	// Stack the next line starts with.
	Exit StateStack
}

// Lines lexes text line by line, carrying the state stack across line breaks. Lines are split at '\n', so text ending
// with a newline yields a last empty line; a trailing '\r' stays part of the line and is lexed as whitespace.
func (lx *Lexer) Lines(text string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		stack := RootStack()
		index := 0
		for line := range strings.SplitSeq(text, "\n") {
			var tokens []Token
			tokens, stack = lx.Tokenize(line, stack)
			if !yield(Line{Index: index, Text: line, Tokens: tokens, Exit: stack}) {
				return
			}
			index++
		}
	}
}

// AllTokens returns the tokens of every line of text. Token offsets stay relative to their line; use Token.Cursor
// to turn them into document positions.
func (lx *Lexer) AllTokens(text string) iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for line := range lx.Lines(text) {
			for _, token := range line.Tokens {
				if !yield(line.Index, token) {
					return
				}
			}
		}
	}
}
