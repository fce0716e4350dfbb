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

// Package document keeps the tokens of an editable multi-line text up to date.
//
// An edit re-lexes lines sequentially starting at the first changed line. Every line remembers the state stack it
// was lexed with, so re-lexing stops at the first line past the edit whose entry stack did not change: from there
// on the cached tokens are still valid. Editing a line in a large document therefore usually costs a single line.
package document

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/EngFlow/razen/internal/collections"
	"github.com/EngFlow/razen/language/internal/razen/lexer"
)

var ErrLineOutOfRange = errors.New("line out of range")

type line struct {
	text   string
	lexed  bool
	tokens []lexer.Token

	entry            lexer.StateStack
	entryFingerprint uint64
	exit             lexer.StateStack
	exitFingerprint  uint64
}

// Document is safe for concurrent use. Passes over the same document are serialized.
type Document struct {
	lexer *lexer.Lexer

	mu    sync.Mutex
	lines []line
	// First line that may need re-lexing; len(lines) when every line is up to date.
	stale int
	// Lines below this index may have been edited, so a matching entry stack alone does not end a pass there.
	dirtyEnd int
	// Number of Tokenize calls, for observing how far edits propagate.
	lexedCount int
}

var rootFingerprint = lexer.RootStack().Fingerprint()

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// New creates a document and lexes all of its lines.
func New(lx *lexer.Lexer, text string) *Document {
	d := &Document{lexer: lx}
	d.lines = newLines(splitLines(text))
	d.dirtyEnd = len(d.lines)
	// Cannot fail with a context that is never cancelled.
	_ = d.relex(context.Background(), len(d.lines)-1)
	return d
}

func newLines(texts []string) []line {
	return collections.MapSlice(texts, func(text string) line { return line{text: text} })
}

// Edit replaces removed lines starting at first with the inserted ones and re-lexes until the tokens of the
// document are consistent again. Inserted strings containing '\n' are split into several lines.
//
// The text change is applied even if ctx is cancelled during re-lexing; in that case ctx.Err() is returned and the
// remaining lines are re-lexed by the next Edit or lazily on access.
func (d *Document) Edit(ctx context.Context, first, removed int, inserted []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if first < 0 || removed < 0 || first+removed > len(d.lines) {
		return fmt.Errorf("%w: cannot replace lines [%d, %d) of a %d line document", ErrLineOutOfRange, first, first+removed, len(d.lines))
	}
	inserted = collections.FlatMapSlice(inserted, splitLines)
	delta := len(inserted) - removed

	d.lines = slices.Replace(d.lines, first, first+removed, newLines(inserted)...)
	if d.dirtyEnd > first+removed {
		d.dirtyEnd += delta
	}
	d.dirtyEnd = max(d.dirtyEnd, first+len(inserted))
	if d.stale > first+removed {
		d.stale += delta
	}
	d.stale = min(d.stale, first)

	return d.relex(ctx, len(d.lines)-1)
}

// relex brings lines up to the one with index through up to date. Must be called with mu held.
func (d *Document) relex(ctx context.Context, through int) error {
	for d.stale < len(d.lines) && d.stale <= through {
		if err := ctx.Err(); err != nil {
			return err
		}

		i := d.stale
		prior, priorFingerprint := lexer.RootStack(), rootFingerprint
		if i > 0 {
			prior, priorFingerprint = d.lines[i-1].exit, d.lines[i-1].exitFingerprint
		}

		l := &d.lines[i]
		upToDate := l.lexed && l.entryFingerprint == priorFingerprint && l.entry.Equal(prior)
		if upToDate && i >= d.dirtyEnd {
			// The exit stack of the previous line stabilized, nothing below can change.
			d.stale = len(d.lines)
			break
		}
		if !upToDate {
			l.tokens, l.exit = d.lexer.Tokenize(l.text, prior)
			l.entry, l.entryFingerprint = prior, priorFingerprint
			l.exitFingerprint = l.exit.Fingerprint()
			l.lexed = true
			d.lexedCount++
		}
		d.stale++
	}
	if d.stale >= len(d.lines) {
		d.stale, d.dirtyEnd = len(d.lines), 0
	}
	return nil
}

func (d *Document) checkIndex(i int) error {
	if i < 0 || i >= len(d.lines) {
		return fmt.Errorf("%w: line %d of a %d line document", ErrLineOutOfRange, i, len(d.lines))
	}
	return nil
}

// Tokens returns the tokens of the line with the given zero based index.
func (d *Document) Tokens(i int) ([]lexer.Token, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkIndex(i); err != nil {
		return nil, err
	}
	_ = d.relex(context.Background(), i)
	return d.lines[i].tokens, nil
}

// ExitState returns the stack the line with the given index ends with.
func (d *Document) ExitState(i int) (lexer.StateStack, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkIndex(i); err != nil {
		return lexer.RootStack(), err
	}
	_ = d.relex(context.Background(), i)
	return d.lines[i].exit, nil
}

func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.lines)
}

func (d *Document) Line(i int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkIndex(i); err != nil {
		return "", err
	}
	return d.lines[i].text, nil
}

func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.Join(collections.MapSlice(d.lines, func(l line) string { return l.text }), "\n")
}

// LexedCount returns how many times a line was tokenized since the document was created.
func (d *Document) LexedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lexedCount
}
