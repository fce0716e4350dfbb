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

// Renders Razen sources with syntax highlighting, or lists their tokens. With -i reads lines interactively and shows
// the tokens and the lexer state stack of every entered line.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/EngFlow/razen/language/internal/razen/highlight"
	"github.com/EngFlow/razen/language/internal/razen/lexer"
	"github.com/EngFlow/razen/language/internal/razen/theme"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

const tokensFormat = "tokens"

func main() {
	themeName := flag.String("theme", theme.Dark().Name(), fmt.Sprintf("Color profile, one of %v", strings.Join(theme.Names(), ", ")))
	format := flag.String("format", "", "Output format: tokens, terminal, terminal256, terminal16m, html or any other Chroma formatter. Defaults to terminal256 when writing to a terminal, tokens otherwise")
	revisionName := flag.String("revision", lexer.RevisionAngle.String(), "Generic parameter syntax, angle or square")
	interactive := flag.Bool("i", false, "Tokenize lines read from an interactive prompt")
	flag.Parse()

	revision, err := lexer.ParseRevision(*revisionName)
	if err != nil {
		log.Fatalf("Invalid -revision: %v", err)
	}
	lx := lexer.NewLexer(revision)

	if *interactive {
		if err := runPrompt(lx, os.Stdout); err != nil {
			log.Fatalf("Interactive session failed: %v", err)
		}
		return
	}

	profile, err := theme.Lookup(*themeName)
	if err != nil {
		log.Fatalf("Invalid -theme: %v", err)
	}
	outputFormat := *format
	if outputFormat == "" {
		outputFormat = defaultFormat(term.IsTerminal(int(os.Stdout.Fd())))
	}
	if outputFormat != tokensFormat {
		if _, err := highlight.Formatter(outputFormat); err != nil {
			log.Fatalf("Invalid -format: %v", err)
		}
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	for _, input := range inputs {
		text, err := readInput(input)
		if err != nil {
			log.Fatalf("Failed to read %v: %v", input, err)
		}
		if err := render(os.Stdout, lx, profile, outputFormat, text); err != nil {
			log.Fatalf("Failed to render %v: %v", input, err)
		}
	}
}

func defaultFormat(isTerminal bool) string {
	if isTerminal {
		return "terminal256"
	}
	return tokensFormat
}

func readInput(input string) (string, error) {
	var content []byte
	var err error
	if input == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(input)
	}
	return string(content), err
}

func render(w io.Writer, lx *lexer.Lexer, profile *theme.Profile, format, text string) error {
	if format == tokensFormat {
		return writeTokens(w, lx, text)
	}
	return highlight.Format(w, text, lx, profile, format)
}

// writeTokens prints one token per line as `line:column kind "text"`.
func writeTokens(w io.Writer, lx *lexer.Lexer, text string) error {
	for line := range lx.Lines(text) {
		for _, token := range line.Tokens {
			if _, err := fmt.Fprintf(w, "%v %v %q\n", token.Cursor(line.Index, line.Text), token.Kind, token.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

const (
	prompt       = "razen> "
	resetCommand = ":reset"
	quitCommand  = ":quit"
)

// session carries the lexer state from one entered line to the next.
type session struct {
	lx    *lexer.Lexer
	stack lexer.StateStack
	index int
}

func newSession(lx *lexer.Lexer) *session {
	return &session{lx: lx, stack: lexer.RootStack()}
}

// handle tokenizes the entered line, or executes a command. Returns false when the session should end.
func (s *session) handle(w io.Writer, line string) bool {
	switch strings.TrimSpace(line) {
	case quitCommand:
		return false
	case resetCommand:
		s.stack = lexer.RootStack()
		s.index = 0
		fmt.Fprintf(w, "stack: %v\n", s.stack)
		return true
	}
	var tokens []lexer.Token
	tokens, s.stack = s.lx.Tokenize(line, s.stack)
	for _, token := range tokens {
		fmt.Fprintf(w, "  %v %v %q\n", token.Cursor(s.index, line), token.Kind, token.Text)
	}
	fmt.Fprintf(w, "stack: %v\n", s.stack)
	s.index++
	return true
}

func runPrompt(lx *lexer.Lexer, w io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	fmt.Fprintf(w, "Enter Razen source lines, %v clears the lexer state, %v or Ctrl+D exits\n", resetCommand, quitCommand)
	s := newSession(lx)
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(w)
			return nil
		}
		if err != nil {
			return err
		}
		if !s.handle(w, line) {
			return nil
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}
}
