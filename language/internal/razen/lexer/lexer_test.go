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

package lexer

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compact "kind:text" rendering keeps the expectations readable.
func describe(tokens []Token) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, fmt.Sprintf("%v:%s", token.Kind, token.Text))
	}
	return result
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{
			input:    "",
			expected: []string{},
		},
		{
			input:    "math::sqrt(4)",
			expected: []string{"namespace:math", "metatag:::", "function:sqrt", "bracket:(", "number:4", "bracket:)"},
		},
		{
			input:    "math.sqrt",
			expected: []string{"namespace:math", "metatag:.", "function:sqrt"},
		},
		{
			input:    "math::nothing_here",
			expected: []string{"namespace:math", "metatag:::", "identifier:nothing_here"},
		},
		{
			input: `show "hello {name}!"`,
			expected: []string{
				"keyword:show", "white: ",
				`string.quote:"`, "string:hello ", "delimiter.curly:{", "identifier:name", "delimiter.curly:}", "string:!", `string.quote:"`,
			},
		},
		{
			input:    `"a\qb"`,
			expected: []string{`string.quote:"`, "string:a", `escape.invalid:\q`, "string:b", `string.quote:"`},
		},
		{
			input:    `"tab\there\u00e9"`,
			expected: []string{`string.quote:"`, "string:tab", `escape:\t`, "string:here", `escape:\u00e9`, `string.quote:"`},
		},
		{
			input:    `f"{a + "b"} {{"`,
			expected: []string{
				`string.quote:f"`, "delimiter.curly:{", "identifier:a", "white: ", "operator:+", "white: ",
				`string.quote:"`, "string:b", `string.quote:"`, "delimiter.curly:}", "string: ",
				"delimiter.curly:{", "bracket:{", `string.invalid:"`,
			},
		},
		{
			input:    `"unterminated`,
			expected: []string{`string.invalid:"unterminated`},
		},
		{
			input:    `r"C:\path\n" rest`,
			expected: []string{`string.raw:r"C:\path\n"`, "white: ", "identifier:rest"},
		},
		{
			input:    `'a' '\n' 'ab`,
			expected: []string{"string.char:'", "string.char:a", "string.char:'", "white: ", "string.char:'", `escape:\n`, "string.char:'", "white: ", "string.invalid:'ab"},
		},
		{
			input:    "0x1F 0b101 0o17 3.14 42 1e10",
			expected: []string{"number.hex:0x1F", "white: ", "number.binary:0b101", "white: ", "number.octal:0o17", "white: ", "number.float:3.14", "white: ", "number:42", "white: ", "number.float:1e10"},
		},
		{
			input:    "a == b <> c",
			expected: []string{"identifier:a", "white: ", "operator:==", "white: ", "identifier:b", "white: ", "delimiter:<>", "white: ", "identifier:c"},
		},
		{
			input:    "x @ y",
			expected: []string{"identifier:x", "white: ", "invalid:@", "white: ", "identifier:y"},
		},
		{
			input:    "# comment with \"quotes\"",
			expected: []string{`comment:# comment with "quotes"`},
		},
		{
			input:    "/* a /* b */ c */ d",
			expected: []string{"comment:/*", "comment: a ", "comment:/*", "comment: b ", "comment:*/", "comment: c ", "comment:*/", "white: ", "identifier:d"},
		},
		{
			input: "fun add(a: int, b) {",
			expected: []string{
				"keyword:fun", "white: ", "function:add", "bracket:(",
				"identifier:a", "operator::", "white: ", "type.identifier:int", "delimiter:,", "white: ", "identifier:b", "bracket:)",
				"white: ", "bracket:{",
			},
		},
		{
			input:    "fun area(self) -> float",
			expected: []string{"keyword:fun", "white: ", "function:area", "bracket:(", "keyword:self", "bracket:)", "white: ", "operator:->", "white: ", "type.identifier:float"},
		},
		{
			input: "m = {ok: true, v: null}",
			expected: []string{
				"identifier:m", "white: ", "operator:=", "white: ", "bracket:{",
				"identifier:ok", "operator::", "white: ", "keyword:true", "delimiter:,", "white: ",
				"identifier:v", "operator::", "white: ", "keyword:null", "bracket:}",
			},
		},
		{
			input:    "c ? y : null",
			expected: []string{"identifier:c", "white: ", "operator:?", "white: ", "identifier:y", "white: ", "operator::", "white: ", "keyword:null"},
		},
		{
			input:    "x: list<true>",
			expected: []string{"identifier:x", "operator::", "white: ", "type.identifier:list", "delimiter.angle:<", "keyword:true", "operator:>"},
		},
		{
			input: "fun f(a: int = 5, b: str): int",
			expected: []string{
				"keyword:fun", "white: ", "function:f", "bracket:(",
				"identifier:a", "operator::", "white: ", "type.identifier:int", "white: ", "operator:=", "white: ", "number:5", "delimiter:,", "white: ",
				"identifier:b", "operator::", "white: ", "type.identifier:str", "bracket:)",
				"operator::", "white: ", "type.identifier:int",
			},
		},
		{
			input: `fun g(flag: bool = true, n: int = max(1, 2), s = "x") {`,
			expected: []string{
				"keyword:fun", "white: ", "function:g", "bracket:(",
				"identifier:flag", "operator::", "white: ", "type.identifier:bool", "white: ", "operator:=", "white: ", "keyword:true", "delimiter:,", "white: ",
				"identifier:n", "operator::", "white: ", "type.identifier:int", "white: ", "operator:=", "white: ",
				"function:max", "bracket:(", "number:1", "delimiter:,", "white: ", "number:2", "bracket:)", "delimiter:,", "white: ",
				"identifier:s", "white: ", "operator:=", "white: ", `string.quote:"`, "string:x", `string.quote:"`, "bracket:)",
				"white: ", "bracket:{",
			},
		},
		{
			input:    "x: list<int>",
			expected: []string{"identifier:x", "operator::", "white: ", "type.identifier:list", "delimiter.angle:<", "type.identifier:int", "delimiter.angle:>"},
		},
		{
			input:    "x: list[int]",
			expected: []string{"identifier:x", "operator::", "white: ", "type.identifier:list", "bracket:[", "identifier:int", "bracket:]"},
		},
		{
			input:    "use math",
			expected: []string{"keyword:use", "white: ", "namespace:math"},
		},
		{
			input:    "import models.user",
			expected: []string{"keyword:import", "white: ", "identifier:models.user"},
		},
		{
			input:    `use "lib/helpers.rzn"`,
			expected: []string{"keyword:use", "white: ", `string:"lib/helpers.rzn"`},
		},
		{
			input:    `show <red, bold> "hi"`,
			expected: []string{"keyword:show", "white: ", "delimiter.angle:<", "metatag:red", "delimiter:,", "white: ", "identifier:bold", "delimiter.angle:>", "white: ", `string.quote:"`, "string:hi", `string.quote:"`},
		},
		{
			input:    "read: num",
			expected: []string{"keyword:read", "metatag::", "white: ", "type.identifier:num"},
		},
		{
			input:    "print(x); if (x) { return }",
			expected: []string{"function:print", "bracket:(", "identifier:x", "bracket:)", "delimiter:;", "white: ", "keyword:if", "white: ", "bracket:(", "identifier:x", "bracket:)", "white: ", "bracket:{", "white: ", "keyword:return", "white: ", "bracket:}"},
		},
		{
			input:    "é",
			expected: []string{"invalid:é"},
		},
	}

	for _, tc := range testCases {
		tokens, exit := Tokenize(tc.input, RootStack())
		assert.Equal(t, tc.expected, describe(tokens), "input: %q", tc.input)
		assert.Equal(t, RootStack(), exit, "input: %q", tc.input)
	}
}

func TestTokenizeRevisionSquare(t *testing.T) {
	lx := NewLexer(RevisionSquare)
	tokens, exit := lx.Tokenize("x: map[str, list[int]]", RootStack())
	assert.Equal(t, []string{
		"identifier:x", "operator::", "white: ", "type.identifier:map",
		"delimiter.square:[", "type.identifier:str", "delimiter:,", "white: ",
		"type.identifier:list", "delimiter.square:[", "type.identifier:int", "delimiter.square:]", "delimiter.square:]",
	}, describe(tokens))
	assert.Equal(t, RootStack(), exit)

	tokens, _ = lx.Tokenize("x: list<int>", RootStack())
	assert.Equal(t, []string{"identifier:x", "operator::", "white: ", "type.identifier:list", "operator:<", "identifier:int", "operator:>"}, describe(tokens))
}

func TestTokenizeAcrossLines(t *testing.T) {
	testCases := []struct {
		lines    []string
		expected [][]string
		exits    []string
	}{
		{
			lines:    []string{"x:", "int"},
			expected: [][]string{{"identifier:x", "operator::"}, {"type.identifier:int"}},
			exits:    []string{"[root, type_annotation]", "[root]"},
		},
		{
			lines:    []string{"a /* start", "still comment", "end */ b"},
			expected: [][]string{{"identifier:a", "white: ", "comment:/*", "comment: start"}, {"comment:still comment"}, {"comment:end ", "comment:*/", "white: ", "identifier:b"}},
			exits:    []string{"[root, block_comment]", "[root, block_comment]", "[root]"},
		},
		{
			lines:    []string{`"unterminated`, "x"},
			expected: [][]string{{`string.invalid:"unterminated`}, {"identifier:x"}},
			exits:    []string{"[root]", "[root]"},
		},
		{
			lines:    []string{`s = "open {value`, "next"},
			expected: [][]string{{"identifier:s", "white: ", "operator:=", "white: ", `string.invalid:"open {value`}, {"identifier:next"}},
			exits:    []string{"[root]", "[root]"},
		},
		{
			lines:    []string{"x:", "  return x"},
			expected: [][]string{{"identifier:x", "operator::"}, {"white:  ", "keyword:return", "white: ", "identifier:x"}},
			exits:    []string{"[root, type_annotation]", "[root]"},
		},
		{
			lines:    []string{"x:", "use math"},
			expected: [][]string{{"identifier:x", "operator::"}, {"keyword:use", "white: ", "namespace:math"}},
			exits:    []string{"[root, type_annotation]", "[root]"},
		},
		{
			lines:    []string{"x = math::", "foo("},
			expected: [][]string{{"identifier:x", "white: ", "operator:=", "white: ", "namespace:math", "metatag:::"}, {"function:foo", "bracket:("}},
			exits:    []string{"[root]", "[root]"},
		},
		{
			lines:    []string{"fun f(", "a: int)"},
			expected: [][]string{{"keyword:fun", "white: ", "function:f", "bracket:("}, {"identifier:a", "operator::", "white: ", "type.identifier:int", "bracket:)"}},
			exits:    []string{"[root, function_declaration, parameter_list]", "[root, function_declaration]"},
		},
	}

	for _, tc := range testCases {
		stack := RootStack()
		for i, line := range tc.lines {
			var tokens []Token
			tokens, stack = Tokenize(line, stack)
			assert.Equal(t, tc.expected[i], describe(tokens), "line %d of %q", i, tc.lines)
			assert.Equal(t, tc.exits[i], stack.String(), "line %d of %q", i, tc.lines)
		}
	}
}

// An interpolation left open at the end of a line must not leak into the next one.
func TestTokenizeUnwindsLiteralStates(t *testing.T) {
	prior := RootStack().Push(State_StringLiteral, TokenKind_StringQuote).Push(State_InterpolationExpr, TokenKind_DelimiterCurly)
	tokens, exit := Tokenize("a", prior)
	assert.Equal(t, []string{"identifier:a"}, describe(tokens))
	assert.Equal(t, RootStack(), exit)
}

var sampleLines = []string{
	"",
	"use math",
	"fun fib(n: int) -> int {",
	`    show <green> "fib({n}) = {fib(n - 1) + fib(n - 2)}"`,
	"    x: map<str, list<int>> = {}",
	"    y = 'c' + '\\x41' + r\"raw\\\" + f\"{",
	"    /* open",
	"    */ } } ) ] > >>",
	"\t# trailing comment",
	"read: str ::: .. ;;; ??? \"\\",
	"€ → ✓ ' \" \\",
	"array.push(list, 0b2 0x 0o9 1.e5 .5)",
}

var samplePriors = []StateStack{
	RootStack(),
	RootStack().Push(State_BlockComment, TokenKind_Comment),
	RootStack().Push(State_TypeAnnotation, TokenKind_Unassigned),
	RootStack().Push(State_FunctionDeclaration, TokenKind_Unassigned).Push(State_ParameterList, TokenKind_Bracket),
	RootStack().Push(State_GenericParams, TokenKind_DelimiterAngle).Push(State_GenericParams, TokenKind_DelimiterAngle),
	RootStack().Push(State_UseStatement, TokenKind_Unassigned),
	RootStack().Push(State_ShowAnnotation, TokenKind_DelimiterAngle),
	RootStack().Push(State_ReadStatement, TokenKind_Unassigned),
}

func TestTokenizeProperties(t *testing.T) {
	for _, revision := range []Revision{RevisionAngle, RevisionSquare} {
		lx := NewLexer(revision)
		for _, prior := range samplePriors {
			for _, line := range sampleLines {
				tokens, exit := lx.Tokenize(line, prior)

				// Tokens cover the line exactly, in order, without empty tokens.
				offset := 0
				var text strings.Builder
				for _, token := range tokens {
					require.Equal(t, offset, token.Start, "line %q prior %v", line, prior)
					require.Positive(t, token.Length, "line %q prior %v", line, prior)
					require.Equal(t, line[token.Start:token.End()], token.Text)
					require.NotEqual(t, TokenKind_Unassigned, token.Kind)
					text.WriteString(token.Text)
					offset = token.End()
				}
				assert.Equal(t, line, text.String())

				// Literal states never survive a line.
				assert.False(t, slices.ContainsFunc(exit.States(), State.singleLine), "line %q prior %v exit %v", line, prior, exit)
				assert.Equal(t, State_Root, exit.Frames()[0].State)

				// Same input, same output.
				again, againExit := lx.Tokenize(line, prior)
				assert.Equal(t, tokens, again)
				assert.True(t, exit.Equal(againExit))
			}
		}
	}
}

func TestTokenizeDoesNotModifyPrior(t *testing.T) {
	prior := RootStack().Push(State_ParameterList, TokenKind_Bracket)
	before := prior.Frames()
	_, _ = Tokenize(") x: int (", prior)
	assert.Equal(t, before, prior.Frames())
}

func TestLines(t *testing.T) {
	text := "x:\r\nint\n/* a\nb */"
	var exits []string
	var kinds [][]string
	for line := range Default().Lines(text) {
		exits = append(exits, line.Exit.String())
		kinds = append(kinds, describe(line.Tokens))
	}
	assert.Equal(t, []string{"[root, type_annotation]", "[root]", "[root, block_comment]", "[root]"}, exits)
	assert.Equal(t, [][]string{
		{"identifier:x", "operator::", "white:\r"},
		{"type.identifier:int"},
		{"comment:/*", "comment: a"},
		{"comment:b ", "comment:*/"},
	}, kinds)
}

func TestAllTokens(t *testing.T) {
	var positions []string
	for index, token := range Default().AllTokens("use math\n  é = 1") {
		if token.Kind != TokenKind_White {
			positions = append(positions, fmt.Sprintf("%d:%v", index, token))
		}
	}
	assert.Equal(t, []string{
		`0:keyword("use")@0`,
		`0:namespace("math")@4`,
		`1:invalid("é")@2`,
		`1:operator("=")@5`,
		`1:number("1")@7`,
	}, positions)
}

func TestParseRevision(t *testing.T) {
	for _, revision := range []Revision{RevisionAngle, RevisionSquare} {
		parsed, err := ParseRevision(revision.String())
		require.NoError(t, err)
		assert.Equal(t, revision, parsed)
	}
	_, err := ParseRevision("curly")
	assert.ErrorContains(t, err, `unknown revision "curly"`)
}

func TestClassifierSets(t *testing.T) {
	cs := Default().Sets()
	assert.True(t, cs.Namespaces.Contains("math"))
	assert.True(t, cs.Functions.Contains("sqrt"))
	assert.True(t, cs.Keywords.Contains("fun"))
	assert.True(t, cs.TypeKeywords.Contains("list"))
	assert.False(t, cs.ReadTypeKeywords.Contains("list"))
	assert.True(t, cs.IsLibraryReference("math.extra"))
	assert.False(t, cs.IsLibraryReference("models.user"))
	assert.Len(t, StandardLibrary, 50)
}

func TestTokenKindString(t *testing.T) {
	seen := make(map[string]TokenKind)
	for _, kind := range AllTokenKinds {
		name := kind.String()
		assert.NotEqual(t, "unassigned", name)
		previous, duplicate := seen[name]
		assert.False(t, duplicate, "%v and %v share the name %q", previous, kind, name)
		seen[name] = kind
	}
}

func TestTokenCursor(t *testing.T) {
	line := "a é b"
	tokens, _ := Tokenize(line, RootStack())
	last := tokens[len(tokens)-1]
	assert.Equal(t, Cursor{Line: 3, Column: 5}, last.Cursor(2, line))
	assert.Equal(t, "3:5", last.Cursor(2, line).String())
	assert.Equal(t, Cursor{Line: 2, Column: 3}, CursorInit.AdvancedBy("abc\nxy"))
}
