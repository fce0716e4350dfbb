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
	"regexp"
	"slices"
	"strings"

	"github.com/EngFlow/razen/internal/collections"
)

type (
	// Abstraction over regexp.Regexp allows providing alternative implementations, e.g. for lookahead which RE2
	// does not support.
	matcher interface {
		// Return the length of the match anchored at the beginning of input, or -1 if there is none.
		matchPrefix(input string) int
	}

	// Matcher for fixed strings. No need to use regexp.Regexp for such simple cases.
	fixedString string

	// Regular expression anchored at the beginning of the input.
	prefixRegexp struct {
		re *regexp.Regexp
	}

	// Matches body only if the matched word passes accept and the text right after it passes follow. Both
	// predicates are optional.
	lookahead struct {
		body   matcher
		accept func(word string) bool
		follow func(rest string) bool
	}

	// Matches without consuming anything when body matches a word passing accept. Lets a state hand the word back
	// to the state below it.
	peek struct {
		body   matcher
		accept func(word string) bool
	}

	// Always matches, consuming nothing. Used for state transitions that fire when nothing else in a state applies.
	emptyMatch struct{}

	// Represents a way of matching and classifying a piece of input in a given state.
	matchingRule struct {
		matchingImpl matcher
		action       action
	}
)

func (fs fixedString) matchPrefix(input string) int {
	if strings.HasPrefix(input, string(fs)) {
		return len(fs)
	}
	return -1
}

func pattern(expr string) prefixRegexp {
	return prefixRegexp{re: regexp.MustCompile(`^(?:` + expr + `)`)}
}

func (p prefixRegexp) matchPrefix(input string) int {
	if loc := p.re.FindStringIndex(input); loc != nil {
		return loc[1]
	}
	return -1
}

func (la lookahead) matchPrefix(input string) int {
	n := la.body.matchPrefix(input)
	if n <= 0 {
		return -1
	}
	if la.accept != nil && !la.accept(input[:n]) {
		return -1
	}
	if la.follow != nil && !la.follow(input[n:]) {
		return -1
	}
	return n
}

func (p peek) matchPrefix(input string) int {
	n := p.body.matchPrefix(input)
	if n <= 0 || !p.accept(input[:n]) {
		return -1
	}
	return 0
}

func (emptyMatch) matchPrefix(string) int {
	return 0
}

// stackOp is the effect an action has on the state stack.
type stackOp int

const (
	opNone stackOp = iota
	opPush
	opPop
	opPopThenPush
)

type transition struct {
	op    stackOp
	next  State
	close TokenKind
}

func (tr transition) apply(stack StateStack) StateStack {
	switch tr.op {
	case opPush:
		return stack.Push(tr.next, tr.close)
	case opPop:
		return stack.Pop()
	case opPopThenPush:
		return stack.Pop().Push(tr.next, tr.close)
	default:
		return stack
	}
}

// action is a tagged variant: Emit, EmitAndPush, EmitAndPop, EmitAndPopPush, a silent Pop, or ClassifyBySet when
// cases is not empty. TokenKind_Unassigned as kind emits the closing kind of the frame being left.
type action struct {
	kind TokenKind
	transition
	silent bool

	// ClassifyBySet: the first case whose set contains the (keyed) text decides; the action itself is the default.
	cases []classifyCase
	key   func(text string) string
}

type classifyCase struct {
	words collections.Set[string]
	then  action
}

func emit(kind TokenKind) action {
	return action{kind: kind}
}

func emitAndPush(kind TokenKind, next State, closing TokenKind) action {
	return action{kind: kind, transition: transition{op: opPush, next: next, close: closing}}
}

func emitAndPop(kind TokenKind) action {
	return action{kind: kind, transition: transition{op: opPop}}
}

func emitAndPopPush(kind TokenKind, next State, closing TokenKind) action {
	return action{kind: kind, transition: transition{op: opPopThenPush, next: next, close: closing}}
}

// closeFrame emits the closing kind recorded when the current frame was pushed and pops it.
func closeFrame() action {
	return emitAndPop(TokenKind_Unassigned)
}

func pop() action {
	return action{transition: transition{op: opPop}, silent: true}
}

func classify(fallback action, cases ...classifyCase) action {
	fallback.cases = cases
	return fallback
}

func classifyKeyed(key func(string) string, fallback action, cases ...classifyCase) action {
	fallback.cases = cases
	fallback.key = key
	return fallback
}

func when(words collections.Set[string], then action) classifyCase {
	return classifyCase{words: words, then: then}
}

func (a action) resolve(text string) (TokenKind, transition) {
	key := text
	if a.key != nil {
		key = a.key(text)
	}
	for _, c := range a.cases {
		if c.words.Contains(key) {
			return c.then.kind, c.then.transition
		}
	}
	return a.kind, a.transition
}

// Revision selects between the two generic parameter syntaxes of the language.
type Revision int

const (
	// Generic parameters in angle brackets: list<int>.
	RevisionAngle Revision = iota
	// Generic parameters in square brackets: list[int].
	RevisionSquare
)

func (r Revision) String() string {
	switch r {
	case RevisionSquare:
		return "square"
	default:
		return "angle"
	}
}

// ParseRevision accepts the names returned by Revision.String.
func ParseRevision(name string) (Revision, error) {
	switch name {
	case "angle":
		return RevisionAngle, nil
	case "square":
		return RevisionSquare, nil
	default:
		return RevisionAngle, fmt.Errorf("unknown revision %q, expected angle or square", name)
	}
}

func (r Revision) genericDelimiters() (opener, closer fixedString, kind TokenKind) {
	if r == RevisionSquare {
		return "[", "]", TokenKind_DelimiterSquare
	}
	return "<", ">", TokenKind_DelimiterAngle
}

const escapes = `\\(?:[abfnrtv0\\"'{}]|x[0-9A-Fa-f]{2}|u[0-9A-Fa-f]{4}|U[0-9A-Fa-f]{8})`

var (
	identifier       = pattern(`[a-zA-Z_]\w*`)
	dottedIdentifier = pattern(`[a-zA-Z_]\w*(?:\.[a-zA-Z_]\w*)*`)
	whitespace       = pattern(`[ \t\r\n]+`)
)

func isIdentifierStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func followedByNamespaceOperator(rest string) bool {
	return strings.HasPrefix(rest, "::") || (len(rest) > 1 && rest[0] == '.' && isIdentifierStart(rest[1]))
}

// ':' but not '::', optionally preceded by blanks.
func followedByColon(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return strings.HasPrefix(rest, ":") && !strings.HasPrefix(rest, "::")
}

func followedBy(prefix string) func(string) bool {
	return func(rest string) bool {
		return strings.HasPrefix(strings.TrimLeft(rest, " \t"), prefix)
	}
}

func firstSegment(path string) string {
	segment, _, _ := strings.Cut(path, ".")
	return segment
}

// ruleTable holds the ordered rules of every state. Order matters: the first rule matching at the current offset
// wins, so e.g. comments must come before operators and lookahead identifier rules before the plain identifier rule.
type ruleTable [stateCount][]matchingRule

func newRuleTable(cs *ClassifierSets, revision Revision) *ruleTable {
	genericOpen, genericClose, genericKind := revision.genericDelimiters()
	notKeyword := func(word string) bool { return !cs.Keywords.Contains(word) }
	notCall := func(rest string) bool { return !followedBy("(")(rest) }
	// Reserved words end a type, root classifies them and pushes their states.
	keywordAhead := peek{body: identifier, accept: cs.Keywords.Contains}
	typeName := func(then func(TokenKind) action) action {
		return classify(then(TokenKind_Identifier), when(cs.TypeKeywords, then(TokenKind_TypeIdentifier)))
	}

	var table ruleTable
	table[State_Root] = []matchingRule{
		{matchingImpl: pattern(`#.*`), action: emit(TokenKind_Comment)},
		{matchingImpl: fixedString("/*"), action: emitAndPush(TokenKind_Comment, State_BlockComment, TokenKind_Comment)},

		{matchingImpl: whitespace, action: emit(TokenKind_White)},

		{matchingImpl: pattern(`r"[^"]*"`), action: emit(TokenKind_StringRaw)},
		{matchingImpl: pattern(`r"[^"]*$`), action: emit(TokenKind_StringInvalid)},
		{matchingImpl: pattern(`f?"(?:[^"\\]|\\.|\\$)*$`), action: emit(TokenKind_StringInvalid)},
		{matchingImpl: pattern(`f?"`), action: emitAndPush(TokenKind_StringQuote, State_StringLiteral, TokenKind_StringQuote)},

		{matchingImpl: pattern(`'(?:[^'\\]|\\.|\\$)*$`), action: emit(TokenKind_StringInvalid)},
		{matchingImpl: fixedString("'"), action: emitAndPush(TokenKind_StringChar, State_CharLiteral, TokenKind_StringChar)},

		{matchingImpl: pattern(`\d*\.\d+(?:[eE][-+]?\d+)?|\d+[eE][-+]?\d+`), action: emit(TokenKind_NumberFloat)},
		{matchingImpl: pattern(`0[xX][0-9a-fA-F_]+`), action: emit(TokenKind_NumberHex)},
		{matchingImpl: pattern(`0[bB][01_]+`), action: emit(TokenKind_NumberBinary)},
		{matchingImpl: pattern(`0[oO][0-7_]+`), action: emit(TokenKind_NumberOctal)},
		{matchingImpl: pattern(`\d+`), action: emit(TokenKind_Number)},

		{
			matchingImpl: lookahead{body: identifier, accept: cs.Namespaces.Contains, follow: followedByNamespaceOperator},
			action:       emitAndPush(TokenKind_Namespace, State_NamespaceAccess, TokenKind_Unassigned),
		},
		{matchingImpl: fixedString("::"), action: emitAndPush(TokenKind_Metatag, State_LibraryMemberAccess, TokenKind_Unassigned)},

		{
			matchingImpl: lookahead{body: identifier, accept: notKeyword, follow: followedByColon},
			action:       emitAndPush(TokenKind_Identifier, State_TypeAnnotationColon, TokenKind_Unassigned),
		},

		{
			matchingImpl: lookahead{body: identifier, follow: followedBy("(")},
			action: classify(emit(TokenKind_Function),
				when(collections.SetOf("fun"), emitAndPush(TokenKind_Keyword, State_FunctionDeclaration, TokenKind_Unassigned)),
				when(cs.Keywords, emit(TokenKind_Keyword)),
				when(cs.Functions, emit(TokenKind_Function)),
			),
		},

		{
			matchingImpl: identifier,
			action: classify(emit(TokenKind_Identifier),
				when(collections.SetOf("use", "import"), emitAndPush(TokenKind_Keyword, State_UseStatement, TokenKind_Unassigned)),
				when(collections.SetOf("show"), emitAndPush(TokenKind_Keyword, State_ShowArguments, TokenKind_Unassigned)),
				when(collections.SetOf("fun"), emitAndPush(TokenKind_Keyword, State_FunctionDeclaration, TokenKind_Unassigned)),
				when(collections.SetOf("read"), emitAndPush(TokenKind_Keyword, State_ReadStatement, TokenKind_Unassigned)),
				when(cs.Keywords, emit(TokenKind_Keyword)),
			),
		},

		{matchingImpl: pattern(`[{}()\[\]]`), action: emit(TokenKind_Bracket)},
		{matchingImpl: pattern(`[=><!~?:&|+\-*/^%]+`), action: classify(emit(TokenKind_Delimiter), when(cs.Operators, emit(TokenKind_Operator)))},
		{matchingImpl: pattern(`[;,.]`), action: emit(TokenKind_Delimiter)},
	}

	table[State_BlockComment] = []matchingRule{
		{matchingImpl: pattern(`[^/*]+`), action: emit(TokenKind_Comment)},
		{matchingImpl: fixedString("/*"), action: emitAndPush(TokenKind_Comment, State_BlockComment, TokenKind_Comment)},
		{matchingImpl: fixedString("*/"), action: emitAndPop(TokenKind_Comment)},
		{matchingImpl: pattern(`[/*]`), action: emit(TokenKind_Comment)},
	}

	table[State_StringLiteral] = []matchingRule{
		// The rest of the line holds no closing quote: the literal is unterminated.
		{matchingImpl: pattern(`(?:[^"\\{]|\\.|\\$)+$`), action: emitAndPop(TokenKind_StringInvalid)},
		{matchingImpl: pattern(`[^"\\{]+`), action: emit(TokenKind_String)},
		{matchingImpl: pattern(escapes), action: emit(TokenKind_Escape)},
		{matchingImpl: pattern(`\\.`), action: emit(TokenKind_EscapeInvalid)},
		{matchingImpl: fixedString("{"), action: emitAndPush(TokenKind_DelimiterCurly, State_InterpolationExpr, TokenKind_DelimiterCurly)},
		{matchingImpl: fixedString(`"`), action: closeFrame()},
	}

	table[State_CharLiteral] = []matchingRule{
		{matchingImpl: pattern(escapes), action: emit(TokenKind_Escape)},
		{matchingImpl: pattern(`\\.`), action: emit(TokenKind_EscapeInvalid)},
		{matchingImpl: pattern(`[^'\\]+`), action: emit(TokenKind_StringChar)},
		{matchingImpl: fixedString("'"), action: closeFrame()},
	}

	// Expressions inside "{...}" use the full root grammar. Nested braces get their own frame so that only the
	// brace matching the opening one returns to the string body.
	table[State_InterpolationExpr] = slices.Concat([]matchingRule{
		{matchingImpl: fixedString("}"), action: closeFrame()},
		{matchingImpl: fixedString("{"), action: emitAndPush(TokenKind_Bracket, State_InterpolationExpr, TokenKind_Bracket)},
	}, table[State_Root])

	table[State_TypeAnnotationColon] = []matchingRule{
		{matchingImpl: pattern(`[ \t]+`), action: emit(TokenKind_White)},
		{matchingImpl: fixedString(":"), action: emitAndPopPush(TokenKind_Operator, State_TypeAnnotation, TokenKind_Unassigned)},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	table[State_TypeAnnotation] = []matchingRule{
		{matchingImpl: whitespace, action: emit(TokenKind_White)},
		{matchingImpl: keywordAhead, action: pop()},
		{matchingImpl: lookahead{body: identifier, follow: followedBy(string(genericOpen))}, action: typeName(emit)},
		{matchingImpl: identifier, action: typeName(emitAndPop)},
		{matchingImpl: genericOpen, action: emitAndPopPush(genericKind, State_GenericParams, genericKind)},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	table[State_GenericParams] = []matchingRule{
		{matchingImpl: whitespace, action: emit(TokenKind_White)},
		{matchingImpl: genericClose, action: closeFrame()},
		{matchingImpl: genericOpen, action: emitAndPush(genericKind, State_GenericParams, genericKind)},
		{matchingImpl: keywordAhead, action: pop()},
		{matchingImpl: identifier, action: typeName(emit)},
		{matchingImpl: fixedString(","), action: emit(TokenKind_Delimiter)},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	table[State_FunctionDeclaration] = []matchingRule{
		{matchingImpl: whitespace, action: emit(TokenKind_White)},
		{matchingImpl: identifier, action: emit(TokenKind_Function)},
		{matchingImpl: fixedString("("), action: emitAndPush(TokenKind_Bracket, State_ParameterList, TokenKind_Bracket)},
		{matchingImpl: fixedString("->"), action: emitAndPopPush(TokenKind_Operator, State_TypeAnnotation, TokenKind_Unassigned)},
		{matchingImpl: fixedString(":"), action: emitAndPopPush(TokenKind_Operator, State_TypeAnnotation, TokenKind_Unassigned)},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	// Default values are expressions, so anything that is not a parameter name falls through to the root grammar.
	// Only the closing parenthesis leaves the list.
	table[State_ParameterList] = slices.Concat([]matchingRule{
		{matchingImpl: fixedString("("), action: emitAndPush(TokenKind_Bracket, State_ParameterList, TokenKind_Bracket)},
		{matchingImpl: fixedString(")"), action: closeFrame()},
		{matchingImpl: lookahead{body: identifier, accept: cs.ReceiverKeywords.Contains}, action: emit(TokenKind_Keyword)},
		{
			matchingImpl: lookahead{body: identifier, accept: notKeyword, follow: followedByColon},
			action:       emitAndPush(TokenKind_Identifier, State_TypeAnnotationColon, TokenKind_Unassigned),
		},
		{matchingImpl: lookahead{body: identifier, accept: notKeyword, follow: notCall}, action: emit(TokenKind_Identifier)},
	}, table[State_Root])

	table[State_UseStatement] = []matchingRule{
		{matchingImpl: pattern(`[ \t]+`), action: emit(TokenKind_White)},
		{
			matchingImpl: dottedIdentifier,
			action:       classifyKeyed(firstSegment, emitAndPop(TokenKind_Identifier), when(cs.Namespaces, emitAndPop(TokenKind_Namespace))),
		},
		{matchingImpl: pattern(`"(?:[^"\\]|\\.)*"`), action: emitAndPop(TokenKind_String)},
		{matchingImpl: pattern(`"(?:[^"\\]|\\.|\\$)*$`), action: emitAndPop(TokenKind_StringInvalid)},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	table[State_NamespaceAccess] = []matchingRule{
		{matchingImpl: pattern(`::|\.`), action: emitAndPopPush(TokenKind_Metatag, State_LibraryMemberAccess, TokenKind_Unassigned)},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	table[State_LibraryMemberAccess] = []matchingRule{
		{matchingImpl: identifier, action: classify(emitAndPop(TokenKind_Identifier), when(cs.Functions, emitAndPop(TokenKind_Function)))},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	table[State_ShowArguments] = []matchingRule{
		{matchingImpl: pattern(`[ \t]+`), action: emit(TokenKind_White)},
		{matchingImpl: fixedString("<"), action: emitAndPopPush(TokenKind_DelimiterAngle, State_ShowAnnotation, TokenKind_DelimiterAngle)},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	table[State_ShowAnnotation] = []matchingRule{
		{matchingImpl: pattern(`[ \t]+`), action: emit(TokenKind_White)},
		{matchingImpl: identifier, action: classify(emit(TokenKind_Identifier), when(cs.ColorKeywords, emit(TokenKind_Metatag)))},
		{matchingImpl: fixedString(","), action: emit(TokenKind_Delimiter)},
		{matchingImpl: fixedString(">"), action: closeFrame()},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	table[State_ReadStatement] = []matchingRule{
		{matchingImpl: pattern(`[ \t]+`), action: emit(TokenKind_White)},
		{matchingImpl: fixedString(":"), action: emitAndPopPush(TokenKind_Metatag, State_ReadAnnotation, TokenKind_Unassigned)},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	table[State_ReadAnnotation] = []matchingRule{
		{matchingImpl: pattern(`[ \t]+`), action: emit(TokenKind_White)},
		{
			matchingImpl: identifier,
			action:       classify(emitAndPop(TokenKind_Identifier), when(cs.ReadTypeKeywords, emitAndPop(TokenKind_TypeIdentifier))),
		},
		{matchingImpl: emptyMatch{}, action: pop()},
	}

	return &table
}
