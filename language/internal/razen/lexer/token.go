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

import "fmt"

// TokenKind is the styleable category of a token.
type TokenKind int

const (
	// Zero value, never emitted. Used by rule actions to mean "classify using the closing kind of the current frame".
	TokenKind_Unassigned TokenKind = iota

	// A single character no rule of the active state could match. Emitting it guarantees that lexing always
	// advances.
	TokenKind_Invalid

	// One or more whitespace characters.
	TokenKind_White

	// Line comment starting with '#', or any part of a block comment.
	TokenKind_Comment

	// Reserved keyword, e.g. fun, use, if.
	TokenKind_Keyword

	// Any identifier that no classifier set claimed.
	TokenKind_Identifier

	// Primitive or collection type keyword in a type-bearing context, e.g. the "int" in "x: int".
	TokenKind_TypeIdentifier

	// Standard library namespace, e.g. the "math" in "math::sqrt".
	TokenKind_Namespace

	// Function name at a call site or in a declaration, including standard library functions.
	TokenKind_Function

	// Namespace operator "::" (or "." after a namespace), color annotations and read-type markers.
	TokenKind_Metatag

	// Numeric literals.

	TokenKind_Number
	TokenKind_NumberFloat
	TokenKind_NumberHex
	TokenKind_NumberBinary
	TokenKind_NumberOctal

	// String and character literals.

	TokenKind_String
	TokenKind_StringQuote
	TokenKind_StringRaw
	TokenKind_StringChar
	TokenKind_StringInvalid
	TokenKind_Escape
	TokenKind_EscapeInvalid

	TokenKind_Operator
	TokenKind_Bracket
	TokenKind_Delimiter

	// Braces opening and closing an interpolated expression inside a string.
	TokenKind_DelimiterCurly

	// Generic parameter list and show annotation delimiters.

	TokenKind_DelimiterAngle
	TokenKind_DelimiterSquare
)

// AllTokenKinds lists every kind the lexer can emit.
var AllTokenKinds = []TokenKind{
	TokenKind_Invalid,
	TokenKind_White,
	TokenKind_Comment,
	TokenKind_Keyword,
	TokenKind_Identifier,
	TokenKind_TypeIdentifier,
	TokenKind_Namespace,
	TokenKind_Function,
	TokenKind_Metatag,
	TokenKind_Number,
	TokenKind_NumberFloat,
	TokenKind_NumberHex,
	TokenKind_NumberBinary,
	TokenKind_NumberOctal,
	TokenKind_String,
	TokenKind_StringQuote,
	TokenKind_StringRaw,
	TokenKind_StringChar,
	TokenKind_StringInvalid,
	TokenKind_Escape,
	TokenKind_EscapeInvalid,
	TokenKind_Operator,
	TokenKind_Bracket,
	TokenKind_Delimiter,
	TokenKind_DelimiterCurly,
	TokenKind_DelimiterAngle,
	TokenKind_DelimiterSquare,
}

// String returns the dotted scope name of the kind. Themes match these names hierarchically, so "number.hex" falls
// back to "number".
func (k TokenKind) String() string {
	switch k {
	case TokenKind_Invalid:
		return "invalid"
	case TokenKind_White:
		return "white"
	case TokenKind_Comment:
		return "comment"
	case TokenKind_Keyword:
		return "keyword"
	case TokenKind_Identifier:
		return "identifier"
	case TokenKind_TypeIdentifier:
		return "type.identifier"
	case TokenKind_Namespace:
		return "namespace"
	case TokenKind_Function:
		return "function"
	case TokenKind_Metatag:
		return "metatag"
	case TokenKind_Number:
		return "number"
	case TokenKind_NumberFloat:
		return "number.float"
	case TokenKind_NumberHex:
		return "number.hex"
	case TokenKind_NumberBinary:
		return "number.binary"
	case TokenKind_NumberOctal:
		return "number.octal"
	case TokenKind_String:
		return "string"
	case TokenKind_StringQuote:
		return "string.quote"
	case TokenKind_StringRaw:
		return "string.raw"
	case TokenKind_StringChar:
		return "string.char"
	case TokenKind_StringInvalid:
		return "string.invalid"
	case TokenKind_Escape:
		return "escape"
	case TokenKind_EscapeInvalid:
		return "escape.invalid"
	case TokenKind_Operator:
		return "operator"
	case TokenKind_Bracket:
		return "bracket"
	case TokenKind_Delimiter:
		return "delimiter"
	case TokenKind_DelimiterCurly:
		return "delimiter.curly"
	case TokenKind_DelimiterAngle:
		return "delimiter.angle"
	case TokenKind_DelimiterSquare:
		return "delimiter.square"
	default:
		return "unassigned"
	}
}

// Token is a classified span of a single line. Start and Length are byte offsets into the line text.
type Token struct {
	Kind   TokenKind
	Start  int
	Length int
	Text   string
}

// End returns the offset right after the token.
func (t Token) End() int {
	return t.Start + t.Length
}

func (t Token) String() string {
	return fmt.Sprintf("%v(%q)@%d", t.Kind, t.Text, t.Start)
}
