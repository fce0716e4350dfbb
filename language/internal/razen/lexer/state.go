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
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// State is a named lexical context. Each state owns an ordered rule list.
type State int

const (
	State_Root State = iota
	State_BlockComment
	State_StringLiteral
	State_CharLiteral
	State_TypeAnnotationColon
	State_TypeAnnotation
	State_GenericParams
	State_ParameterList
	State_FunctionDeclaration
	State_UseStatement
	State_InterpolationExpr
	State_NamespaceAccess
	State_LibraryMemberAccess
	State_ShowArguments
	State_ShowAnnotation
	State_ReadStatement
	State_ReadAnnotation

	stateCount
)

func (s State) String() string {
	switch s {
	case State_Root:
		return "root"
	case State_BlockComment:
		return "block_comment"
	case State_StringLiteral:
		return "string_literal"
	case State_CharLiteral:
		return "char_literal"
	case State_TypeAnnotationColon:
		return "type_annotation_colon"
	case State_TypeAnnotation:
		return "type_annotation"
	case State_GenericParams:
		return "generic_params"
	case State_ParameterList:
		return "parameter_list"
	case State_FunctionDeclaration:
		return "function_declaration"
	case State_UseStatement:
		return "use_statement"
	case State_InterpolationExpr:
		return "interpolation_expr"
	case State_NamespaceAccess:
		return "namespace_access"
	case State_LibraryMemberAccess:
		return "library_member_access"
	case State_ShowArguments:
		return "show_arguments"
	case State_ShowAnnotation:
		return "show_annotation"
	case State_ReadStatement:
		return "read_statement"
	case State_ReadAnnotation:
		return "read_annotation"
	default:
		return "unknown"
	}
}

// singleLine reports whether the state must not survive the end of a line. Literals cannot span lines and namespace
// access only applies to the word right after the operator, so a line ending inside one unwinds back below it and
// the next line starts clean.
func (s State) singleLine() bool {
	switch s {
	case State_StringLiteral, State_CharLiteral, State_InterpolationExpr, State_NamespaceAccess, State_LibraryMemberAccess:
		return true
	default:
		return false
	}
}

// Frame is a single entry of a StateStack. Close is the kind given to the delimiter that ends the frame, e.g. the
// closing quote of a string is TokenKind_StringQuote rather than plain string text.
type Frame struct {
	State State
	Close TokenKind
}

// StateStack is an immutable stack of lexer states. The bottom is always State_Root and it is never empty; the zero
// value is the stack holding only the root state. Push and Pop return new stacks and never modify the receiver, so a
// snapshot kept for a line stays valid while later lines are lexed.
type StateStack struct {
	// frames above the implicit root frame
	above []Frame
}

// RootStack returns the stack every document starts with.
func RootStack() StateStack {
	return StateStack{}
}

// Len returns the number of frames including the root.
func (s StateStack) Len() int {
	return 1 + len(s.above)
}

// Top returns the active frame.
func (s StateStack) Top() Frame {
	if len(s.above) == 0 {
		return Frame{State: State_Root}
	}
	return s.above[len(s.above)-1]
}

// Push returns a copy of the stack extended with a new frame.
func (s StateStack) Push(state State, closing TokenKind) StateStack {
	next := make([]Frame, len(s.above), len(s.above)+1)
	copy(next, s.above)
	return StateStack{above: append(next, Frame{State: state, Close: closing})}
}

// Pop returns the stack without its top frame. Popping the root is a no-op: unbalanced input never underflows.
func (s StateStack) Pop() StateStack {
	if len(s.above) == 0 {
		return s
	}
	return s.truncate(len(s.above) - 1)
}

// truncate keeps the root and the first n frames above it. A stack holding only the root is always the zero value, so
// stacks compare equal with reflect.DeepEqual as well as with Equal.
func (s StateStack) truncate(n int) StateStack {
	switch {
	case n >= len(s.above):
		return s
	case n <= 0:
		return StateStack{}
	default:
		return StateStack{above: s.above[:n:n]}
	}
}

// unwindSingleLine drops the lowest single-line frame and everything above it.
func (s StateStack) unwindSingleLine() StateStack {
	for i, frame := range s.above {
		if frame.State.singleLine() {
			return s.truncate(i)
		}
	}
	return s
}

// Frames returns all frames, bottom first, starting with the root.
func (s StateStack) Frames() []Frame {
	return append([]Frame{{State: State_Root}}, s.above...)
}

// States returns the state of every frame, bottom first.
func (s StateStack) States() []State {
	states := make([]State, 0, s.Len())
	for _, frame := range s.Frames() {
		states = append(states, frame.State)
	}
	return states
}

// Equal reports whether both stacks hold the same frames.
func (s StateStack) Equal(other StateStack) bool {
	return slices.Equal(s.above, other.above)
}

// Fingerprint returns a hash of the stack contents. Equal stacks have equal fingerprints, which lets callers compare
// cached exit states without walking the frames.
func (s StateStack) Fingerprint() uint64 {
	digest := xxhash.New()
	var buf [8]byte
	for _, frame := range s.above {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(frame.State))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(frame.Close))
		_, _ = digest.Write(buf[:])
	}
	return digest.Sum64()
}

func (s StateStack) String() string {
	names := make([]string, 0, s.Len())
	for _, state := range s.States() {
		names = append(names, state.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
