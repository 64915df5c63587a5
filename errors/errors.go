// Copyright 2018 The CUE Authors
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

// Package errors defines the single error type the matcher and parser
// raise, categorized by Kind, modeled on the shared cue/errors package's
// Error interface.
package errors

import (
	"errors"
	"fmt"
)

// Kind categorizes a PathExtractionError per spec.md §7.
type Kind int

const (
	// Configuration covers malformed path expressions and invalid builder
	// arguments: null/empty expressions, wrong outer type, unknown
	// component kind, nil callback, nil components, nil annotations.
	Configuration Kind = iota
	// Precondition covers invalid cursor state at call time: a cursor at
	// depth > 0 without match_relative_paths, or match_current_value
	// called with the cursor not on a value.
	Precondition
	// CallbackContract covers a user callback breaking its invariants:
	// leaving the cursor at the wrong depth, or requesting a step-out
	// larger than the current relative depth.
	CallbackContract
	// StrictTyping covers an FSM transition attempted from a value kind
	// the target node does not permit.
	StrictTyping
	// FsmBuild covers FsmBuilder rejecting a SearchPath it cannot compile
	// (UnsupportedPathExpression in the spec's vocabulary).
	FsmBuild
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Precondition:
		return "precondition"
	case CallbackContract:
		return "callback contract"
	case StrictTyping:
		return "strict typing"
	case FsmBuild:
		return "fsm build"
	default:
		return "unknown"
	}
}

// PathExtractionError is the single error type the engine raises. Is and As
// work the usual way via Unwrap.
type PathExtractionError struct {
	Kind Kind
	msg  string
	err  error
}

func (e *PathExtractionError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *PathExtractionError) Unwrap() error { return e.err }

// New creates a PathExtractionError of the given kind with a formatted
// message, optionally wrapping a cause.
func New(kind Kind, cause error, format string, args ...any) *PathExtractionError {
	return &PathExtractionError{Kind: kind, msg: fmt.Sprintf(format, args...), err: cause}
}

// Is reports whether err is a PathExtractionError of the given kind.
func Is(err error, kind Kind) bool {
	var pe *PathExtractionError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Kind == kind
}

// UnsupportedPathExpression is the specific FsmBuild-kind error raised when
// FsmBuilder cannot compile a registered SearchPath; the non-strict builder
// catches errors of this kind and falls back to the tree-walk matcher.
func UnsupportedPathExpression(format string, args ...any) *PathExtractionError {
	return New(FsmBuild, nil, format, args...)
}
