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

package path

import (
	"ionlang.org/path/internal/core/compile"
	"ionlang.org/path/internal/core/eval"
	"ionlang.org/path/pathspec"
	"ionlang.org/path/value"
)

// Extractor runs every search path registered on the Builder that produced
// it against a value.Cursor. It is the analogue of cue.Context: built once
// by Builder.Build / BuildStrict / BuildLegacy, immutable, and safe to use
// concurrently from multiple goroutines as long as each Match call
// uses its own Cursor and userContext.
//
// Exactly one of its two backing matchers is set: the compiled FSM matcher
// (fsm) or the general tree-walk matcher (tree). Match and MatchCurrentValue
// dispatch to whichever is present without the caller needing to know which
// one Build chose.
type Extractor[C any] struct {
	cfg  pathspec.ExtractorConfig
	fsm  *compile.Matcher[C]
	tree *eval.Matcher[C]
}

// Match advances cursor through successive top-level values, running every
// registered search path against each (spec.md §4). userContext is threaded
// through to every Callback invocation unchanged; callers with no use for it
// pass struct{}{}.
func (e *Extractor[C]) Match(cursor value.Cursor, userContext C) error {
	if e.fsm != nil {
		return e.fsm.MatchStream(cursor, userContext)
	}
	return e.tree.MatchStream(cursor, userContext)
}

// MatchCurrentValue runs every registered search path once against the
// value cursor is already positioned on, without advancing past it. Useful
// when the caller has already stepped to a value by some other means (for
// example, dispatching on a discriminator field) and wants path matching to
// resume relative to that position.
func (e *Extractor[C]) MatchCurrentValue(cursor value.Cursor, userContext C) error {
	if e.fsm != nil {
		return e.fsm.MatchCurrentValue(cursor, userContext)
	}
	return e.tree.MatchCurrentValue(cursor, userContext)
}

// Config returns the ExtractorConfig the Builder was configured with.
func (e *Extractor[C]) Config() pathspec.ExtractorConfig {
	return e.cfg
}

// Compiled reports whether Build (or BuildStrict) produced an Extractor
// backed by the table-dispatched FSM matcher rather than the general
// tree-walk matcher. Mainly useful for tests and diagnostics.
func (e *Extractor[C]) Compiled() bool {
	return e.fsm != nil
}
