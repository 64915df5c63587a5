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

// Package eval implements TreeWalkMatcher (spec.md §4.2): the general
// matcher that checks every active path against the current value at each
// step of a depth-first walk. Structurally this plays the role
// internal/core/eval's frame-based evaluator plays for CUE: a stack of
// active frames (here, partially matched SearchPaths rather than
// conjunct groups) is pushed on every structural descent and popped on the
// way back out.
package eval

import (
	pxerrors "ionlang.org/path/errors"
	"ionlang.org/path/pathspec"
	"ionlang.org/path/value"
)

// Matcher is the tree-walk matcher (L3a). It holds no per-match state; all
// transient state lives on the Go call stack of matchValue, mirroring the
// "Extractor is immutable and shareable" guarantee of spec.md §5.
type Matcher[C any] struct {
	paths []pathspec.SearchPath[C]
	cfg   pathspec.ExtractorConfig
}

// New returns a Matcher over paths under the given configuration.
func New[C any](paths []pathspec.SearchPath[C], cfg pathspec.ExtractorConfig) *Matcher[C] {
	return &Matcher[C]{
		paths: append([]pathspec.SearchPath[C](nil), paths...),
		cfg:   cfg,
	}
}

// MatchStream advances cursor through successive top-level values and runs
// the matcher over each (spec.md §4.2). userContext is threaded into every
// callback invocation unchanged.
func (m *Matcher[C]) MatchStream(cursor value.Cursor, userContext C) error {
	if cursor.Depth() != 0 && !m.cfg.MatchRelativePaths {
		return pxerrors.New(pxerrors.Precondition, nil, "cursor is at depth %d; MatchRelativePaths is not set", cursor.Depth())
	}
	startDepth := cursor.Depth()
	tr := newTracker(m.paths)

	pos := 0
	for {
		if _, ok := cursor.Next(); !ok {
			break
		}
		residual, err := m.matchValue(cursor, tr, startDepth, pos, userContext)
		pos++
		if err != nil {
			return err
		}
		if residual > 0 {
			break
		}
	}
	return nil
}

// MatchCurrentValue runs the matcher once against the value the cursor is
// already positioned on. On return the cursor sits on the same value at the
// same depth (spec.md §4.2).
func (m *Matcher[C]) MatchCurrentValue(cursor value.Cursor, userContext C) error {
	if _, ok := cursor.Type(); !ok {
		return pxerrors.New(pxerrors.Precondition, nil, "MatchCurrentValue requires the cursor to be positioned on a value")
	}
	startDepth := cursor.Depth()
	tr := newTracker(m.paths)
	_, err := m.matchValue(cursor, tr, startDepth, 0, userContext)
	return err
}

// matchValue implements one step of the match_value algorithm of spec.md
// §4.2. cursor is already positioned on the value to examine; position is
// its 0-based index within its immediate parent container (or the running
// top-level counter, for a value with no parent in this match).
//
// The return value is the step-out residual as seen by the caller that is
// iterating this value's siblings: >0 means stop iterating immediately and,
// after doing so, propagate (residual-1) to whichever call is iterating
// *its* siblings in turn. Each such propagation hop consumes exactly one
// unit of the originating callback's step-out count, per spec.md §9's "each
// recursion level consumes one unit of N."
func (m *Matcher[C]) matchValue(cursor value.Cursor, tr *tracker[C], startDepth, position int, userContext C) (int, error) {
	kind, ok := cursor.Type()
	if !ok {
		return 0, nil
	}
	d := cursor.Depth() - startDepth
	inStruct := cursor.IsInStruct()
	fieldName, _ := cursor.FieldName()
	annotations := cursor.Annotations()

	ctx := &pathspec.MatchContext{
		Reader:               cursor,
		PathComponentIndex:   d,
		ReaderContainerIndex: position,
		Annotations:          annotations,
		Config:               m.cfg,
	}

	var nextFrame []pathspec.SearchPath[C]
	residual := 0
	for _, path := range tr.top() {
		if !path.PartialMatchAt(m.cfg, d, inStruct, fieldName, position, annotations) {
			continue
		}
		if d == path.Size() {
			stepOut, err := m.invoke(cursor, path.Callback, ctx, userContext, d)
			if err != nil {
				return 0, err
			}
			if stepOut > residual {
				residual = stepOut
			}
			continue
		}
		nextFrame = append(nextFrame, path)
	}

	if kind.IsContainer() && len(nextFrame) > 0 {
		tr.push(nextFrame)
		if err := cursor.StepIn(); err != nil {
			tr.pop()
			return 0, err
		}

		pos := 0
		for {
			if _, ok := cursor.Next(); !ok {
				break
			}
			childResidual, err := m.matchValue(cursor, tr, startDepth, pos, userContext)
			pos++
			if err != nil {
				cursor.StepOut()
				tr.pop()
				return 0, err
			}
			if childResidual > 0 {
				if p := childResidual - 1; p > residual {
					residual = p
				}
				break
			}
		}

		if err := cursor.StepOut(); err != nil {
			tr.pop()
			return 0, err
		}
		tr.pop()
	}

	return residual, nil
}

// invoke runs cb, enforcing the callback invariants of spec.md §4.2: the
// cursor must be left at the depth it was called at, and the requested
// step-out must not exceed the value's relative depth.
func (m *Matcher[C]) invoke(cursor value.Cursor, cb pathspec.Callback[C], ctx *pathspec.MatchContext, userContext C, relDepth int) (int, error) {
	depthBefore := cursor.Depth()
	stepOut, err := cb(ctx, userContext)
	if err != nil {
		return 0, err
	}
	if cursor.Depth() != depthBefore {
		return 0, pxerrors.New(pxerrors.CallbackContract, nil, "callback left the cursor at depth %d, expected %d", cursor.Depth(), depthBefore)
	}
	if stepOut < 0 {
		return 0, pxerrors.New(pxerrors.CallbackContract, nil, "callback returned negative step-out %d", stepOut)
	}
	if stepOut > relDepth {
		return 0, pxerrors.New(pxerrors.CallbackContract, nil, "callback step-out %d exceeds relative depth %d", stepOut, relDepth)
	}
	return stepOut, nil
}
