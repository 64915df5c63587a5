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

// Package compile implements FsmBuilder and FsmMatcher (spec.md §4.3): a
// compiled, table-dispatched matcher over the restricted subset of
// SearchPaths that fold cleanly into a single-kind-per-node transition
// graph. Structurally this mirrors internal/core/compile's job of folding
// CUE syntax into a closed adt.Expr graph, rejecting shapes it cannot
// represent with a typed, catchable error so callers can fall back.
package compile

import (
	pxerrors "ionlang.org/path/errors"
	"ionlang.org/path/pathspec"
	"ionlang.org/path/value"
)

// Matcher is the FSM matcher (L3b). Like eval.Matcher it holds no per-match
// state once built.
type Matcher[C any] struct {
	root         *FsmNode[C]
	cfg          pathspec.ExtractorConfig
	strictTyping bool
}

// Compile folds paths into a transition graph under cfg and returns a ready
// Matcher, or an *errors.PathExtractionError of kind FsmBuild if any path
// cannot be compiled (spec.md §4.3's build-time rejections). strictTyping
// enables the runtime type checks of spec.md §4.3's strict-typing mode.
func Compile[C any](paths []pathspec.SearchPath[C], cfg pathspec.ExtractorConfig, strictTyping bool) (*Matcher[C], error) {
	b := NewBuilder[C](cfg)
	for _, p := range paths {
		if err := b.Add(p); err != nil {
			return nil, err
		}
	}
	return &Matcher[C]{root: b.Root(), cfg: cfg, strictTyping: strictTyping}, nil
}

// MatchStream advances cursor through successive top-level values and runs
// match_current_value's algorithm over each (spec.md §4.3).
func (m *Matcher[C]) MatchStream(cursor value.Cursor, userContext C) error {
	if cursor.Depth() != 0 && !m.cfg.MatchRelativePaths {
		return pxerrors.New(pxerrors.Precondition, nil, "cursor is at depth %d; MatchRelativePaths is not set", cursor.Depth())
	}
	startDepth := cursor.Depth()
	for {
		if _, ok := cursor.Next(); !ok {
			break
		}
		residual, err := m.step(cursor, m.root, -1, startDepth, userContext)
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
// already positioned on.
func (m *Matcher[C]) MatchCurrentValue(cursor value.Cursor, userContext C) error {
	if _, ok := cursor.Type(); !ok {
		return pxerrors.New(pxerrors.Precondition, nil, "MatchCurrentValue requires the cursor to be positioned on a value")
	}
	startDepth := cursor.Depth()
	_, err := m.step(cursor, m.root, -1, startDepth, userContext)
	return err
}

// step implements spec.md §4.3's match_current_value(cursor, ctx) algorithm:
// look up the transition out of node using the current value's structural
// position, invoke its callback if any, then recurse into its children
// unless the matched state is terminal.
func (m *Matcher[C]) step(cursor value.Cursor, node *FsmNode[C], position int, startDepth int, userContext C) (int, error) {
	kind, ok := cursor.Type()
	if !ok {
		return 0, nil
	}
	atRoot := position == -1
	inStruct := cursor.IsInStruct()
	fieldName, _ := cursor.FieldName()
	annotations := cursor.Annotations()

	child := node.transition(atRoot, inStruct, fieldName, position, annotations)
	if child == nil {
		return 0, nil
	}

	residual := 0
	if child.hasCallback {
		relDepth := cursor.Depth() - startDepth
		stepOut, err := m.invoke(cursor, child.callback, userContext, relDepth)
		if err != nil {
			return 0, err
		}
		residual = stepOut
	}

	if !child.isTerminal() && kind != value.NullKind && m.strictTyping && !child.permitsContainerKind(kind) {
		return 0, pxerrors.New(pxerrors.StrictTyping, nil, "transition into a %v state from a %v value", child.kind, kind)
	}

	if kind.IsContainer() && !child.isTerminal() {
		if err := cursor.StepIn(); err != nil {
			return 0, err
		}
		pos := 0
		for {
			if _, ok := cursor.Next(); !ok {
				break
			}
			childResidual, err := m.step(cursor, child, pos, startDepth, userContext)
			pos++
			if err != nil {
				cursor.StepOut()
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
			return 0, err
		}
	}
	return residual, nil
}

// invoke runs cb, enforcing the same callback-contract invariants as
// internal/core/eval.
func (m *Matcher[C]) invoke(cursor value.Cursor, cb pathspec.Callback[C], userContext C, relDepth int) (int, error) {
	ctx := &pathspec.MatchContext{
		Reader:             cursor,
		PathComponentIndex: relDepth,
		Config:             m.cfg,
		Annotations:        cursor.Annotations(),
	}
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
