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

package compile

import (
	"golang.org/x/text/cases"

	"ionlang.org/path/pathspec"
	"ionlang.org/path/value"
)

// foldKey canonicalizes fieldName for use as a caseInsensitiveFieldTransition
// map key, via the same golang.org/x/text/cases Unicode fold pathspec uses
// for its own case-insensitive comparisons, so the FSM and tree-walk
// matchers agree on what counts as equal under case-insensitive mode
// (spec.md §8, invariant 6).
func foldKey(fieldName string) string {
	return cases.Fold().String(fieldName)
}

// transitionKind is the single kind of child-dispatch an FsmNode may carry
// (spec.md §3: "each node may hold at most one kind of child-transition").
type transitionKind int

const (
	noTransition transitionKind = iota
	fieldTransition
	caseInsensitiveFieldTransition
	indexTransition
	wildcardTransition
	annotationsTransition
)

func (k transitionKind) String() string {
	switch k {
	case fieldTransition:
		return "field"
	case caseInsensitiveFieldTransition:
		return "case-insensitive-field"
	case indexTransition:
		return "index"
	case wildcardTransition:
		return "wildcard"
	case annotationsTransition:
		return "annotations"
	default:
		return "terminal"
	}
}

// annotationEntry is one (tuple, node) pair of an Annotations node, tried in
// registration order (spec.md §3: "matches first entry whose tuple equals
// the current value's annotation list").
type annotationEntry[C any] struct {
	tuple []string
	node  *FsmNode[C]
}

// FsmNode is one state of the compiled transition graph (spec.md §3's FSM
// data model), folded by Builder the way internal/core/compile folds CUE
// syntax into a closed adt.Expr graph: no cycles, no shared subtrees, one
// kind of outgoing transition per node.
type FsmNode[C any] struct {
	kind transitionKind

	callback    pathspec.Callback[C]
	hasCallback bool

	fieldChildren     map[string]*FsmNode[C] // keyed by foldKey for caseInsensitiveFieldTransition
	indexChildren     map[int]*FsmNode[C]
	wildcardChild     *FsmNode[C]
	annotationEntries []annotationEntry[C]
}

// isTerminal reports whether n carries no further transitions, the "no
// further transitions were registered beneath it" flag of spec.md §3.
func (n *FsmNode[C]) isTerminal() bool {
	return n.kind == noTransition
}

// permitsContainerKind reports whether strict-typing mode allows stepping
// into a container of kind k to dispatch via n's transition kind (spec.md
// §4.3): Field nodes require a struct; Index/Wildcard/Annotations nodes
// accept any container.
func (n *FsmNode[C]) permitsContainerKind(k value.Kind) bool {
	switch n.kind {
	case fieldTransition, caseInsensitiveFieldTransition:
		return k == value.StructKind
	case indexTransition, wildcardTransition, annotationsTransition:
		return k.IsContainer()
	default:
		return true
	}
}

// transition looks up the child reached from n given the current value's
// structural position, per spec.md §4.3 step 1. atRoot forces the
// annotations-only dispatch the root level uses regardless of n's kind
// (n's kind is always wildcardTransition or annotationsTransition at the
// root by construction, but the root flag keeps the contract explicit).
func (n *FsmNode[C]) transition(atRoot, inStruct bool, fieldName string, position int, annotations []string) *FsmNode[C] {
	switch n.kind {
	case wildcardTransition:
		return n.wildcardChild
	case annotationsTransition:
		for _, e := range n.annotationEntries {
			if tupleEquals(e.tuple, annotations) {
				return e.node
			}
		}
		return nil
	case fieldTransition:
		if atRoot || !inStruct {
			return nil
		}
		return n.fieldChildren[fieldName]
	case caseInsensitiveFieldTransition:
		if atRoot || !inStruct {
			return nil
		}
		return n.fieldChildren[foldKey(fieldName)]
	case indexTransition:
		if atRoot {
			return nil
		}
		child, ok := n.indexChildren[position]
		if !ok {
			return nil
		}
		return child
	default:
		return nil
	}
}

func tupleEquals(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
