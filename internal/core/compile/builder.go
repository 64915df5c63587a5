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
	pxerrors "ionlang.org/path/errors"
	"ionlang.org/path/pathspec"
)

// Builder folds a set of SearchPaths into a closed FsmNode tree (spec.md
// §4.3), the FsmBuilder role. It plays the part internal/core/compile plays
// for CUE syntax: normalize, fold into an existing mutable graph reusing
// shared prefixes, and reject shapes the target representation cannot
// express with a typed, catchable error.
type Builder[C any] struct {
	root *FsmNode[C]
	cfg  pathspec.ExtractorConfig
}

// NewBuilder returns an empty Builder under the given configuration.
func NewBuilder[C any](cfg pathspec.ExtractorConfig) *Builder[C] {
	return &Builder[C]{root: &FsmNode[C]{}, cfg: cfg}
}

// Add folds one SearchPath into the graph. It returns *errors.PathExtractionError
// of kind FsmBuild (UnsupportedPathExpression) if path cannot be compiled.
func (b *Builder[C]) Add(path pathspec.SearchPath[C]) error {
	top := topLevelStep(path.TopAnnotations)
	cur, err := b.fold(b.root, top)
	if err != nil {
		return err
	}
	for _, comp := range path.Components {
		cur, err = b.fold(cur, comp)
		if err != nil {
			return err
		}
	}
	if cur.hasCallback {
		return pxerrors.UnsupportedPathExpression("two search paths collide on the same FSM state")
	}
	cur.callback = path.Callback
	cur.hasCallback = true
	return nil
}

// Root returns the compiled root node. Valid only after all paths have been
// added.
func (b *Builder[C]) Root() *FsmNode[C] { return b.root }

// topLevelStep synthesizes the implicit wildcard step every SearchPath is
// normalized with, carrying the path's top-level annotation filter (spec.md
// §4.3: "prepending an implicit wildcard step").
func topLevelStep(topAnnotations []string) pathspec.Component {
	if len(topAnnotations) == 0 {
		return pathspec.Wildcard()
	}
	return pathspec.AnnotatedWildcard(topAnnotations...)
}

// fold folds one component onto cur, returning the resulting child node or
// an UnsupportedPathExpression error for any of the build-time rejections
// of spec.md §4.3 / §7.
func (b *Builder[C]) fold(cur *FsmNode[C], comp pathspec.Component) (*FsmNode[C], error) {
	kind, key, tuple, err := b.classify(comp)
	if err != nil {
		return nil, err
	}

	if cur.kind == noTransition {
		cur.kind = kind
	} else if cur.kind != kind {
		return nil, pxerrors.UnsupportedPathExpression(
			"path component of kind %v conflicts with an existing %v transition on the same state", comp.Kind(), cur.kind)
	}

	switch kind {
	case fieldTransition, caseInsensitiveFieldTransition:
		if cur.fieldChildren == nil {
			cur.fieldChildren = map[string]*FsmNode[C]{}
		}
		if child, ok := cur.fieldChildren[key]; ok {
			return child, nil
		}
		child := &FsmNode[C]{}
		cur.fieldChildren[key] = child
		return child, nil
	case indexTransition:
		if cur.indexChildren == nil {
			cur.indexChildren = map[int]*FsmNode[C]{}
		}
		idx := comp.ChildIndex()
		if child, ok := cur.indexChildren[idx]; ok {
			return child, nil
		}
		child := &FsmNode[C]{}
		cur.indexChildren[idx] = child
		return child, nil
	case wildcardTransition:
		if cur.wildcardChild == nil {
			cur.wildcardChild = &FsmNode[C]{}
		}
		return cur.wildcardChild, nil
	case annotationsTransition:
		for _, e := range cur.annotationEntries {
			if tupleEquals(e.tuple, tuple) {
				return e.node, nil
			}
		}
		child := &FsmNode[C]{}
		cur.annotationEntries = append(cur.annotationEntries, annotationEntry[C]{tuple: tuple, node: child})
		return child, nil
	default:
		return nil, pxerrors.UnsupportedPathExpression("unrecognized path component kind %v", comp.Kind())
	}
}

// classify maps comp to the transition kind it requires, its map key (for
// Field/Index), and its annotation tuple (for Annotations), applying the
// build-time rejections of spec.md §4.3.
func (b *Builder[C]) classify(comp pathspec.Component) (transitionKind, string, []string, error) {
	switch comp.Kind() {
	case pathspec.FieldComponent:
		if len(comp.Annotations()) > 0 {
			return 0, "", nil, pxerrors.UnsupportedPathExpression("annotation filter on a field component is tree-walk only: %q", comp.FieldName())
		}
		if b.cfg.FieldsCaseInsensitive() {
			return caseInsensitiveFieldTransition, foldKey(comp.FieldName()), nil, nil
		}
		return fieldTransition, comp.FieldName(), nil, nil

	case pathspec.IndexComponent:
		if len(comp.Annotations()) > 0 {
			return 0, "", nil, pxerrors.UnsupportedPathExpression("annotation filter on an index component is tree-walk only: %d", comp.ChildIndex())
		}
		return indexTransition, "", nil, nil

	case pathspec.WildcardComponent:
		if len(comp.Annotations()) == 0 {
			return wildcardTransition, "", nil, nil
		}
		if b.cfg.MatchCaseInsensitiveAll {
			return 0, "", nil, pxerrors.UnsupportedPathExpression("case-insensitive-all is incompatible with an annotated wildcard")
		}
		return annotationsTransition, "", comp.Annotations(), nil

	case pathspec.AnnotatedWildcardComponent:
		if b.cfg.MatchCaseInsensitiveAll {
			return 0, "", nil, pxerrors.UnsupportedPathExpression("case-insensitive-all is incompatible with an annotated wildcard")
		}
		return annotationsTransition, "", comp.RequiredAnnotations(), nil

	default:
		return 0, "", nil, pxerrors.UnsupportedPathExpression("unrecognized path component kind %v", comp.Kind())
	}
}
