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

// Package pathspec declares the types used to represent a registered search
// path: the closed PathComponent sum type and the SearchPath that strings
// components together with a callback. It plays the role cue/path.go's
// Path/Selector pair plays for CUE: components are produced only through
// the constructors below (Field, Index, Wildcard, AnnotatedWildcard),
// keeping the variant set closed the way cue.Selector's unexported
// interface keeps its variant set closed.
package pathspec

import "golang.org/x/text/cases"

// foldCaser performs the Unicode case folding spec §3's case-insensitive
// annotation and field comparisons use, the same golang.org/x/text/cases
// entry point the teacher module reaches for instead of strings.EqualFold
// wherever a comparison must work beyond plain ASCII.
var foldCaser = cases.Fold()

func foldEqual(a, b string) bool {
	if a == b {
		return true
	}
	return foldCaser.String(a) == foldCaser.String(b)
}

// ComponentKind is the tag of the PathComponent closed sum type (spec §3).
type ComponentKind int

const (
	// FieldComponent matches a struct field by name.
	FieldComponent ComponentKind = iota
	// IndexComponent matches the n-th child of any container kind.
	IndexComponent
	// WildcardComponent matches any child of any container kind.
	WildcardComponent
	// AnnotatedWildcardComponent is a Wildcard additionally constrained to
	// an exact, ordered annotation list. It is understood only by the
	// tree-walk matcher as a standalone kind; the FSM matcher folds it
	// into an Annotations transition node instead (see
	// internal/core/compile).
	AnnotatedWildcardComponent
)

func (k ComponentKind) String() string {
	switch k {
	case FieldComponent:
		return "field"
	case IndexComponent:
		return "index"
	case WildcardComponent:
		return "wildcard"
	case AnnotatedWildcardComponent:
		return "annotated-wildcard"
	default:
		return "unknown"
	}
}

// Component is one step of a SearchPath. The zero value is not valid; build
// one with Field, Index, Wildcard, or AnnotatedWildcard.
type Component struct {
	kind        ComponentKind
	field       string
	index       int
	annotations []string // the component's own annotation filter, not the required list for AnnotatedWildcardComponent
	required    []string // required list, AnnotatedWildcardComponent only
}

// Field returns a component that matches a struct field named name.
func Field(name string) Component {
	return Component{kind: FieldComponent, field: name}
}

// Index returns a component that matches the n-th child (0-based) of any
// container.
func Index(n int) Component {
	return Component{kind: IndexComponent, index: n}
}

// Wildcard returns a component that matches any child of any container.
func Wildcard() Component {
	return Component{kind: WildcardComponent}
}

// AnnotatedWildcard returns a wildcard that additionally requires the
// value's annotation list to equal required, in order. The tree-walk
// matcher checks it directly; the FSM matcher compiles it into an
// Annotations transition.
func AnnotatedWildcard(required ...string) Component {
	return Component{kind: AnnotatedWildcardComponent, required: append([]string(nil), required...)}
}

// Kind reports the component's variant.
func (c Component) Kind() ComponentKind { return c.kind }

// FieldName returns the field name for a FieldComponent.
func (c Component) FieldName() string { return c.field }

// ChildIndex returns the target index for an IndexComponent.
func (c Component) ChildIndex() int { return c.index }

// RequiredAnnotations returns the required annotation tuple for an
// AnnotatedWildcardComponent.
func (c Component) RequiredAnnotations() []string { return c.required }

// Annotations returns the component's own annotation filter (distinct from
// RequiredAnnotations, which only applies to AnnotatedWildcardComponent).
// An empty filter matches any annotation list.
func (c Component) Annotations() []string { return c.annotations }

// WithAnnotations returns a copy of c with its annotation filter set to
// filter. Applies to Field, Index, and Wildcard components; per spec §4.3
// the FSM build rejects any annotation filter on a non-wildcard component.
func (c Component) WithAnnotations(filter []string) Component {
	c.annotations = append([]string(nil), filter...)
	return c
}

// matchesAnnotations reports whether actual satisfies filter under full
// ordered-list equality (spec §3: "no subset or prefix semantics"),
// optionally case-insensitively.
func matchesAnnotations(filter, actual []string, caseInsensitive bool) bool {
	if len(filter) == 0 {
		return true
	}
	if len(filter) != len(actual) {
		return false
	}
	for i := range filter {
		if caseInsensitive {
			if !foldEqual(filter[i], actual[i]) {
				return false
			}
		} else if filter[i] != actual[i] {
			return false
		}
	}
	return true
}

// MatchesAnnotations reports whether the component's own annotation filter
// (Field/Index/Wildcard) is satisfied by actual.
func (c Component) MatchesAnnotations(actual []string, caseInsensitive bool) bool {
	return matchesAnnotations(c.annotations, actual, caseInsensitive)
}

// MatchesRequiredAnnotations reports whether an AnnotatedWildcardComponent's
// required tuple is satisfied by actual. required always matches order-
// sensitively; case sensitivity follows the same config flag as any other
// annotation comparison.
func (c Component) MatchesRequiredAnnotations(actual []string, caseInsensitive bool) bool {
	return matchesAnnotations(c.required, actual, caseInsensitive)
}
