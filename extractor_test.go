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

package path_test

import (
	"testing"

	path "ionlang.org/path"
	"ionlang.org/path/value"
)

func scalar(kind value.Kind, field string, v any) value.Value {
	return value.Value{Kind: kind, FieldName: field, Scalar: v}
}

func annotated(v value.Value, anns ...string) value.Value {
	v.Annotations = anns
	return v
}

func strukt(field string, children ...value.Value) value.Value {
	return value.Value{Kind: value.StructKind, FieldName: field, Children: children}
}

func list(field string, children ...value.Value) value.Value {
	return value.Value{Kind: value.ListKind, FieldName: field, Children: children}
}

func readInt(t *testing.T, cur *value.TreeCursor) int {
	t.Helper()
	v, ok := cur.CurrentValue()
	if !ok {
		t.Fatalf("callback invoked without a current value")
	}
	n, ok := v.Scalar.(int)
	if !ok {
		t.Fatalf("current value scalar is not an int: %#v", v.Scalar)
	}
	return n
}

func collectCallback(t *testing.T, cur *value.TreeCursor, out *[]int) path.Callback[struct{}] {
	return func(ctx *path.MatchContext, _ struct{}) (int, error) {
		*out = append(*out, readInt(t, cur))
		return 0, nil
	}
}

// Scenario 1: (foo) against {foo:1} {bar:2} {baz:[...]} {other:99} -> [1].
// Exercised through both Build (compiled FSM) and BuildLegacy (tree-walk),
// since a single Field component compiles cleanly either way.
func TestExtractorFieldOnly(t *testing.T) {
	top := []value.Value{
		strukt("", scalar(value.IntKind, "foo", 1)),
		strukt("", scalar(value.IntKind, "bar", 2)),
		strukt("", list("baz", scalar(value.IntKind, "", 10), scalar(value.IntKind, "", 20))),
		strukt("", scalar(value.IntKind, "other", 99)),
	}

	for _, legacy := range []bool{false, true} {
		cur := value.NewTreeCursor(top)
		var got []int
		b := path.Standard[struct{}]().WithSearchPath("(foo)", collectCallback(t, cur, &got))
		ex, err := build(t, b, legacy)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if err := ex.Match(cur, struct{}{}); err != nil {
			t.Fatalf("Match: %v", err)
		}
		if len(got) != 1 || got[0] != 1 {
			t.Fatalf("legacy=%v got %v, want [1]", legacy, got)
		}
	}
}

// Scenario 2: (foo 1) against {foo:[0,1,2]} -> [1].
func TestExtractorFieldAndIndex(t *testing.T) {
	top := []value.Value{
		strukt("", list("foo", scalar(value.IntKind, "", 0), scalar(value.IntKind, "", 1), scalar(value.IntKind, "", 2))),
	}
	for _, legacy := range []bool{false, true} {
		cur := value.NewTreeCursor(top)
		var got []int
		b := path.Standard[struct{}]().WithSearchPath("(foo 1)", collectCallback(t, cur, &got))
		ex, err := build(t, b, legacy)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if err := ex.Match(cur, struct{}{}); err != nil {
			t.Fatalf("Match: %v", err)
		}
		if len(got) != 1 || got[0] != 1 {
			t.Fatalf("legacy=%v got %v, want [1]", legacy, got)
		}
	}
}

// Scenario 4: (foo bar) against {foo:{bar:2,bar:3}} with a callback that
// requests step-out 1: only the first bar fires and the cursor ends at
// depth 0.
func TestExtractorStepOutStopsParentIteration(t *testing.T) {
	top := []value.Value{
		strukt("", strukt("foo", scalar(value.IntKind, "bar", 2), scalar(value.IntKind, "bar", 3))),
	}
	for _, legacy := range []bool{false, true} {
		cur := value.NewTreeCursor(top)
		var got []int
		cb := func(ctx *path.MatchContext, _ struct{}) (int, error) {
			got = append(got, readInt(t, cur))
			return 1, nil
		}
		b := path.Standard[struct{}]().WithSearchPath("(foo bar)", cb)
		ex, err := build(t, b, legacy)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if err := ex.Match(cur, struct{}{}); err != nil {
			t.Fatalf("Match: %v", err)
		}
		if len(got) != 1 || got[0] != 2 {
			t.Fatalf("legacy=%v got %v, want [2]", legacy, got)
		}
		if cur.Depth() != 0 {
			t.Fatalf("legacy=%v cursor depth = %d, want 0", legacy, cur.Depth())
		}
	}
}

// Scenario 5: A::(foo) against a three-element top-level stream -> [2].
func TestExtractorTopAnnotationFilter(t *testing.T) {
	top := []value.Value{
		annotated(strukt("", scalar(value.IntKind, "bar", 1)), "A"),
		annotated(strukt("", scalar(value.IntKind, "foo", 2)), "A"),
		strukt("", scalar(value.IntKind, "foo", 3)),
	}
	for _, legacy := range []bool{false, true} {
		cur := value.NewTreeCursor(top)
		var got []int
		b := path.Standard[struct{}]().WithSearchPath("A::(foo)", collectCallback(t, cur, &got))
		ex, err := build(t, b, legacy)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if err := ex.Match(cur, struct{}{}); err != nil {
			t.Fatalf("Match: %v", err)
		}
		if len(got) != 1 || got[0] != 2 {
			t.Fatalf("legacy=%v got %v, want [2]", legacy, got)
		}
	}
}

// Scenario 6: (A::*) against [A::1, 2] -> [1].
func TestExtractorAnnotatedWildcard(t *testing.T) {
	top := []value.Value{
		list("", annotated(scalar(value.IntKind, "", 1), "A"), scalar(value.IntKind, "", 2)),
	}
	for _, legacy := range []bool{false, true} {
		cur := value.NewTreeCursor(top)
		var got []int
		b := path.Standard[struct{}]().WithSearchPath("(A::*)", collectCallback(t, cur, &got))
		ex, err := build(t, b, legacy)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if err := ex.Match(cur, struct{}{}); err != nil {
			t.Fatalf("Match: %v", err)
		}
		if len(got) != 1 || got[0] != 1 {
			t.Fatalf("legacy=%v got %v, want [1]", legacy, got)
		}
	}
}

// Scenario 7: (foo) with case-insensitive field names against FOO/foo/fOo/bar.
func TestExtractorCaseInsensitiveFields(t *testing.T) {
	top := []value.Value{
		strukt("", scalar(value.IntKind, "FOO", 1)),
		strukt("", scalar(value.IntKind, "foo", 2)),
		strukt("", scalar(value.IntKind, "fOo", 3)),
		strukt("", scalar(value.IntKind, "bar", 4)),
	}
	for _, legacy := range []bool{false, true} {
		cur := value.NewTreeCursor(top)
		var got []int
		b := path.Standard[struct{}]().
			WithMatchFieldNamesCaseInsensitive(true).
			WithSearchPath("(foo)", collectCallback(t, cur, &got))
		ex, err := build(t, b, legacy)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if err := ex.Match(cur, struct{}{}); err != nil {
			t.Fatalf("Match: %v", err)
		}
		if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
			t.Fatalf("legacy=%v got %v, want [1 2 3]", legacy, got)
		}
	}
}

// Scenario 8: () and A::() against 1 1 1 A::10 1. The two top-level filters
// collide on the FSM's synthesized root transition kind (a plain wildcard
// vs. an annotations node), so Build must fall back to the tree-walk
// matcher automatically; this test checks that the fallback actually
// happens as well as that both variants agree on the result.
func TestExtractorEmptyPathsWithAndWithoutAnnotations(t *testing.T) {
	top := []value.Value{
		scalar(value.IntKind, "", 1),
		scalar(value.IntKind, "", 1),
		scalar(value.IntKind, "", 1),
		annotated(scalar(value.IntKind, "", 10), "A"),
		scalar(value.IntKind, "", 1),
	}
	for _, legacy := range []bool{false, true} {
		cur := value.NewTreeCursor(top)
		var plain, ann []int
		b := path.Standard[struct{}]().
			WithSearchPath("()", collectCallback(t, cur, &plain)).
			WithSearchPath("A::()", collectCallback(t, cur, &ann))
		ex, err := build(t, b, legacy)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if !legacy && ex.Compiled() {
			t.Fatal("expected Build to fall back to the tree-walk matcher for colliding top-level filters")
		}
		if err := ex.Match(cur, struct{}{}); err != nil {
			t.Fatalf("Match: %v", err)
		}
		sum := 0
		for _, n := range plain {
			sum += n
		}
		if len(plain) != 5 || sum != 14 {
			t.Fatalf("legacy=%v plain got %v, want five values summing 14", legacy, plain)
		}
		if len(ann) != 1 || ann[0] != 10 {
			t.Fatalf("legacy=%v annotated got %v, want [10]", legacy, ann)
		}
	}
}

// BuildStrict with strictTyping rejects at match time when a Field
// transition is attempted into a non-struct container.
func TestExtractorBuildStrictRejectsTypeMismatch(t *testing.T) {
	top := []value.Value{
		list("", scalar(value.IntKind, "", 1)),
	}
	cur := value.NewTreeCursor(top)
	noop := func(ctx *path.MatchContext, _ struct{}) (int, error) { return 0, nil }
	ex, err := path.Standard[struct{}]().WithSearchPath("(foo)", noop).BuildStrict(true)
	if err != nil {
		t.Fatalf("BuildStrict: %v", err)
	}
	if err := ex.Match(cur, struct{}{}); err == nil {
		t.Fatal("expected a strict-typing error")
	}
}

// BuildStrict returns an error rather than falling back when a registration
// the FSM cannot compile is present.
func TestExtractorBuildStrictSurfacesFsmBuildError(t *testing.T) {
	noop := func(ctx *path.MatchContext, _ struct{}) (int, error) { return 0, nil }
	b := path.Standard[struct{}]().
		WithSearchPath("()", noop).
		WithSearchPath("A::()", noop)
	if _, err := b.BuildStrict(false); err == nil {
		t.Fatal("expected BuildStrict to surface the FsmBuild error instead of falling back")
	}
}

// A malformed textual path expression is recorded by WithSearchPath and
// surfaced from Build, not from WithSearchPath itself.
func TestExtractorMalformedPathSurfacedAtBuild(t *testing.T) {
	noop := func(ctx *path.MatchContext, _ struct{}) (int, error) { return 0, nil }
	b := path.Standard[struct{}]().WithSearchPath("not a path", noop)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected Build to surface the parse error")
	}
}

// A nil callback is a configuration error surfaced at Build.
func TestExtractorNilCallbackSurfacedAtBuild(t *testing.T) {
	b := path.Standard[struct{}]().WithSearchPathComponents([]path.Component{path.Field("foo")}, nil, nil)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected Build to surface the nil-callback error")
	}
}

// WithSearchPaths registers every text under the same callback.
func TestExtractorWithSearchPaths(t *testing.T) {
	top := []value.Value{
		strukt("", scalar(value.IntKind, "foo", 1), scalar(value.IntKind, "bar", 2), scalar(value.IntKind, "baz", 3)),
	}
	cur := value.NewTreeCursor(top)
	var got []int
	b := path.Standard[struct{}]().WithSearchPaths([]string{"(foo)", "(bar)"}, collectCallback(t, cur, &got))
	ex, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := ex.Match(cur, struct{}{}); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}
}

// MatchRelativePaths gates whether a cursor not positioned at the root is
// accepted.
func TestExtractorMatchRelativePathsPrecondition(t *testing.T) {
	top := []value.Value{
		strukt("wrapper", strukt("item", scalar(value.IntKind, "foo", 1))),
	}
	cur := value.NewTreeCursor(top)
	cur.Next()
	cur.StepIn()

	noop := func(ctx *path.MatchContext, _ struct{}) (int, error) { return 0, nil }
	ex, err := path.Standard[struct{}]().WithSearchPath("(foo)", noop).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := ex.Match(cur, struct{}{}); err == nil {
		t.Fatal("expected a precondition error for a non-root cursor without WithMatchRelativePaths")
	}

	cur2 := value.NewTreeCursor(top)
	cur2.Next()
	cur2.StepIn()
	var got []int
	ex2, err := path.Standard[struct{}]().WithMatchRelativePaths(true).WithSearchPath("(foo)", collectCallback(t, cur2, &got)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := ex2.Match(cur2, struct{}{}); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v, want [1]", got)
	}
}

func build[C any](t *testing.T, b *path.Builder[C], legacy bool) (*path.Extractor[C], error) {
	t.Helper()
	if legacy {
		return b.BuildLegacy()
	}
	return b.Build()
}
