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

package pathspec

import (
	"testing"

	"github.com/kr/pretty"
)

func TestComponentStructuralMatch(t *testing.T) {
	cfg := ExtractorConfig{}
	testCases := []struct {
		name      string
		comp      Component
		inStruct  bool
		fieldName string
		index     int
		want      bool
	}{
		{"field matches own name", Field("foo"), true, "foo", 0, true},
		{"field rejects different name", Field("foo"), true, "bar", 0, false},
		{"field rejects non-struct", Field("foo"), false, "", 3, false},
		{"index matches position", Index(2), true, "whatever", 2, true},
		{"index rejects other position", Index(2), true, "whatever", 1, false},
		{"wildcard matches anything", Wildcard(), false, "", 9, true},
		{"annotated wildcard matches structurally regardless of annotations", AnnotatedWildcard("A"), false, "", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.comp.StructuralMatch(cfg, tc.inStruct, tc.fieldName, tc.index)
			if got != tc.want {
				t.Errorf("StructuralMatch() = %v, want %v\n%# v", got, tc.want, pretty.Formatter(tc.comp))
			}
		})
	}
}

func TestComponentFieldCaseInsensitive(t *testing.T) {
	cfg := ExtractorConfig{MatchCaseInsensitiveFields: true}
	comp := Field("FOO")
	for _, name := range []string{"foo", "FOO", "fOo", "FoO"} {
		if !comp.StructuralMatch(cfg, true, name, 0) {
			t.Errorf("StructuralMatch(%q) = false under case-insensitive fields, want true", name)
		}
	}
	if comp.StructuralMatch(cfg, true, "barbaz", 0) {
		t.Error("StructuralMatch matched an unrelated field name")
	}
}

func TestComponentMatchesAnnotations(t *testing.T) {
	testCases := []struct {
		name            string
		filter          []string
		actual          []string
		caseInsensitive bool
		want            bool
	}{
		{"empty filter matches anything", nil, []string{"A", "B"}, false, true},
		{"exact ordered match", []string{"A", "B"}, []string{"A", "B"}, false, true},
		{"out of order does not match", []string{"A", "B"}, []string{"B", "A"}, false, false},
		{"subset does not match", []string{"A"}, []string{"A", "B"}, false, false},
		{"case sensitive mismatch", []string{"A"}, []string{"a"}, false, false},
		{"case insensitive match", []string{"A"}, []string{"a"}, true, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Wildcard().WithAnnotations(tc.filter)
			got := c.MatchesAnnotations(tc.actual, tc.caseInsensitive)
			if desc := pretty.Diff(got, tc.want); len(desc) > 0 {
				t.Errorf("MatchesAnnotations(%v) mismatch: %v", tc.actual, desc)
			}
		})
	}
}

func TestAnnotatedWildcardRequiredAnnotations(t *testing.T) {
	c := AnnotatedWildcard("A", "B")
	if !c.MatchesRequiredAnnotations([]string{"A", "B"}, false) {
		t.Error("expected exact ordered match to succeed")
	}
	if c.MatchesRequiredAnnotations([]string{"A"}, false) {
		t.Error("expected a shorter annotation list not to match")
	}
	if c.MatchesRequiredAnnotations(nil, false) {
		t.Error("expected a required, non-empty tuple not to match an empty annotation list")
	}
}
