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

// Callback is invoked once per terminal partial match. C is caller-supplied
// context threaded through every callback of one Extractor — the Go analogue
// of the source API's Extractor<T>/BiFunction<Reader, T, Integer>. It
// returns the step-out count N (spec.md §4.2) or an error.
type Callback[C any] func(ctx *MatchContext, userContext C) (stepOut int, err error)

// SearchPath is an ordered, possibly empty list of PathComponents plus an
// independent top-level annotation filter and a callback (spec.md §3). A
// SearchPath is immutable once constructed.
type SearchPath[C any] struct {
	Components     []Component
	TopAnnotations []string
	Callback       Callback[C]
}

// NewSearchPath builds a SearchPath from already-parsed components. Use
// expr/parser via the root package's ParsePath for the textual form.
func NewSearchPath[C any](components []Component, topAnnotations []string, cb Callback[C]) SearchPath[C] {
	return SearchPath[C]{
		Components:     append([]Component(nil), components...),
		TopAnnotations: append([]string(nil), topAnnotations...),
		Callback:       cb,
	}
}

// Size reports the number of components, i.e. the depth at which this path
// terminates relative to the match's starting depth.
func (p SearchPath[C]) Size() int { return len(p.Components) }

// PartialMatchAt implements the partialMatchAt contract of spec.md §4.2.
// i is ctx.PathComponentIndex. inStruct, fieldName, and index describe the
// value the cursor currently sits on.
func (p SearchPath[C]) PartialMatchAt(cfg ExtractorConfig, i int, inStruct bool, fieldName string, index int, annotations []string) bool {
	if i == 0 {
		return matchesAnnotations(p.TopAnnotations, annotations, cfg.AnnotationsCaseInsensitive())
	}
	if i > len(p.Components) {
		return false
	}
	comp := p.Components[i-1]
	if !comp.StructuralMatch(cfg, inStruct, fieldName, index) {
		return false
	}
	if comp.Kind() == AnnotatedWildcardComponent {
		return comp.MatchesRequiredAnnotations(annotations, cfg.AnnotationsCaseInsensitive())
	}
	return comp.MatchesAnnotations(annotations, cfg.AnnotationsCaseInsensitive())
}
