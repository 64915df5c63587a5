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
	pxerrors "ionlang.org/path/errors"
	"ionlang.org/path/expr/parser"
	"ionlang.org/path/pathspec"
)

// Callback is invoked once per terminal partial match, with ctx describing
// the matched value's position and userContext the caller's own threaded
// state. It returns the step-out count (spec.md §4.2) or an error; a
// non-nil error aborts the match in progress and is returned from Match /
// MatchCurrentValue.
type Callback[C any] = pathspec.Callback[C]

// MatchContext is the per-value state passed to a Callback: the cursor
// positioned on the matched value, its depth and annotation list, and the
// Extractor's configuration.
type MatchContext = pathspec.MatchContext

// SearchPath is an ordered, possibly empty list of Components plus an
// independent top-level annotation filter and a Callback.
type SearchPath[C any] = pathspec.SearchPath[C]

// ParsePath parses a textual path expression — "(...)" or "[...]", optionally
// prefixed with an annotation list — into its Components and top-level
// annotation filter. Errors are *errors.PathExtractionError of kind
// Configuration.
func ParsePath(text string) (components []Component, topAnnotations []string, err error) {
	result, err := parser.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	return result.Components, result.TopAnnotations, nil
}

// errNilCallback is returned by WithSearchPath / WithSearchPathComponents
// when cb is nil; surfaced at Build time the way a malformed registration
// would be (spec.md §7, Configuration kind).
func errNilCallback() error {
	return pxerrors.New(pxerrors.Configuration, nil, "search path callback must not be nil")
}
