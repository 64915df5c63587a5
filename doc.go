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

// Package path implements a path-extraction matching engine over a
// self-describing, hierarchical, typed value tree: given a set of
// registered search paths and a streaming value.Cursor, it invokes a
// caller-supplied callback for every value whose location matches a
// registered path.
//
// Two matchers share one API. Build, the default, compiles registered
// paths into a table-dispatched internal/core/compile.Matcher and falls
// back to the general internal/core/eval.Matcher for any combination the
// compiler rejects. BuildStrict forces the compiled matcher and surfaces
// the rejection instead of falling back; BuildLegacy always uses the
// general matcher.
//
//	b := path.Standard[int]().
//		WithSearchPath(`(foo)`, func(ctx *path.MatchContext, sum int) (int, error) {
//			return 0, nil
//		})
//	ex, err := b.Build()
package path
