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
	"ionlang.org/path/internal/core/compile"
	"ionlang.org/path/internal/core/eval"
	"ionlang.org/path/pathspec"
)

// Builder assembles an Extractor's configuration and registered search
// paths. It plays the role cuecontext.New(options...) plays for cue.Context:
// a functional-options style accumulator, built once and then frozen into an
// immutable Extractor by Build / BuildStrict / BuildLegacy.
//
// Like cue.Context.CompileString, registration errors (a malformed textual
// path expression, a nil callback) are not returned from the With* call that
// caused them: the first one is recorded and surfaced from Build instead, so
// a chain of With* calls can be written fluently.
type Builder[C any] struct {
	cfg   pathspec.ExtractorConfig
	paths []pathspec.SearchPath[C]
	err   error
}

// Standard returns a Builder with every option at its default (absolute
// paths only, case-sensitive fields and annotations).
func Standard[C any]() *Builder[C] {
	return &Builder[C]{}
}

// WithMatchRelativePaths controls whether Match accepts a cursor that
// is not positioned at the root (spec.md §3).
func (b *Builder[C]) WithMatchRelativePaths(v bool) *Builder[C] {
	b.cfg.MatchRelativePaths = v
	return b
}

// WithMatchCaseInsensitive makes both field-name and annotation comparisons
// case-insensitive. It implies WithMatchFieldNamesCaseInsensitive and is
// incompatible with any registered AnnotatedWildcard under the compiled FSM
// matcher (spec.md §4.3); Build falls back to the tree-walk matcher for such
// a registration, BuildStrict surfaces the rejection.
func (b *Builder[C]) WithMatchCaseInsensitive(v bool) *Builder[C] {
	b.cfg.MatchCaseInsensitiveAll = v
	return b
}

// WithMatchFieldNamesCaseInsensitive makes only field-name comparisons
// case-insensitive, leaving annotation comparisons case-sensitive.
func (b *Builder[C]) WithMatchFieldNamesCaseInsensitive(v bool) *Builder[C] {
	b.cfg.MatchCaseInsensitiveFields = v
	return b
}

// WithSearchPath parses text as a path expression and registers it with cb.
// A parse failure is recorded and returned from Build / BuildStrict /
// BuildLegacy rather than here, so calls can be chained.
func (b *Builder[C]) WithSearchPath(text string, cb Callback[C]) *Builder[C] {
	components, topAnnotations, err := ParsePath(text)
	if err != nil {
		b.recordErr(err)
		return b
	}
	return b.WithSearchPathComponents(components, topAnnotations, cb)
}

// WithSearchPaths registers every text in texts under the same cb, a
// convenience for the common case of one callback serving several related
// paths.
func (b *Builder[C]) WithSearchPaths(texts []string, cb Callback[C]) *Builder[C] {
	for _, text := range texts {
		b.WithSearchPath(text, cb)
	}
	return b
}

// WithSearchPathComponents registers a search path built programmatically
// from already-constructed Components, bypassing the textual parser.
func (b *Builder[C]) WithSearchPathComponents(components []Component, topAnnotations []string, cb Callback[C]) *Builder[C] {
	if cb == nil {
		b.recordErr(errNilCallback())
		return b
	}
	b.paths = append(b.paths, pathspec.NewSearchPath(components, topAnnotations, cb))
	return b
}

func (b *Builder[C]) recordErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

func errorIsFsmBuild(err error) bool {
	return pxerrors.Is(err, pxerrors.FsmBuild)
}

// Build compiles the registered paths into the table-dispatched FSM matcher
// and falls back to the general tree-walk matcher for any registration the
// FSM cannot represent (spec.md §4.3). This is the default, recommended for
// callers that do not need BuildStrict's guarantee that every registered
// path actually runs compiled.
func (b *Builder[C]) Build() (*Extractor[C], error) {
	if b.err != nil {
		return nil, b.err
	}
	m, err := compile.Compile(b.paths, b.cfg, false)
	if err == nil {
		return &Extractor[C]{cfg: b.cfg, fsm: m}, nil
	}
	if !errorIsFsmBuild(err) {
		return nil, err
	}
	return &Extractor[C]{cfg: b.cfg, tree: eval.New(b.paths, b.cfg)}, nil
}

// BuildStrict compiles the registered paths into the FSM matcher only,
// returning an error rather than falling back if any path cannot be
// compiled. strictTyping additionally enables the FSM's runtime container-
// kind checks (spec.md §4.3).
func (b *Builder[C]) BuildStrict(strictTyping bool) (*Extractor[C], error) {
	if b.err != nil {
		return nil, b.err
	}
	m, err := compile.Compile(b.paths, b.cfg, strictTyping)
	if err != nil {
		return nil, err
	}
	return &Extractor[C]{cfg: b.cfg, fsm: m}, nil
}

// BuildLegacy builds an Extractor backed only by the general tree-walk
// matcher, the algorithm every registered path is guaranteed to support.
func (b *Builder[C]) BuildLegacy() (*Extractor[C], error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Extractor[C]{cfg: b.cfg, tree: eval.New(b.paths, b.cfg)}, nil
}
