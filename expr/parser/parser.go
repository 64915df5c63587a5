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

// Package parser implements PathExpressionParser (spec.md §4.1): it turns
// the textual path-expression mini-language into pathspec.Components plus
// a top-level annotation filter. Structurally this mirrors cue/parser's
// recursive-descent shape over cue/scanner tokens, shrunk to the much
// smaller path grammar; numeric literals are parsed through
// github.com/cockroachdb/apd/v3 the same way cue/path.go's
// basicLitSelector parses CUE index literals.
package parser

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	pxerrors "ionlang.org/path/errors"
	"ionlang.org/path/expr/scanner"
	"ionlang.org/path/expr/token"
	"ionlang.org/path/pathspec"
)

// escapeSymbol is the reserved annotation that, when it is the first
// annotation on a component, is consumed as an escape preventing a
// following "*" from being read as a wildcard (spec.md §4.1, §6.1).
const escapeSymbol = "$ion_extractor_field"

// Result is the parsed form of one search path: its components plus the
// annotation filter attached to the outer sequence itself.
type Result struct {
	Components     []pathspec.Component
	TopAnnotations []string
}

type parser struct {
	sc  scanner.Scanner
	pos token.Pos
	tok token.Token
	lit string
}

func (p *parser) next() {
	p.pos, p.tok, p.lit = p.sc.Scan()
}

// Parse parses a path expression (spec.md §6.1: "(...)" or "[...]") into a
// Result. Errors are *errors.PathExtractionError of kind Configuration.
func Parse(src string) (Result, error) {
	if strings.TrimSpace(src) == "" {
		return Result{}, pxerrors.New(pxerrors.Configuration, nil, "ionPathExpression cannot be empty")
	}

	p := &parser{}
	p.sc.Init([]byte(src))
	p.next()

	topAnnotations, _, err := p.parseAnnotationPrefix()
	if err != nil {
		return Result{}, err
	}

	open := p.tok
	if open != token.LPAREN && open != token.LBRACK {
		return Result{}, pxerrors.New(pxerrors.Configuration, nil, "ionPathExpression must be a s-expression or list")
	}
	closeTok := token.RPAREN
	if open == token.LBRACK {
		closeTok = token.RBRACK
	}
	p.next()

	var components []pathspec.Component
	for p.tok != closeTok {
		if p.tok == token.EOF {
			return Result{}, pxerrors.New(pxerrors.Configuration, nil, "ionPathExpression is not properly closed")
		}
		comp, err := p.parseComponent()
		if err != nil {
			return Result{}, err
		}
		components = append(components, comp)
	}
	p.next() // consume closing paren/bracket

	if p.tok != token.EOF {
		return Result{}, pxerrors.New(pxerrors.Configuration, nil, "unexpected trailing input after ionPathExpression: %q", p.lit)
	}

	return Result{Components: components, TopAnnotations: topAnnotations}, nil
}

// parseAnnotationPrefix consumes a run of "<symbol> ::" pairs, honoring the
// $ion_extractor_field escape, and returns the resulting annotation list
// plus whether the escape was seen (which forces a following "*" to be read
// as a literal field name rather than a wildcard).
func (p *parser) parseAnnotationPrefix() ([]string, bool, error) {
	var anns []string
	escaped := false
	for {
		if p.tok != token.IDENT && p.tok != token.STRING {
			return anns, escaped, nil
		}
		// A symbol is only an annotation if followed directly by "::"; one
		// token of lookahead suffices, so a plain scanner-state snapshot
		// serves as the backtrack point when it isn't.
		save := p.sc
		savedPos, savedTok, savedLit := p.pos, p.tok, p.lit
		sym, err := p.symbolText()
		if err != nil {
			return nil, escaped, err
		}
		p.next()
		if p.tok != token.COLONCOLON {
			// Not an annotation after all; restore and stop.
			p.sc = save
			p.pos, p.tok, p.lit = savedPos, savedTok, savedLit
			return anns, escaped, nil
		}
		p.next() // consume "::"
		if len(anns) == 0 && !escaped && sym == escapeSymbol {
			escaped = true
			continue // consumed as escape, not a real annotation
		}
		anns = append(anns, sym)
	}
}

func (p *parser) symbolText() (string, error) {
	switch p.tok {
	case token.IDENT:
		return p.lit, nil
	case token.STRING:
		return unquote(p.lit)
	default:
		return "", pxerrors.New(pxerrors.Configuration, nil, "invalid path component type: %q", p.lit)
	}
}

// parseComponent parses one component: an optional annotation prefix, then
// either an atom (ident/string/int) or a nested "(inner annotatedWith ...)"
// sequence (tree-walk only, spec.md §4.1).
func (p *parser) parseComponent() (pathspec.Component, error) {
	anns, escaped, err := p.parseAnnotationPrefix()
	if err != nil {
		return pathspec.Component{}, err
	}

	if p.tok == token.LPAREN || p.tok == token.LBRACK {
		return p.parseAnnotatedWithForm(anns, escaped)
	}

	comp, err := p.parseAtom()
	if err != nil {
		return pathspec.Component{}, err
	}
	return p.finishComponent(comp, anns, escaped)
}

// atom is the pre-annotation classification of a bare component token.
type atom struct {
	text      string
	isInt     bool
	intVal    int
}

func (p *parser) parseAtom() (atom, error) {
	switch p.tok {
	case token.IDENT:
		a := atom{text: p.lit}
		p.next()
		return a, nil
	case token.STRING:
		s, err := unquote(p.lit)
		if err != nil {
			return atom{}, err
		}
		p.next()
		return atom{text: s}, nil
	case token.INT:
		n, err := parseIndex(p.lit)
		if err != nil {
			return atom{}, err
		}
		p.next()
		return atom{isInt: true, intVal: n}, nil
	default:
		return atom{}, pxerrors.New(pxerrors.Configuration, nil, "invalid path component type: %q", p.lit)
	}
}

// finishComponent classifies atom a (with annotation filter anns already
// parsed) into a Component, per the grammar of spec.md §4.1: an integer is
// an Index; "*" is a Wildcard unless escaped; anything else is a Field.
func (p *parser) finishComponent(a atom, anns []string, escaped bool) (pathspec.Component, error) {
	if a.isInt {
		if len(anns) > 0 {
			return pathspec.Index(a.intVal).WithAnnotations(anns), nil
		}
		return pathspec.Index(a.intVal), nil
	}
	if a.text == "*" && !escaped {
		if len(anns) > 0 {
			return pathspec.AnnotatedWildcard(anns...), nil
		}
		return pathspec.Wildcard(), nil
	}
	if len(anns) > 0 {
		return pathspec.Field(a.text).WithAnnotations(anns), nil
	}
	return pathspec.Field(a.text), nil
}

// parseAnnotatedWithForm parses "(inner annotatedWith sym1 sym2 ...)"; the
// supplied annotations become the annotations attached to inner exactly the
// same way a colon-colon prefix would (spec.md §4.1).
func (p *parser) parseAnnotatedWithForm(leading []string, leadingEscaped bool) (pathspec.Component, error) {
	closeTok := token.RPAREN
	if p.tok == token.LBRACK {
		closeTok = token.RBRACK
	}
	p.next()

	innerAnns, escaped, err := p.parseAnnotationPrefix()
	if err != nil {
		return pathspec.Component{}, err
	}
	escaped = escaped || leadingEscaped
	a, err := p.parseAtom()
	if err != nil {
		return pathspec.Component{}, err
	}

	if p.tok != token.IDENT || p.lit != "annotatedWith" {
		return pathspec.Component{}, pxerrors.New(pxerrors.Configuration, nil, "expected %q in nested path component, got %q", "annotatedWith", p.lit)
	}
	p.next()

	var required []string
	for p.tok != closeTok {
		if p.tok == token.EOF {
			return pathspec.Component{}, pxerrors.New(pxerrors.Configuration, nil, "ionPathExpression is not properly closed")
		}
		sym, err := p.symbolText()
		if err != nil {
			return pathspec.Component{}, err
		}
		required = append(required, sym)
		p.next()
	}
	p.next() // consume closing paren/bracket

	all := append(append([]string(nil), leading...), append(innerAnns, required...)...)
	return p.finishComponent(a, all, escaped)
}

// parseIndex parses a non-negative integer literal through apd.Decimal the
// way cue/path.go's basicLitSelector parses CUE index literals, so that
// out-of-range indices fail with the same class of error.
func parseIndex(lit string) (int, error) {
	var d apd.Decimal
	if _, _, err := d.SetString(lit); err != nil {
		return 0, pxerrors.New(pxerrors.Configuration, err, "invalid path component type: %q", lit)
	}
	i64, err := d.Int64()
	if err != nil {
		return 0, pxerrors.New(pxerrors.Configuration, err, "integer %s out of range", lit)
	}
	if i64 < 0 {
		return 0, pxerrors.New(pxerrors.Configuration, nil, "index must be non-negative: %s", lit)
	}
	return int(i64), nil
}

func unquote(lit string) (string, error) {
	s, err := strconv.Unquote(lit)
	if err != nil {
		return "", pxerrors.New(pxerrors.Configuration, err, "invalid string literal: %s", lit)
	}
	return s, nil
}
