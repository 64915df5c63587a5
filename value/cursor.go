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

package value

import "fmt"

// frame tracks iteration over one container level: the container itself
// and the index of the child currently positioned on (-1 before the first
// Next call).
type frame struct {
	container *Value
	index     int
}

// TreeCursor is a reference, dependency-free Cursor implementation that
// walks an in-memory Value tree. The matchers are specified purely against
// the Cursor interface (spec §6.2); TreeCursor exists so that package
// internal/core/eval, internal/core/compile, and cmd/ionpath have a
// concrete reader to exercise without pulling in an actual binary or text
// parser, which spec.md §1 places out of scope.
type TreeCursor struct {
	root   []Value
	stack  []frame
	atRoot frame
}

// NewTreeCursor returns a cursor positioned before the first value of top,
// a synthetic top-level stream of sibling values.
func NewTreeCursor(top []Value) *TreeCursor {
	c := &TreeCursor{root: top}
	c.atRoot = frame{index: -1}
	return c
}

func (c *TreeCursor) current() (*frame, []Value) {
	if len(c.stack) == 0 {
		return &c.atRoot, c.root
	}
	f := &c.stack[len(c.stack)-1]
	return f, f.container.Children
}

func (c *TreeCursor) currentValue() (*Value, bool) {
	f, siblings := c.current()
	if f.index < 0 || f.index >= len(siblings) {
		return nil, false
	}
	return &siblings[f.index], true
}

func (c *TreeCursor) Next() (Kind, bool) {
	f, siblings := c.current()
	f.index++
	if f.index >= len(siblings) {
		return BottomKind, false
	}
	return siblings[f.index].Kind, true
}

func (c *TreeCursor) Type() (Kind, bool) {
	v, ok := c.currentValue()
	if !ok {
		return BottomKind, false
	}
	return v.Kind, true
}

func (c *TreeCursor) IsInStruct() bool {
	if len(c.stack) == 0 {
		return false
	}
	return c.stack[len(c.stack)-1].container.Kind == StructKind
}

func (c *TreeCursor) FieldName() (string, bool) {
	v, ok := c.currentValue()
	if !ok || !c.IsInStruct() {
		return "", false
	}
	return v.FieldName, true
}

func (c *TreeCursor) Annotations() []string {
	v, ok := c.currentValue()
	if !ok {
		return nil
	}
	return v.Annotations
}

func (c *TreeCursor) Depth() int {
	return len(c.stack)
}

func (c *TreeCursor) StepIn() error {
	v, ok := c.currentValue()
	if !ok {
		return fmt.Errorf("value: StepIn called without a current value")
	}
	if !v.Kind.IsContainer() {
		return fmt.Errorf("value: StepIn called on non-container kind %s", v.Kind)
	}
	c.stack = append(c.stack, frame{container: v, index: -1})
	return nil
}

// CurrentValue returns the full in-memory Value the cursor is positioned
// on. It is not part of the Cursor interface — an arbitrary streaming
// cursor need not support random access to an already-materialized value —
// but callers exercising a TreeCursor directly (tests, cmd/ionpath) commonly
// want it to read back the scalar a callback matched.
func (c *TreeCursor) CurrentValue() (*Value, bool) {
	return c.currentValue()
}

func (c *TreeCursor) StepOut() error {
	if len(c.stack) == 0 {
		return fmt.Errorf("value: StepOut called at top level")
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}
