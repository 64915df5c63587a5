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

import "ionlang.org/path/pathspec"

// Component is one step of a SearchPath: a Field, an Index, a Wildcard, or
// an AnnotatedWildcard. Build one with the constructors below, the way
// cue/path.go's Selector is built only through cue.Str, cue.Index, and
// friends.
type Component = pathspec.Component

// ComponentKind is the tag of the Component closed sum type.
type ComponentKind = pathspec.ComponentKind

const (
	FieldComponent             = pathspec.FieldComponent
	IndexComponent             = pathspec.IndexComponent
	WildcardComponent          = pathspec.WildcardComponent
	AnnotatedWildcardComponent = pathspec.AnnotatedWildcardComponent
)

// Field returns a component that matches a struct field named name.
func Field(name string) Component { return pathspec.Field(name) }

// Index returns a component that matches the n-th child (0-based) of any
// container.
func Index(n int) Component { return pathspec.Index(n) }

// Wildcard returns a component that matches any child of any container.
func Wildcard() Component { return pathspec.Wildcard() }

// AnnotatedWildcard returns a wildcard additionally requiring the value's
// annotation list to equal required, in order.
func AnnotatedWildcard(required ...string) Component { return pathspec.AnnotatedWildcard(required...) }
