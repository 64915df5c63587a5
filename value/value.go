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

// Package value defines the minimal value-tree model the matcher operates
// over: a Kind enumeration, an in-memory Value tree, and the Cursor
// interface external streaming readers implement.
package value

// Kind reports the structural class of a Value, mirroring the closed
// Kind bitmask used throughout internal/core/adt: containers are either
// struct-shaped (named fields) or positional (list/sexp), everything else
// is a scalar leaf.
type Kind int

const (
	BottomKind Kind = iota
	NullKind
	BoolKind
	IntKind
	FloatKind
	DecimalKind
	StringKind
	SymbolKind
	BlobKind
	ClobKind
	TimestampKind
	StructKind
	ListKind
	SexpKind
)

// IsContainer reports whether values of this kind hold ordered children.
func (k Kind) IsContainer() bool {
	switch k {
	case StructKind, ListKind, SexpKind:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case DecimalKind:
		return "decimal"
	case StringKind:
		return "string"
	case SymbolKind:
		return "symbol"
	case BlobKind:
		return "blob"
	case ClobKind:
		return "clob"
	case TimestampKind:
		return "timestamp"
	case StructKind:
		return "struct"
	case ListKind:
		return "list"
	case SexpKind:
		return "sexp"
	default:
		return "bottom"
	}
}

// Value is a node in the in-memory reference tree used to exercise the
// matchers in tests and by the cmd/ionpath CLI. It is not part of the
// matcher's contract — the matcher is specified purely against Cursor.
type Value struct {
	Kind        Kind
	FieldName   string // only meaningful for a child of a struct
	Annotations []string
	Scalar      any   // populated when !Kind.IsContainer()
	Children    []Value
}

// Cursor is the abstract streaming reader the matcher consumes (spec §6.2).
// A Cursor is always positioned "on" a value of known type whose scalar
// body has not yet been read.
type Cursor interface {
	// Next advances to the next sibling within the current container and
	// reports its kind, or reports ok == false at end of container.
	Next() (kind Kind, ok bool)
	// Type reports the kind of the value currently positioned on, or
	// ok == false if not positioned on any value (e.g. before the first
	// Next call, or past the end of a container).
	Type() (kind Kind, ok bool)
	// IsInStruct reports whether the current container is a struct.
	IsInStruct() bool
	// FieldName reports the field name of the current value, valid only
	// when IsInStruct() is true.
	FieldName() (name string, ok bool)
	// Annotations reports the ordered annotation list of the current value.
	Annotations() []string
	// Depth reports the current nesting depth, 0 at the top level.
	Depth() int
	// StepIn descends into the current container value.
	StepIn() error
	// StepOut ascends out of the current container back to its parent.
	StepOut() error
}
