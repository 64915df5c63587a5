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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"ionlang.org/path/value"
)

// annotationKey and valueKey are the two reserved mapping keys a document
// uses to attach an Ion-style annotation list to a value, since plain
// YAML/JSON has no such concept: a mapping of exactly these two keys is
// unwrapped into a Value carrying annotations instead of becoming a struct
// in its own right.
//
//	$ann: [A, B]
//	$value: {foo: 1}
const (
	annotationKey = "$ann"
	valueKey      = "$value"
)

// decodeDocuments reads every YAML document in data (a single JSON document
// parses the same way, since JSON is a YAML subset) into the synthetic
// top-level value stream MatchStream iterates over.
func decodeDocuments(data []byte) ([]value.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []value.Value
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode: %w", err)
		}
		v, err := convertNode(&n, "")
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
	return docs, nil
}

// convertNode converts one yaml.Node into a Value, unwrapping the
// $ann/$value annotation convention at every level it appears.
func convertNode(n *yaml.Node, fieldName string) (value.Value, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) != 1 {
			return value.Value{}, fmt.Errorf("convert: document node with %d children", len(n.Content))
		}
		return convertNode(n.Content[0], fieldName)
	}

	if ann, inner, ok := splitAnnotationWrapper(n); ok {
		v, err := convertNode(inner, fieldName)
		if err != nil {
			return value.Value{}, err
		}
		v.Annotations = ann
		return v, nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		children := make([]value.Value, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			name := n.Content[i].Value
			child, err := convertNode(n.Content[i+1], name)
			if err != nil {
				return value.Value{}, err
			}
			children = append(children, child)
		}
		return value.Value{Kind: value.StructKind, FieldName: fieldName, Children: children}, nil

	case yaml.SequenceNode:
		children := make([]value.Value, 0, len(n.Content))
		for _, c := range n.Content {
			child, err := convertNode(c, "")
			if err != nil {
				return value.Value{}, err
			}
			children = append(children, child)
		}
		return value.Value{Kind: value.ListKind, FieldName: fieldName, Children: children}, nil

	case yaml.ScalarNode:
		return convertScalar(n, fieldName)

	case yaml.AliasNode:
		return convertNode(n.Alias, fieldName)

	default:
		return value.Value{}, fmt.Errorf("convert: unsupported node kind %v", n.Kind)
	}
}

// splitAnnotationWrapper reports whether n is a two-key {$ann, $value}
// mapping and, if so, returns the parsed annotation list and the $value
// node.
func splitAnnotationWrapper(n *yaml.Node) ([]string, *yaml.Node, bool) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 4 {
		return nil, nil, false
	}
	var annNode, valNode *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case annotationKey:
			annNode = n.Content[i+1]
		case valueKey:
			valNode = n.Content[i+1]
		default:
			return nil, nil, false
		}
	}
	if annNode == nil || valNode == nil {
		return nil, nil, false
	}
	var ann []string
	if err := annNode.Decode(&ann); err != nil {
		return nil, nil, false
	}
	return ann, valNode, true
}

func convertScalar(n *yaml.Node, fieldName string) (value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.Value{Kind: value.NullKind, FieldName: fieldName}, nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return value.Value{}, fmt.Errorf("convert: %w", err)
		}
		return value.Value{Kind: value.BoolKind, FieldName: fieldName, Scalar: b}, nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("convert: %w", err)
		}
		return value.Value{Kind: value.IntKind, FieldName: fieldName, Scalar: int(i)}, nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("convert: %w", err)
		}
		return value.Value{Kind: value.FloatKind, FieldName: fieldName, Scalar: f}, nil
	default:
		return value.Value{Kind: value.StringKind, FieldName: fieldName, Scalar: n.Value}, nil
	}
}
