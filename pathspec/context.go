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
	"ionlang.org/path/value"
)

// ExtractorConfig holds the three boolean toggles spec.md §3 names.
// MatchCaseInsensitiveAll implies MatchCaseInsensitiveFields (use
// FieldsCaseInsensitive to query the effective, derived setting).
type ExtractorConfig struct {
	MatchRelativePaths         bool
	MatchCaseInsensitiveAll    bool
	MatchCaseInsensitiveFields bool
}

// FieldsCaseInsensitive reports the effective field-name comparison mode,
// folding in the implication from MatchCaseInsensitiveAll.
func (c ExtractorConfig) FieldsCaseInsensitive() bool {
	return c.MatchCaseInsensitiveAll || c.MatchCaseInsensitiveFields
}

// AnnotationsCaseInsensitive reports the effective annotation comparison
// mode. Only MatchCaseInsensitiveAll affects annotations (spec.md §3).
func (c ExtractorConfig) AnnotationsCaseInsensitive() bool {
	return c.MatchCaseInsensitiveAll
}

// MatchContext is the per-value, transient state threaded through one
// partial-match attempt (spec.md §3).
type MatchContext struct {
	Reader               value.Cursor
	PathComponentIndex   int
	ReaderContainerIndex int
	Annotations          []string
	Config               ExtractorConfig
}

// StructuralMatch reports whether c's structural predicate holds against
// the value described by fieldName (valid only when inStruct) and index,
// under cfg's case-sensitivity policy. It does not consider
// annotations; callers combine it with MatchesAnnotations /
// MatchesRequiredAnnotations per spec.md §3's conjunction.
func (c Component) StructuralMatch(cfg ExtractorConfig, inStruct bool, fieldName string, index int) bool {
	switch c.kind {
	case FieldComponent:
		if !inStruct {
			return false
		}
		if cfg.FieldsCaseInsensitive() {
			return foldEqual(c.field, fieldName)
		}
		return c.field == fieldName
	case IndexComponent:
		return c.index == index
	case WildcardComponent, AnnotatedWildcardComponent:
		return true
	default:
		return false
	}
}
