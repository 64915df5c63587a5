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

package eval

import "ionlang.org/path/pathspec"

// tracker is the LIFO of "paths still partially matched at the current
// depth" spec.md §4.2 describes: its top frame holds every SearchPath
// still alive at the value currently being visited. This mirrors the
// explicit conjunct-group stack internal/core/eval's evaluator pushes on
// every structural descent and pops on the way back out.
type tracker[C any] struct {
	frames [][]pathspec.SearchPath[C]
}

func newTracker[C any](initial []pathspec.SearchPath[C]) *tracker[C] {
	return &tracker[C]{frames: [][]pathspec.SearchPath[C]{initial}}
}

func (t *tracker[C]) top() []pathspec.SearchPath[C] {
	return t.frames[len(t.frames)-1]
}

func (t *tracker[C]) push(frame []pathspec.SearchPath[C]) {
	t.frames = append(t.frames, frame)
}

func (t *tracker[C]) pop() {
	t.frames = t.frames[:len(t.frames)-1]
}
