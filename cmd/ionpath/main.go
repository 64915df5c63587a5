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

// Command ionpath runs registered path-extraction search paths against a
// YAML or JSON tree and prints the depth, field name and kind of each
// matched value. It exists to
// exercise the full parser/matcher stack end to end the way cmd/cue
// exercises the CUE evaluator end to end.
package main

import "os"

func main() {
	os.Exit(Main())
}
