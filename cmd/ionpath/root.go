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
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command wraps the root cobra.Command the way cmd/cue/cmd.Command does,
// giving subcommands a narrow surface to share (just the *cobra.Command for
// now; ionpath has no evaluation context to thread through like cue.Context).
type Command struct {
	*cobra.Command
}

// New builds the root command tree. The returned error is always nil; it
// exists so the constructor shape matches cmd/cue/cmd.New and can grow a
// fallible step later without changing callers.
func New(args []string) (*Command, error) {
	root := &cobra.Command{
		Use:           "ionpath",
		Short:         "run registered path expressions against a YAML/JSON value tree",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	c := &Command{Command: root}

	root.AddCommand(newExtractCmd())
	root.AddCommand(newVersionCmd())

	root.SetArgs(args)
	return c, nil
}

// Main runs ionpath and returns the process exit code.
func Main() int {
	c, _ := New(os.Args[1:])
	if err := c.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
