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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	path "ionlang.org/path"
	"ionlang.org/path/value"
)

// extractOptions holds the flags of the "extract" subcommand, the way
// cmd/cue's eval command bundles its flag-derived options into one struct
// before running.
type extractOptions struct {
	paths         []string
	relative      bool
	caseInsensAll bool
	caseInsensFld bool
	strict        bool
	strictTypes   bool
	legacy        bool
}

// registerFlags declares extract's flags directly against a *pflag.FlagSet
// rather than through cobra's thin wrapper, the way shared flag-registration
// helpers are written across the cobra/pflag ecosystem.
func registerFlags(flags *pflag.FlagSet, opts *extractOptions) {
	flags.StringArrayVar(&opts.paths, "path", nil, "a search path expression, e.g. '(foo 0)'; may be repeated")
	flags.BoolVar(&opts.relative, "relative", false, "accept a document positioned at nonzero depth (unused by this command, wired for parity with Builder.WithMatchRelativePaths)")
	flags.BoolVar(&opts.caseInsensAll, "case-insensitive", false, "match field names and annotations case-insensitively")
	flags.BoolVar(&opts.caseInsensFld, "case-insensitive-fields", false, "match field names only, case-insensitively")
	flags.BoolVar(&opts.strict, "strict", false, "require every --path to compile to the FSM matcher, erroring otherwise")
	flags.BoolVar(&opts.strictTypes, "strict-types", false, "enable the FSM matcher's runtime container-kind checks (implies --strict)")
	flags.BoolVar(&opts.legacy, "legacy", false, "force the general tree-walk matcher, bypassing the FSM compiler entirely")
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "run registered search paths against a YAML/JSON value tree",
		Long: `extract reads a YAML or JSON document (or "-" for stdin), registers every
--path expression against it, and prints one line per match in document
order: the depth, the matched field name (if any), and the scalar or
container kind.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "-"
			if len(args) == 1 {
				filename = args[0]
			}
			return runExtract(cmd, filename, opts)
		},
	}

	registerFlags(cmd.Flags(), opts)

	return cmd
}

// matchLine is one reported match, printed as a single line of output.
type matchLine struct {
	depth int
	field string
	kind  value.Kind
}

func runExtract(cmd *cobra.Command, filename string, opts *extractOptions) error {
	if len(opts.paths) == 0 {
		return fmt.Errorf("extract: at least one --path is required")
	}
	if opts.strictTypes {
		opts.strict = true
	}

	data, err := readInput(filename)
	if err != nil {
		return err
	}
	docs, err := decodeDocuments(data)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	var lines []matchLine
	b := path.Standard[*[]matchLine]().WithMatchRelativePaths(opts.relative)
	if opts.caseInsensAll {
		b = b.WithMatchCaseInsensitive(true)
	}
	if opts.caseInsensFld {
		b = b.WithMatchFieldNamesCaseInsensitive(true)
	}

	cb := func(ctx *path.MatchContext, out *[]matchLine) (int, error) {
		kind, _ := ctx.Reader.Type()
		field, _ := ctx.Reader.FieldName()
		*out = append(*out, matchLine{depth: ctx.PathComponentIndex, field: field, kind: kind})
		return 0, nil
	}
	for _, p := range opts.paths {
		b = b.WithSearchPath(p, cb)
	}

	ex, err := buildExtractor(b, opts)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	cur := value.NewTreeCursor(docs)
	if err := ex.Match(cur, &lines); err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	w := cmd.OutOrStdout()
	for _, l := range lines {
		if l.field != "" {
			fmt.Fprintf(w, "depth=%d field=%s kind=%s\n", l.depth, l.field, l.kind)
		} else {
			fmt.Fprintf(w, "depth=%d kind=%s\n", l.depth, l.kind)
		}
	}
	return nil
}

func buildExtractor(b *path.Builder[*[]matchLine], opts *extractOptions) (*path.Extractor[*[]matchLine], error) {
	switch {
	case opts.legacy:
		return b.BuildLegacy()
	case opts.strict:
		return b.BuildStrict(opts.strictTypes)
	default:
		return b.Build()
	}
}

func readInput(filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filename)
}
