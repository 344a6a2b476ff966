// Copyright 2025 walteh LLC
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

package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/config"
)

type applyFlags struct {
	pattern         string
	replacement     string
	replacementFile string
	engine          string
	literal         bool
	encoding        string
	dryRun          bool
	noRevalidate    bool
}

// NewApplyCmd creates a new apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	var f applyFlags

	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Replace the single block matched by a pattern",
		Long: `Apply replaces the one block in <file> matched by --pattern.
It will:
1. Read and decode the file
2. Find every match of the pattern (. always matches newlines)
3. Refuse to continue unless there is exactly one match
4. Substitute the replacement ($1, ${name} and $$ expand unless --literal)
5. Write the file back atomically, keeping its permissions`,
		Example: `  blockpatch apply app/page.tsx \
    --pattern '(      /\* Controls \*/\n      <section.*?</section>)' \
    --replacement-file controls.tsx --literal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := config.Patch{
				Name:     "apply",
				Files:    []string{args[0]},
				Pattern:  f.pattern,
				Engine:   f.engine,
				Literal:  f.literal,
				Encoding: f.encoding,
			}
			if cmd.Flags().Changed("replacement") {
				p.Replacement = &f.replacement
			} else {
				p.ReplacementFile = f.replacementFile
			}

			revalidate := !f.noRevalidate
			cfg := &config.Config{
				Concurrency: 1,
				Revalidate:  &revalidate,
				Patches:     []config.Patch{p},
			}
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("invalid flags: %w", err)
			}

			return runPatchSet(cmd.Context(), o, cfg, args[0], f.dryRun)
		},
	}

	cmd.Flags().StringVarP(&f.pattern, "pattern", "p", "", "regular expression matching the block")
	cmd.Flags().StringVarP(&f.replacement, "replacement", "r", "", "replacement text")
	cmd.Flags().StringVarP(&f.replacementFile, "replacement-file", "f", "", "file holding the replacement text")
	cmd.Flags().StringVar(&f.engine, "engine", "re2", "pattern engine: re2 or regexp2")
	cmd.Flags().BoolVar(&f.literal, "literal", false, "insert the replacement verbatim, without $ expansion")
	cmd.Flags().StringVar(&f.encoding, "encoding", "utf-8", "file encoding, used for reading and writing")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "show the diff without writing")
	cmd.Flags().BoolVar(&f.noRevalidate, "no-revalidate", false, "skip re-reading the file before writing")

	_ = cmd.MarkFlagRequired("pattern")
	cmd.MarkFlagsMutuallyExclusive("replacement", "replacement-file")
	cmd.MarkFlagsOneRequired("replacement", "replacement-file")

	return cmd
}
