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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/config"
)

// NewRunCmd creates a new run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run <config>",
		Short: "Apply every patch in a patch-set file",
		Long: `Run loads a YAML, HCL or JSON patch set and applies each patch to its files.
Different files are patched concurrently; patches to the same file run in the
order they appear. A failing patch does not stop the others, and the command
exits non-zero if any patch failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "run").Logger().WithContext(cmd.Context())

			cfg, err := config.Load(ctx, args[0])
			if err != nil {
				return errors.Errorf("loading patch set: %w", err)
			}

			return runPatchSet(ctx, o, cfg, args[0], dryRun)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show diffs without writing")

	return cmd
}
