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

package main

import (
	"context"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/blockpatch/cmd/blockpatch/commands"
	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/cmd/blockpatch/ui"
	"github.com/walteh/blockpatch/pkg/patch"
)

// newRootCmd builds the command tree. The returned options are populated once
// a subcommand is about to run.
func newRootCmd() (*cobra.Command, *opts.RootOpts) {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "blockpatch",
		Short: "Replace exactly one multi-line block in a source file",
		Long: `blockpatch finds a block of text with a regular expression, checks that it
occurs exactly once, substitutes it, and writes the file back atomically.

A pattern that matches nothing or matches more than once leaves the file untouched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd, rootOpts)
			cmd.SetContext(ctx)

			rootOpts.Console = cmd.OutOrStdout()
			rootOpts.UserLogger = ui.NewUserLogger(ctx, cmd.ErrOrStderr())
			if rootOpts.Applier == nil {
				rootOpts.Applier = patch.New()
			}
			return nil
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewRunCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
	)

	return rootCmd, rootOpts
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.NoColor, "no-color", false, "disable colored output")
}

// setupLogging configures zerolog and console styling from flags and returns
// the command context carrying the logger
func setupLogging(cmd *cobra.Command, o *opts.RootOpts) context.Context {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
		pterm.EnableDebugMessages()
	}

	if o.NoColor {
		color.NoColor = true
		pterm.DisableStyling()
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: color.NoColor}).
		With().Timestamp().Logger().Level(level)
	return logger.WithContext(cmd.Context())
}
