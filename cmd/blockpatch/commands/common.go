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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/config"
	"github.com/walteh/blockpatch/pkg/log"
	"github.com/walteh/blockpatch/pkg/operation"
	"github.com/walteh/blockpatch/pkg/patch"
	"github.com/walteh/blockpatch/pkg/status"
)

// runPatchSet plans cfg, runs every job and prints each outcome as it lands
func runPatchSet(ctx context.Context, o *opts.RootOpts, cfg *config.Config, label string, dryRun bool) error {
	mode := patch.ModeWrite
	if dryRun {
		mode = patch.ModeDryRun
	}

	jobs, err := operation.Plan(ctx, cfg, mode)
	if err != nil {
		return errors.Errorf("planning patches: %w", err)
	}

	console := log.New(o.Console, *zerolog.Ctx(ctx))
	console.StartPatchSet(ctx, log.PatchSetOperation{
		Config:  label,
		Root:    cfg.Root,
		Patches: len(cfg.Patches),
		Jobs:    len(jobs),
		DryRun:  dryRun,
	})

	runner := operation.NewRunner(
		operation.WithApplier(o.Applier),
		operation.WithConcurrency(cfg.Concurrency),
		operation.WithOutcomeHook(func(out status.Outcome) {
			console.LogOutcome(ctx, out)
		}),
	)

	_, runErr := runner.Run(ctx, jobs)
	console.EndPatchSet(ctx, runner.Tracker().Summary())

	return runErr
}
