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

package operation

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/blockpatch/pkg/buffer"
	"github.com/walteh/blockpatch/pkg/config"
	"github.com/walteh/blockpatch/pkg/diff"
	"github.com/walteh/blockpatch/pkg/patch"
	"github.com/walteh/blockpatch/pkg/status"
)

// 🏃 Runner executes jobs
type Runner struct {
	applier     *patch.Applier
	tracker     *status.Tracker
	concurrency int
	onOutcome   func(status.Outcome)
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithApplier replaces the default Applier
func WithApplier(a *patch.Applier) RunnerOption {
	return func(r *Runner) { r.applier = a }
}

// WithConcurrency bounds how many files are patched at once
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) { r.concurrency = n }
}

// WithOutcomeHook is called as each job finishes. Calls may come from several goroutines.
func WithOutcomeHook(fn func(status.Outcome)) RunnerOption {
	return func(r *Runner) { r.onOutcome = fn }
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		applier:     patch.New(),
		tracker:     status.NewTracker(),
		concurrency: config.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		r.concurrency = 1
	}
	return r
}

// Tracker returns the tracker outcomes are recorded into
func (r *Runner) Tracker() *status.Tracker {
	return r.tracker
}

// 🏃 Run executes jobs and returns one outcome per job, in job order. Jobs for the
// same file run sequentially in job order; different files run concurrently.
// A failure never stops other jobs. The error is non-nil when any job failed.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]status.Outcome, error) {
	logger := zerolog.Ctx(ctx)
	r.tracker.Start(ctx, len(jobs))

	groups := groupByPath(jobs)
	logger.Debug().Int("jobs", len(jobs)).Int("files", len(groups)).Int("concurrency", r.concurrency).Msg("running jobs")

	outcomes := make([]status.Outcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for _, group := range groups {
		g.Go(func() error {
			// dry runs carry each job's output into the next job for the same file
			var base *buffer.Source
			for _, i := range group {
				job := jobs[i]
				if job.Request.Mode == patch.ModeDryRun {
					job.Request.Base = base
				}
				var res *patch.Result
				outcomes[i], res = r.runJob(ctx, job)
				if res != nil {
					base = res.After
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, o := range outcomes {
		if o.Status == status.StatusFailed {
			errs = append(errs, o.Err)
		}
	}
	if len(errs) > 0 {
		return outcomes, errors.Errorf("%d of %d patches failed: %w", len(errs), len(jobs), errors.Join(errs...))
	}
	return outcomes, nil
}

func (r *Runner) runJob(ctx context.Context, job Job) (status.Outcome, *patch.Result) {
	var (
		o   status.Outcome
		res *patch.Result
	)
	if err := ctx.Err(); err != nil {
		o = status.FromResult(job.Patch, job.Request.Path, nil, errors.Errorf("not started: %w", err))
	} else {
		var err error
		res, err = r.applier.Apply(ctx, job.Request)
		o = status.FromResult(job.Patch, job.Request.Path, res, err)
		if err == nil && o.Status == status.StatusWouldPatch {
			if d := diff.Compute(res.Before.Text(), res.After.Text(), job.Request.Path, job.Request.Path+" (patched)"); !d.Empty() {
				o.Diff = d.Format(false)
			}
		}
	}

	r.tracker.Record(ctx, o)
	if r.onOutcome != nil {
		r.onOutcome(o)
	}
	return o, res
}

// groupByPath returns job indexes grouped by cleaned path, groups in order of
// first appearance and indexes ascending within a group
func groupByPath(jobs []Job) [][]int {
	index := map[string]int{}
	var groups [][]int
	for i, job := range jobs {
		key := filepath.Clean(job.Request.Path)
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], i)
	}
	return groups
}
