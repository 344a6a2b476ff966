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

package status

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/walteh/blockpatch/pkg/patch"
)

// 📊 Status is what happened to one file
type Status int

const (
	StatusUnknown    Status = iota
	StatusPatched           // Block replaced and written
	StatusWouldPatch        // Dry run found exactly one block
	StatusUnchanged         // Replacement equals the matched block
	StatusFailed            // Any error; the file was left as it was
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusPatched:
		return "patched"
	case StatusWouldPatch:
		return "would_patch"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Outcome is the record of one patch applied to one file
type Outcome struct {
	Patch          string     // Patch name
	Path           string     // Target file
	Status         Status     // What happened
	Line           int        // Line the matched block starts on, 0 when unknown
	BeforeChecksum string     // Checksum of the content as read
	AfterChecksum  string     // Checksum of the content after substitution
	Kind           patch.Kind // Error kind for failed outcomes
	Err            error      // Error for failed outcomes
	Diff           string     // Rendered diff, dry runs only
}

// 🔄 FromResult converts an Applier result or error into an Outcome
func FromResult(name, path string, res *patch.Result, err error) Outcome {
	o := Outcome{Patch: name, Path: path}

	if err != nil {
		o.Status = StatusFailed
		o.Kind = patch.KindOf(err)
		o.Err = err
		return o
	}

	o.Line = res.Before.LineOf(res.Span.Start)
	o.BeforeChecksum = res.Before.Checksum()
	o.AfterChecksum = res.After.Checksum()

	switch {
	case !res.Changed():
		o.Status = StatusUnchanged
	case res.Mode == patch.ModeDryRun:
		o.Status = StatusWouldPatch
	default:
		o.Status = StatusPatched
	}
	return o
}

// 📈 Summary counts outcomes by status
type Summary struct {
	Total      int
	Patched    int
	WouldPatch int
	Unchanged  int
	Failed     int
}

// OK reports whether nothing failed
func (s Summary) OK() bool {
	return s.Failed == 0
}

// String returns a one-line summary
func (s Summary) String() string {
	return fmt.Sprintf("%d files: %d patched, %d would patch, %d unchanged, %d failed",
		s.Total, s.Patched, s.WouldPatch, s.Unchanged, s.Failed)
}

// 🔧 Tracker collects outcomes from concurrent jobs
type Tracker struct {
	formatter Formatter

	mu       sync.Mutex
	outcomes []Outcome
	total    int
}

// 🏭 NewTracker creates a tracker using the default formatter
func NewTracker() *Tracker {
	return &Tracker{formatter: NewDefaultFormatter()}
}

// 🚀 Start announces how many outcomes the run expects
func (t *Tracker) Start(ctx context.Context, total int) {
	t.mu.Lock()
	t.total = total
	t.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Int("total", total).Msg(t.formatter.FormatProgress(0, total))
}

// 📝 Record stores an outcome and logs it
func (t *Tracker) Record(ctx context.Context, o Outcome) {
	t.mu.Lock()
	t.outcomes = append(t.outcomes, o)
	done, total := len(t.outcomes), t.total
	t.mu.Unlock()

	logger := zerolog.Ctx(ctx)
	if total > 0 {
		logger.Debug().Int("processed", done).Int("total", total).Msg(t.formatter.FormatProgress(done, total))
	}

	ev := logger.Info()
	if o.Status == StatusFailed {
		ev = logger.Error().Err(o.Err).Str("kind", string(o.Kind))
	}
	ev.Str("patch", o.Patch).
		Str("path", o.Path).
		Str("status", o.Status.String()).
		Int("line", o.Line).
		Str("before", o.BeforeChecksum).
		Str("after", o.AfterChecksum).
		Msg(t.formatter.FormatOutcome(o))
}

// Outcomes returns every recorded outcome in record order
func (t *Tracker) Outcomes() []Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Outcome, len(t.outcomes))
	copy(out, t.outcomes)
	return out
}

// Failed returns the failed outcomes in record order
func (t *Tracker) Failed() []Outcome {
	var failed []Outcome
	for _, o := range t.Outcomes() {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// 📊 Summary counts the recorded outcomes
func (t *Tracker) Summary() Summary {
	var s Summary
	for _, o := range t.Outcomes() {
		s.Total++
		switch o.Status {
		case StatusPatched:
			s.Patched++
		case StatusWouldPatch:
			s.WouldPatch++
		case StatusUnchanged:
			s.Unchanged++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}
