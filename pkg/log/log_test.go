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

package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/blockpatch/pkg/patch"
	"github.com/walteh/blockpatch/pkg/status"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_outcome",
			op: func(t *testing.T, logger *Logger) {
				logger.LogOutcome(context.Background(), status.Outcome{
					Patch:  "controls",
					Path:   "page.tsx",
					Status: status.StatusPatched,
					Line:   12,
				})
			},
			wantLogs: []string{
				"✓ page.tsx                            controls        patched      line 12",
			},
		},
		{
			name: "log_failed_outcome",
			op: func(t *testing.T, logger *Logger) {
				logger.LogOutcome(context.Background(), status.Outcome{
					Patch:  "controls",
					Path:   "page.tsx",
					Status: status.StatusFailed,
					Kind:   patch.KindNoMatch,
					Err:    errors.New("pattern matched nothing"),
				})
			},
			wantLogs: []string{
				"✗ page.tsx                            controls        failed       no_match",
				"↳ pattern matched nothing",
			},
		},
		{
			name: "log_dry_run_outcome",
			op: func(t *testing.T, logger *Logger) {
				logger.LogOutcome(context.Background(), status.Outcome{
					Patch:  "controls",
					Path:   "page.tsx",
					Status: status.StatusWouldPatch,
					Line:   1,
					Diff:   "- old\n+ new\n",
				})
			},
			wantLogs: []string{
				"⟳ page.tsx                            controls        would_patch  line 1",
				"- old",
				"+ new",
			},
		},
		{
			name: "log_patch_set",
			op: func(t *testing.T, logger *Logger) {
				logger.StartPatchSet(context.Background(), PatchSetOperation{
					Config:  "patches.yaml",
					Root:    "/src",
					Patches: 2,
					Jobs:    3,
					DryRun:  true,
				})
				logger.EndPatchSet(context.Background(), status.Summary{Total: 3, WouldPatch: 3})
			},
			wantLogs: []string{
				"[patching /src]",
				"◆ patches.yaml • 2 patches, 3 files, dry run",
				"",
				"✓ 3 files: 0 patched, 3 would patch, 0 unchanged, 0 failed",
			},
		},
		{
			name: "end_without_start",
			op: func(t *testing.T, logger *Logger) {
				logger.EndPatchSet(context.Background(), status.Summary{})
				logger.Info("still here")
			},
			wantLogs: []string{
				"ℹ️  still here",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("applying patch set")
			},
			wantLogs: []string{
				"blockpatch • applying patch set",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(&bytes.Buffer{}, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}
