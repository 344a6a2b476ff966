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
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/patch"
	"github.com/walteh/blockpatch/pkg/testutils"
)

const section = "AAA<section>old</section>BBB"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd, _ := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.ExecuteContext(context.Background())
	if stderr.Len() > 0 {
		t.Log(stderr.String())
	}
	return stdout.String(), err
}

func TestApply(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "page.tsx", section)

	out, err := execute(t, "apply", path, "--pattern", `<section>.*?</section>`, "--replacement", "<section>new</section>")
	require.NoError(t, err)
	assert.Contains(t, out, "patched")
	assert.Equal(t, "AAA<section>new</section>BBB", testutils.ReadFile(t, path))

	// the same patch no longer finds its block
	_, err = execute(t, "apply", path, "--pattern", `<section>old</section>`, "--replacement", "<section>new</section>")
	require.Error(t, err)
	assert.Equal(t, patch.KindNoMatch, patch.KindOf(err))
	assert.Equal(t, "AAA<section>new</section>BBB", testutils.ReadFile(t, path))
}

func TestApply_Ambiguous(t *testing.T) {
	content := "<section>1</section>\n<section>2</section>\n"
	path := testutils.WriteFile(t, t.TempDir(), "page.tsx", content)

	out, err := execute(t, "apply", path, "-p", `<section>.*?</section>`, "-r", "x")
	require.Error(t, err)
	assert.Equal(t, patch.KindAmbiguous, patch.KindOf(err))
	assert.Contains(t, out, "ambiguous")
	assert.Equal(t, content, testutils.ReadFile(t, path))
}

func TestApply_DryRun(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "page.tsx", section)

	out, err := execute(t, "apply", path, "-p", `<section>.*?</section>`, "-r", "<section>new</section>", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would_patch")
	assert.Contains(t, out, "+++ "+path+" (patched)")
	assert.Contains(t, out, "- AAA<section>old</section>BBB")
	assert.Contains(t, out, "+ AAA<section>new</section>BBB")
	assert.Equal(t, section, testutils.ReadFile(t, path))
}

func TestApply_LiteralReplacementFile(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, "page.tsx", section)
	payload := testutils.WriteFile(t, dir, "payload.tsx", "<section>{`${a}$1`}</section>")

	_, err := execute(t, "apply", path, "-p", `<section>.*?</section>`, "--replacement-file", payload, "--literal")
	require.NoError(t, err)
	assert.Equal(t, "AAA<section>{`${a}$1`}</section>BBB", testutils.ReadFile(t, path))
}

func TestApply_FlagErrors(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "page.tsx", section)

	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{
			name:        "no_replacement",
			args:        []string{"apply", path, "-p", "x"},
			errContains: "replacement",
		},
		{
			name:        "both_replacements",
			args:        []string{"apply", path, "-p", "x", "-r", "y", "-f", "z"},
			errContains: "replacement",
		},
		{
			name:        "no_pattern",
			args:        []string{"apply", path, "-r", "y"},
			errContains: "pattern",
		},
		{
			name:        "bad_engine",
			args:        []string{"apply", path, "-p", "x", "-r", "y", "--engine", "perl"},
			errContains: "unknown pattern engine",
		},
		{
			name:        "bad_pattern",
			args:        []string{"apply", path, "-p", "(x", "-r", "y"},
			errContains: "compiling",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, section, testutils.ReadFile(t, path))
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	a := testutils.WriteFile(t, dir, "app/a.tsx", section)
	b := testutils.WriteFile(t, dir, "app/b.tsx", section)
	cfg := testutils.WriteFile(t, dir, "patches.yaml", `
patches:
  - name: sections
    files: ["app/*.tsx"]
    pattern: '<section>(.*?)</section>'
    replacement: '<section>[$1]</section>'
`)

	out, err := execute(t, "run", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "2 patched")
	assert.Equal(t, "AAA<section>[old]</section>BBB", testutils.ReadFile(t, a))
	assert.Equal(t, "AAA<section>[old]</section>BBB", testutils.ReadFile(t, b))
}

func TestRun_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := testutils.WriteFile(t, dir, "good.tsx", section)
	bad := testutils.WriteFile(t, dir, "bad.tsx", "no block")
	cfg := testutils.WriteFile(t, dir, "patches.hcl", `
patch "sections" {
  files       = ["*.tsx"]
  pattern     = "<section>.*?</section>"
  replacement = "<section>new</section>"
}
`)

	out, err := execute(t, "run", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 patches failed")
	assert.Contains(t, out, "1 failed")
	assert.Equal(t, "AAA<section>new</section>BBB", testutils.ReadFile(t, good))
	assert.Equal(t, "no block", testutils.ReadFile(t, bad))
}

func TestRun_MissingConfig(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading patch set")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		wantKind patch.Kind
		wantOut  []string
	}{
		{
			name:    "one_match",
			content: section,
			wantOut: []string{"page.tsx:1: [3, 25)"},
		},
		{
			name:     "two_matches",
			content:  "<section>1</section>\n<section>2</section>\n",
			wantKind: patch.KindAmbiguous,
			wantOut:  []string{"page.tsx:1: [0, 20)", "page.tsx:2: [21, 41)"},
		},
		{
			name:     "no_match",
			content:  "nothing",
			wantKind: patch.KindNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutils.WriteFile(t, dir, filepath.Join(tt.name, "page.tsx"), tt.content)

			out, err := execute(t, "check", path, "--pattern", `<section>.*?</section>`)
			if tt.wantKind == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, patch.KindOf(err))
			}
			for _, w := range tt.wantOut {
				assert.Contains(t, out, w)
			}
			assert.Equal(t, tt.content, testutils.ReadFile(t, path), "check never writes")
		})
	}
}

func TestCheck_MissingFile(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "gone.tsx"), "-p", "x")
	require.Error(t, err)
	assert.Equal(t, patch.KindRead, patch.KindOf(err))
}

func TestReportFailure_BeforeSetup(t *testing.T) {
	var stderr bytes.Buffer
	reportFailure(&opts.RootOpts{}, &stderr, errors.New("bad flag"))

	assert.Contains(t, stderr.String(), `"level":"error"`)
	assert.Contains(t, stderr.String(), `"error":"bad flag"`)
	assert.Contains(t, stderr.String(), `"message":"command failed"`)
}
