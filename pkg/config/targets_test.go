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

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/blockpatch/pkg/testutils"
)

func TestResolveTargets(t *testing.T) {
	root := t.TempDir()
	testutils.WriteFile(t, root, "app/page.tsx", "x")
	testutils.WriteFile(t, root, "app/nested/card.tsx", "x")
	testutils.WriteFile(t, root, "app/style.css", "x")
	testutils.WriteFile(t, root, "app/[id]/page.tsx", "x")

	tests := []struct {
		name        string
		files       []string
		want        []string
		errContains string
	}{
		{
			name:  "plain_path",
			files: []string{"app/page.tsx"},
			want:  []string{"app/page.tsx"},
		},
		{
			name:  "plain_path_missing_is_kept",
			files: []string{"app/gone.tsx"},
			want:  []string{"app/gone.tsx"},
		},
		{
			name:  "doublestar",
			files: []string{"app/**/card.tsx", "app/*.tsx"},
			want:  []string{"app/nested/card.tsx", "app/page.tsx"},
		},
		{
			name:  "existing_file_with_glob_characters",
			files: []string{"app/[id]/page.tsx"},
			want:  []string{"app/[id]/page.tsx"},
		},
		{
			name:  "dedup_keeps_first_order",
			files: []string{"app/page.tsx", "app/*.tsx"},
			want:  []string{"app/page.tsx"},
		},
		{
			name:  "braces",
			files: []string{"app/{page.tsx,style.css}"},
			want:  []string{"app/page.tsx", "app/style.css"},
		},
		{
			name:        "glob_without_matches",
			files:       []string{"lib/**/*.go"},
			errContains: "matched no files",
		},
		{
			name:        "invalid_glob",
			files:       []string{"app/[.tsx"},
			errContains: "invalid glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Root: root}
			got, err := cfg.ResolveTargets(Patch{Files: tt.files})
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)

			var want []string
			for _, w := range tt.want {
				want = append(want, filepath.Join(root, filepath.FromSlash(w)))
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestResolveTargets_AbsolutePath(t *testing.T) {
	root := t.TempDir()
	abs := testutils.WriteFile(t, root, "x.txt", "x")

	cfg := &Config{Root: "/elsewhere"}
	got, err := cfg.ResolveTargets(Patch{Files: []string{abs}})
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, got)
}
