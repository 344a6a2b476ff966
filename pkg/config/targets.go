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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// isGlob reports whether a files entry needs expanding
func isGlob(entry string) bool {
	return strings.ContainsAny(entry, "*?[{")
}

// 🎯 ResolveTargets expands a patch's files into absolute paths under Root.
// An entry naming an existing file is used as is, even if it contains glob
// characters (app/[id]/page.tsx). Globs must match at least one file; plain
// paths are kept even when missing so the read fails loudly for that file.
func (cfg *Config) ResolveTargets(p Patch) ([]string, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}

	seen := map[string]bool{}
	var targets []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			targets = append(targets, path)
		}
	}

	for _, entry := range p.Files {
		path := filepath.Clean(entry)
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		if !isGlob(entry) || exists(path) {
			add(path)
			continue
		}

		pattern := filepath.ToSlash(entry)
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob %q", entry)
		}

		var matches []string
		if filepath.IsAbs(entry) {
			matches, err = doublestar.FilepathGlob(entry, doublestar.WithFilesOnly())
		} else {
			var rel []string
			rel, err = doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
			for _, m := range rel {
				matches = append(matches, filepath.Join(root, filepath.FromSlash(m)))
			}
		}
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", entry, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("glob %q matched no files under %s", entry, root)
		}

		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	return targets, nil
}
