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

// Package diff renders the difference between a file and its patched content.
package diff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines kept on each side of a change
const contextLines = 3

// 📄 Result holds a rendered diff
type Result struct {
	Old      string // old label
	New      string // new label
	Diff     string // plain diff text
	Inserted int    // inserted characters
	Deleted  int    // deleted characters
}

// Empty reports whether old and new were identical
func (r Result) Empty() bool {
	return r.Inserted == 0 && r.Deleted == 0
}

// 🔍 Compute returns a line-oriented diff between old and new content
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	diffs = dmp.DiffCleanupSemantic(diffs)

	r := Result{Old: oldLabel, New: newLabel, Diff: format(diffs)}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			r.Inserted += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			r.Deleted += len([]rune(d.Text))
		}
	}
	return r
}

// format converts diffs to unified-style text, collapsing long unchanged runs
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for _, l := range lines[:contextLines] {
					b.WriteString("  " + l + "\n")
				}
				b.WriteString("  ...\n")
				for _, l := range lines[len(lines)-contextLines:] {
					b.WriteString("  " + l + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// 🎨 Colourise colours removed lines red and added lines green
func Colourise(d string) string {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red.Sprint(line) + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green.Sprint(line) + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
