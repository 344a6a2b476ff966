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
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	patchWidth  = 15 // Width for patch name
	statusWidth = 12 // Width for status text
)

// 🎯 FormatOutcome formats an outcome as a console line
func FormatOutcome(o Outcome) string {
	var prefix string
	switch o.Status {
	case StatusPatched:
		prefix = color.GreenString("✓")
	case StatusWouldPatch:
		prefix = color.YellowString("⟳")
	case StatusFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, o.Path)
	patchPart := fmt.Sprintf("%-*s", patchWidth, o.Patch)
	statusPart := fmt.Sprintf("%-*s", statusWidth, o.Status)

	var detail string
	switch {
	case o.Status == StatusFailed:
		detail = color.RedString(string(o.Kind))
	case o.Line > 0:
		detail = color.HiBlackString("line %d", o.Line)
	}

	return strings.TrimRight(fmt.Sprintf("%s%s %s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		patchPart,
		statusPart,
		detail,
	), " ")
}

// 📊 FormatSummary formats a summary for the end of a run
func FormatSummary(s Summary) string {
	if !s.OK() {
		return color.RedString("✗ %s", s)
	}
	return color.GreenString("✓ %s", s)
}
