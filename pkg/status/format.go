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
)

// 🎨 Formatter turns outcomes into log messages
type Formatter interface {
	// FormatOutcome formats a single outcome
	FormatOutcome(o Outcome) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatOutcome formats an outcome with emojis
func (f *DefaultFormatter) FormatOutcome(o Outcome) string {
	switch o.Status {
	case StatusPatched:
		return fmt.Sprintf("📝 Patched %s (%s) at line %d", o.Path, o.Patch, o.Line)
	case StatusWouldPatch:
		return fmt.Sprintf("🔍 Would patch %s (%s) at line %d", o.Path, o.Patch, o.Line)
	case StatusUnchanged:
		return fmt.Sprintf("👍 Unchanged %s (%s)", o.Path, o.Patch)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s (%s): %s", o.Path, o.Patch, o.Kind)
	default:
		return fmt.Sprintf("❓ %s (%s)", o.Path, o.Patch)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}
