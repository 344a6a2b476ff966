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

package match

import "fmt"

// 📍 Group is the byte range of one capture group. Start and End are -1 when the
// group did not take part in the match.
type Group struct {
	Name  string
	Start int
	End   int
}

// Matched reports whether the group took part in the match
func (g Group) Matched() bool { return g.Start >= 0 }

// 📍 Span is one located match. Offsets are byte offsets into the searched text.
// Groups[0] always covers [Start, End).
type Span struct {
	Start  int
	End    int
	Groups []Group
}

// Len returns the span length in bytes
func (s Span) Len() int { return s.End - s.Start }

// Text returns the matched text within the text it was found in
func (s Span) Text(text string) string { return text[s.Start:s.End] }

// GroupText returns the text of group i, or "" when it did not participate
func (s Span) GroupText(text string, i int) string {
	if i < 0 || i >= len(s.Groups) || !s.Groups[i].Matched() {
		return ""
	}
	return text[s.Groups[i].Start:s.Groups[i].End]
}

// String renders the span as [start, end)
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}
