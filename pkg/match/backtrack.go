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

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// backtrackPattern wraps regexp2. regexp2 reports rune offsets; spans are
// converted to byte offsets before they leave this file.
type backtrackPattern struct {
	src   string
	re    *regexp2.Regexp
	names []string
	slots map[string]int
}

func compileBacktrack(src string, timeout time.Duration) (Pattern, error) {
	re, err := regexp2.Compile(src, regexp2.Singleline)
	if err != nil {
		return nil, errors.WithStack(&CompileError{Pattern: src, Engine: EngineBacktrack, Err: err})
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	numbers := re.GetGroupNumbers()
	p := &backtrackPattern{
		src:   src,
		re:    re,
		names: make([]string, len(numbers)),
		slots: make(map[string]int, len(numbers)),
	}
	for i, n := range numbers {
		name := re.GroupNameFromNumber(n)
		p.slots[name] = i
		if name != strconv.Itoa(n) {
			p.names[i] = name
		}
	}
	return p, nil
}

func (p *backtrackPattern) String() string { return p.src }

func (p *backtrackPattern) Engine() Engine { return EngineBacktrack }

func (p *backtrackPattern) GroupNames() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

func (p *backtrackPattern) FindAll(text string) ([]Span, error) {
	offsets := runeOffsets(text)

	var spans []Span
	m, err := p.re.FindStringMatch(text)
	for ; err == nil && m != nil; m, err = p.re.FindNextMatch(m) {
		span := Span{
			Start:  offsets.byteAt(m.Index),
			End:    offsets.byteAt(m.Index + m.Length),
			Groups: make([]Group, len(p.names)),
		}
		for i := range span.Groups {
			span.Groups[i] = Group{Name: p.names[i], Start: -1, End: -1}
		}
		for _, g := range m.Groups() {
			slot, ok := p.slots[g.Name]
			if !ok || len(g.Captures) == 0 {
				continue
			}
			span.Groups[slot].Start = offsets.byteAt(g.Index)
			span.Groups[slot].End = offsets.byteAt(g.Index + g.Length)
		}
		spans = append(spans, span)
	}
	if err != nil {
		return nil, errors.WithStack(&EngineError{Pattern: p.src, Engine: EngineBacktrack, Err: err})
	}
	return spans, nil
}

// byteOffsets maps rune indexes to byte offsets; nil means the text is ASCII
type byteOffsets []int

func runeOffsets(text string) byteOffsets {
	if utf8.RuneCountInString(text) == len(text) {
		return nil
	}
	out := make(byteOffsets, 0, len(text)+1)
	for i := range text {
		out = append(out, i)
	}
	return append(out, len(text))
}

func (o byteOffsets) byteAt(runeIndex int) int {
	if o == nil {
		return runeIndex
	}
	return o[runeIndex]
}
