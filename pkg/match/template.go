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
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📝 Template is replacement text bound to the groups of one Pattern.
//
// References are `$N`, `${N}` and `${name}`; `$$` is a literal dollar sign and a
// dollar followed by anything else is kept as is. A reference to a group the pattern
// does not define is rejected when the template is parsed.
type Template struct {
	raw     string
	literal bool
	parts   []templatePart
}

// templatePart is either literal text or, when group >= 0, a group reference
type templatePart struct {
	text  string
	group int
}

// 📦 LiteralTemplate inserts text verbatim, with no group expansion
func LiteralTemplate(text string) *Template {
	return &Template{
		raw:     text,
		literal: true,
		parts:   []templatePart{{text: text, group: -1}},
	}
}

// 🏗️ ParseTemplate parses text against the groups of p
func ParseTemplate(p Pattern, text string) (*Template, error) {
	names := p.GroupNames()
	byName := make(map[string]int, len(names))
	for i, n := range names {
		if n != "" {
			byName[n] = i
		}
	}

	t := &Template{raw: text}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, templatePart{text: lit.String(), group: -1})
			lit.Reset()
		}
	}
	fail := func(reason string, args ...any) error {
		return errors.WithStack(&TemplateError{Template: text, Reason: fmt.Sprintf(reason, args...)})
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '$' || i+1 == len(text) {
			lit.WriteByte(c)
			continue
		}

		next := text[i+1]
		switch {
		case next == '$':
			lit.WriteByte('$')
			i++

		case isDigit(next):
			j := i + 1
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			n, _ := strconv.Atoi(text[i+1 : j])
			if n >= len(names) {
				return nil, fail("group $%d does not exist (pattern has %d groups)", n, len(names)-1)
			}
			flush()
			t.parts = append(t.parts, templatePart{group: n})
			i = j - 1

		case next == '{':
			end := strings.IndexByte(text[i+2:], '}')
			if end < 0 {
				return nil, fail("unterminated ${ at byte %d", i)
			}
			ref := text[i+2 : i+2+end]
			idx, err := resolveRef(ref, names, byName)
			if err != nil {
				return nil, fail("%s; use a literal replacement or $$ for a dollar sign", err.Error())
			}
			flush()
			t.parts = append(t.parts, templatePart{group: idx})
			i += 2 + end

		default:
			lit.WriteByte('$')
		}
	}
	flush()

	return t, nil
}

func resolveRef(ref string, names []string, byName map[string]int) (int, error) {
	if ref != "" && allDigits(ref) {
		n, _ := strconv.Atoi(ref)
		if n >= len(names) {
			return 0, errors.Errorf("group ${%s} does not exist", ref)
		}
		return n, nil
	}
	if idx, ok := byName[ref]; ok {
		return idx, nil
	}
	return 0, errors.Errorf("unknown group ${%s}", ref)
}

// String returns the template source
func (t *Template) String() string { return t.raw }

// Literal reports whether the template skips group expansion
func (t *Template) Literal() bool { return t.literal }

// 🖨️ Render expands the template for span, which must have been found in text.
// A group that did not take part in the match renders as the empty string.
func (t *Template) Render(text string, span Span) string {
	if t.literal {
		return t.raw
	}
	var b strings.Builder
	for _, part := range t.parts {
		if part.group < 0 {
			b.WriteString(part.text)
			continue
		}
		b.WriteString(span.GroupText(text, part.group))
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
