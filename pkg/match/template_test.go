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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_Render(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		template    string
		text        string
		want        string
		errContains string
	}{
		{
			name:     "no_references",
			pattern:  `<section>.*?</section>`,
			template: "<section>new</section>",
			text:     "AAA<section>old</section>BBB",
			want:     "<section>new</section>",
		},
		{
			name:     "numbered_reference",
			pattern:  `<(section)>.*?</section>`,
			template: "<$1>new</$1>",
			text:     "<section>old</section>",
			want:     "<section>new</section>",
		},
		{
			name:     "braced_reference_followed_by_digit",
			pattern:  `(a)`,
			template: "${1}0",
			text:     "a",
			want:     "a0",
		},
		{
			name:     "named_reference",
			pattern:  `(?P<tag>\w+):.*`,
			template: "${tag}=new",
			text:     "key: old",
			want:     "key=new",
		},
		{
			name:     "whole_match",
			pattern:  `old`,
			template: "[$0]",
			text:     "old",
			want:     "[old]",
		},
		{
			name:     "escaped_dollar",
			pattern:  `price`,
			template: "$$5 and $ alone and $x",
			text:     "price",
			want:     "$5 and $ alone and $x",
		},
		{
			name:     "trailing_dollar",
			pattern:  `a`,
			template: "cost$",
			text:     "a",
			want:     "cost$",
		},
		{
			name:        "missing_group",
			pattern:     `(a)`,
			template:    "$2",
			errContains: "group $2 does not exist",
		},
		{
			name:        "unknown_name",
			pattern:     `(a)`,
			template:    "const s = `${value}`",
			errContains: "unknown group ${value}",
		},
		{
			name:        "unterminated_brace",
			pattern:     `(a)`,
			template:    "${1",
			errContains: "unterminated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustCompile(tt.pattern)
			tmpl, err := ParseTemplate(p, tt.template)
			if tt.errContains != "" {
				require.Error(t, err)
				var tmplErr *TemplateError
				require.ErrorAs(t, err, &tmplErr)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.False(t, tmpl.Literal())
			assert.Equal(t, tt.template, tmpl.String())

			spans, err := p.FindAll(tt.text)
			require.NoError(t, err)
			require.Len(t, spans, 1)
			assert.Equal(t, tt.want, tmpl.Render(tt.text, spans[0]))
		})
	}
}

func TestLiteralTemplate(t *testing.T) {
	payload := "{items.map((x) => `${x.name}`)} costs $1"
	tmpl := LiteralTemplate(payload)

	assert.True(t, tmpl.Literal())
	assert.Equal(t, payload, tmpl.Render("anything", Span{Start: 0, End: 3}))
}
