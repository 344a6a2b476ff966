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

package patch

import (
	"github.com/walteh/blockpatch/pkg/buffer"
	"github.com/walteh/blockpatch/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// ✂️ Substitute returns prefix + rendered template + suffix as a new Source.
// src is not modified.
func Substitute(src *buffer.Source, span match.Span, tmpl *match.Template) (*buffer.Source, error) {
	rendered := tmpl.Render(src.Text(), span)
	out, err := src.Splice(span.Start, span.End, rendered)
	if err != nil {
		return nil, errors.Errorf("substituting span %s: %w", span, err)
	}
	return out, nil
}
