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
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// dotAll makes '.' match '\n' for the whole pattern
const dotAll = "(?s)"

type re2Pattern struct {
	src string
	re  *regexp.Regexp
}

func compileRE2(src string) (Pattern, error) {
	re, err := regexp.Compile(dotAll + src)
	if err != nil {
		return nil, errors.WithStack(&CompileError{Pattern: src, Engine: EngineRE2, Err: err})
	}
	return &re2Pattern{src: src, re: re}, nil
}

func (p *re2Pattern) String() string { return p.src }

func (p *re2Pattern) Engine() Engine { return EngineRE2 }

func (p *re2Pattern) GroupNames() []string {
	return p.re.SubexpNames()
}

func (p *re2Pattern) FindAll(text string) ([]Span, error) {
	names := p.re.SubexpNames()
	all := p.re.FindAllStringSubmatchIndex(text, -1)

	spans := make([]Span, 0, len(all))
	for _, loc := range all {
		span := Span{
			Start:  loc[0],
			End:    loc[1],
			Groups: make([]Group, len(names)),
		}
		for i := range names {
			span.Groups[i] = Group{Name: names[i], Start: loc[2*i], End: loc[2*i+1]}
		}
		spans = append(spans, span)
	}
	return spans, nil
}
