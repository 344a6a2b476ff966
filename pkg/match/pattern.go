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

// Package match compiles multi-line block patterns and locates the spans they match.
//
// Every pattern is compiled with dot-matches-newline enabled, whatever the engine,
// because the regions being replaced are multi-line blocks. Both greedy and lazy
// quantifiers are available; block boundaries are best written with an explicit
// closing anchor and a lazy span, e.g. `<section>[\s\S]*?</section>`.
package match

import (
	"strings"
	"time"

	"github.com/walteh/blockpatch/pkg/buffer"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Engine selects the regular expression implementation behind a Pattern
type Engine int

const (
	// EngineRE2 is Go's linear-time regexp package
	EngineRE2 Engine = iota
	// EngineBacktrack supports lookaround and backreferences, bounded by a timeout
	EngineBacktrack
)

// DefaultTimeout bounds a single backtracking search
const DefaultTimeout = 5 * time.Second

// String returns the engine name as used in config files and flags
func (e Engine) String() string {
	switch e {
	case EngineRE2:
		return "re2"
	case EngineBacktrack:
		return "regexp2"
	default:
		return "unknown"
	}
}

// 🔍 ParseEngine maps a config or flag value to an Engine
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "re2", "regexp":
		return EngineRE2, nil
	case "regexp2", "backtrack", "pcre":
		return EngineBacktrack, nil
	default:
		return 0, errors.Errorf("unknown pattern engine %q (want re2 or regexp2)", name)
	}
}

// 🧩 Pattern is a compiled, stateless block pattern. It is safe for concurrent use.
type Pattern interface {
	// String returns the raw pattern source
	String() string
	// Engine returns the implementation the pattern was compiled with
	Engine() Engine
	// GroupNames returns one entry per group, index 0 being the whole match.
	// Unnamed groups have an empty name.
	GroupNames() []string
	// FindAll returns every non-overlapping span in text, left to right
	FindAll(text string) ([]Span, error)
}

type options struct {
	engine  Engine
	timeout time.Duration
}

// Option configures Compile
type Option func(*options)

// WithEngine selects the engine
func WithEngine(e Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithTimeout bounds each backtracking search. Ignored by EngineRE2.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// 🏗️ Compile compiles src with dot-matches-newline always enabled
func Compile(src string, opts ...Option) (Pattern, error) {
	o := options{engine: EngineRE2, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	switch o.engine {
	case EngineRE2:
		return compileRE2(src)
	case EngineBacktrack:
		return compileBacktrack(src, o.timeout)
	default:
		return nil, errors.WithStack(&CompileError{
			Pattern: src,
			Engine:  o.engine,
			Err:     errors.Errorf("unknown engine %d", int(o.engine)),
		})
	}
}

// MustCompile is Compile for patterns known to be valid. It panics on error.
func MustCompile(src string, opts ...Option) Pattern {
	p, err := Compile(src, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// 🎯 Find returns the spans p matches in src, or a NoMatchError when there are none
func Find(p Pattern, src *buffer.Source) ([]Span, error) {
	spans, err := p.FindAll(src.Text())
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return nil, errors.WithStack(&NoMatchError{Path: src.Path(), Pattern: p.String()})
	}
	return spans, nil
}

// ✂️ Truncate renders a pattern on one line, cut to at most n runes
func Truncate(pattern string, n int) string {
	flat := strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`).Replace(pattern)
	runes := []rune(flat)
	if n <= 0 || len(runes) <= n {
		return flat
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
