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
	"fmt"
	"strings"

	"github.com/walteh/blockpatch/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// maxListedSpans caps how many offsets an AmbiguousMatchError message prints.
// The Spans field always holds all of them.
const maxListedSpans = 10

// 🏷️ Kind classifies why a patch failed
type Kind string

const (
	KindUnknown                Kind = "unknown"
	KindCompile                Kind = "compile"
	KindTemplate               Kind = "template"
	KindRead                   Kind = "read"
	KindEngine                 Kind = "engine"
	KindNoMatch                Kind = "no_match"
	KindAmbiguous              Kind = "ambiguous"
	KindWrite                  Kind = "write"
	KindConcurrentModification Kind = "concurrent_modification"
)

// ❌ Error is returned for every failed patch. Err holds the typed cause
// (*match.NoMatchError, *AmbiguousMatchError, *WriteError, ...).
type Error struct {
	Kind  Kind
	Path  string
	State State   // the step that failed
	Trace []State // every state entered, ending in StateFailed
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("patching %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// 🔍 KindOf classifies any error returned by this package or by package match
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var patchErr *Error
	if errors.As(err, &patchErr) {
		return patchErr.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	var (
		compileErr    *match.CompileError
		templateErr   *match.TemplateError
		engineErr     *match.EngineError
		noMatchErr    *match.NoMatchError
		ambiguousErr  *AmbiguousMatchError
		readErr       *ReadError
		writeErr      *WriteError
		concurrentErr *ConcurrentModificationError
	)

	switch {
	case errors.As(err, &compileErr):
		return KindCompile
	case errors.As(err, &templateErr):
		return KindTemplate
	case errors.As(err, &engineErr):
		return KindEngine
	case errors.As(err, &noMatchErr):
		return KindNoMatch
	case errors.As(err, &ambiguousErr):
		return KindAmbiguous
	case errors.As(err, &readErr):
		return KindRead
	case errors.As(err, &writeErr):
		return KindWrite
	case errors.As(err, &concurrentErr):
		return KindConcurrentModification
	default:
		return KindUnknown
	}
}

// ❌ AmbiguousMatchError means the pattern matched more than once.
// Nothing is written: picking one of the spans could corrupt the wrong region.
type AmbiguousMatchError struct {
	Path    string
	Pattern string
	Count   int
	Spans   []match.Span
	Lines   []int // 1-based start line of each span
}

func (e *AmbiguousMatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pattern %q matched %d times in %s at", match.Truncate(e.Pattern, 60), e.Count, e.Path)
	for i, s := range e.Spans {
		if i == maxListedSpans {
			fmt.Fprintf(&b, " ... (%d more)", len(e.Spans)-maxListedSpans)
			break
		}
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, " %s", s)
		if i < len(e.Lines) {
			fmt.Fprintf(&b, " line %d", e.Lines[i])
		}
	}
	return b.String()
}

// Offsets returns the [start, end) byte offsets of every match
func (e *AmbiguousMatchError) Offsets() [][2]int {
	out := make([][2]int, len(e.Spans))
	for i, s := range e.Spans {
		out[i] = [2]int{s.Start, s.End}
	}
	return out
}

// ❌ ReadError means the target could not be read or decoded
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ❌ WriteError means the new content could not be encoded or written.
// The target still holds its original bytes.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s (%s): %v; original file left unchanged", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ❌ ConcurrentModificationError means the target changed between read and write
type ConcurrentModificationError struct {
	Path     string
	Expected string // checksum read at the start
	Actual   string // checksum found just before writing, empty if unreadable
	Err      error
}

func (e *ConcurrentModificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s changed while patching: %v; re-run required", e.Path, e.Err)
	}
	return fmt.Sprintf("%s changed while patching (checksum %.12s, now %.12s); re-run required", e.Path, e.Expected, e.Actual)
}

func (e *ConcurrentModificationError) Unwrap() error { return e.Err }
