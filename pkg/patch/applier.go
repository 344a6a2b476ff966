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

// Package patch replaces exactly one pattern-matched block of a text file.
//
// A patch reads the whole file, finds every span the pattern matches, and only
// proceeds when there is exactly one. The new content is written to a temp file and
// renamed into place, so on any failure the target keeps its original bytes.
package patch

import (
	"context"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/walteh/blockpatch/pkg/buffer"
	"github.com/walteh/blockpatch/pkg/match"
	"github.com/walteh/blockpatch/pkg/textenc"
	"gitlab.com/tozd/go/errors"
)

// 🎛️ Mode selects what happens after a successful substitution
type Mode int

const (
	// ModeWrite writes the new content back to the file
	ModeWrite Mode = iota
	// ModeDryRun returns the new content without touching the file
	ModeDryRun
)

// String returns a string representation of Mode
func (m Mode) String() string {
	if m == ModeDryRun {
		return "dry-run"
	}
	return "write"
}

// 📋 Request describes one patch of one file
type Request struct {
	Path     string
	Pattern  match.Pattern
	Template *match.Template
	Encoding string // defaults to textenc.Default
	Mode     Mode
	// Revalidate re-reads the file just before writing and aborts if it changed
	Revalidate bool
	// Base, in dry-run mode, is matched instead of the file on disk. It lets a
	// dry run of several patches to one file see the earlier patches' output.
	Base *buffer.Source
}

// 📊 Result describes a successful patch
type Result struct {
	Path    string
	Mode    Mode
	Span    match.Span     // the single matched span, offsets into Before
	Before  *buffer.Source // content as read
	After   *buffer.Source // content with the span replaced
	Written bool           // false for dry runs and for replacements that change nothing
	Trace   []State
}

// Changed reports whether the substitution altered the content
func (r *Result) Changed() bool {
	return r.Before.Text() != r.After.Text()
}

// 🔧 Applier runs patch requests. It is safe for concurrent use; requests for
// the same path are serialised.
type Applier struct {
	fs    FileSystem
	locks *PathLocker
}

// Option configures an Applier
type Option func(*Applier)

// WithFileSystem replaces the local disk
func WithFileSystem(fs FileSystem) Option {
	return func(a *Applier) { a.fs = fs }
}

// 🏭 New creates an Applier backed by the local disk
func New(opts ...Option) *Applier {
	a := &Applier{
		fs:    OSFileSystem{},
		locks: NewPathLocker(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultApplier = New()

// 🎯 Apply compiles pattern, parses replacement against it, and patches path in place
// using the default encoding, with re-validation before writing.
func Apply(ctx context.Context, path, pattern, replacement string) (*Result, error) {
	p, err := match.Compile(pattern)
	if err != nil {
		return nil, &Error{Kind: KindCompile, Path: path, State: StateIdle, Trace: []State{StateIdle, StateFailed}, Err: err}
	}
	tmpl, err := match.ParseTemplate(p, replacement)
	if err != nil {
		return nil, &Error{Kind: KindTemplate, Path: path, State: StateIdle, Trace: []State{StateIdle, StateFailed}, Err: err}
	}
	return defaultApplier.Apply(ctx, Request{
		Path:       path,
		Pattern:    p,
		Template:   tmpl,
		Revalidate: true,
	})
}

// run tracks the state machine of one Apply call
type run struct {
	logger *zerolog.Logger
	path   string
	state  State
	trace  []State
}

func (r *run) enter(s State) {
	r.state = s
	r.trace = append(r.trace, s)
	r.logger.Debug().Str("path", r.path).Str("state", s.String()).Msg("patch state")
}

func (r *run) fail(kind Kind, err error) error {
	failedAt := r.state
	r.enter(StateFailed)
	r.logger.Debug().Str("path", r.path).Str("kind", string(kind)).Err(err).Msg("patch failed")
	return errors.WithStack(&Error{
		Kind:  kind,
		Path:  r.path,
		State: failedAt,
		Trace: append([]State(nil), r.trace...),
		Err:   err,
	})
}

// 🏃 Apply runs read → match → validate → substitute → write for req
func (a *Applier) Apply(ctx context.Context, req Request) (*Result, error) {
	r := &run{logger: zerolog.Ctx(ctx), path: req.Path}
	r.enter(StateIdle)

	switch {
	case req.Path == "":
		return nil, r.fail(KindRead, &ReadError{Err: errors.New("path is required")})
	case req.Pattern == nil:
		return nil, r.fail(KindCompile, errors.New("pattern is required"))
	case req.Template == nil:
		return nil, r.fail(KindTemplate, errors.New("replacement template is required"))
	}

	codec, err := textenc.Lookup(req.Encoding)
	if err != nil {
		return nil, r.fail(KindRead, &ReadError{Path: req.Path, Err: err})
	}

	unlock := a.locks.Lock(req.Path)
	defer unlock()

	// 1. read
	r.enter(StateReading)
	var (
		src          *buffer.Source
		info         fs.FileInfo
		readChecksum string
	)
	if req.Mode == ModeDryRun && req.Base != nil {
		src = req.Base
	} else {
		raw, err := a.fs.ReadFile(ctx, req.Path)
		if err != nil {
			return nil, r.fail(KindRead, &ReadError{Path: req.Path, Err: err})
		}
		info, err = a.fs.Stat(ctx, req.Path)
		if err != nil {
			return nil, r.fail(KindRead, &ReadError{Path: req.Path, Err: err})
		}
		text, err := codec.Decode(raw)
		if err != nil {
			return nil, r.fail(KindRead, &ReadError{Path: req.Path, Err: err})
		}
		src = buffer.New(req.Path, codec.Name(), text)
		readChecksum = buffer.Checksum(raw)
	}

	// 2. match
	r.enter(StateMatching)
	spans, err := match.Find(req.Pattern, src)
	var noMatch *match.NoMatchError
	switch {
	case errors.As(err, &noMatch):
		r.enter(StateValidating)
		return nil, r.fail(KindNoMatch, err)
	case err != nil:
		return nil, r.fail(classifyOr(err, KindEngine), err)
	}

	// 3. validate cardinality
	r.enter(StateValidating)
	if len(spans) > 1 {
		lines := make([]int, len(spans))
		for i, s := range spans {
			lines[i] = src.LineOf(s.Start)
		}
		return nil, r.fail(KindAmbiguous, &AmbiguousMatchError{
			Path:    req.Path,
			Pattern: req.Pattern.String(),
			Count:   len(spans),
			Spans:   spans,
			Lines:   lines,
		})
	}
	span := spans[0]

	// 4. substitute
	r.enter(StateSubstituting)
	out, err := Substitute(src, span, req.Template)
	if err != nil {
		return nil, r.fail(KindUnknown, err)
	}

	result := &Result{
		Path:   req.Path,
		Mode:   req.Mode,
		Span:   span,
		Before: src,
		After:  out,
	}

	r.logger.Debug().
		Str("path", req.Path).
		Int("start", span.Start).
		Int("end", span.End).
		Int("line", src.LineOf(span.Start)).
		Int("old_bytes", src.Len()).
		Int("new_bytes", out.Len()).
		Msg("substituted block")

	if req.Mode == ModeDryRun || !result.Changed() {
		r.enter(StateDone)
		result.Trace = r.trace
		return result, nil
	}

	// 5. write
	r.enter(StateWriting)
	encoded, err := codec.Encode(out.Text())
	if err != nil {
		return nil, r.fail(KindWrite, &WriteError{Path: req.Path, Op: "encode", Err: err})
	}

	if req.Revalidate {
		if err := a.revalidate(ctx, req.Path, readChecksum); err != nil {
			return nil, r.fail(KindConcurrentModification, err)
		}
	}

	if err := a.fs.WriteFileAtomic(ctx, req.Path, encoded, info.Mode().Perm()); err != nil {
		return nil, r.fail(KindWrite, &WriteError{Path: req.Path, Op: "atomic write", Err: err})
	}

	r.enter(StateDone)
	result.Written = true
	result.Trace = r.trace
	return result, nil
}

// revalidate re-reads path and compares it with the checksum taken at read time
func (a *Applier) revalidate(ctx context.Context, path, expected string) error {
	current, err := a.fs.ReadFile(ctx, path)
	if err != nil {
		return &ConcurrentModificationError{Path: path, Expected: expected, Err: err}
	}
	if actual := buffer.Checksum(current); actual != expected {
		return &ConcurrentModificationError{Path: path, Expected: expected, Actual: actual}
	}
	return nil
}

func classifyOr(err error, fallback Kind) Kind {
	if k := classify(err); k != KindUnknown {
		return k
	}
	return fallback
}
