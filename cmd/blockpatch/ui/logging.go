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

// Package ui renders command results and failure diagnostics for humans.
package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/blockpatch/pkg/match"
	"github.com/walteh/blockpatch/pkg/patch"
)

// 📢 UserLogger provides user-friendly feedback about patch results
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		u.LogDiagnostic(err)
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}

// 🩺 LogDiagnostic explains a failed patch: its kind, and the match offsets when
// the pattern was ambiguous
func (u *UserLogger) LogDiagnostic(err error) {
	kind := patch.KindOf(err)
	errPrinter := u.printer(pterm.Error, "✗")
	errPrinter.Printf("%s: %v\n", kind, err)

	var ambiguous *patch.AmbiguousMatchError
	if errors.As(err, &ambiguous) {
		hint := u.printer(pterm.Info, "↳")
		for i, span := range ambiguous.Spans {
			line := 0
			if i < len(ambiguous.Lines) {
				line = ambiguous.Lines[i]
			}
			hint.Printf("match %d at %s, line %d\n", i+1, span, line)
		}
		hint.Println("narrow the pattern so it matches exactly one block")
	}

	var noMatch *match.NoMatchError
	if errors.As(err, &noMatch) {
		u.printer(pterm.Info, "↳").Println("the file may already be patched, or the pattern does not match its current content")
	}

	var concurrent *patch.ConcurrentModificationError
	if errors.As(err, &concurrent) {
		u.printer(pterm.Info, "↳").Println("the file changed while it was being patched; re-run to patch the new content")
	}
}

// 📊 LogMatches reports every span a pattern matched in a file
func (u *UserLogger) LogMatches(path string, spans []match.Span, lines []int) {
	var base pterm.PrefixPrinter
	var prefix string
	switch len(spans) {
	case 1:
		base, prefix = pterm.Success, "✅"
	case 0:
		base, prefix = pterm.Warning, "⚠️"
	default:
		base, prefix = pterm.Error, "❌"
	}

	msg := fmt.Sprintf("%s: %d matches", path, len(spans))
	u.printer(base, prefix).Println(msg)
	for i, span := range spans {
		u.printer(pterm.Info, "↳").Printf("%s line %d (%d bytes)\n", span, lines[i], span.Len())
	}
	u.log.Info().Str("path", path).Int("matches", len(spans)).Msg("checked pattern")
}
