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

// Package log prints patch progress to the console alongside structured logs.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/blockpatch/pkg/diff"
	"github.com/walteh/blockpatch/pkg/status"
)

// detailIndent lines up error and diff details under the file column
const detailIndent = 6

// 📦 PatchSetOperation describes a run of a patch set for logging
type PatchSetOperation struct {
	Config  string // Config file path
	Root    string // Directory targets resolve against
	Patches int    // Number of patches in the set
	Jobs    int    // Number of (patch, file) pairs
	DryRun  bool   // Whether files are left untouched
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog     zerolog.Logger
	console  io.Writer
	mu       sync.Mutex
	current  *PatchSetOperation
	outcomes []status.Outcome
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 LogOutcome prints one outcome, with its error or diff underneath
func (l *Logger) LogOutcome(ctx context.Context, o status.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.outcomes = append(l.outcomes, o)

	fmt.Fprintln(l.console, status.FormatOutcome(o))
	pad := strings.Repeat(" ", detailIndent)
	if o.Err != nil {
		for _, line := range strings.Split(o.Err.Error(), "\n") {
			fmt.Fprintf(l.console, "%s%s %s\n", pad, color.New(color.Faint).Sprint("↳"), line)
		}
	}
	if o.Diff != "" {
		for _, line := range strings.Split(strings.TrimSuffix(diff.Colourise(o.Diff), "\n"), "\n") {
			fmt.Fprintln(l.console, pad+line)
		}
	}

	ev := l.zlog.Info()
	if o.Err != nil {
		ev = l.zlog.Warn().Err(o.Err).Str("kind", string(o.Kind))
	}
	ev.Str("patch", o.Patch).
		Str("file", o.Path).
		Str("status", o.Status.String()).
		Int("line", o.Line).
		Msg("patch outcome")
}

// 📝 StartPatchSet starts a new patch set run
func (l *Logger) StartPatchSet(ctx context.Context, op PatchSetOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &op
	l.outcomes = nil

	fmt.Fprintf(l.console, "[patching %s]\n",
		color.New(color.FgCyan).Sprint(op.Root))

	mode := "write"
	if op.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Config),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d patches, %d files, %s", op.Patches, op.Jobs, mode))

	l.zlog.Info().
		Str("config", op.Config).
		Str("root", op.Root).
		Int("patches", op.Patches).
		Int("jobs", op.Jobs).
		Bool("dry_run", op.DryRun).
		Msg("starting patch set")
}

// 📝 EndPatchSet prints the summary and ends the current patch set
func (l *Logger) EndPatchSet(ctx context.Context, s status.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}

	fmt.Fprintln(l.console)
	fmt.Fprintln(l.console, status.FormatSummary(s))

	l.zlog.Info().
		Str("config", l.current.Config).
		Int("outcomes", len(l.outcomes)).
		Int("patched", s.Patched).
		Int("would_patch", s.WouldPatch).
		Int("unchanged", s.Unchanged).
		Int("failed", s.Failed).
		Msg("patch set complete")

	l.current = nil
	l.outcomes = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("blockpatch")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
