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

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/buffer"
	"github.com/walteh/blockpatch/pkg/match"
	"github.com/walteh/blockpatch/pkg/patch"
	"github.com/walteh/blockpatch/pkg/textenc"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	var pattern, engine, encoding string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Report where a pattern matches without changing the file",
		Long: `Check lists every block --pattern matches in <file> with its byte offsets
and line. It exits non-zero unless there is exactly one match, so it can guard
an apply in scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			codec, err := textenc.Lookup(encoding)
			if err != nil {
				return errors.Errorf("invalid flags: %w", err)
			}

			e, err := match.ParseEngine(engine)
			if err != nil {
				return errors.Errorf("invalid flags: %w", err)
			}

			p, err := match.Compile(pattern, match.WithEngine(e))
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return errors.WithStack(&patch.ReadError{Path: path, Err: err})
			}
			text, err := codec.Decode(raw)
			if err != nil {
				return errors.WithStack(&patch.ReadError{Path: path, Err: err})
			}
			src := buffer.New(path, codec.Name(), text)

			spans, err := p.FindAll(src.Text())
			if err != nil {
				return err
			}

			lines := make([]int, len(spans))
			for i, span := range spans {
				lines[i] = src.LineOf(span.Start)
				fmt.Fprintf(o.Console, "%s:%d: %s\n", path, lines[i], span)
			}
			o.UserLogger.LogMatches(path, spans, lines)

			switch len(spans) {
			case 0:
				return errors.WithStack(&match.NoMatchError{Path: path, Pattern: pattern})
			case 1:
				return nil
			default:
				return errors.WithStack(&patch.AmbiguousMatchError{
					Path:    path,
					Pattern: pattern,
					Count:   len(spans),
					Spans:   spans,
					Lines:   lines,
				})
			}
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "regular expression matching the block")
	cmd.Flags().StringVar(&engine, "engine", "re2", "pattern engine: re2 or regexp2")
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "file encoding")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}
