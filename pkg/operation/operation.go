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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/blockpatch/pkg/config"
	"github.com/walteh/blockpatch/pkg/match"
	"github.com/walteh/blockpatch/pkg/patch"
)

// 🎯 Job applies one patch to one file
type Job struct {
	Patch   string // patch name from the config
	Request patch.Request
}

// 📋 Plan compiles every patch in cfg and creates one job per target file,
// in config order.
func Plan(ctx context.Context, cfg *config.Config, mode patch.Mode) ([]Job, error) {
	logger := zerolog.Ctx(ctx)

	var jobs []Job
	for _, p := range cfg.Patches {
		pattern, tmpl, err := compile(p)
		if err != nil {
			return nil, errors.Errorf("patch %q: %w", p.Name, err)
		}

		targets, err := cfg.ResolveTargets(p)
		if err != nil {
			return nil, errors.Errorf("patch %q: %w", p.Name, err)
		}

		logger.Debug().
			Str("patch", p.Name).
			Str("engine", pattern.Engine().String()).
			Bool("literal", tmpl.Literal()).
			Int("targets", len(targets)).
			Msg("planned patch")

		for _, path := range targets {
			jobs = append(jobs, Job{
				Patch: p.Name,
				Request: patch.Request{
					Path:       path,
					Pattern:    pattern,
					Template:   tmpl,
					Encoding:   p.Encoding,
					Mode:       mode,
					Revalidate: cfg.ShouldRevalidate(),
				},
			})
		}
	}

	return jobs, nil
}

// compile builds the pattern and template for a patch
func compile(p config.Patch) (match.Pattern, *match.Template, error) {
	engine, err := match.ParseEngine(p.Engine)
	if err != nil {
		return nil, nil, err
	}

	pattern, err := match.Compile(p.Pattern, match.WithEngine(engine))
	if err != nil {
		return nil, nil, err
	}

	replacement, err := p.LoadReplacement()
	if err != nil {
		return nil, nil, err
	}

	if p.Literal {
		return pattern, match.LiteralTemplate(replacement), nil
	}

	tmpl, err := match.ParseTemplate(pattern, replacement)
	if err != nil {
		return nil, nil, err
	}
	return pattern, tmpl, nil
}
