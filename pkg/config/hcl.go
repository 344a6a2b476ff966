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

package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// Patches are written as labelled blocks:
//
//	patch "controls" {
//	  files   = ["app/page.tsx"]
//	  pattern = <<EOT
//	/\* Controls \*/.*?</section>
//	EOT
//	  replacement_file = "controls.tsx"
//	}
//
// Heredocs keep backslashes intact. A literal "${" must be written "$${".
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExtension(filename, ".hcl")
}

type hclPatch struct {
	Name            string   `hcl:"name,label"`
	Files           []string `hcl:"files"`
	Pattern         string   `hcl:"pattern"`
	Replacement     *string  `hcl:"replacement,optional"`
	ReplacementFile *string  `hcl:"replacement_file,optional"`
	Engine          *string  `hcl:"engine,optional"`
	Literal         *bool    `hcl:"literal,optional"`
	Encoding        *string  `hcl:"encoding,optional"`
}

type hclConfig struct {
	Root        *string    `hcl:"root,optional"`
	Concurrency *int       `hcl:"concurrency,optional"`
	Revalidate  *bool      `hcl:"revalidate,optional"`
	Patches     []hclPatch `hcl:"patch,block"`
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "patches.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Root:        deref(raw.Root),
		Concurrency: deref(raw.Concurrency),
		Revalidate:  raw.Revalidate,
	}
	for _, rp := range raw.Patches {
		cfg.Patches = append(cfg.Patches, Patch{
			Name:            rp.Name,
			Files:           rp.Files,
			Pattern:         rp.Pattern,
			Replacement:     rp.Replacement,
			ReplacementFile: deref(rp.ReplacementFile),
			Engine:          deref(rp.Engine),
			Literal:         deref(rp.Literal),
			Encoding:        deref(rp.Encoding),
		})
	}

	return cfg, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
