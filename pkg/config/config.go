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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/blockpatch/pkg/match"
	"github.com/walteh/blockpatch/pkg/textenc"
)

// DefaultConcurrency bounds how many files a patch set touches at once
const DefaultConcurrency = 4

// 🔌 Parser is the interface for patch-set parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🩹 Patch is one block substitution applied to a set of files
type Patch struct {
	Name            string   `json:"name" yaml:"name"`
	Files           []string `json:"files" yaml:"files"`
	Pattern         string   `json:"pattern" yaml:"pattern"`
	Replacement     *string  `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	ReplacementFile string   `json:"replacement_file,omitempty" yaml:"replacement_file,omitempty"`
	Engine          string   `json:"engine,omitempty" yaml:"engine,omitempty"`
	Literal         bool     `json:"literal,omitempty" yaml:"literal,omitempty"`
	Encoding        string   `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

// 📚 Config is a complete patch set
type Config struct {
	Root        string  `json:"root,omitempty" yaml:"root,omitempty"`
	Concurrency int     `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Revalidate  *bool   `json:"revalidate,omitempty" yaml:"revalidate,omitempty"`
	Patches     []Patch `json:"patches" yaml:"patches"`

	location string
}

// 🎯 Load loads a patch set from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading patch set")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.location = path
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Int("patches", len(cfg.Patches)).Str("root", cfg.Root).Msg("patch set loaded")
	return cfg, nil
}

// Location is the file the config was loaded from, empty for in-memory configs
func (cfg *Config) Location() string {
	return cfg.location
}

// Dir is the directory relative paths in the config resolve against
func (cfg *Config) Dir() string {
	if cfg.location == "" {
		return "."
	}
	return filepath.Dir(cfg.location)
}

// ShouldRevalidate reports whether files are re-read before writing
func (cfg *Config) ShouldRevalidate() bool {
	return cfg.Revalidate == nil || *cfg.Revalidate
}

// 🔍 Validate checks the patch set and applies defaults
func (cfg *Config) Validate() error {
	if len(cfg.Patches) == 0 {
		return errors.New("at least one patch is required")
	}
	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must be positive, got %d", cfg.Concurrency)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(cfg.Dir(), cfg.Root)
	}
	cfg.Root = filepath.Clean(cfg.Root)

	seen := make(map[string]bool, len(cfg.Patches))
	for i := range cfg.Patches {
		p := &cfg.Patches[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("patch-%d", i+1)
		}
		if seen[p.Name] {
			return errors.Errorf("duplicate patch name %q", p.Name)
		}
		seen[p.Name] = true

		if err := cfg.validatePatch(p); err != nil {
			return errors.Errorf("patch %q: %w", p.Name, err)
		}
	}

	return nil
}

func (cfg *Config) validatePatch(p *Patch) error {
	if len(p.Files) == 0 {
		return errors.New("files is required")
	}
	if p.Pattern == "" {
		return errors.New("pattern is required")
	}
	if p.Replacement != nil && p.ReplacementFile != "" {
		return errors.New("replacement and replacement_file are mutually exclusive")
	}
	if p.Replacement == nil && p.ReplacementFile == "" {
		return errors.New("one of replacement or replacement_file is required")
	}

	if p.ReplacementFile != "" && !filepath.IsAbs(p.ReplacementFile) {
		p.ReplacementFile = filepath.Join(cfg.Dir(), p.ReplacementFile)
	}

	engine, err := match.ParseEngine(p.Engine)
	if err != nil {
		return err
	}
	p.Engine = engine.String()

	if p.Encoding == "" {
		p.Encoding = textenc.Default
	}
	if _, err := textenc.Lookup(p.Encoding); err != nil {
		return err
	}

	return nil
}

// 📄 LoadReplacement returns the replacement text, reading replacement_file when set
func (p Patch) LoadReplacement() (string, error) {
	if p.Replacement != nil {
		return *p.Replacement, nil
	}
	data, err := os.ReadFile(p.ReplacementFile)
	if err != nil {
		return "", errors.Errorf("reading replacement file: %w", err)
	}
	return string(data), nil
}

// 📝 String returns a short description of the patch
func (p Patch) String() string {
	return fmt.Sprintf("%s [%s] %s", p.Name, strings.Join(p.Files, ", "), match.Truncate(p.Pattern, 40))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return hasExtension(filename, ".yaml", ".yml")
}

// hasExtension compares the file extension case-insensitively
func hasExtension(filename string, exts ...string) bool {
	ext := filepath.Ext(strings.TrimSpace(filename))
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
