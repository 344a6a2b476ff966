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

// Package textenc converts file bytes to text and back using a declared encoding.
// It never guesses: the caller names the encoding.
package textenc

import (
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Default is the encoding used when none is declared
const Default = "utf-8"

// 🔤 Codec decodes file bytes into text and encodes text back into bytes
type Codec interface {
	Name() string
	Decode(raw []byte) (string, error)
	Encode(text string) ([]byte, error)
}

// 🔍 Lookup returns the codec for an IANA encoding name. An empty name means Default.
func Lookup(name string) (Codec, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "", "utf-8", "utf8":
		return utf8Codec{}, nil
	}

	enc, err := ianaindex.IANA.Encoding(normalized)
	if err != nil {
		return nil, errors.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, errors.Errorf("unsupported encoding %q", name)
	}

	return &xtextCodec{name: normalized, enc: enc}, nil
}

type utf8Codec struct{}

func (utf8Codec) Name() string { return Default }

func (utf8Codec) Decode(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", errors.Errorf("content is not valid %s", Default)
	}
	return string(raw), nil
}

func (utf8Codec) Encode(text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, errors.Errorf("text is not valid %s", Default)
	}
	return []byte(text), nil
}

// xtextCodec wraps any golang.org/x/text encoding
type xtextCodec struct {
	name string
	enc  encoding.Encoding
}

func (c *xtextCodec) Name() string { return c.name }

func (c *xtextCodec) Decode(raw []byte) (string, error) {
	out, err := c.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.Errorf("decoding %s: %w", c.name, err)
	}
	return string(out), nil
}

func (c *xtextCodec) Encode(text string) ([]byte, error) {
	out, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Errorf("encoding %s: %w", c.name, err)
	}
	return out, nil
}
