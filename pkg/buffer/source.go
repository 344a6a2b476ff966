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

// Package buffer holds the in-memory text of a file for the duration of one patch.
package buffer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📄 Source is the decoded text of a file at one point in time.
// A Source is never modified after creation; Splice returns a new one.
type Source struct {
	path     string
	encoding string
	text     string
}

// 🏭 New creates a Source for the given path, encoding name, and decoded text
func New(path, encoding, text string) *Source {
	return &Source{
		path:     path,
		encoding: encoding,
		text:     text,
	}
}

// Path returns the file path the text was read from
func (s *Source) Path() string { return s.path }

// Encoding returns the declared encoding the text was decoded with
func (s *Source) Encoding() string { return s.encoding }

// Text returns the full decoded text
func (s *Source) Text() string { return s.text }

// Len returns the text length in bytes
func (s *Source) Len() int { return len(s.text) }

// 📏 LineCount returns the number of lines. A trailing newline does not start a new line.
func (s *Source) LineCount() int {
	if s.text == "" {
		return 0
	}
	n := strings.Count(s.text, "\n")
	if !strings.HasSuffix(s.text, "\n") {
		n++
	}
	return n
}

// 🔍 LineOf returns the 1-based line holding the byte at offset
func (s *Source) LineOf(offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.text) {
		offset = len(s.text)
	}
	return strings.Count(s.text[:offset], "\n") + 1
}

// 🔒 Checksum returns the hex SHA-256 of the text
func (s *Source) Checksum() string {
	return Checksum([]byte(s.text))
}

// Checksum returns the hex SHA-256 of raw content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ✂️ Splice returns a new Source whose text is s[:start] + text + s[end:].
// The receiver is left untouched.
func (s *Source) Splice(start, end int, text string) (*Source, error) {
	if start < 0 || end < start || end > len(s.text) {
		return nil, errors.Errorf("splice range [%d, %d) out of bounds for %d bytes", start, end, len(s.text))
	}

	var b strings.Builder
	b.Grow(len(s.text) - (end - start) + len(text))
	b.WriteString(s.text[:start])
	b.WriteString(text)
	b.WriteString(s.text[end:])

	return New(s.path, s.encoding, b.String()), nil
}

// String returns a short description for logs
func (s *Source) String() string {
	return fmt.Sprintf("%s (%s, %d bytes, %d lines)", s.path, s.encoding, s.Len(), s.LineCount())
}
