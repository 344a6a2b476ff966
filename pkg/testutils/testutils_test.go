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

package testutils

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()

	path := WriteFile(t, dir, "app/nested/page.tsx", "<section>old</section>")
	assert.Equal(t, filepath.Join(dir, "app", "nested", "page.tsx"), path)
	assert.Equal(t, "<section>old</section>", ReadFile(t, path))
}

func TestContext(t *testing.T) {
	ctx := Context(t)
	logger := zerolog.Ctx(ctx)
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}
