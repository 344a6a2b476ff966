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

package match

import "fmt"

// patternWidth is how much of a pattern error messages show
const patternWidth = 60

// ❌ CompileError means the pattern is not well formed for its engine
type CompileError struct {
	Pattern string
	Engine  Engine
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s pattern %q: %v", e.Engine, Truncate(e.Pattern, patternWidth), e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// ❌ NoMatchError means the pattern matched nothing in the searched text
type NoMatchError struct {
	Path    string
	Pattern string
}

func (e *NoMatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("pattern %q matched nothing", Truncate(e.Pattern, patternWidth))
	}
	return fmt.Sprintf("pattern %q matched nothing in %s", Truncate(e.Pattern, patternWidth), e.Path)
}

// ❌ EngineError is a failure while searching, such as a backtracking timeout
type EngineError struct {
	Pattern string
	Engine  Engine
	Err     error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("searching with %s pattern %q: %v", e.Engine, Truncate(e.Pattern, patternWidth), e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// ❌ TemplateError means a replacement template cannot be rendered against its pattern
type TemplateError struct {
	Template string
	Reason   string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("replacement template %q: %s", Truncate(e.Template, patternWidth), e.Reason)
}
