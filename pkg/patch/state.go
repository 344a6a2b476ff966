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

package patch

// 🚦 State is a step of one patch operation.
//
//	Idle → Reading → Matching → Validating → Substituting → Writing → Done
//
// Any state can move to Failed. Done and Failed are terminal.
type State int

const (
	StateIdle State = iota
	StateReading
	StateMatching
	StateValidating
	StateSubstituting
	StateWriting
	StateDone
	StateFailed
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "reading"
	case StateMatching:
		return "matching"
	case StateValidating:
		return "validating"
	case StateSubstituting:
		return "substituting"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
