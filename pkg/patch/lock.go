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

import (
	"path/filepath"
	"sync"
)

// 🔐 PathLocker serialises operations on the same file within this process.
// Different paths never wait on each other.
type PathLocker struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

// NewPathLocker creates an empty lock table
func NewPathLocker() *PathLocker {
	return &PathLocker{locks: make(map[string]*pathLock)}
}

// Lock blocks until path is free and returns the function that releases it
func (l *PathLocker) Lock(path string) (unlock func()) {
	key := lockKey(path)

	l.mu.Lock()
	pl, ok := l.locks[key]
	if !ok {
		pl = &pathLock{}
		l.locks[key] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			pl.mu.Unlock()

			l.mu.Lock()
			pl.refs--
			if pl.refs == 0 {
				delete(l.locks, key)
			}
			l.mu.Unlock()
		})
	}
}

// held returns how many callers hold or wait for locks
func (l *PathLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, pl := range l.locks {
		n += pl.refs
	}
	return n
}

// lockKey resolves symlinks where possible so two names for one file share a lock
func lockKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
