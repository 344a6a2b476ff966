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
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 💾 FileSystem is the file access the Applier needs
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	// WriteFileAtomic replaces path with content so that a failure at any point
	// leaves the previous content in place
	WriteFileAtomic(ctx context.Context, path string, content []byte, perm fs.FileMode) error
}

// 💾 OSFileSystem is the FileSystem backed by the local disk
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

func (OSFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (OSFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory", path)
	}
	return info, nil
}

func (OSFileSystem) WriteFileAtomic(ctx context.Context, path string, content []byte, perm fs.FileMode) error {
	return WriteAtomic(path, bytes.NewReader(content), perm)
}

// 🔒 WriteAtomic streams r into a temp file next to path, syncs it, and renames it
// over path. The temp file is removed on any failure. When path is a symlink the
// file it points to is replaced and the link is left in place.
func WriteAtomic(path string, r io.Reader, perm fs.FileMode) (err error) {
	path, err = resolveTarget(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".blockpatch-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	if err = os.Rename(tempPath, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	syncDir(filepath.Dir(path))

	return nil
}

// resolveTarget follows symlinks so the rename lands on the real file.
// A path that does not exist yet is returned unchanged.
func resolveTarget(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, nil
	}
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", path, err)
	}
	return resolved, nil
}

// syncDir flushes the rename to disk. The new content is already in place at
// this point, so a filesystem that rejects directory fsync is not an error.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
