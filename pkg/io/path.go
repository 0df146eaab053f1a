//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package io

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/containers/common/pkg/strongunits"
	"github.com/sirupsen/logrus"
)

type PathWrapper struct {
	path  string
	isDir bool
}

func NewFile(f string) *PathWrapper {
	return &PathWrapper{
		path:  f,
		isDir: false,
	}
}

func NewDir(d string) *PathWrapper {
	return &PathWrapper{
		path:  d,
		isDir: true,
	}
}

func (m *PathWrapper) GetPath() string {
	return m.path
}

// Delete removes the path. When root is not empty the path must live inside root,
// anything else is refused. A path that is already gone is not an error.
func (m *PathWrapper) Delete(root string) error {
	if root != "" {
		rel, err := filepath.Rel(root, m.path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			return fmt.Errorf("path %q is not inside %q, refuse delete", m.path, root)
		}
	}

	logrus.Infof("delete file %s", m.path)
	var err error
	if m.isDir {
		err = os.RemoveAll(m.path)
	} else {
		err = os.Remove(m.path)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", m.path, err)
	}
	return nil
}

// Read the contents of a given file and return in []bytes
func (m *PathWrapper) Read() ([]byte, error) {
	if m.isDir {
		return nil, fmt.Errorf("can not read content from directory %s", m.path)
	}
	return os.ReadFile(m.path) //nolint:wrapcheck
}

func (m *PathWrapper) IsExist() bool {
	_, err := os.Stat(m.path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return false
	}
	return true
}

func (m *PathWrapper) IsDir() bool {
	fi, err := os.Stat(m.path)
	return err == nil && fi.IsDir()
}

func (m *PathWrapper) IsRegular() bool {
	fi, err := os.Stat(m.path)
	return err == nil && fi.Mode().IsRegular()
}

// KeepTail shrinks the file to its last n MiB when it grew bigger than that.
func (m *PathWrapper) KeepTail(n strongunits.MiB) error {
	fileInfo, err := os.Stat(m.path)
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}
	keep := int64(n.ToBytes())
	if fileInfo.Size() <= keep {
		return nil
	}

	file, err := os.Open(m.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", m.path, err)
	}
	defer file.Close() //nolint:errcheck

	if _, err = file.Seek(fileInfo.Size()-keep, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek %s: %w", m.path, err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(m.path), ".trimmed-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name()) //nolint:errcheck

	if _, err = io.Copy(tempFile, file); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("failed to copy log tail: %w", err)
	}
	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	_ = file.Close()

	if err = os.Rename(tempFile.Name(), m.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", m.path, err)
	}
	return nil
}

func (m *PathWrapper) MakeBaseDir() error {
	err := os.MkdirAll(filepath.Dir(m.GetPath()), os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create base dir: %w", err)
	}
	return nil
}

func (m *PathWrapper) AppendDir(additionalPath string) *PathWrapper {
	return NewDir(filepath.Join(m.path, additionalPath))
}

func (m *PathWrapper) AppendFile(additionalPath string) *PathWrapper {
	return NewFile(filepath.Join(m.path, additionalPath))
}
