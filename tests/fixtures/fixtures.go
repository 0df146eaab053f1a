//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package fixtures

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

var dir string
var once sync.Once

// GetTestFixtures returns <project root>/tests/fixtures/<name>.
func GetTestFixtures(name string) string {
	once.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			panic(fmt.Errorf("failed to get current working directory: %w", err))
		}
		dir = getTestFixtures(cwd)
	})

	return filepath.Join(dir, name)
}

// CopyTestFixtures copies a fixture tree into a fresh temporary directory so a
// test can mutate it, and returns the copy's path.
func CopyTestFixtures(t testing.TB, name string) string {
	t.Helper()

	src := GetTestFixtures(name)
	dst := t.TempDir()
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err //nolint:wrapcheck
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755) //nolint:wrapcheck
		}
		info, err := d.Info()
		if err != nil {
			return err //nolint:wrapcheck
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err //nolint:wrapcheck
		}
		return os.WriteFile(target, data, info.Mode().Perm()) //nolint:wrapcheck
	})
	if err != nil {
		t.Fatalf("failed to copy fixture %q: %v", name, err)
	}
	return dst
}

func getTestFixtures(dir string) string {
	if dir == "/" || filepath.VolumeName(dir) == dir {
		panic(fmt.Errorf("could not find project root (no go.mod found)"))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		panic(fmt.Errorf("failed to read current working directory: %w", err))
	}

	for _, entry := range entries {
		if entry.Name() == "go.mod" {
			return filepath.Join(dir, "tests", "fixtures")
		}
	}

	return getTestFixtures(filepath.Dir(dir))
}
