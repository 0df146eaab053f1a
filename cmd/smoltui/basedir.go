//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"smoltui/pkg/define"
	"smoltui/pkg/io"
)

// resolveBaseDir picks the base directory from the argument or the environment
// and returns it absolute, without symlinks.
func resolveBaseDir(args []string) (string, error) {
	dir := os.Getenv(define.BaseDirEnv)
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}
	if dir == "" {
		return "", fmt.Errorf("no base directory given and $%s is unset: %w", define.BaseDirEnv, define.ErrBaseDirInvalid)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	if !io.NewDir(abs).IsDir() {
		return "", fmt.Errorf("%s is not a directory: %w", abs, define.ErrBaseDirInvalid)
	}
	if !io.NewFile(filepath.Join(abs, define.LauncherName)).IsRegular() {
		return "", fmt.Errorf("%s has no %s: %w", abs, define.LauncherName, define.ErrBaseDirInvalid)
	}
	if !io.NewDir(filepath.Join(abs, define.ConfigPrefixDir)).IsDir() {
		return "", fmt.Errorf("%s has no %s/ directory: %w", abs, define.ConfigPrefixDir, define.ErrBaseDirInvalid)
	}
	return abs, nil
}
