//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package vm

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"smoltui/pkg/define"
	"smoltui/pkg/io"
)

// PidFilePath returns <base>/qemu-<name>.pid.
func PidFilePath(baseDir, name string) string {
	return filepath.Join(baseDir, define.PidFilePrefix+name+define.PidFileSuffix)
}

// NameFromPidFile returns the VM name encoded in a marker file name.
func NameFromPidFile(fileName string) (string, bool) {
	name, ok := strings.CutPrefix(fileName, define.PidFilePrefix)
	if !ok {
		return "", false
	}
	name, ok = strings.CutSuffix(name, define.PidFileSuffix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// ReadPid reads the marker file of a VM. present is false when there is no marker.
// A marker that exists but can not be read or parsed is returned as an error.
func ReadPid(baseDir, name string) (pid int, present bool, err error) {
	f := io.NewFile(PidFilePath(baseDir, name))
	if !f.IsExist() {
		return 0, false, nil
	}
	b, err := f.Read()
	if err != nil {
		return 0, true, fmt.Errorf("failed to read pid file %s: %w", f.GetPath(), err)
	}
	pid, err = strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, true, fmt.Errorf("failed to parse pid file %s: %w", f.GetPath(), err)
	}
	if pid <= 0 {
		return 0, true, fmt.Errorf("pid file %s holds invalid pid %d", f.GetPath(), pid)
	}
	return pid, true, nil
}
