//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package vm

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"smoltui/pkg/define"

	"github.com/sirupsen/logrus"
)

// LoadAll reads every <base>/etc/*.conf file and returns the VMs sorted by name.
// A file that can not be loaded is logged and skipped.
func LoadAll(baseDir string) ([]*VM, error) {
	files, err := ListFiles(filepath.Join(baseDir, define.ConfigPrefixDir))
	if err != nil {
		return nil, fmt.Errorf("failed to read VMs configurations: %w", err)
	}

	vms := make([]*VM, 0, len(files))
	for _, f := range files {
		if !strings.HasSuffix(f, define.ConfSuffix) {
			continue
		}
		v, err := Load(f, baseDir)
		if err != nil {
			logrus.Warnf("skip %s: %v", f, err)
			continue
		}
		vms = append(vms, v)
	}
	Sort(vms)
	return vms, nil
}

// ListFiles returns the absolute paths of the regular files in dir, sorted.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)
	return files, nil
}

func Sort(vms []*VM) {
	slices.SortFunc(vms, func(a, b *VM) int {
		return strings.Compare(a.Name, b.Name)
	})
}
