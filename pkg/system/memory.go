//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package system

import (
	"fmt"

	"github.com/containers/common/pkg/strongunits"
	"github.com/shirou/gopsutil/v3/mem"
)

// TotalMemory returns the host memory in MiB.
func TotalMemory() (strongunits.MiB, error) {
	memStat, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("failed to get virtual memory: %w", err)
	}
	return strongunits.MiB(memStat.Total >> 20), nil
}
