//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package system

import (
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/sirupsen/logrus"
)

func Version() string {
	info, err := host.Info()
	if err != nil {
		logrus.Errorf("failed to get host info: %v", err)
		return "unknown"
	}

	return strings.Join([]string{info.OS, info.Platform, info.PlatformVersion, info.KernelVersion, info.KernelArch}, " ")
}
