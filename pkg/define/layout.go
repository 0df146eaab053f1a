//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package define

import "os"

const (
	ConfigPrefixDir = "etc"
	KernelPrefixDir = "kernels"
	ImagePrefixDir  = "images"
	LogPrefixDir    = "logs"

	ConfSuffix = ".conf"

	PidFilePrefix = "qemu-"
	PidFileSuffix = ".pid"

	LauncherName = "startnb.sh"
	LogFileName  = "smoltui.log"

	BaseDirEnv = "SMOLTUI_BASE"
)

var (
	GitCommit string
)

var (
	DefaultFilePerm os.FileMode = 0644
)
