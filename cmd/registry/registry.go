//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package registry

import (
	"github.com/sirupsen/logrus"
)

var exitCode = 0

func SetExitCode(code int) {
	exitCode = code
}

func GetExitCode() int {
	return exitCode
}

// NotifyAndExit logs err, runs the logrus exit handlers (terminal restore) and
// exits with 1 on error, 0 otherwise.
func NotifyAndExit(err error) {
	if err != nil {
		SetExitCode(1)
		logrus.Error(err.Error())
	}
	logrus.Exit(GetExitCode())
}
