//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package define

import (
	"errors"
)

var (
	ErrNotAConfigFile  = errors.New("not a VM configuration file")
	ErrRemoveProtected = errors.New("VM is remove-protected")
	ErrMultiplePaths   = errors.New("filesystem notification names more than one path")
	ErrLauncherFailed  = errors.New("startnb.sh failed")
	ErrBaseDirInvalid  = errors.New("invalid base directory")
	ErrProducerExited  = errors.New("event producer exited")
)
