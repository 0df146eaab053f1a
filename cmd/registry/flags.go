//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package registry

import "time"

const (
	LogOutFlag          = "log-out"
	LogLevelFlag        = "log-level"
	RefreshIntervalFlag = "refresh-interval"
)

const (
	DefaultLogLevel        = "info"
	DefaultRefreshInterval = 2 * time.Second
)
