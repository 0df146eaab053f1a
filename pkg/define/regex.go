//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package define

import (
	"errors"
	"fmt"

	"github.com/containers/storage/pkg/regexp"
)

var (
	// NameRegex accepts any non-empty name that does not start with a dot,
	// which filters out hidden files and editor lock files such as ".#vm.conf".
	NameRegex     = regexp.Delayed(`^[^.]`)
	ErrRegex      = fmt.Errorf("VM names must be non-empty and must not start with '.': %w", ErrInvalidArg)
	ErrInvalidArg = errors.New("invalid argument")
)
