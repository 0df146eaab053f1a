//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package ui

import "smoltui/pkg/vm"

// View is an immutable snapshot of everything a frame shows.
type View struct {
	Width  int
	Height int

	Version    string
	BaseDir    string
	HostMemMiB uint64

	Rows     []Row
	Selected int

	Kernels []string
	Images  []string

	// Popup is nil on the list screen.
	Popup Popup
}

type Row struct {
	Name    string
	Kind    vm.Kind
	State   string
	Cause   string
	Cores   string
	Mem     string
	CPU     string
	Flags   string
	Missing []string
}

type Popup interface {
	popup()
}

type ConfirmDelete struct {
	VMName string
	OK     bool
}

type Failure struct {
	Title  string
	Error  string
	Stdout string
	Stderr string
	Scroll int
}

func (ConfirmDelete) popup() {}
func (Failure) popup()       {}
