//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package controller

// Screen is the closed set of dashboard screens.
type Screen interface {
	screen()
}

// ListScreen shows the VMs.
type ListScreen struct{}

// DeleteConfirmation asks before deleting VMName. OK is the focused button.
type DeleteConfirmation struct {
	VMName string
	OK     bool
}

// LaunchFailedScreen shows the output of a failed startnb.sh run.
type LaunchFailedScreen struct {
	VMName string
	Error  string
	Stdout string
	Stderr string
	Scroll int
}

// StopFailedScreen shows a signal delivery failure.
type StopFailedScreen struct {
	VMName string
	Error  string
}

// DeleteFailedScreen shows why a VM could not be deleted.
type DeleteFailedScreen struct {
	VMName string
	Error  string
}

func (ListScreen) screen()         {}
func (DeleteConfirmation) screen() {}
func (LaunchFailedScreen) screen() {}
func (StopFailedScreen) screen()   {}
func (DeleteFailedScreen) screen() {}
