//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package ui

import (
	"smoltui/pkg/vm"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorInfo     = lipgloss.Color("208")
	colorAction   = lipgloss.Color("5")
	colorRunning  = lipgloss.Color("74")
	colorStopped  = lipgloss.Color("202")
	colorInvalid  = lipgloss.Color("9")
	colorStarting = lipgloss.Color("10")
	colorStopping = lipgloss.Color("13")
	colorDim      = lipgloss.Color("244")
	colorPopup    = lipgloss.Color("74")
)

var (
	InfoStyle   = lipgloss.NewStyle().Foreground(colorInfo)
	ActionStyle = lipgloss.NewStyle().Foreground(colorAction)
	DimStyle    = lipgloss.NewStyle().Foreground(colorDim)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	TableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorRunning).
			Padding(0, 1)

	PopupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPopup).
			Padding(0, 1)

	ErrorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInvalid)

	SelectedButtonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")).Padding(0, 2)
	UnselectedButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Padding(0, 2)
)

// StateStyle colours a row by lifecycle state.
func StateStyle(k vm.Kind) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch k {
	case vm.Running:
		return s.Foreground(colorRunning)
	case vm.Stopped:
		return s.Foreground(colorStopped)
	case vm.InvalidConfiguration:
		return s.Foreground(colorInvalid)
	case vm.Starting:
		return s.Foreground(colorStarting)
	case vm.Stopping, vm.StoppingToDelete:
		return s.Foreground(colorStopping)
	default:
		return s
	}
}
