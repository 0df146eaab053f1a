//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package ui

import (
	"fmt"
	"strconv"
	"strings"

	"smoltui/pkg/vm"

	"github.com/charmbracelet/lipgloss"
	"github.com/docker/go-units"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	headerHeight  = 3
)

// RowFor projects a VM into a table row.
func RowFor(v *vm.VM) Row {
	r := Row{
		Name:    v.Name,
		Kind:    v.State.Kind,
		State:   v.State.Kind.String(),
		Cause:   v.State.Cause,
		Cores:   "-",
		Mem:     "-",
		CPU:     "-",
		Missing: v.MissingMandatory(),
	}
	if v.Cores != nil {
		r.Cores = strconv.Itoa(int(*v.Cores))
	}
	if v.Mem != nil {
		r.Mem = HumanMem(*v.Mem)
	}
	if v.IsRunning() {
		r.CPU = fmt.Sprintf("%d%%", v.CPUUsage)
	}

	var flags []string
	if v.EditProtect {
		flags = append(flags, "E")
	}
	if v.RmProtect {
		flags = append(flags, "R")
	}
	if v.Share != nil {
		if v.ShareRW {
			flags = append(flags, "S+rw")
		} else {
			flags = append(flags, "S")
		}
	}
	if v.HostFwd != nil {
		flags = append(flags, "F")
	}
	r.Flags = strings.Join(flags, " ")
	return r
}

// HumanMem formats the mem value of a configuration. A bare number is in MiB,
// like qemu's -m.
func HumanMem(mem string) string {
	if n, err := strconv.ParseInt(mem, 10, 64); err == nil {
		return units.BytesSize(float64(n * units.MiB))
	}
	if b, err := units.RAMInBytes(mem); err == nil {
		return units.BytesSize(float64(b))
	}
	return mem
}

// Render is a pure projection of the view into one frame.
func Render(v View) string {
	width, height := v.Width, v.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	header := renderHeader(v, width)
	bodyHeight := max(height-headerHeight, 3) //nolint:mnd

	var body string
	switch p := v.Popup.(type) {
	case nil:
		body = renderTable(v, width, bodyHeight)
	case ConfirmDelete:
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, renderConfirm(p))
	case Failure:
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, renderFailure(p, width, bodyHeight))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func renderHeader(v View, width int) string {
	col := width / 3 //nolint:mnd
	left := lipgloss.NewStyle().Width(col).Render(strings.Join([]string{
		InfoStyle.Render("Version: ") + v.Version,
		InfoStyle.Render("Base: ") + v.BaseDir,
	}, "\n"))
	mid := lipgloss.NewStyle().Width(col).Render(strings.Join([]string{
		ActionStyle.Render("<Esc|q>") + " Quit",
		ActionStyle.Render("    <s>") + " Start/Stop VM",
		ActionStyle.Render("    <d>") + " Delete VM",
	}, "\n"))
	right := lipgloss.NewStyle().Width(width - 2*col).Render(strings.Join([]string{
		InfoStyle.Render("Kernels: ") + strconv.Itoa(len(v.Kernels)),
		InfoStyle.Render("Images: ") + strconv.Itoa(len(v.Images)),
		InfoStyle.Render("Host memory: ") + units.BytesSize(float64(v.HostMemMiB*units.MiB)),
	}, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}

var columns = []struct {
	title string
	width int
}{
	{"NAME", 24}, {"STATE", 22}, {"CORES", 6}, {"MEM", 10}, {"CPU", 6}, {"FLAGS", 12},
}

func cells(values ...string) string {
	var b strings.Builder
	for i, c := range columns {
		val := values[i]
		if lipgloss.Width(val) > c.width-1 {
			val = string([]rune(val)[:c.width-2]) + "…"
		}
		b.WriteString(val)
		b.WriteString(strings.Repeat(" ", c.width-lipgloss.Width(val)))
	}
	return b.String()
}

func renderTable(v View, width, height int) string {
	titles := make([]string, 0, len(columns))
	for _, c := range columns {
		titles = append(titles, c.title)
	}
	lines := []string{HeaderStyle.Render(cells(titles...))}

	// border, title, column header and cause line
	visible := max(height-5, 1) //nolint:mnd
	first := 0
	if v.Selected >= visible {
		first = v.Selected - visible + 1
	}

	for i := first; i < len(v.Rows) && i < first+visible; i++ {
		r := v.Rows[i]
		state := r.State
		if len(r.Missing) > 0 && r.Kind != vm.InvalidConfiguration {
			state += " (no " + strings.Join(r.Missing, ", ") + ")"
		}
		style := StateStyle(r.Kind)
		if i == v.Selected {
			style = style.Reverse(true)
		}
		lines = append(lines, style.Render(cells(r.Name, state, r.Cores, r.Mem, r.CPU, r.Flags)))
	}
	if len(v.Rows) == 0 {
		lines = append(lines, DimStyle.Render("no VM configuration in etc/"))
	}
	if sel := v.Selected; sel >= 0 && sel < len(v.Rows) && v.Rows[sel].Cause != "" {
		lines = append(lines, StateStyle(vm.InvalidConfiguration).Render(v.Rows[sel].Cause))
	}

	title := fmt.Sprintf(" Configured VMs [%d] ", len(v.Rows))
	return TableStyle.Width(max(width-2, 10)).Render(title + "\n" + strings.Join(lines, "\n")) //nolint:mnd
}

func renderConfirm(p ConfirmDelete) string {
	ok, cancel := UnselectedButtonStyle, SelectedButtonStyle
	if p.OK {
		ok, cancel = SelectedButtonStyle, UnselectedButtonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, ok.Render("OK"), "   ", cancel.Render("Cancel"))
	return PopupStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		fmt.Sprintf("Delete VM '%s' ?", p.VMName),
		"",
		buttons,
		"",
		DimStyle.Render("<Left/Right/Tab> choose  <Enter> confirm  <Esc> cancel"),
	))
}

func renderFailure(p Failure, width, height int) string {
	var body []string
	body = append(body, strings.Split(strings.ReplaceAll(p.Error, "\t", "    "), "\n")...)
	if p.Stdout != "" {
		body = append(body, "", InfoStyle.Render("stdout:"))
		body = append(body, strings.Split(strings.TrimRight(strings.ReplaceAll(p.Stdout, "\t", "    "), "\n"), "\n")...)
	}
	if p.Stderr != "" {
		body = append(body, "", InfoStyle.Render("stderr:"))
		body = append(body, strings.Split(strings.TrimRight(strings.ReplaceAll(p.Stderr, "\t", "    "), "\n"), "\n")...)
	}

	visible := max(height-6, 1) //nolint:mnd
	start := min(p.Scroll, max(len(body)-visible, 0))
	end := min(start+visible, len(body))

	return PopupStyle.Width(max(width*6/10, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, //nolint:mnd
		ErrorTitleStyle.Render(p.Title),
		strings.Join(body[start:end], "\n"),
		"",
		DimStyle.Render("<Up/Down> scroll  <Enter|Esc> dismiss"),
	))
}
