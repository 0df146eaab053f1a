//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package ui

import (
	"strings"
	"testing"

	"smoltui/pkg/vm"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestHumanMem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"512", "512MiB"},
		{"1024", "1GiB"},
		{"2g", "2GiB"},
		{"lots", "lots"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, HumanMem(tt.in))
		})
	}
}

func TestRowFor(t *testing.T) {
	v := &vm.VM{
		Name:      "web",
		Cores:     ptr(uint8(2)),
		Mem:       ptr("256"),
		Share:     ptr("/srv"),
		ShareRW:   true,
		RmProtect: true,
		State:     vm.RunningState(42),
		CPUUsage:  17,
	}
	r := RowFor(v)
	require.Equal(t, "web", r.Name)
	require.Equal(t, vm.Running, r.Kind)
	require.Equal(t, "2", r.Cores)
	require.Equal(t, "256MiB", r.Mem)
	require.Equal(t, "17%", r.CPU)
	require.Equal(t, "R S+rw", r.Flags)

	stopped := RowFor(&vm.VM{Name: "db", State: vm.StoppedState()})
	require.Equal(t, "-", stopped.CPU)
	require.Equal(t, "-", stopped.Cores)
	require.NotEmpty(t, stopped.Missing)
}

func TestRenderList(t *testing.T) {
	v := View{
		Width:      120,
		Height:     30,
		Version:    "v1",
		BaseDir:    "/vms",
		HostMemMiB: 2048,
		Rows: []Row{
			RowFor(&vm.VM{Name: "alpha", State: vm.StoppedState()}),
			RowFor(&vm.VM{Name: "beta", State: vm.Invalid("cores: bad value")}),
		},
		Selected: 1,
		Kernels:  []string{"netbsd-SMOL"},
	}
	out := Render(v)
	require.Contains(t, out, "Configured VMs [2]")
	require.Contains(t, out, "alpha")
	require.Contains(t, out, "beta")
	require.Contains(t, out, "cores: bad value")
	require.Contains(t, out, "Kernels: 1")
	require.Contains(t, out, "2GiB")
	require.LessOrEqual(t, len(strings.Split(out, "\n")), 30)
}

func TestRenderScrollsToSelection(t *testing.T) {
	var rows []Row
	for i := range 40 {
		rows = append(rows, Row{Name: "vm" + string(rune('A'+i%26)) + strings.Repeat("x", i/26), State: "stopped"})
	}
	out := Render(View{Width: 100, Height: 20, Rows: rows, Selected: 39})
	require.Contains(t, out, rows[39].Name)
	require.NotContains(t, out, rows[0].Name+" ")
}

func TestRenderPopups(t *testing.T) {
	out := Render(View{Width: 100, Height: 30, Popup: ConfirmDelete{VMName: "web"}})
	require.Contains(t, out, "Delete VM 'web' ?")
	require.Contains(t, out, "Cancel")

	out = Render(View{Width: 100, Height: 30, Popup: Failure{
		Title:  "Failed to start web",
		Error:  "startnb.sh failed",
		Stdout: "booting\n",
		Stderr: "no such image\n",
	}})
	require.Contains(t, out, "Failed to start web")
	require.Contains(t, out, "stdout:")
	require.Contains(t, out, "no such image")
}

func TestRenderFailureScroll(t *testing.T) {
	var lines []string
	for i := range 100 {
		lines = append(lines, "line-"+strings.Repeat("#", i%3)+string(rune('a'+i%26)))
	}
	f := Failure{Title: "boom", Stderr: strings.Join(lines, "\n"), Scroll: 1000}
	out := Render(View{Width: 100, Height: 20, Popup: f})
	require.Contains(t, out, lines[99])
	require.NotContains(t, out, "stderr:")
}
