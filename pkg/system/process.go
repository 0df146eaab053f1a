//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package system

import (
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/process"
)

// CPUSampler reports per-process CPU usage between two calls. It keeps gopsutil
// handles between samples and is not safe for concurrent use.
type CPUSampler struct {
	procs map[int32]*process.Process
}

func NewCPUSampler() *CPUSampler {
	return &CPUSampler{procs: make(map[int32]*process.Process)}
}

// Sample returns the CPU usage of pid in percent since the previous call for the
// same pid, clamped to 0..255. The first sample of a pid is 0.
func (s *CPUSampler) Sample(pid int) (uint8, error) {
	p, ok := s.procs[int32(pid)] //nolint:gosec
	if !ok {
		var err error
		p, err = process.NewProcess(int32(pid)) //nolint:gosec
		if err != nil {
			return 0, fmt.Errorf("failed to find process %d: %w", pid, err)
		}
		s.procs[int32(pid)] = p //nolint:gosec
	}
	pct, err := p.Percent(0)
	if err != nil {
		delete(s.procs, int32(pid)) //nolint:gosec
		return 0, fmt.Errorf("failed to get cpu usage of %d: %w", pid, err)
	}
	return uint8(math.Min(math.Round(pct), math.MaxUint8)), nil
}

// Forget drops every tracked pid not listed in alive.
func (s *CPUSampler) Forget(alive map[int]bool) {
	for pid := range s.procs {
		if !alive[int(pid)] {
			delete(s.procs, pid)
		}
	}
}

func (s *CPUSampler) Tracked() int {
	return len(s.procs)
}
