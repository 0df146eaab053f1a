//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package controller

import (
	"context"
	"fmt"
	"time"

	"smoltui/pkg/define"
	"smoltui/pkg/events"
	"smoltui/pkg/ui"

	"github.com/sirupsen/logrus"
)

// Renderer draws a frame.
type Renderer interface {
	Render(v ui.View) error
}

// View snapshots the controller state for rendering.
func (c *Controller) View() ui.View {
	rows := make([]ui.Row, 0, len(c.vms))
	for _, v := range c.vms {
		rows = append(rows, ui.RowFor(v))
	}

	var popup ui.Popup
	switch s := c.screen.(type) {
	case ListScreen:
	case DeleteConfirmation:
		popup = ui.ConfirmDelete{VMName: s.VMName, OK: s.OK}
	case LaunchFailedScreen:
		popup = ui.Failure{
			Title:  fmt.Sprintf("Failed to start VM '%s'", s.VMName),
			Error:  s.Error,
			Stdout: s.Stdout,
			Stderr: s.Stderr,
			Scroll: s.Scroll,
		}
	case StopFailedScreen:
		popup = ui.Failure{Title: fmt.Sprintf("Failed to stop VM '%s'", s.VMName), Error: s.Error}
	case DeleteFailedScreen:
		popup = ui.Failure{Title: fmt.Sprintf("Failed to delete VM '%s'", s.VMName), Error: s.Error}
	}

	return ui.View{
		Width:      c.width,
		Height:     c.height,
		Version:    c.version,
		BaseDir:    c.baseDir,
		HostMemMiB: c.hostMem,
		Rows:       rows,
		Selected:   c.selected,
		Kernels:    c.kernels,
		Images:     c.images,
		Popup:      popup,
	}
}

// Run consumes in until the operator quits, a producer reports a fatal error,
// in is closed or ctx is done. Every event is handled to completion before the
// next one and a frame is drawn once the queue is drained. A non-positive
// refreshEvery disables the periodic Tick.
func (c *Controller) Run(ctx context.Context, in <-chan events.Event, r Renderer, refreshEvery time.Duration) error {
	var tick <-chan time.Time
	if refreshEvery > 0 {
		ticker := time.NewTicker(refreshEvery)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if err := r.Render(c.View()); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		select {
		case <-ctx.Done():
			logrus.Infof("controller stopped: %v", context.Cause(ctx))
			return nil
		case <-tick:
			c.Handle(events.Tick{})
		case e, ok := <-in:
			if !ok {
				return define.ErrProducerExited
			}
			c.Handle(e)
			if c.drain(in) {
				return define.ErrProducerExited
			}
		}

		if c.fatal != nil {
			return c.fatal
		}
		if c.exit {
			logrus.Infof("quit requested")
			return nil
		}
	}
}

// drain handles every queued event without blocking and reports whether in
// got closed. It stops early once the loop has to end.
func (c *Controller) drain(in <-chan events.Event) bool {
	for c.fatal == nil && !c.exit {
		select {
		case e, ok := <-in:
			if !ok {
				return true
			}
			c.Handle(e)
		default:
			return false
		}
	}
	return false
}
