//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package controller

import (
	"fmt"
	"path/filepath"

	"smoltui/pkg/define"
	"smoltui/pkg/events"
	"smoltui/pkg/io"
	"smoltui/pkg/vm"

	"github.com/sirupsen/logrus"
)

const pageSize = 10

func (c *Controller) handleKey(k events.Key) {
	switch s := c.screen.(type) {
	case ListScreen:
		c.handleListKey(k)
	case DeleteConfirmation:
		c.handleConfirmKey(s, k)
	case LaunchFailedScreen:
		switch k.Code {
		case events.KeyEsc, events.KeyEnter:
			c.screen = ListScreen{}
		case events.KeyUp:
			s.Scroll = max(0, s.Scroll-1)
			c.screen = s
		case events.KeyDown:
			s.Scroll++
			c.screen = s
		}
	case StopFailedScreen, DeleteFailedScreen:
		if k.Code == events.KeyEsc || k.Code == events.KeyEnter {
			c.screen = ListScreen{}
		}
	}
}

func (c *Controller) handleListKey(k events.Key) {
	switch k.Code {
	case events.KeyUp:
		c.move(-1)
	case events.KeyDown:
		c.move(1)
	case events.KeyPageUp:
		c.move(-pageSize)
	case events.KeyPageDown:
		c.move(pageSize)
	case events.KeyHome:
		c.move(-len(c.vms))
	case events.KeyEnd:
		c.move(len(c.vms))
	case events.KeyEsc, events.KeyCtrlC:
		c.exit = true
	case events.KeyRune:
		switch k.Rune {
		case 'k':
			c.move(-1)
		case 'j':
			c.move(1)
		case 'g':
			c.move(-len(c.vms))
		case 'G':
			c.move(len(c.vms))
		case 'q', 'Q':
			c.exit = true
		case 's':
			c.StartStopSelected()
		case 'd':
			if v := c.selectedVM(); v != nil {
				c.screen = DeleteConfirmation{VMName: v.Name}
			}
		}
	}
}

func (c *Controller) handleConfirmKey(s DeleteConfirmation, k events.Key) {
	switch k.Code {
	case events.KeyEsc:
		c.screen = ListScreen{}
	case events.KeyLeft:
		s.OK = true
		c.screen = s
	case events.KeyRight:
		s.OK = false
		c.screen = s
	case events.KeyTab:
		s.OK = !s.OK
		c.screen = s
	case events.KeyEnter:
		c.screen = ListScreen{}
		if s.OK {
			c.DeleteVM(s.VMName)
		}
	}
}

func (c *Controller) move(delta int) {
	if len(c.vms) == 0 {
		c.selected = -1
		return
	}
	c.selected = min(max(c.selected+delta, 0), len(c.vms)-1)
}

// StartStopSelected launches a stopped VM or stops a running one. Other states
// are left alone.
func (c *Controller) StartStopSelected() {
	v := c.selectedVM()
	if v == nil {
		return
	}

	switch v.State.Kind {
	case vm.Stopped:
		v.BeginStart()
		id := c.launch(c.baseDir, v.Name, c.bus)
		logrus.Infof("VM %q: starting, request %s", v.Name, id)
	case vm.Running:
		if err := v.Stop(c.signaler); err != nil {
			logrus.Warnf("VM %q: %v", v.Name, err)
			c.screen = StopFailedScreen{VMName: v.Name, Error: err.Error()}
		}
	case vm.InvalidConfiguration, vm.Starting, vm.Stopping, vm.StoppingToDelete:
	}
}

// DeleteSelected deletes the selected VM.
func (c *Controller) DeleteSelected() {
	if v := c.selectedVM(); v != nil {
		c.DeleteVM(v.Name)
	}
}

// DeleteVM deletes a VM by name, unknown names are ignored. A running VM is
// stopped first and loses its configuration file once its marker file is
// gone, a stopped one loses it right away.
func (c *Controller) DeleteVM(name string) {
	v := c.VM(name)
	if v == nil {
		logrus.Infof("VM %q is gone, nothing to delete", name)
		return
	}
	if v.RmProtect {
		c.screen = DeleteFailedScreen{VMName: v.Name, Error: define.ErrRemoveProtected.Error()}
		return
	}

	switch v.State.Kind {
	case vm.Running, vm.Stopping:
		if err := v.StopToDelete(c.signaler); err != nil {
			logrus.Warnf("VM %q: %v", v.Name, err)
			c.screen = StopFailedScreen{VMName: v.Name, Error: err.Error()}
		}
	case vm.Stopped, vm.InvalidConfiguration:
		if err := c.deleteConf(v); err != nil {
			logrus.Warnf("VM %q: %v", v.Name, err)
			c.screen = DeleteFailedScreen{VMName: v.Name, Error: err.Error()}
			return
		}
		c.remove(v)
	case vm.Starting, vm.StoppingToDelete:
	}
}

func (c *Controller) deleteConf(v *vm.VM) error {
	confPath := v.ConfPath
	if confPath == "" {
		confPath = filepath.Join(c.baseDir, define.ConfigPrefixDir, v.Name+define.ConfSuffix)
	}
	if err := io.NewFile(confPath).Delete(filepath.Join(c.baseDir, define.ConfigPrefixDir)); err != nil {
		return fmt.Errorf("failed to delete configuration: %w", err)
	}
	return nil
}
