//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package controller

import (
	"path/filepath"
	"slices"

	"smoltui/pkg/define"
	"smoltui/pkg/events"
	"smoltui/pkg/io"
	"smoltui/pkg/system"
	"smoltui/pkg/vm"

	"github.com/sirupsen/logrus"
)

// LaunchFunc starts the launcher for a VM and returns the request id. The
// completion event must be sent to bus.
type LaunchFunc func(baseDir, name string, bus events.Sender) string

// CPUSampler reports the CPU usage of a pid.
type CPUSampler interface {
	Sample(pid int) (uint8, error)
	Forget(alive map[int]bool)
}

type Options struct {
	BaseDir string
	// Bus receives the completion events of the launches started by the controller.
	Bus      events.Sender
	Signaler vm.Signaler
	Launch   LaunchFunc
	CPU      CPUSampler

	// Version and HostMemMiB are shown in the header.
	Version    string
	HostMemMiB uint64
}

// Controller is the only owner of the VM collection and the screen state. It
// must be used from a single goroutine.
type Controller struct {
	baseDir  string
	bus      events.Sender
	signaler vm.Signaler
	launch   LaunchFunc
	cpu      CPUSampler

	version string
	hostMem uint64

	vms      []*vm.VM
	selected int
	screen   Screen
	kernels  []string
	images   []string

	width  int
	height int

	exit  bool
	fatal error
}

// New scans the base directory once. Afterwards the collection only changes
// through Handle.
func New(opts Options) (*Controller, error) {
	if opts.Signaler == nil {
		opts.Signaler = system.Terminator{}
	}
	if opts.Launch == nil {
		opts.Launch = events.Launch
	}
	if opts.CPU == nil {
		opts.CPU = system.NewCPUSampler()
	}
	if opts.HostMemMiB == 0 {
		if total, err := system.TotalMemory(); err != nil {
			logrus.Warnf("%v", err)
		} else {
			opts.HostMemMiB = uint64(total)
		}
	}

	vms, err := vm.LoadAll(opts.BaseDir)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		baseDir:  opts.BaseDir,
		bus:      opts.Bus,
		signaler: opts.Signaler,
		launch:   opts.Launch,
		cpu:      opts.CPU,
		version:  opts.Version,
		hostMem:  opts.HostMemMiB,
		vms:      vms,
		screen:   ListScreen{},
		kernels:  listNames(filepath.Join(opts.BaseDir, define.KernelPrefixDir)),
		images:   listNames(filepath.Join(opts.BaseDir, define.ImagePrefixDir)),
	}
	c.clampSelection()
	logrus.Infof("loaded %d VMs from %s", len(vms), opts.BaseDir)
	return c, nil
}

func listNames(dir string) []string {
	files, err := vm.ListFiles(dir)
	if err != nil {
		logrus.Infof("%v", err)
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	return names
}

func (c *Controller) VMs() []*vm.VM {
	return c.vms
}

func (c *Controller) Screen() Screen {
	return c.screen
}

// Exit reports whether the operator asked to quit.
func (c *Controller) Exit() bool {
	return c.exit
}

func (c *Controller) Fatal() error {
	return c.fatal
}

func (c *Controller) Kernels() []string {
	return c.kernels
}

func (c *Controller) Images() []string {
	return c.images
}

// Selected returns the selected index, -1 when the list is empty.
func (c *Controller) Selected() int { return c.selected }

// VM returns the entity with the given name.
func (c *Controller) VM(name string) *vm.VM {
	if i := c.index(name); i >= 0 {
		return c.vms[i]
	}
	return nil
}

func (c *Controller) index(name string) int {
	return slices.IndexFunc(c.vms, func(v *vm.VM) bool { return v.Name == name })
}

func (c *Controller) selectedVM() *vm.VM {
	if c.selected < 0 || c.selected >= len(c.vms) {
		return nil
	}
	return c.vms[c.selected]
}

// Handle applies one event to completion.
func (c *Controller) Handle(e events.Event) {
	switch e := e.(type) {
	case events.Key:
		c.handleKey(e)
	case events.Resize:
		c.width, c.height = e.Width, e.Height
	case events.LaunchSucceeded:
		c.launchSucceeded(e)
	case events.LaunchFailed:
		c.launchFailed(e)
	case events.Fatal:
		c.setFatal(e.Err)
	case events.ConfCreated:
		c.addVM(e.Path, e.Name)
	case events.ConfModified:
		logrus.Debugf("configuration %s modified", e.Path)
	case events.ConfDeleted:
		c.confDeleted(e.Path, e.Name)
	case events.KernelCreated:
		c.kernels = addName(c.kernels, e.Name)
	case events.KernelModified:
	case events.KernelDeleted:
		c.kernels = removeName(c.kernels, e.Name)
	case events.ImageCreated:
		c.images = addName(c.images, e.Name)
	case events.ImageModified:
	case events.ImageDeleted:
		c.images = removeName(c.images, e.Name)
	case events.PidFileDeleted:
		c.pidFileDeleted(e.Name)
	case events.Tick:
		c.refresh()
	default:
		logrus.Warnf("unhandled event %T", e)
	}
}

func (c *Controller) setFatal(err error) {
	if err == nil {
		err = define.ErrProducerExited
	}
	if c.fatal == nil {
		logrus.Errorf("fatal: %v", err)
		c.fatal = err
	}
}

func (c *Controller) launchSucceeded(e events.LaunchSucceeded) {
	v := c.VM(e.VMName)
	if v == nil {
		logrus.Warnf("launch of unknown VM %q succeeded", e.VMName)
		return
	}
	v.Refresh(c.baseDir)
	logrus.Infof("VM %q: launcher succeeded, now %s", v.Name, v.State)
	if v.Orphaned && v.IsRunning() {
		if err := v.StopToDelete(c.signaler); err != nil {
			c.screen = StopFailedScreen{VMName: v.Name, Error: err.Error()}
		}
	}
	c.reap(v)
}

func (c *Controller) launchFailed(e events.LaunchFailed) {
	c.screen = LaunchFailedScreen{
		VMName: e.VMName,
		Error:  e.Error,
		Stdout: e.Stdout,
		Stderr: e.Stderr,
	}
	v := c.VM(e.VMName)
	if v == nil {
		return
	}
	v.State = vm.StoppedState()
	c.reap(v)
}

// addVM inserts the VM of a newly observed configuration file.
func (c *Controller) addVM(path, name string) {
	if v := c.VM(name); v != nil {
		if v.Orphaned {
			logrus.Infof("VM %q: configuration is back", name)
			v.Orphaned = false
			if v.State.Kind == vm.StoppingToDelete {
				v.State = vm.StoppingState()
			}
		}
		return
	}
	v, err := vm.Load(path, c.baseDir)
	if err != nil {
		logrus.Warnf("failed to load %s: %v", path, err)
		return
	}

	current := c.selectedVM()
	c.vms = append(c.vms, v)
	vm.Sort(c.vms)
	c.keepSelection(current)
	logrus.Infof("VM %q added (%s)", name, v.State)
}

// confDeleted drops the VM of a removed configuration file. Running VMs are
// stopped first and leave once their marker file is gone.
func (c *Controller) confDeleted(path, name string) {
	v := c.VM(name)
	if v == nil {
		return
	}
	if io.NewFile(path).IsExist() {
		// replaced in the meantime, editors save that way
		logrus.Infof("VM %q: %s is back, ignore its removal", name, path)
		return
	}

	v.Orphaned = true
	switch v.State.Kind {
	case vm.Running, vm.Stopping:
		if err := v.StopToDelete(c.signaler); err != nil {
			c.screen = StopFailedScreen{VMName: v.Name, Error: err.Error()}
		}
	case vm.Starting:
		logrus.Infof("VM %q: configuration removed while starting", name)
	}
	c.reap(v)
}

func (c *Controller) pidFileDeleted(name string) {
	v := c.VM(name)
	if v == nil {
		return
	}
	if v.MarkerRemoved() {
		if !v.Orphaned {
			// deleted from the dashboard while running
			if err := c.deleteConf(v); err != nil {
				logrus.Warnf("VM %q: %v", v.Name, err)
				c.screen = DeleteFailedScreen{VMName: v.Name, Error: err.Error()}
				v.State = vm.StoppedState()
				return
			}
		}
		c.remove(v)
		return
	}
	c.reap(v)
}

// reap removes an orphaned VM as soon as it may leave the collection.
func (c *Controller) reap(v *vm.VM) {
	if v.Orphaned && v.CanBeRemoved() {
		c.remove(v)
	}
}

func (c *Controller) remove(v *vm.VM) {
	i := slices.Index(c.vms, v)
	if i < 0 {
		return
	}
	if s, ok := c.screen.(DeleteConfirmation); ok && s.VMName == v.Name {
		c.screen = ListScreen{}
	}
	current := c.selectedVM()
	c.vms = slices.Delete(c.vms, i, i+1)
	if current != v {
		c.keepSelection(current)
	} else {
		c.clampSelection()
	}
	logrus.Infof("VM %q removed", v.Name)
}

// refresh re-reads the marker of settled VMs and samples their CPU usage.
// Orphans that turn out to be stopped leave the collection.
func (c *Controller) refresh() {
	alive := make(map[int]bool)
	for _, v := range slices.Clone(c.vms) {
		switch v.State.Kind {
		case vm.Stopped, vm.Running:
			v.Refresh(c.baseDir)
		default:
			continue
		}
		if !v.IsRunning() {
			c.reap(v)
			continue
		}
		alive[v.State.PID] = true
		usage, err := c.cpu.Sample(v.State.PID)
		if err != nil {
			logrus.Debugf("VM %q: %v", v.Name, err)
		}
		v.CPUUsage = usage
	}
	c.cpu.Forget(alive)
}

func (c *Controller) keepSelection(current *vm.VM) {
	if current != nil {
		if i := slices.Index(c.vms, current); i >= 0 {
			c.selected = i
			return
		}
	}
	c.clampSelection()
}

func (c *Controller) clampSelection() {
	switch {
	case len(c.vms) == 0:
		c.selected = -1
	case c.selected < 0:
		c.selected = 0
	case c.selected >= len(c.vms):
		c.selected = len(c.vms) - 1
	}
}

func addName(names []string, name string) []string {
	i, found := slices.BinarySearch(names, name)
	if found {
		return names
	}
	return slices.Insert(names, i, name)
}

func removeName(names []string, name string) []string {
	i, found := slices.BinarySearch(names, name)
	if !found {
		return names
	}
	return slices.Delete(names, i, i+1)
}
