//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package vm

import (
	"github.com/sirupsen/logrus"
)

// Signaler delivers the termination signal to a VM process.
type Signaler interface {
	Terminate(pid int) error
}

// VM is one entity per <base>/etc/<name>.conf file.
type VM struct {
	// Name of the config file without the '.conf' extension
	Name string
	// ConfPath is the absolute path of the config file
	ConfPath string

	Img    *string
	Kernel *string

	Mem         *string
	Cores       *uint8
	HostFwd     *string
	EditProtect bool
	RmProtect   bool
	QMPPort     *uint16
	BridgeNet   *string
	Share       *string
	ShareRW     bool
	Extra       *string

	State    State
	CPUUsage uint8

	// Orphaned is set when the config file disappeared while the VM could not be
	// dropped yet. The controller finishes the delete once the launch completes.
	Orphaned bool
}

// MissingMandatory lists the conceptually mandatory keys absent from the config.
// Their absence does not invalidate the VM.
func (v *VM) MissingMandatory() []string {
	var missing []string
	if v.Img == nil {
		missing = append(missing, keyImg)
	}
	if v.Kernel == nil {
		missing = append(missing, keyKernel)
	}
	return missing
}

func (v *VM) IsRunning() bool {
	return v.State.Kind == Running
}

// CanBeRemoved reports whether the entity may leave the collection right now.
func (v *VM) CanBeRemoved() bool {
	return v.State.Kind == Stopped || v.State.Kind == InvalidConfiguration
}

// Refresh re-reads the marker file. Stopped, Starting and Running become
// Running{pid} or Stopped; Stopping only moves to Stopped once the marker is gone.
func (v *VM) Refresh(baseDir string) {
	switch v.State.Kind {
	case Stopped, Starting, Running, Stopping:
	default:
		return
	}

	pid, present, err := ReadPid(baseDir, v.Name)
	if err != nil {
		logrus.Warnf("VM %q: %v", v.Name, err)
	}

	if v.State.Kind == Stopping {
		if !present {
			v.State = StoppedState()
		}
		return
	}

	if present && err == nil {
		v.State = RunningState(pid)
		return
	}
	v.State = StoppedState()
	v.CPUUsage = 0
}

// BeginStart moves a Stopped VM to Starting.
func (v *VM) BeginStart() bool {
	if v.State.Kind != Stopped {
		return false
	}
	v.State = StartingState()
	return true
}

// Stop sends the termination signal to a running VM and moves it to Stopping.
// On failure the state is left untouched.
func (v *VM) Stop(sig Signaler) error {
	return v.terminate(sig, StoppingState())
}

// StopToDelete is Stop with removal deferred to the marker deletion.
// A VM already Stopping is moved to StoppingToDelete without a new signal.
func (v *VM) StopToDelete(sig Signaler) error {
	if v.State.Kind == Stopping {
		v.State = StoppingToDeleteState()
		return nil
	}
	return v.terminate(sig, StoppingToDeleteState())
}

func (v *VM) terminate(sig Signaler, next State) error {
	if v.State.Kind != Running {
		return nil
	}
	if err := sig.Terminate(v.State.PID); err != nil {
		return err //nolint:wrapcheck
	}
	logrus.Infof("VM %q: sent SIGTERM to pid %d", v.Name, v.State.PID)
	v.State = next
	return nil
}

// MarkerRemoved applies the observed deletion of the marker file and reports
// whether the entity must now be removed from the collection. Starting waits for
// the launcher instead.
func (v *VM) MarkerRemoved() bool {
	switch v.State.Kind {
	case StoppingToDelete:
		return true
	case InvalidConfiguration, Starting:
		return false
	default:
		v.State = StoppedState()
		v.CPUUsage = 0
		return false
	}
}
