//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package vm

import "fmt"

type Kind int

const (
	InvalidConfiguration Kind = iota
	Stopped
	Starting
	Running
	Stopping
	StoppingToDelete
)

func (k Kind) String() string {
	switch k {
	case InvalidConfiguration:
		return "Invalid configuration"
	case Stopped:
		return "Stopped"
	case Starting:
		return "Starting..."
	case Running:
		return "Running"
	case Stopping, StoppingToDelete:
		return "Stopping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// State is a VM lifecycle state. Cause is only set for InvalidConfiguration and
// PID only for Running.
type State struct {
	Kind  Kind
	Cause string
	PID   int
}

func Invalid(cause string) State { return State{Kind: InvalidConfiguration, Cause: cause} }
func StoppedState() State        { return State{Kind: Stopped} }
func StartingState() State       { return State{Kind: Starting} }
func RunningState(pid int) State { return State{Kind: Running, PID: pid} }
func StoppingState() State       { return State{Kind: Stopping} }
func StoppingToDeleteState() State {
	return State{Kind: StoppingToDelete}
}

func (s State) String() string {
	switch s.Kind {
	case Running:
		return fmt.Sprintf("Running (pid %d)", s.PID)
	case InvalidConfiguration:
		return "Invalid configuration: " + s.Cause
	default:
		return s.Kind.String()
	}
}

// Transient reports whether the state waits on an asynchronous confirmation.
func (s State) Transient() bool {
	return s.Kind == Starting || s.Kind == Stopping || s.Kind == StoppingToDelete
}
