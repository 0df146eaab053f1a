//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package events

import "fmt"

// Event is a domain event consumed by the controller. The set is closed, every
// implementation lives in this file.
type Event interface {
	event()
}

type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEsc
	KeyCtrlC
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
)

// Key is a key press. Rune is only set for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		return string(k.Rune)
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyBackspace:
		return "backspace"
	case KeyEsc:
		return "esc"
	case KeyCtrlC:
		return "ctrl+c"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdown"
	case KeyDelete:
		return "delete"
	default:
		return fmt.Sprintf("key(%d)", int(k.Code))
	}
}

func Rune(r rune) Key { return Key{Code: KeyRune, Rune: r} }

type Resize struct {
	Width  int
	Height int
}

type LaunchSucceeded struct {
	VMName    string
	RequestID string
}

type LaunchFailed struct {
	VMName    string
	RequestID string
	Error     string
	Stdout    string
	Stderr    string
}

// Fatal ends the main loop.
type Fatal struct {
	Err error
}

// Conf events carry the absolute path of <base>/etc/<Name>.conf.
type ConfCreated struct{ Path, Name string }
type ConfModified struct{ Path, Name string }
type ConfDeleted struct{ Path, Name string }

type KernelCreated struct{ Path, Name string }
type KernelModified struct{ Path, Name string }
type KernelDeleted struct{ Path, Name string }

type ImageCreated struct{ Path, Name string }
type ImageModified struct{ Path, Name string }
type ImageDeleted struct{ Path, Name string }

// PidFileDeleted reports that qemu-<Name>.pid was removed.
type PidFileDeleted struct{ Name string }

// Tick drives the low frequency background refresh.
type Tick struct{}

func (Key) event()             {}
func (Resize) event()          {}
func (LaunchSucceeded) event() {}
func (LaunchFailed) event()    {}
func (Fatal) event()           {}
func (ConfCreated) event()     {}
func (ConfModified) event()    {}
func (ConfDeleted) event()     {}
func (KernelCreated) event()   {}
func (KernelModified) event()  {}
func (KernelDeleted) event()   {}
func (ImageCreated) event()    {}
func (ImageModified) event()   {}
func (ImageDeleted) event()    {}
func (PidFileDeleted) event()  {}
func (Tick) event()            {}
