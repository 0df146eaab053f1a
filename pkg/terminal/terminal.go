//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"smoltui/pkg/ui"

	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const (
	enterScreen = ansi.SetAltScreenSaveCursorMode + ansi.HideCursor
	leaveScreen = ansi.ShowCursor + ansi.ResetAltScreenSaveCursorMode
	clearScreen = ansi.CursorHomePosition + ansi.EraseEntireScreen
)

// Terminal owns the tty while the dashboard runs. Close must be called on
// every exit path so the shell gets its cooked mode back.
type Terminal struct {
	in  *os.File
	out io.Writer

	state *term.State
	once  sync.Once
}

// Open switches in to raw mode and out to the alternate screen.
func Open(in *os.File, out io.Writer) (*Terminal, error) {
	fd := int(in.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", in.Name())
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}
	t := &Terminal{in: in, out: out, state: state}
	if _, err := io.WriteString(out, enterScreen); err != nil {
		t.Close()
		return nil, fmt.Errorf("failed to enter alternate screen: %w", err)
	}
	return t, nil
}

// Size returns width and height in cells.
func (t *Terminal) Size() (int, int, error) {
	w, h, err := term.GetSize(int(t.in.Fd())) //nolint:gosec
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return w, h, nil
}

// Render draws one full frame. Raw mode needs explicit carriage returns.
func (t *Terminal) Render(v ui.View) error {
	frame := strings.ReplaceAll(ui.Render(v), "\n", "\r\n")
	if _, err := io.WriteString(t.out, clearScreen+frame); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}
	return nil
}

// Close restores the terminal, it is safe to call more than once.
func (t *Terminal) Close() {
	t.once.Do(func() {
		if _, err := io.WriteString(t.out, leaveScreen); err != nil {
			logrus.Warnf("failed to leave alternate screen: %v", err)
		}
		if err := term.Restore(int(t.in.Fd()), t.state); err != nil { //nolint:gosec
			logrus.Warnf("failed to restore terminal: %v", err)
		}
	})
}
