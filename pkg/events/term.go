//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package events

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/input"
	"github.com/sirupsen/logrus"
)

// DefaultEscDelay is how long a read ending inside an escape sequence waits
// for the rest of it.
const DefaultEscDelay = 100 * time.Millisecond

// TermSource reads raw terminal input and forwards key presses and resizes.
type TermSource struct {
	In io.Reader
	// Term is $TERM, used for terminfo key lookups.
	Term string
	// Size returns the current terminal width and height.
	Size func() (int, int, error)
	// Resize receives SIGWINCH, nil disables resize events.
	Resize <-chan os.Signal
	// EscDelay defaults to DefaultEscDelay.
	EscDelay time.Duration
}

// Run blocks on In until it errs. The read can not be interrupted, the
// goroutine ends with the process.
func (s *TermSource) Run(bus Sender) error {
	if s.Resize != nil {
		go s.forwardResize(bus)
	}

	delay := s.EscDelay
	if delay <= 0 {
		delay = DefaultEscDelay
	}
	rd, err := input.NewReader(newEscJoiner(s.In, delay), s.Term, 0)
	if err != nil {
		return fmt.Errorf("terminal input: %w", err)
	}
	defer rd.Close() //nolint:errcheck

	for {
		evs, err := rd.ReadEvents()
		for _, ev := range evs {
			if e, ok := translate(ev); ok {
				bus.Send(e)
			}
		}
		if err != nil {
			return fmt.Errorf("terminal input: %w", err)
		}
	}
}

func (s *TermSource) forwardResize(bus Sender) {
	for range s.Resize {
		w, h, err := s.Size()
		if err != nil {
			logrus.Warnf("failed to get terminal size: %v", err)
			continue
		}
		bus.Send(Resize{Width: w, Height: h})
	}
}

var namedKeys = map[rune]KeyCode{
	input.KeyEnter:     KeyEnter,
	input.KeyTab:       KeyTab,
	input.KeyBackspace: KeyBackspace,
	input.KeyEscape:    KeyEsc,
	input.KeyUp:        KeyUp,
	input.KeyDown:      KeyDown,
	input.KeyLeft:      KeyLeft,
	input.KeyRight:     KeyRight,
	input.KeyHome:      KeyHome,
	input.KeyEnd:       KeyEnd,
	input.KeyPgUp:      KeyPageUp,
	input.KeyPgDown:    KeyPageDown,
	input.KeyDelete:    KeyDelete,
	input.KeyKpUp:      KeyUp,
	input.KeyKpDown:    KeyDown,
	input.KeyKpLeft:    KeyLeft,
	input.KeyKpRight:   KeyRight,
	input.KeyKpHome:    KeyHome,
	input.KeyKpEnd:     KeyEnd,
	input.KeyKpPgUp:    KeyPageUp,
	input.KeyKpPgDown:  KeyPageDown,
	input.KeyKpEnter:   KeyEnter,
}

// translate keeps key presses and window sizes. Focus, mouse and paste events
// are dropped, so are alt and ctrl chords other than ctrl+c.
func translate(ev input.Event) (Event, bool) {
	switch ev := ev.(type) {
	case input.KeyPressEvent:
		if ev.Mod.Contains(input.ModCtrl) && ev.Code == 'c' {
			return Key{Code: KeyCtrlC}, true
		}
		// navigation keys keep working with modifiers: ctrl+up is up
		if code, ok := namedKeys[ev.Code]; ok {
			if code == KeyEsc && ev.Mod != 0 {
				return nil, false
			}
			return Key{Code: code}, true
		}
		if ev.Mod.Contains(input.ModAlt) || ev.Mod.Contains(input.ModCtrl) {
			return nil, false
		}
		if r, _ := utf8.DecodeRuneInString(ev.Text); r != utf8.RuneError {
			return Rune(r), true
		}
		return nil, false
	case input.WindowSizeEvent:
		return Resize{Width: ev.Width, Height: ev.Height}, true
	default:
		return nil, false
	}
}

type chunk struct {
	b   []byte
	err error
}

// escJoiner hands reads to the decoder whole, except that a read ending
// inside an escape sequence is joined with the next one when it arrives
// within delay. Without it a slow link splits an arrow key into Esc plus
// runes.
type escJoiner struct {
	chunks  chan chunk
	delay   time.Duration
	pending []byte
	err     error
}

func newEscJoiner(r io.Reader, delay time.Duration) *escJoiner {
	j := &escJoiner{chunks: make(chan chunk), delay: delay}
	go func() {
		for {
			buf := make([]byte, 256) //nolint:mnd
			n, err := r.Read(buf)
			j.chunks <- chunk{b: buf[:n], err: err}
			if err != nil {
				close(j.chunks)
				return
			}
		}
	}()
	return j
}

func (j *escJoiner) Read(p []byte) (int, error) {
	for len(j.pending) == 0 {
		if j.err != nil {
			return 0, j.err
		}
		c, ok := <-j.chunks
		if !ok {
			return 0, io.EOF
		}
		j.pending, j.err = c.b, c.err
		j.join()
	}

	n := copy(p, j.pending)
	j.pending = j.pending[n:]
	return n, nil
}

// join appends follow-up reads while the pending bytes end inside an escape
// sequence, until delay expires.
func (j *escJoiner) join() {
	timeout := time.NewTimer(j.delay)
	defer timeout.Stop()

	for j.err == nil && incompleteEscape(j.pending) {
		select {
		case c, ok := <-j.chunks:
			if !ok {
				j.err = io.EOF
				return
			}
			j.pending = append(j.pending, c.b...)
			j.err = c.err
		case <-timeout.C:
			return
		}
	}
}

// incompleteEscape reports whether b ends with ESC, ESC O or a CSI without
// its final byte.
func incompleteEscape(b []byte) bool {
	i := bytes.LastIndexByte(b, 0x1b)
	if i < 0 {
		return false
	}
	tail := b[i+1:]
	switch {
	case len(tail) == 0:
		return true
	case tail[0] == 'O':
		return len(tail) == 1
	case tail[0] == '[':
		for _, c := range tail[1:] {
			// parameter and intermediate bytes
			if c < 0x20 || c > 0x3f {
				return false
			}
		}
		return true
	default:
		return false
	}
}
