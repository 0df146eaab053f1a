//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package events

import (
	"sync"

	"github.com/Code-Hex/go-infinity-channel"
	"github.com/sirupsen/logrus"
)

// Sender is the producer side of the bus.
type Sender interface {
	Send(e Event)
}

// Bus is an unbounded FIFO merging the events of every producer. Send never
// blocks and there is exactly one consumer reading Out.
type Bus struct {
	ch *infinity.Channel[Event]

	mu     sync.RWMutex
	closed bool
}

func NewBus() *Bus {
	return &Bus{ch: infinity.NewChannel[Event]()}
}

func (b *Bus) Send(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		logrus.Debugf("bus closed, drop event %T", e)
		return
	}
	b.ch.In() <- e
}

func (b *Bus) Out() <-chan Event {
	return b.ch.Out()
}

// Len returns the number of queued events.
func (b *Bus) Len() int {
	return b.ch.Len()
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.ch.Close()
}
