//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package events_test

import (
	"sync"
	"testing"
	"time"

	"smoltui/pkg/events"

	"github.com/stretchr/testify/require"
)

func TestBusKeepsProducerOrder(t *testing.T) {
	bus := events.NewBus()

	const producers, perProducer = 4, 500
	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				bus.Send(events.LaunchSucceeded{VMName: string(rune('a' + p)), RequestID: string(rune(i))})
			}
		}()
	}
	// nobody reads yet, producers must not block
	wg.Wait()

	last := map[string]int{}
	for range producers * perProducer {
		select {
		case e := <-bus.Out():
			ls := e.(events.LaunchSucceeded)
			seq := int([]rune(ls.RequestID)[0])
			if prev, ok := last[ls.VMName]; ok {
				require.Equal(t, prev+1, seq)
			}
			last[ls.VMName] = seq
		case <-time.After(5 * time.Second):
			t.Fatal("timed out reading the bus")
		}
	}
	require.Len(t, last, producers)
}

func TestBusClose(t *testing.T) {
	bus := events.NewBus()
	bus.Send(events.Tick{})
	bus.Close()
	bus.Close()
	bus.Send(events.Tick{})

	e, ok := <-bus.Out()
	require.True(t, ok)
	require.Equal(t, events.Tick{}, e)

	select {
	case _, ok = <-bus.Out():
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("out channel was not closed")
	}
}
