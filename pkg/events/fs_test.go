//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package events_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"smoltui/pkg/define"
	"smoltui/pkg/events"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	base := "/srv/smol"
	j := func(p ...string) string { return filepath.Join(append([]string{base}, p...)...) }

	tests := []struct {
		name string
		n    events.RawNotification
		want events.Event
	}{
		{
			name: "conf created",
			n:    events.RawNotification{Op: events.OpCreate, Paths: []string{j("etc", "vm1.conf")}},
			want: events.ConfCreated{Path: j("etc", "vm1.conf"), Name: "vm1"},
		},
		{
			name: "conf modified",
			n:    events.RawNotification{Op: events.OpWrite, Paths: []string{j("etc", "vm1.conf")}},
			want: events.ConfModified{Path: j("etc", "vm1.conf"), Name: "vm1"},
		},
		{
			name: "conf deleted",
			n:    events.RawNotification{Op: events.OpRemove, Paths: []string{j("etc", "vm1.conf")}},
			want: events.ConfDeleted{Path: j("etc", "vm1.conf"), Name: "vm1"},
		},
		{
			name: "conf name with space and symbols",
			n:    events.RawNotification{Op: events.OpCreate, Paths: []string{j("etc", "my vm@host.conf")}},
			want: events.ConfCreated{Path: j("etc", "my vm@host.conf"), Name: "my vm@host"},
		},
		{
			name: "non conf file in etc",
			n:    events.RawNotification{Op: events.OpCreate, Paths: []string{j("etc", "vm1.conf.swp")}},
		},
		{
			name: "editor lock file in etc",
			n:    events.RawNotification{Op: events.OpCreate, Paths: []string{j("etc", ".#vm1.conf")}},
		},
		{
			name: "nested conf",
			n:    events.RawNotification{Op: events.OpCreate, Paths: []string{j("etc", "old", "vm1.conf")}},
		},
		{
			name: "kernel created",
			n:    events.RawNotification{Op: events.OpCreate, Paths: []string{j("kernels", "netbsd-SMOL")}},
			want: events.KernelCreated{Path: j("kernels", "netbsd-SMOL"), Name: "netbsd-SMOL"},
		},
		{
			name: "kernel modified",
			n:    events.RawNotification{Op: events.OpWrite, Paths: []string{j("kernels", "netbsd-SMOL")}},
			want: events.KernelModified{Path: j("kernels", "netbsd-SMOL"), Name: "netbsd-SMOL"},
		},
		{
			name: "kernel deleted",
			n:    events.RawNotification{Op: events.OpRemove, Paths: []string{j("kernels", "netbsd-SMOL")}},
			want: events.KernelDeleted{Path: j("kernels", "netbsd-SMOL"), Name: "netbsd-SMOL"},
		},
		{
			name: "image created",
			n:    events.RawNotification{Op: events.OpCreate, Paths: []string{j("images", "a.img")}},
			want: events.ImageCreated{Path: j("images", "a.img"), Name: "a.img"},
		},
		{
			name: "image modified",
			n:    events.RawNotification{Op: events.OpWrite, Paths: []string{j("images", "a.img")}},
			want: events.ImageModified{Path: j("images", "a.img"), Name: "a.img"},
		},
		{
			name: "image deleted",
			n:    events.RawNotification{Op: events.OpRemove, Paths: []string{j("images", "a.img")}},
			want: events.ImageDeleted{Path: j("images", "a.img"), Name: "a.img"},
		},
		{
			name: "marker deleted",
			n:    events.RawNotification{Op: events.OpRemove, Paths: []string{j("qemu-vm3.pid")}},
			want: events.PidFileDeleted{Name: "vm3"},
		},
		{
			name: "marker created is not surfaced",
			n:    events.RawNotification{Op: events.OpCreate, Paths: []string{j("qemu-vm3.pid")}},
		},
		{
			name: "marker modified is not surfaced",
			n:    events.RawNotification{Op: events.OpWrite, Paths: []string{j("qemu-vm3.pid")}},
		},
		{
			name: "marker in a subdirectory",
			n:    events.RawNotification{Op: events.OpRemove, Paths: []string{j("images", "qemu-vm3.pid")}},
			want: events.ImageDeleted{Path: j("images", "qemu-vm3.pid"), Name: "qemu-vm3.pid"},
		},
		{
			name: "other base file",
			n:    events.RawNotification{Op: events.OpWrite, Paths: []string{j("startnb.sh")}},
		},
		{
			name: "log file",
			n:    events.RawNotification{Op: events.OpWrite, Paths: []string{j("logs", "smoltui.log")}},
		},
		{
			name: "outside base",
			n:    events.RawNotification{Op: events.OpRemove, Paths: []string{"/tmp/qemu-vm3.pid"}},
		},
		{
			name: "no path",
			n:    events.RawNotification{Op: events.OpRemove},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := events.Classify(base, tt.n)
			if tt.want == nil {
				require.False(t, ok)
				require.Nil(t, got)
				return
			}
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyMultiplePathsIsFatal(t *testing.T) {
	e, ok := events.Classify("/srv/smol", events.RawNotification{
		Op:    events.OpRemove,
		Paths: []string{"/srv/smol/etc/a.conf", "/srv/smol/etc/b.conf"},
	})
	require.True(t, ok)
	fatal, isFatal := e.(events.Fatal)
	require.True(t, isFatal)
	require.ErrorIs(t, fatal.Err, define.ErrMultiplePaths)
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Send(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) has(want events.Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == want {
			return true
		}
	}
	return false
}

func (r *recorder) snapshot() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

func TestFSWatcher(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, define.ConfigPrefixDir), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(base, define.ImagePrefixDir), 0o755))

	w, err := events.NewFSWatcher(base)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, rec) }()

	conf := filepath.Join(base, define.ConfigPrefixDir, "vm1.conf")
	require.NoError(t, os.WriteFile(conf, []byte("img=a.img\n"), 0o644))
	require.Eventually(t, func() bool {
		return rec.has(events.ConfCreated{Path: conf, Name: "vm1"})
	}, 5*time.Second, 10*time.Millisecond)

	marker := filepath.Join(base, "qemu-vm1.pid")
	require.NoError(t, os.WriteFile(marker, []byte("1\n"), 0o644))
	require.NoError(t, os.Remove(marker))
	require.Eventually(t, func() bool {
		return rec.has(events.PidFileDeleted{Name: "vm1"})
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(conf))
	require.Eventually(t, func() bool {
		return rec.has(events.ConfDeleted{Path: conf, Name: "vm1"})
	}, 5*time.Second, 10*time.Millisecond)

	// directories never become events
	require.NoError(t, os.Mkdir(filepath.Join(base, define.ConfigPrefixDir, "sub.conf"), 0o755))

	cancel()
	require.NoError(t, <-done)

	for _, e := range rec.snapshot() {
		_, isFatal := e.(events.Fatal)
		require.False(t, isFatal)
		require.NotEqual(t, events.ConfCreated{Path: filepath.Join(base, define.ConfigPrefixDir, "sub.conf"), Name: "sub"}, e)
	}
}

func TestFSWatcherRequiresConfigDir(t *testing.T) {
	_, err := events.NewFSWatcher(t.TempDir())
	require.ErrorIs(t, err, define.ErrBaseDirInvalid)
}
