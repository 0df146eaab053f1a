//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package events

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"smoltui/pkg/define"
	"smoltui/pkg/io"
	"smoltui/pkg/vm"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

type FileOp int

const (
	OpCreate FileOp = iota
	OpWrite
	OpRemove
)

func (o FileOp) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return fmt.Sprintf("FileOp(%d)", int(o))
	}
}

// RawNotification is a file level notification before classification.
type RawNotification struct {
	Op    FileOp
	Paths []string
}

// Classify turns a raw notification on the managed tree into a domain event.
// ok is false when the notification is not relevant.
func Classify(baseDir string, n RawNotification) (Event, bool) {
	if len(n.Paths) > 1 {
		return Fatal{Err: fmt.Errorf("%s %q: %w", n.Op, n.Paths, define.ErrMultiplePaths)}, true
	}
	if len(n.Paths) == 0 {
		return nil, false
	}

	path := n.Paths[0]
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, false
	}
	dir, file := filepath.Split(filepath.ToSlash(rel))
	if file == "" {
		return nil, false
	}

	switch strings.TrimSuffix(dir, "/") {
	case define.ConfigPrefixDir:
		name, err := vm.NameFromConfPath(file)
		if err != nil {
			return nil, false
		}
		switch n.Op {
		case OpCreate:
			return ConfCreated{Path: path, Name: name}, true
		case OpWrite:
			return ConfModified{Path: path, Name: name}, true
		case OpRemove:
			return ConfDeleted{Path: path, Name: name}, true
		}
	case define.KernelPrefixDir:
		switch n.Op {
		case OpCreate:
			return KernelCreated{Path: path, Name: file}, true
		case OpWrite:
			return KernelModified{Path: path, Name: file}, true
		case OpRemove:
			return KernelDeleted{Path: path, Name: file}, true
		}
	case define.ImagePrefixDir:
		switch n.Op {
		case OpCreate:
			return ImageCreated{Path: path, Name: file}, true
		case OpWrite:
			return ImageModified{Path: path, Name: file}, true
		case OpRemove:
			return ImageDeleted{Path: path, Name: file}, true
		}
	case "":
		// marker creation is not surfaced, the controller re-reads it after a launch
		if name, ok := vm.NameFromPidFile(file); ok && n.Op == OpRemove {
			return PidFileDeleted{Name: name}, true
		}
	}
	return nil, false
}

// FSWatcher forwards classified notifications of <base>, <base>/etc,
// <base>/kernels and <base>/images to the bus.
type FSWatcher struct {
	baseDir string
	watcher *fsnotify.Watcher
}

func NewFSWatcher(baseDir string) (*FSWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}

	base := io.NewDir(baseDir)
	dirs := []*io.PathWrapper{
		base,
		base.AppendDir(define.ConfigPrefixDir),
		base.AppendDir(define.KernelPrefixDir),
		base.AppendDir(define.ImagePrefixDir),
	}
	for i, d := range dirs {
		if !d.IsDir() {
			if i < 2 {
				_ = w.Close()
				return nil, fmt.Errorf("%s is not a directory: %w", d.GetPath(), define.ErrBaseDirInvalid)
			}
			logrus.Infof("optional directory %s is missing, not watched", d.GetPath())
			continue
		}
		if err := w.Add(d.GetPath()); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", d.GetPath(), err)
		}
		logrus.Infof("watching %s", d.GetPath())
	}

	return &FSWatcher{baseDir: baseDir, watcher: w}, nil
}

// Run blocks until ctx is done or the watcher dies. It returns nil only on
// cancellation.
func (f *FSWatcher) Run(ctx context.Context, bus Sender) error {
	defer f.watcher.Close() //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return errors.New("fs watcher event channel closed")
			}
			n, ok := rawFromFsnotify(ev)
			if !ok {
				continue
			}
			if e, ok := Classify(f.baseDir, n); ok {
				logrus.Debugf("fs %s %s -> %T", n.Op, ev.Name, e)
				bus.Send(e)
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return errors.New("fs watcher error channel closed")
			}
			logrus.Warnf("watch error: %v", err)
		}
	}
}

// rawFromFsnotify keeps file level create, write and remove notifications.
// A rename reports the old name going away, the new one arrives as a create.
func rawFromFsnotify(ev fsnotify.Event) (RawNotification, bool) {
	switch {
	case ev.Has(fsnotify.Create):
		if io.NewDir(ev.Name).IsDir() {
			return RawNotification{}, false
		}
		return RawNotification{Op: OpCreate, Paths: []string{ev.Name}}, true
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return RawNotification{Op: OpRemove, Paths: []string{ev.Name}}, true
	case ev.Has(fsnotify.Write):
		return RawNotification{Op: OpWrite, Paths: []string{ev.Name}}, true
	default:
		return RawNotification{}, false
	}
}
