//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package events

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"

	"smoltui/pkg/define"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Launch runs the launcher for one VM in its own goroutine. Exactly one
// LaunchSucceeded or LaunchFailed is sent when it completes.
func Launch(baseDir, name string, bus Sender) string {
	id := uuid.NewString()
	go func() {
		bus.Send(RunLauncher(baseDir, name, id))
	}()
	return id
}

// LauncherPath resolves <base>/startnb.sh to an absolute path without symlinks.
func LauncherPath(baseDir string) (string, error) {
	p, err := filepath.Abs(filepath.Join(baseDir, define.LauncherName))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", define.LauncherName, err)
	}
	p, err = filepath.EvalSymlinks(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", define.LauncherName, err)
	}
	return p, nil
}

// LauncherArgs is the fixed argument convention of startnb.sh.
func LauncherArgs(name string) []string {
	return []string{"-f", filepath.Join(define.ConfigPrefixDir, name+define.ConfSuffix), "-d"}
}

// RunLauncher runs startnb.sh synchronously from baseDir and returns the
// completion event. It never retries.
func RunLauncher(baseDir, name, requestID string) Event {
	log := logrus.WithFields(logrus.Fields{"vm": name, "request": requestID})

	launcher, err := LauncherPath(baseDir)
	if err != nil {
		log.Warnf("launch failed: %v", err)
		return LaunchFailed{VMName: name, RequestID: requestID, Error: err.Error()}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(launcher, LauncherArgs(name)...)
	cmd.Dir = baseDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Infof("run %q", cmd.Args)
	if err := cmd.Start(); err != nil {
		log.Warnf("launch failed: %v", err)
		return LaunchFailed{
			VMName:    name,
			RequestID: requestID,
			Error:     fmt.Sprintf("%s: %v", define.ErrLauncherFailed, err),
		}
	}

	if err := cmd.Wait(); err != nil {
		log.Warnf("launcher exited: %v", err)
		return LaunchFailed{
			VMName:    name,
			RequestID: requestID,
			Error:     define.ErrLauncherFailed.Error(),
			Stdout:    stdout.String(),
			Stderr:    stderr.String(),
		}
	}

	log.Infof("launcher succeeded")
	return LaunchSucceeded{VMName: name, RequestID: requestID}
}
