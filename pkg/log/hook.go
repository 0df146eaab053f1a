//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package log

import (
	"fmt"
	"os"
	"path/filepath"

	"smoltui/pkg/define"
	"smoltui/pkg/io"

	"github.com/sirupsen/logrus"
)

const MaxSizeInMB = 5

const (
	OutFile    = "file"
	OutConsole = "console"
)

// Setup outType: file, console
// if outType is file, logs go to <base>/logs/smoltui.log, the dashboard owns the terminal
// if outType is console, logs go to stderr
func Setup(outType string, level string, baseDir string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   outType == OutFile,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	logrus.SetOutput(os.Stderr)

	switch outType {
	case OutConsole:
		return nil
	case OutFile:
	default:
		return fmt.Errorf("unknown log output %q, want %q or %q", outType, OutFile, OutConsole)
	}

	logFile := io.NewFile(filepath.Join(baseDir, define.LogPrefixDir, define.LogFileName))
	if logFile.IsExist() {
		if err := logFile.KeepTail(MaxSizeInMB); err != nil {
			logrus.Warnf("failed to trim log file: %v", err)
		}
	} else if err := logFile.MakeBaseDir(); err != nil {
		return fmt.Errorf("unable to create log dir: %w", err)
	}

	fd, err := os.OpenFile(logFile.GetPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, define.DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	logrus.SetOutput(fd)
	logrus.Infof("Save log to %q", logFile.GetPath())
	return nil
}
