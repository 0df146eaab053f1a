//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"smoltui/pkg/controller"
	"smoltui/pkg/define"
	"smoltui/pkg/events"
	mylog "smoltui/pkg/log"
	"smoltui/pkg/system"
	"smoltui/pkg/terminal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

func showLogHeader(baseDir string) {
	logrus.Infof("=========== SMOLTUI =========")
	logrus.Infof("Version: %s", define.GitCommit)
	logrus.Infof("Host: %s", system.Version())
	logrus.Infof("PID: %d, PPID: %d", os.Getpid(), os.Getppid())
	logrus.Infof("Base directory: %s", baseDir)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	baseDir, err := resolveBaseDir(args)
	if err != nil {
		return err
	}
	if err := mylog.Setup(opts.LogOut, opts.LogLevel, baseDir); err != nil {
		return fmt.Errorf("set logger error: %w", err)
	}
	showLogHeader(baseDir)

	bus := events.NewBus()
	defer bus.Close()

	c, err := controller.New(controller.Options{
		BaseDir: baseDir,
		Bus:     bus,
		Version: define.GitCommit,
	})
	if err != nil {
		return fmt.Errorf("failed to load VMs: %w", err)
	}

	watcher, err := events.NewFSWatcher(baseDir)
	if err != nil {
		return err //nolint:wrapcheck
	}

	term, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer term.Close()
	logrus.RegisterExitHandler(term.Close)

	if w, h, err := term.Size(); err == nil {
		bus.Send(events.Resize{Width: w, Height: h})
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)
	defer signal.Stop(winch)

	// The stdin read can not be cancelled, the reader ends with the process.
	src := &events.TermSource{In: os.Stdin, Term: os.Getenv("TERM"), Size: term.Size, Resize: winch}
	go func() {
		err := src.Run(bus)
		bus.Send(events.Fatal{Err: fmt.Errorf("%w: %w", define.ErrProducerExited, err)})
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, unix.SIGTERM, unix.SIGHUP)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := watcher.Run(ctx, bus)
		if err != nil {
			bus.Send(events.Fatal{Err: fmt.Errorf("%w: %w", define.ErrProducerExited, err)})
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		return c.Run(ctx, bus.Out(), term, opts.RefreshInterval)
	})

	err = g.Wait()
	if err == nil || errors.Is(err, context.Canceled) {
		logrus.Infof("bye")
		return nil
	}
	return err //nolint:wrapcheck
}
