//  SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
//  SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"time"

	"smoltui/cmd/registry"
	"smoltui/pkg/define"
	mylog "smoltui/pkg/log"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	LogOut          string
	LogLevel        string
	RefreshInterval time.Duration
}

var (
	opts    rootOptions
	rootCmd = &cobra.Command{
		Use:   "smoltui [BASE-DIR]",
		Short: "Terminal dashboard for smolBSD virtual machines",
		Long: fmt.Sprintf("Start, stop and delete the VMs configured in BASE-DIR/etc/*.conf.\n"+
			"BASE-DIR must hold %s and etc/, it defaults to $%s.", define.LauncherName, define.BaseDirEnv),
		Args:          cobra.MaximumNArgs(1),
		RunE:          runDashboard,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       define.GitCommit,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&opts.LogOut, registry.LogOutFlag, mylog.OutFile,
		fmt.Sprintf("where to write the log, %q (BASE-DIR/logs/%s) or %q", mylog.OutFile, define.LogFileName, mylog.OutConsole))
	flags.StringVar(&opts.LogLevel, registry.LogLevelFlag, registry.DefaultLogLevel, "log level")
	flags.DurationVar(&opts.RefreshInterval, registry.RefreshIntervalFlag, registry.DefaultRefreshInterval,
		"how often pid files and CPU usage are re-read, 0 disables")
}

func main() {
	registry.NotifyAndExit(rootCmd.Execute())
}
