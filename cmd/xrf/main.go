// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/xray-forge/xrf-go/lib/textui"
)

// subcommand pairs a cobra command with the RunE it should run once the
// root has wired up logging and a command context. Subcommand files
// register one of these from their own init().
type subcommand struct {
	cobra.Command
	RunE func(ctx context.Context, cmd *cobra.Command, args []string) error
}

var commands []subcommand

func main() {
	var verbose, silent bool

	argparser := &cobra.Command{
		Use:   "xrf {[flags]|SUBCOMMAND}",
		Short: "Decode, verify, and repack the engine's chunked asset files and LTX configs",

		Args: cliutil.WrapPositionalArgs(cliutil.OnlySubcommands),
		RunE: cliutil.RunSubcommands,

		SilenceErrors: true, // main() handles the error after ExecuteContext returns
		SilenceUsage:  true, // FlagErrorFunc handles it

		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	argparser.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	argparser.PersistentFlags().BoolVar(&silent, "silent", false, "only log errors")

	for _, child := range commands {
		cmd := child.Command
		runE := child.RunE
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			level := dlog.LogLevelInfo
			switch {
			case silent:
				level = dlog.LogLevelError
			case verbose:
				level = dlog.LogLevelDebug
			}
			ctx := dlog.WithLogger(cmd.Context(), textui.NewLogger(os.Stderr, level))

			grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{EnableSignalHandling: true})
			grp.Go("main", func(ctx context.Context) error {
				return runE(ctx, cmd, args)
			})
			err := grp.Wait()
			if verbose {
				var memUse textui.LiveMemUse
				dlog.Debugf(ctx, "memory: %s", &memUse)
			}
			return err
		}
		argparser.AddCommand(&cmd)
	}

	if err := argparser.ExecuteContext(context.Background()); err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
