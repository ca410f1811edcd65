package main

import (
	"context"
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/spawn"
)

func init() {
	var path string

	cmd := cobra.Command{
		Use:   "verify-spawn",
		Short: "Parse a SpawnFile and discard the result, failing on any decode error",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
	}
	cmd.Flags().StringVar(&path, "path", "", "path to the spawn file")
	if err := cmd.MarkFlagRequired("path"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagFilename("path"); err != nil {
		panic(err)
	}

	commands = append(commands, subcommand{
		Command: cmd,
		RunE: func(ctx context.Context, _ *cobra.Command, _ []string) error {
			src, closeSrc, err := chunk.OpenFile(path)
			if err != nil {
				return err
			}
			defer closeSrc()

			if _, err := spawn.Read(src); err != nil {
				return err
			}
			dlog.Infof(ctx, "%s: ok", path)
			fmt.Println("ok")
			return nil
		},
	})
}
