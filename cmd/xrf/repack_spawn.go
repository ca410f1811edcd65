package main

import (
	"context"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/spawn"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

func init() {
	var path, dest string

	cmd := cobra.Command{
		Use:   "repack-spawn",
		Short: "Decode a SpawnFile and re-encode it, a binary-to-binary round trip",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
	}
	cmd.Flags().StringVar(&path, "path", "", "path to the source spawn file")
	cmd.Flags().StringVar(&dest, "dest", "", "path to write the repacked spawn file")
	for _, name := range []string{"path", "dest"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
		if err := cmd.MarkFlagFilename(name); err != nil {
			panic(err)
		}
	}

	commands = append(commands, subcommand{
		Command: cmd,
		RunE: func(ctx context.Context, _ *cobra.Command, _ []string) error {
			src, closeSrc, err := chunk.OpenFile(path)
			if err != nil {
				return err
			}
			defer closeSrc()

			f, err := spawn.Read(src)
			if err != nil {
				return err
			}

			out, err := os.Create(dest)
			if err != nil {
				return xrerr.Wrap(xrerr.Io, err, "creating %s", dest)
			}
			defer out.Close()

			if err := spawn.Write(out, f); err != nil {
				return err
			}
			dlog.Infof(ctx, "repacked %s -> %s", path, dest)
			return nil
		},
	})
}
