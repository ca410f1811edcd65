package main

import (
	"context"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/xray-forge/xrf-go/lib/ltx"
	"github.com/xray-forge/xrf-go/lib/particles"
	"github.com/xray-forge/xrf-go/lib/xrerr"
)

func init() {
	var path, dest string

	cmd := cobra.Command{
		Use:   "re-unpack-particles",
		Short: "Re-import and re-export a particles LTX file, an LTX-to-LTX round trip",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
	}
	cmd.Flags().StringVar(&path, "path", "", "path to the source particles LTX file")
	cmd.Flags().StringVar(&dest, "dest", "", "path to write the re-exported LTX file")
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
			doc, err := ltx.ParseFile(path, ltx.ParseOptions{})
			if err != nil {
				return err
			}

			f, err := particles.ImportLTX(doc)
			if err != nil {
				return err
			}

			reexported := particles.ExportLTX(f)
			content := ltx.Format(reexported, ltx.DefaultWriteOptions())

			if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
				return xrerr.Wrap(xrerr.Io, err, "writing %s", dest)
			}
			dlog.Infof(ctx, "re-unpacked %s -> %s", path, dest)
			return nil
		},
	})
}
