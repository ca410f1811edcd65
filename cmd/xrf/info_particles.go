package main

import (
	"context"
	"fmt"

	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/particles"
)

func init() {
	var path string

	cmd := cobra.Command{
		Use:   "info-particles",
		Short: "Print a ParticlesFile's version and effect/group counts",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
	}
	cmd.Flags().StringVar(&path, "path", "", "path to the particles file")
	if err := cmd.MarkFlagRequired("path"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagFilename("path"); err != nil {
		panic(err)
	}

	commands = append(commands, subcommand{
		Command: cmd,
		RunE: func(_ context.Context, _ *cobra.Command, _ []string) error {
			src, closeSrc, err := chunk.OpenFile(path)
			if err != nil {
				return err
			}
			defer closeSrc()

			f, err := particles.Read(src)
			if err != nil {
				return err
			}

			fmt.Printf("version: %d\n", f.Header.Version)
			fmt.Printf("effects: %d (header says %d)\n", len(f.Effects), f.Header.EffectsCount)
			fmt.Printf("groups: %d (header says %d)\n", len(f.Groups), f.Header.GroupsCount)
			return nil
		},
	})
}
