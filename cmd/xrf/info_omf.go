package main

import (
	"context"
	"fmt"

	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/omf"
)

func init() {
	var path string

	cmd := cobra.Command{
		Use:   "info-omf",
		Short: "Print an OmfFile's version, motion names, and part bones",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
	}
	cmd.Flags().StringVar(&path, "path", "", "path to the omf file")
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

			f, err := omf.Read(src)
			if err != nil {
				return err
			}

			fmt.Printf("version: %d\n", f.Parameters.Version)
			fmt.Printf("parts: %d\n", len(f.Parameters.Parts))
			for _, p := range f.Parameters.Parts {
				fmt.Printf("  %s: %d bones\n", p.Name, len(p.Bones))
			}
			fmt.Printf("motion definitions: %d\n", len(f.Parameters.Motions))
			fmt.Printf("motions: %d\n", len(f.Motions))
			for _, m := range f.Motions {
				fmt.Printf("  %s\n", m.Name)
			}
			return nil
		},
	})
}
