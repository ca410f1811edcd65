package main

import (
	"context"
	"fmt"

	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/ogf"
)

func init() {
	var path string

	cmd := cobra.Command{
		Use:   "info-ogf",
		Short: "Print an OgfFile's version, shader id, and bounding volumes",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
	}
	cmd.Flags().StringVar(&path, "path", "", "path to the ogf file")
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

			f, err := ogf.Read(src)
			if err != nil {
				return err
			}

			fmt.Printf("version: %d\n", f.Header.Version)
			fmt.Printf("model type: %d\n", f.Header.ModelType)
			fmt.Printf("shader id: %d\n", f.Header.ShaderID)
			fmt.Printf("bounding box: min=%v max=%v\n", f.Header.BoundingBox.Min, f.Header.BoundingBox.Max)
			fmt.Printf("bounding sphere: center=%v radius=%v\n", f.Header.BoundingSphere.Center, f.Header.BoundingSphere.Radius)
			fmt.Printf("bones: %d\n", len(f.Bones))
			fmt.Printf("children: %d\n", len(f.Children))
			if f.Kinematics != nil {
				fmt.Printf("motion refs: %d\n", len(f.Kinematics.MotionRefs))
			}
			return nil
		},
	})
}
