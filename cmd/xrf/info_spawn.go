package main

import (
	"context"
	"fmt"

	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/xray-forge/xrf-go/lib/chunk"
	"github.com/xray-forge/xrf-go/lib/fmtutil"
	"github.com/xray-forge/xrf-go/lib/spawn"
)

func init() {
	var path string

	cmd := cobra.Command{
		Use:   "info-spawn",
		Short: "Print a SpawnFile's header and object counts",
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
		RunE: func(_ context.Context, _ *cobra.Command, _ []string) error {
			src, closeSrc, err := chunk.OpenFile(path)
			if err != nil {
				return err
			}
			defer closeSrc()

			f, err := spawn.Read(src)
			if err != nil {
				return err
			}

			fmt.Printf("version: %d\n", f.Header.Version)
			fmt.Printf("guid: %s\n", f.Header.GUID)
			fmt.Printf("graph guid: %s\n", f.Header.GraphGUID)
			fmt.Printf("objects: %d (header says %d)\n", len(f.Objects), f.Header.ObjectCount)
			fmt.Printf("levels: %d\n", f.Header.LevelCount)
			fmt.Printf("patrols: %d\n", len(f.Patrols))
			fmt.Printf("artefact spawn points: %d\n", len(f.ArtefactSpawnPoints))
			if f.Graph != nil {
				fmt.Printf("graph vertices: %d\n", len(f.Graph.Vertices))
			}

			var spawnFlags, flags uint32
			for _, obj := range f.Objects {
				h := obj.Header()
				spawnFlags |= h.SpawnFlags
				flags |= h.Flags
			}
			fmt.Printf("spawn_flags (union): %s\n", fmtutil.BitfieldString(spawnFlags, nil, fmtutil.HexLower))
			fmt.Printf("flags (union): %s\n", fmtutil.BitfieldString(flags, nil, fmtutil.HexLower))
			return nil
		},
	})
}
