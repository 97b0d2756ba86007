package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/mensura/dataset"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.msr>",
	Short: "Show the layout and series of a .msr dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.ReadFile(args[0])
		if err != nil {
			return err
		}

		info := ds.Info()
		out := cmd.OutOrStdout()

		byteOrder := "little endian"
		if info.BigEndian {
			byteOrder = "big endian"
		}

		fmt.Fprintf(out, "file:        %s (%s)\n", args[0], humanize.Bytes(uint64(info.FileSize))) //nolint:gosec // file size
		fmt.Fprintf(out, "encoding:    %s\n", info.Encoding)
		fmt.Fprintf(out, "compression: %s (%s -> %s, %.1f%% saved)\n",
			info.Compression,
			humanize.Bytes(uint64(info.Payload.OriginalSize)),   //nolint:gosec // payload size
			humanize.Bytes(uint64(info.Payload.CompressedSize)), //nolint:gosec // payload size
			info.Payload.SpaceSavings())
		fmt.Fprintf(out, "byte order:  %s\n", byteOrder)
		fmt.Fprintf(out, "series:      %d\n\n", len(info.Series))

		fmt.Fprintf(out, "%-20s %-18s %8s %10s %10s\n", "name", "id", "values", "size", "bits/value")
		fmt.Fprintf(out, "%s\n", strings.Repeat("-", 70))
		for _, s := range info.Series {
			bitsPerValue := 0.0
			if s.Count > 0 {
				bitsPerValue = float64(s.EncodedSize*8) / float64(s.Count)
			}
			fmt.Fprintf(out, "%-20s 0x%016x %8d %10s %10.1f\n",
				s.Name, s.ID, s.Count, humanize.Bytes(uint64(s.EncodedSize)), bitsPerValue) //nolint:gosec // series size
		}

		return nil
	},
}
