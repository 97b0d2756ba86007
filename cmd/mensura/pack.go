package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/mensura/dataset"
	"github.com/arloliu/mensura/format"
)

var (
	packCompression string
	packEncoding    string
	packBigEndian   bool
)

var packCmd = &cobra.Command{
	Use:   "pack <out.msr> <files...>",
	Short: "Pack measurement series into a .msr dataset",
	Long: `Pack text files (one series each, named after the file) and existing .msr
datasets into a single .msr file. Compression and value encoding default to
the configured values.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, inputs := args[0], args[1:]

		compression := cfg.Compression
		if cmd.Flags().Changed("compression") {
			compression = packCompression
		}
		encoding := cfg.ValueEncoding
		if cmd.Flags().Changed("encoding") {
			encoding = packEncoding
		}

		c, err := format.ParseCompression(compression)
		if err != nil {
			return err
		}
		e, err := format.ParseEncoding(encoding)
		if err != nil {
			return err
		}

		series, err := loadAllSeries(inputs)
		if err != nil {
			return err
		}

		opts := []dataset.EncoderOption{dataset.WithCompression(c), dataset.WithValueEncoding(e)}
		if packBigEndian {
			opts = append(opts, dataset.WithBigEndian())
		}

		if err := dataset.WriteFile(out, series, opts...); err != nil {
			return err
		}

		st, err := os.Stat(out)
		if err != nil {
			return fmt.Errorf("stat %s: %w", out, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Packed %d series into %s (%s, %s, %s)\n",
			len(series), out, humanize.Bytes(uint64(st.Size())), e, c) //nolint:gosec // file size
		log.Debug("Packed %v", inputs)

		return nil
	},
}

func init() {
	packCmd.Flags().StringVar(&packCompression, "compression", "", "payload compression: none, zstd, s2, lz4 (default from config)")
	packCmd.Flags().StringVar(&packEncoding, "encoding", "", "value encoding: raw, gorilla (default from config)")
	packCmd.Flags().BoolVar(&packBigEndian, "big-endian", false, "write the dataset in big-endian byte order")
}
