package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/arloliu/mensura/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set mensura configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "precision: %d\n", cfg.Precision)
		fmt.Fprintf(out, "compression: %s\n", cfg.Compression)
		fmt.Fprintf(out, "value_encoding: %s\n", cfg.ValueEncoding)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "color: %t\n", cfg.Color)

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if err := cfg.Set(key, val); err != nil {
			return err
		}

		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}

		path, _ := cfgpkg.Path(cfgFile)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s = %s to %s\n", key, val, path)

		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
