package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mason-leap-lab/go-utils/logger"
	"github.com/spf13/cobra"

	cfgpkg "github.com/arloliu/mensura/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	log logger.Logger = logger.NilLogger
)

var rootCmd = &cobra.Command{
	Use:           "mensura",
	Short:         "Statistics with uncertainty for repeated measurements",
	Long:          `mensura summarizes measurement series, fits lines and curves with their uncertainties, and stores series in compact .msr dataset files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.mensura/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(summaryCmd, regressCmd, packCmd, inspectCmd, configCmd)
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c
	log = newLogger(cfg, debug)
	log.Debug("Loaded config: %+v", *cfg)
}

func newLogger(c *cfgpkg.Global, debug bool) logger.Logger {
	level := logger.LOG_LEVEL_INFO
	switch strings.ToLower(c.LogLevel) {
	case "all", "debug":
		level = logger.LOG_LEVEL_ALL
	case "warn":
		level = logger.LOG_LEVEL_WARN
	case "none":
		if !debug {
			return logger.NilLogger
		}
	}
	if debug {
		level = logger.LOG_LEVEL_ALL
	}

	return &logger.ColorLogger{Prefix: "mensura ", Level: level, Color: c.Color}
}
