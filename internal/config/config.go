// Package config loads the mensura CLI settings from defaults, an optional
// YAML file and MENSURA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/mensura/format"
)

const (
	envPrefix = "MENSURA"
	dirName   = ".mensura"
)

// Global holds the effective configuration.
type Global struct {
	// Precision is the number of decimals printed in reports.
	Precision int `mapstructure:"precision" yaml:"precision"`
	// Compression is the default codec of `mensura pack`.
	Compression string `mapstructure:"compression" yaml:"compression"`
	// ValueEncoding is the default value encoding of `mensura pack`.
	ValueEncoding string `mapstructure:"value_encoding" yaml:"value_encoding"`
	// LogLevel is one of all, info, warn or none.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// Color enables colored log output.
	Color bool `mapstructure:"color" yaml:"color"`
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		Precision:     5,
		Compression:   "zstd",
		ValueEncoding: "gorilla",
		LogLevel:      "info",
		Color:         true,
	}
}

// Path returns cfgFile, or ~/.mensura/config.yaml when it is empty.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}

	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Load reads the configuration.
// Precedence: env > config file > defaults. A missing file is not an error.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("precision", def.Precision)
	v.SetDefault("compression", def.Compression)
	v.SetDefault("value_encoding", def.ValueEncoding)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("color", def.Color)

	path, err := Path(cfgFile)
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

// Validate checks that every field holds a supported value.
func (c *Global) Validate() error {
	if c.Precision < 0 || c.Precision > 17 {
		return fmt.Errorf("invalid precision %d (want 0-17)", c.Precision)
	}

	if _, err := format.ParseCompression(c.Compression); err != nil {
		return err
	}

	if _, err := format.ParseEncoding(c.ValueEncoding); err != nil {
		return err
	}

	switch strings.ToLower(c.LogLevel) {
	case "all", "debug", "info", "warn", "none":
	default:
		return fmt.Errorf("invalid log_level %q (want all, info, warn or none)", c.LogLevel)
	}

	return nil
}

// Set assigns the value of key, as written in the YAML file.
func (c *Global) Set(key, value string) error {
	switch key {
	case "precision":
		var p int
		if _, err := fmt.Sscanf(value, "%d", &p); err != nil {
			return fmt.Errorf("invalid precision %q: %w", value, err)
		}
		c.Precision = p
	case "compression":
		c.Compression = strings.ToLower(value)
	case "value_encoding":
		c.ValueEncoding = strings.ToLower(value)
	case "log_level":
		c.LogLevel = strings.ToLower(value)
	case "color":
		switch strings.ToLower(value) {
		case "true", "yes", "on", "1":
			c.Color = true
		case "false", "no", "off", "0":
			c.Color = false
		default:
			return fmt.Errorf("invalid color %q (want true or false)", value)
		}
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	return c.Validate()
}

// Save writes c as YAML to cfgFile, or to ~/.mensura/config.yaml, creating
// the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	if err := os.WriteFile(path, b, 0o644); err != nil { //nolint:gosec // config holds no secrets
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
