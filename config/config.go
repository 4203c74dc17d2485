// Package config holds the stringwrite configuration file format.
//
// A configuration file is YAML; keys not present in the file keep their
// default values. Command line flags are layered on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/stringwrite/bench"
	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/format"
)

// Config represents the stringwrite configuration.
type Config struct {
	NumExperiments int       `yaml:"num_exp"`
	PlatformType   string    `yaml:"platform_type"`
	NumStrings     int       `yaml:"num_strings"`
	MinLen         int       `yaml:"min_len"`
	LenMask        int       `yaml:"len_msk"`
	ReuseBatch     bool      `yaml:"reuse_batch"`
	DisableGC      bool      `yaml:"disable_gc"`
	Seed           uint64    `yaml:"seed"`
	LFSR           bool      `yaml:"lfsr"`
	PrintBatch     bool      `yaml:"print_batch"`
	Output         string    `yaml:"output"`
	MetricsFile    string    `yaml:"metrics_file"`
	BatchFile      BatchFile `yaml:"batch_file"`
	Logging        Logging   `yaml:"logging"`
}

// BatchFile configures reading and writing batch files.
type BatchFile struct {
	// Dump writes the first generated batch to this path.
	Dump string `yaml:"dump"`
	// Load benchmarks the batch stored at this path instead of generating one.
	Load string `yaml:"load"`
	// Codec is the compression used by Dump: none, zstd, s2 or lz4.
	Codec string `yaml:"codec"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	b := bench.DefaultConfig()

	return &Config{
		NumExperiments: b.NumExperiments,
		PlatformType:   b.Platform.String(),
		NumStrings:     b.NumStrings,
		MinLen:         b.MinLen,
		LenMask:        b.LenMask,
		Seed:           b.Seed,
		Output:         "Output.txt",
		BatchFile: BatchFile{
			Codec: "none",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration file at path on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path as YAML, creating the parent directory if needed.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every field that the benchmark, the batch file codec and the logger consume.
func (c *Config) Validate() error {
	b, err := c.Bench()
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}

	if _, err := c.Compression(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}

	if c.BatchFile.Dump != "" && c.BatchFile.Load != "" {
		return fmt.Errorf("%w: batch_file.dump and batch_file.load are mutually exclusive", errs.ErrInvalidArgument)
	}

	return nil
}

// Bench returns the benchmark configuration described by c.
func (c *Config) Bench() (bench.Config, error) {
	platform, err := format.ParsePlatform(c.PlatformType)
	if err != nil {
		return bench.Config{}, err
	}

	return bench.Config{
		NumExperiments: c.NumExperiments,
		NumStrings:     c.NumStrings,
		MinLen:         c.MinLen,
		LenMask:        c.LenMask,
		Platform:       platform,
		ReuseBatch:     c.ReuseBatch,
		DisableGC:      c.DisableGC,
		Seed:           c.Seed,
		LFSR:           c.LFSR,
	}, nil
}

// Compression returns the batch file compression type.
func (c *Config) Compression() (format.CompressionType, error) {
	return format.ParseCompression(c.BatchFile.Codec)
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", errs.ErrInvalidArgument, c.Logging.Level)
	}

	return level, nil
}
