// Package config holds the generator settings and loads them from a YAML
// file, the environment and a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSourceDir        = "web"
	DefaultOutputPath       = "src/webfiles.h"
	DefaultCompressionLevel = gzip.BestCompression
	DefaultConfigFile       = "webfilegen.yaml"
	DefaultEnvFile          = ".env"

	EnvSourceDir        = "WEBFILEGEN_SOURCE_DIR"
	EnvOutputPath       = "WEBFILEGEN_OUTPUT_PATH"
	EnvCompressionLevel = "WEBFILEGEN_COMPRESSION_LEVEL"
	EnvExtensionMode    = "WEBFILEGEN_EXTENSION_MODE"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// ExtensionMode selects which dot-separated segment of a filename is looked
// up in the MIME table.
type ExtensionMode string

const (
	// ExtensionFirst uses the segment after the first dot, so "app.min.js"
	// yields "min". This is the historical behaviour.
	ExtensionFirst ExtensionMode = "first"
	// ExtensionLast uses the segment after the last dot.
	ExtensionLast ExtensionMode = "last"
)

// Config holds the settings for one generator run.
type Config struct {
	SourceDir        string        `yaml:"source_dir"`
	OutputPath       string        `yaml:"output_path"`
	CompressionLevel int           `yaml:"compression_level"`
	ExtensionMode    ExtensionMode `yaml:"extension_mode"`
}

// Default returns the settings the generator uses when nothing overrides them.
func Default() Config {
	return Config{
		SourceDir:        DefaultSourceDir,
		OutputPath:       DefaultOutputPath,
		CompressionLevel: DefaultCompressionLevel,
		ExtensionMode:    ExtensionFirst,
	}
}

// Load reads the YAML file at path over the defaults. When required is false
// a missing file yields the defaults.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: cannot parse %s: %w", ErrInvalid, path, err)
	}

	return cfg, nil
}

// ApplyEnv loads envFile into the process environment when it exists and
// then overrides fields from WEBFILEGEN_* variables. Variables already set in
// the environment win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot load env file %s: %w", envFile, err)
		}
	}

	c.SourceDir = getEnv(EnvSourceDir, c.SourceDir)
	c.OutputPath = getEnv(EnvOutputPath, c.OutputPath)
	c.ExtensionMode = ExtensionMode(getEnv(EnvExtensionMode, string(c.ExtensionMode)))

	if v, ok := os.LookupEnv(EnvCompressionLevel); ok && v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvCompressionLevel, v, err)
		}
		c.CompressionLevel = level
	}

	return nil
}

func (c Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("%w: source directory is empty", ErrInvalid)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalid)
	}
	if c.CompressionLevel < gzip.HuffmanOnly || c.CompressionLevel > gzip.BestCompression {
		return fmt.Errorf("%w: compression level %d outside [%d, %d]",
			ErrInvalid, c.CompressionLevel, gzip.HuffmanOnly, gzip.BestCompression)
	}
	switch c.ExtensionMode {
	case ExtensionFirst, ExtensionLast:
	default:
		return fmt.Errorf("%w: unknown extension mode %q", ErrInvalid, c.ExtensionMode)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
