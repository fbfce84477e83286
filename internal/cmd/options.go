package cmd

import (
	"github.com/dendrascience/webfilegen/internal/config"
	"github.com/spf13/cobra"
)

const (
	flagConfig        = "config"
	flagEnvFile       = "env-file"
	flagSource        = "source"
	flagOutput        = "output"
	flagLevel         = "level"
	flagExtensionMode = "extension-mode"
)

// configOptions are the flags shared by every command that needs a
// config.Config.
type configOptions struct {
	configFile    string
	envFile       string
	sourceDir     string
	outputPath    string
	level         int
	extensionMode string
}

func (o *configOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configFile, flagConfig, "c", config.DefaultConfigFile, "Path to YAML config file")
	cmd.Flags().StringVar(&o.envFile, flagEnvFile, config.DefaultEnvFile, "Path to .env file with WEBFILEGEN_* variables")
	cmd.Flags().StringVarP(&o.sourceDir, flagSource, "s", config.DefaultSourceDir, "Directory containing the web files")
	cmd.Flags().StringVarP(&o.outputPath, flagOutput, "o", config.DefaultOutputPath, "Path of the generated header")
	cmd.Flags().IntVarP(&o.level, flagLevel, "l", config.DefaultCompressionLevel, "gzip compression level (-2 to 9)")
	cmd.Flags().StringVar(&o.extensionMode, flagExtensionMode, string(config.ExtensionFirst),
		"Which filename segment selects the MIME type: first or last")
}

// resolve builds the configuration: defaults, then the YAML file, then the
// environment, then any flag set explicitly on the command line.
func (o *configOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	cfg, err := config.Load(o.configFile, flags.Changed(flagConfig))
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(o.envFile); err != nil {
		return cfg, err
	}

	if flags.Changed(flagSource) {
		cfg.SourceDir = o.sourceDir
	}
	if flags.Changed(flagOutput) {
		cfg.OutputPath = o.outputPath
	}
	if flags.Changed(flagLevel) {
		cfg.CompressionLevel = o.level
	}
	if flags.Changed(flagExtensionMode) {
		cfg.ExtensionMode = config.ExtensionMode(o.extensionMode)
	}

	return cfg, cfg.Validate()
}
