package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/docscan/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// defaultConfigFile is used when --config is not given; a missing
// default file is not an error, flags alone can drive a scan.
const defaultConfigFile = "docscan.yaml"

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "docscan",
	Short: "Document store schema sampler",
	Long: `A CLI tool that infers the structural shape of a document-oriented
database by statistically sampling live documents, without requiring a
predefined schema or administrative export.

Features:
  - Per-field type and cardinality observation with example values
  - One level of nested-map flattening into dotted field paths
  - Optional recursive sub-collection discovery with a depth budget
  - Single JSON report covering every visited collection`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// loadConfig loads the configuration file and applies logging
// overrides from the persistent flags. When the default config file
// is absent the built-in defaults are used so the tool remains fully
// flag-driven.
func loadConfig() (*config.Config, error) {
	configFile := GetConfigFile()

	var cfg *config.Config
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if configFile != defaultConfigFile {
			return nil, fmt.Errorf("config file %s not found", configFile)
		}
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.ApplyOverrides(logLevel, logFormat)
	return cfg, nil
}
