package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/docscan/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate checks the configuration file for required fields and
valid values without any network activity.

Checks performed:
  - Target project and bearer credential presence
  - Sample size and recursion depth bounds
  - Output path presence
  - Logging level and format values

Example:
  docscan validate --config docscan.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyOverrides(logLevel, logFormat)

	cmd.Printf("Validating %s\n\n", configFile)

	if err := cfg.Validate(); err != nil {
		return err
	}

	cmd.Printf("Project:     %s\n", cfg.Store.Project)
	cmd.Printf("Database:    %s\n", cfg.Store.Database)
	cmd.Printf("Sample size: %d\n", cfg.Sampling.SampleSize)
	if cfg.Sampling.Collection != "" {
		cmd.Printf("Start path:  %s\n", cfg.Sampling.Collection)
	}
	cmd.Printf("Recurse:     %v (max depth %d)\n", cfg.Sampling.Recurse, cfg.Sampling.MaxDepth)
	if cfg.Sampling.Recurse && cfg.Sampling.MaxDepth == 0 {
		fmt.Fprintln(outputWriter, color.Warn.Sprint("recurse is enabled but max_depth is 0; recursion will never fire"))
	}
	cmd.Printf("Output:      %s\n", cfg.Output.Path)

	fmt.Fprintln(outputWriter, color.Success.Sprint("Configuration is valid"))
	return nil
}
