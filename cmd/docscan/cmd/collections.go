package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/docscan/internal/logger"
)

var (
	collectionsProject string
	collectionsToken   string
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List root-level collections of the target store",
	Long: `Collections discovers and lists the root-level collection
identifiers of the target store without sampling any documents.

Useful as a quick connectivity and credential check before a full scan.

Example:
  docscan collections --project my-project --token "$DOCSTORE_TOKEN"`,
	RunE: runCollections,
}

func init() {
	collectionsCmd.Flags().StringVarP(&collectionsProject, "project", "p", "",
		"Target project identity (overrides config)")
	collectionsCmd.Flags().StringVar(&collectionsToken, "token", "",
		"Bearer credential for the document store (overrides config)")

	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if collectionsProject != "" {
		cfg.Store.Project = collectionsProject
	}
	if collectionsToken != "" {
		cfg.Store.Token = collectionsToken
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client := newStoreClient(cfg)

	ids, err := client.ListCollectionIDs(context.Background(), "")
	if err != nil {
		return fmt.Errorf("collection discovery failed: %w", err)
	}
	log.Infow("discovered root collections", "project", cfg.Store.Project, "count", len(ids))

	if len(ids) == 0 {
		cmd.Printf("No collections found in project %s\n", cfg.Store.Project)
		return nil
	}

	cmd.Printf("Root collections in project %s:\n\n", cfg.Store.Project)
	for i, id := range ids {
		cmd.Printf("%d. %s\n", i+1, id)
	}
	cmd.Printf("\nTotal: %d collection(s)\n", len(ids))

	return nil
}
