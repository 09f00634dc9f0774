package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/docscan/internal/config"
	"github.com/dbsmedya/docscan/internal/logger"
	"github.com/dbsmedya/docscan/internal/scanner"
	"github.com/dbsmedya/docscan/internal/schema"
	"github.com/dbsmedya/docscan/internal/store"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var (
	scanProject    string
	scanToken      string
	scanSampleSize int
	scanCollection string
	scanRecurse    bool
	scanMaxDepth   int
	scanOutput     string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Sample collections and write the inferred schema report",
	Long: `Scan fetches a bounded sample of documents from each collection,
observes every field's type and example values, and writes a single
JSON schema report.

With no starting collection, all root-level collections are
discovered and scanned. Recursion into sub-collections requires both
--recurse and a positive --max-depth.

Example:
  docscan scan --project my-project --token "$DOCSTORE_TOKEN" \
    --recurse --max-depth 2 --output schema.json`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanProject, "project", "p", "",
		"Target project identity (overrides config)")
	scanCmd.Flags().StringVar(&scanToken, "token", "",
		"Bearer credential for the document store (overrides config)")
	scanCmd.Flags().IntVar(&scanSampleSize, "sample-size", 0,
		"Documents to sample per collection (default 10)")
	scanCmd.Flags().StringVar(&scanCollection, "collection", "",
		"Single starting collection path (default: all root collections)")
	scanCmd.Flags().BoolVar(&scanRecurse, "recurse", false,
		"Descend into sub-collections of sampled documents")
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", 0,
		"Maximum recursion depth (0 disables recursion)")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "",
		"Report output path (default schema.json)")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyScanFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infow("Starting schema scan",
		"project", cfg.Store.Project,
		"sample_size", cfg.Sampling.SampleSize,
		"recurse", cfg.Sampling.Recurse,
		"max_depth", cfg.Sampling.MaxDepth,
	)

	client := newStoreClient(cfg)

	s, err := scanner.New(client, log, scanner.Options{
		Target:     cfg.Store.Project,
		SampleSize: cfg.Sampling.SampleSize,
		Collection: cfg.Sampling.Collection,
		Recurse:    cfg.Sampling.Recurse,
		MaxDepth:   cfg.Sampling.MaxDepth,
	})
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	snapshot, err := s.Run(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := schema.WriteFile(snapshot, cfg.Output.Path); err != nil {
		return err
	}

	printSummary(snapshot)
	fmt.Fprintln(outputWriter, color.Success.Sprintf("Schema report written to %s", cfg.Output.Path))

	return nil
}

// applyScanFlags overlays non-zero scan flag values onto the
// configuration, keeping CLI precedence over the file.
func applyScanFlags(cfg *config.Config) {
	if scanProject != "" {
		cfg.Store.Project = scanProject
	}
	if scanToken != "" {
		cfg.Store.Token = scanToken
	}
	if scanSampleSize > 0 {
		cfg.Sampling.SampleSize = scanSampleSize
	}
	if scanCollection != "" {
		cfg.Sampling.Collection = scanCollection
	}
	if scanRecurse {
		cfg.Sampling.Recurse = true
	}
	if scanMaxDepth > 0 {
		cfg.Sampling.MaxDepth = scanMaxDepth
	}
	if scanOutput != "" {
		cfg.Output.Path = scanOutput
	}
}

// newStoreClient builds the REST client from configuration.
func newStoreClient(cfg *config.Config) *store.Client {
	opts := []store.Option{store.WithDatabase(cfg.Store.Database)}
	if cfg.Store.BaseURL != "" {
		opts = append(opts, store.WithBaseURL(cfg.Store.BaseURL))
	}
	return store.New(cfg.Store.Project, cfg.Store.Token, opts...)
}

// printSummary renders an aligned table of visited collections.
func printSummary(snapshot *schema.Snapshot) {
	headers := []string{"COLLECTION", "FIELDS", "SAMPLED"}

	rows := make([][]string, 0, snapshot.Len())
	for el := snapshot.Collections.Front(); el != nil; el = el.Next() {
		rows = append(rows, []string{
			el.Key,
			fmt.Sprintf("%d", len(el.Value.Fields)),
			fmt.Sprintf("%d", el.Value.TotalSampled),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	fmt.Fprintln(outputWriter)
	printRow(headers, widths)
	for _, row := range rows {
		printRow(row, widths)
	}
	fmt.Fprintf(outputWriter, "\n%d collection(s) scanned\n", snapshot.Len())
}

func printRow(cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(outputWriter, "  ")
		}
		fmt.Fprint(outputWriter, runewidth.FillRight(cell, widths[i]))
	}
	fmt.Fprintln(outputWriter)
}
