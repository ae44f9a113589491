package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperscout/paperscout/internal/ingest"
	"github.com/paperscout/paperscout/internal/progress"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [query]",
	Short: "Fetch papers from arXiv and index their abstracts",
	Long: `Searches arXiv for papers matching the query (relevance-ranked),
indexes their abstracts in the local vector database, and records them
in the paper registry.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().Int("max", 0, "maximum number of papers to fetch (default from config)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	query := args[0]
	max, _ := cmd.Flags().GetInt("max")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if max <= 0 {
		max = cfg.MaxResults
	}

	logger := newLogger()
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return fmt.Errorf("opening paper registry: %w", err)
	}
	defer reg.Close()

	pipeline := ingest.NewPipeline(newCatalog(cfg), store, reg, progress.NewReporter(), logger)

	count, err := pipeline.IngestQuery(cmd.Context(), query, max)
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Printf("No papers matched %q.\n", query)
		return nil
	}

	fmt.Printf("Ingested %d papers for %q (index now holds %d chunks).\n", count, query, store.Count())
	return nil
}
