package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paperscout/paperscout/internal/prompt"
	"github.com/paperscout/paperscout/internal/vectordb"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantically search the ingested papers",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("k", 0, "number of results (default from config)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	k, _ := cmd.Flags().GetInt("k")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if k <= 0 {
		k = cfg.TopK
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	if store.Count() == 0 {
		fmt.Println("The index is empty. Run `paperscout ingest` first.")
		return nil
	}

	results, err := store.Search(cmd.Context(), query, k)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		return printResultsJSON(results)
	}
	printResultsTable(results)
	return nil
}

type searchResultJSON struct {
	Rank     int     `json:"rank"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Abstract string  `json:"abstract"`
	Score    float32 `json:"score"`
	SourceID string  `json:"source_id"`
}

func printResultsJSON(results []vectordb.Result) error {
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		out[i] = searchResultJSON{
			Rank:     i + 1,
			Title:    prompt.CleanTitle(r.Title),
			URL:      r.URL,
			Abstract: r.Abstract,
			Score:    r.Score,
			SourceID: r.SourceID,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printResultsTable(results []vectordb.Result) {
	fmt.Printf("Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("  %d. [%.4f] %s\n", i+1, r.Score, prompt.CleanTitle(r.Title))
		fmt.Printf("     %s\n", r.URL)
		fmt.Printf("     %s\n\n", prompt.TruncateDisplay(r.Abstract, 600))
	}
}
