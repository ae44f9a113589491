package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [query]",
	Short: "Summarize the papers most relevant to a query",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().Int("k", 0, "number of papers to draw on (default from config)")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	query := args[0]
	k, _ := cmd.Flags().GetInt("k")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if k <= 0 {
		k = cfg.TopK
	}

	logger := newLogger()
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store.Count() == 0 {
		fmt.Println("The index is empty. Run `paperscout ingest` first.")
		return nil
	}

	ag, err := newAgent(cfg, store, logger)
	if err != nil {
		return err
	}

	summary, err := ag.Summarize(cmd.Context(), query, k)
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	fmt.Println(summary)
	return nil
}
