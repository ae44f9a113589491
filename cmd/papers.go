package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperscout/paperscout/internal/prompt"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "List the papers recorded by previous ingests",
	RunE:  runPapers,
}

func init() {
	papersCmd.Flags().Int("limit", 50, "maximum number of papers to list")
	rootCmd.AddCommand(papersCmd)
}

func runPapers(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	defer reg.Close()

	total, err := reg.Count(cmd.Context())
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Println("No papers recorded yet. Run `paperscout ingest` first.")
		return nil
	}

	entries, err := reg.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	fmt.Printf("%d papers recorded (showing %d):\n\n", total, len(entries))
	for _, e := range entries {
		fmt.Printf("  %s  %s\n", e.IngestedAt.Format("2006-01-02"), prompt.CleanTitle(e.Title))
		fmt.Printf("              %s\n", e.URL)
		if e.Query != "" {
			fmt.Printf("              ingested for %q\n", e.Query)
		}
		fmt.Println()
	}

	return nil
}
