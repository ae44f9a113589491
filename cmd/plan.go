package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperscout/paperscout/internal/agent"
	"github.com/paperscout/paperscout/internal/report"
)

var planCmd = &cobra.Command{
	Use:   "plan [query]",
	Short: "Run a multi-step research plan over the indexed papers",
	Long: `Run a sequence of research tasks against the indexed papers and print
each artifact. Known tasks: summarize, compare_methods, create_slide_outline.
Unrecognized task names are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringSlice("tasks", nil, "tasks to run, in order (default: all)")
	planCmd.Flags().String("html", "", "also write the results as an HTML report to this path")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	query := args[0]
	taskNames, _ := cmd.Flags().GetStringSlice("tasks")
	htmlPath, _ := cmd.Flags().GetString("html")

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	order := agent.AllTasks()
	if len(taskNames) > 0 {
		order = nil
		for _, name := range taskNames {
			task, err := agent.ParseTask(name)
			if err != nil {
				fmt.Printf("Skipping unknown task %q\n", name)
				continue
			}
			order = append(order, task)
		}
	}
	if len(order) == 0 {
		fmt.Println("No known tasks to run.")
		return nil
	}

	results, planErr := ag.Plan(cmd.Context(), query, order)

	for _, task := range order {
		text, ok := results[task.Key()]
		if !ok {
			continue
		}
		fmt.Printf("== %s ==\n\n%s\n\n", strings.ToUpper(task.String()), text)
	}

	if htmlPath != "" && len(results) > 0 {
		if err := report.WriteHTML(htmlPath, query, results, order); err != nil {
			return err
		}
		fmt.Printf("Wrote HTML report to %s\n", htmlPath)
	}

	if planErr != nil {
		return fmt.Errorf("some tasks failed: %w", planErr)
	}
	return nil
}
