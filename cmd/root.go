package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "paperscout",
	Short: "Research-paper retrieval, indexing, and summarization agent",
	Long: `Paperscout fetches academic papers from arXiv, indexes their
abstracts in a local vector database, and generates structured
summaries, method comparisons, and slide outlines over the retrieved
context using a language model.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".paperscout.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
