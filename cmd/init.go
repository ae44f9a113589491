package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paperscout/paperscout/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a paperscout configuration interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			fmt.Printf("%s already exists; delete it first to re-run the wizard.\n", cfgFile)
			return nil
		}

		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
