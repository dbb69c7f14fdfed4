package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bistro",
	Short: "restaurant recommendations from tabular data",
	Long: `bistro - restaurant recommendations from tabular data
  - filter by cuisine, budget and location
  - compare scoring strategies by re-ranking without re-querying`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(strategiesCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
