package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate ingestion statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := engine.Statistics()
		fmt.Printf("Jobs: %d\n", stats.TotalJobs)
		for status, n := range stats.ByStatus {
			fmt.Printf("  %s: %d\n", status, n)
		}
		fmt.Println("By kind:")
		for kind, n := range stats.ByKind {
			fmt.Printf("  %s: %d\n", kind, n)
		}
		fmt.Printf("Items processed: %d\n", stats.ItemsProcessed)
		fmt.Printf("Items failed: %d\n", stats.ItemsFailed)
		fmt.Printf("Success rate: %.1f%%\n", stats.SuccessRate*100)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
