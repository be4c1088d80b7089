package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry/internal/bibsource"
)

var sourcesName string

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Ingest or check structured bibliographic sources",
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Parse a structured-source file and ingest every block",
	Long: `Parse a file of structured bibliographic source blocks and ingest
each parsed record.

Blocks start with a "Source N:" (or "Fonte N:") line followed by labeled
fields; English and Portuguese labels are both understood. Missing fields
default to "not available" rather than being dropped.

Examples:
  quarry sources add reading-list.txt
  quarry sources add refs.txt --name thesis-bibliography`,
	Args: cobra.ExactArgs(1),
	RunE: runSourcesAdd,
}

var sourcesCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate structured-source formatting without ingesting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesCheck,
}

func init() {
	sourcesAddCmd.Flags().StringVarP(&sourcesName, "name", "n", "", "logical name for this source collection")
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesCheckCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	name := sourcesName
	if name == "" {
		name = args[0]
	}

	snap, err := engine.SubmitSources(context.Background(), submitter, string(data), name, nil)
	if err != nil {
		return err
	}
	printJob(snap)
	return nil
}

func runSourcesCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	report := bibsource.ValidateFormat(string(data))
	fmt.Printf("Blocks found: %d\n", report.Count)
	if len(report.Errors) > 0 {
		fmt.Printf("Errors (%d):\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", len(report.Warnings))
		for _, w := range report.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	if report.Valid {
		fmt.Println("Format OK")
		return nil
	}
	return fmt.Errorf("format check failed")
}
