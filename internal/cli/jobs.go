package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry/internal/ingest"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs [job-id]",
	Short: "List or inspect ingestion jobs",
	Long: `List the submitter's ingestion jobs or inspect one job by ID.

Examples:
  quarry jobs           # List jobs, newest first
  quarry jobs a1b2c3    # Show details for job a1b2c3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJobs,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Cancel a pending or processing job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !engine.Cancel(args[0]) {
			return fmt.Errorf("job %s not found or already finished", args[0])
		}
		fmt.Printf("Job %s cancelled\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(cancelCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		snap, ok := engine.GetJob(args[0])
		if !ok {
			return fmt.Errorf("job not found: %s", args[0])
		}
		printJobDetail(snap)
		return nil
	}

	jobs := engine.ListJobs(submitter)
	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	fmt.Printf("%-18s %-20s %-20s %-10s %s\n", "ID", "KIND", "STATUS", "ITEMS", "STARTED")
	fmt.Println("--------------------------------------------------------------------------------")
	for _, job := range jobs {
		items := fmt.Sprintf("%d/%d", job.Processed, job.Total)
		fmt.Printf("%-18s %-20s %-20s %-10s %s\n",
			job.ID, job.Kind, job.Status, items, job.StartedAt.Format("15:04:05"))
	}
	return nil
}

// printJob renders the one-line summary shown after a submission.
func printJob(snap ingest.Snapshot) {
	fmt.Printf("Job %s: %s (%d processed, %d failed of %d)\n",
		snap.ID, snap.Status, snap.Processed, snap.Failed, snap.Total)
	for _, e := range snap.Errors {
		if e.Item != "" {
			fmt.Printf("  - %s: %s (%s)\n", e.Item, e.Message, e.Kind)
		} else {
			fmt.Printf("  - %s (%s)\n", e.Message, e.Kind)
		}
	}
}

func printJobDetail(snap ingest.Snapshot) {
	fmt.Printf("Job: %s\n", snap.ID)
	fmt.Printf("  Kind: %s\n", snap.Kind)
	fmt.Printf("  Submitter: %s\n", snap.Submitter)
	fmt.Printf("  Status: %s\n", snap.Status)
	fmt.Printf("  Items: %d total, %d processed, %d failed\n", snap.Total, snap.Processed, snap.Failed)
	fmt.Printf("  Started: %s\n", snap.StartedAt.Format(time.RFC3339))
	if !snap.EndedAt.IsZero() {
		fmt.Printf("  Ended: %s\n", snap.EndedAt.Format(time.RFC3339))
		fmt.Printf("  Duration: %s\n", snap.EndedAt.Sub(snap.StartedAt).Round(time.Millisecond))
	}
	for k, v := range snap.Metadata {
		fmt.Printf("  Meta %s: %s\n", k, v)
	}

	if len(snap.Results) > 0 {
		fmt.Printf("\nResults (%d):\n", len(snap.Results))
		for _, res := range snap.Results {
			if res.Status == "success" {
				fmt.Printf("  + %s -> %s (%d chunks)\n", res.ItemName, res.DocumentID, res.ChunkCount)
			} else {
				fmt.Printf("  x %s: %s\n", res.ItemName, res.Error)
			}
		}
	}
	if len(snap.Errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(snap.Errors))
		for _, e := range snap.Errors {
			if e.Item != "" {
				fmt.Printf("  - %s: %s (%s)\n", e.Item, e.Message, e.Kind)
			} else {
				fmt.Printf("  - %s (%s)\n", e.Message, e.Kind)
			}
		}
	}
}
