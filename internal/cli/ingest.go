package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry/internal/ingest"
)

var ingestRecursive bool

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>...",
	Short: "Ingest files or a folder tree",
	Long: `Ingest one or more files, or a whole folder tree, into the index.

A single directory argument submits a folder job: the tree is walked,
hidden entries and dependency caches are skipped, and supported files are
processed in concurrent batches. File arguments are read and submitted as
one file job.

Examples:
  quarry ingest notes.md paper.pdf
  quarry ingest ./docs --recursive`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestRecursive, "recursive", "r", true, "descend into subdirectories of a folder")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err == nil && info.IsDir() {
			snap, err := engine.SubmitFolder(ctx, submitter, args[0], ingestRecursive, nil)
			if err != nil {
				return err
			}
			printJob(snap)
			return nil
		}
	}

	items := make([]ingest.FileItem, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		items = append(items, ingest.FileItem{Name: filepath.Base(path), Data: data})
	}

	snap, err := engine.SubmitFiles(ctx, submitter, items, map[string]string{"origin": "cli"})
	if err != nil {
		return err
	}
	printJob(snap)
	return nil
}
