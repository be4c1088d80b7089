package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry/internal/ingest"
)

var (
	repoBranch      string
	repoInclude     []string
	repoExclude     []string
	repoDocsOnly    bool
	repoExcludeCode bool
)

var repoCmd = &cobra.Command{
	Use:   "repo <owner/name>",
	Short: "Ingest a remote source-code repository",
	Long: `Analyze, fetch, and ingest a remote repository.

The repository is analyzed through the hosting provider's API first;
repositories over the configured size ceiling are rejected before any
transfer. A shallow clone is fetched into temporary storage, enumerated
with the given filters, ingested in batches, and the temporary copy is
removed.

Examples:
  quarry repo golang/go --docs-only
  quarry repo octo/project --branch develop --exclude "**/*_test.go"`,
	Args: cobra.ExactArgs(1),
	RunE: runRepo,
}

func init() {
	repoCmd.Flags().StringVarP(&repoBranch, "branch", "b", "", "branch to fetch (defaults to the repository default)")
	repoCmd.Flags().StringSliceVar(&repoInclude, "include", nil, "glob patterns to include (all files when empty)")
	repoCmd.Flags().StringSliceVar(&repoExclude, "exclude", nil, "glob patterns to exclude")
	repoCmd.Flags().BoolVar(&repoDocsOnly, "docs-only", false, "ingest only documentation files")
	repoCmd.Flags().BoolVar(&repoExcludeCode, "exclude-code", false, "skip source-code files")
	rootCmd.AddCommand(repoCmd)
}

func runRepo(cmd *cobra.Command, args []string) error {
	snap, err := engine.SubmitRepository(context.Background(), submitter, args[0], repoBranch, ingest.RepoOptions{
		Include:     repoInclude,
		Exclude:     repoExclude,
		DocsOnly:    repoDocsOnly,
		ExcludeCode: repoExcludeCode,
	}, nil)
	if err != nil {
		return err
	}
	printJob(snap)
	return nil
}
