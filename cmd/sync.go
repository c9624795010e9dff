package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/exportsync/internal/report"
	"github.com/fulmenhq/exportsync/internal/updater"
	"github.com/fulmenhq/exportsync/pkg/logger"
	"github.com/fulmenhq/exportsync/pkg/manifest"
)

func newSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Rewrite package.json exports from the build output",
		Long: `Sync locates the nearest package.json, discovers entries from the build
configuration or dist/, synthesizes the exports map and writes the manifest
back once.

Failures are logged and the command still exits 0 so a build pipeline is not
interrupted. Pass --strict to turn them into a non-zero exit code.`,
		Args: cobra.NoArgs,
		RunE: runSync,
	}
	addSyncFlags(cmd)
	return cmd
}

func addSyncFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Compute the manifest without writing it")
	cmd.Flags().Bool("diff", false, "Print a unified diff of package.json")
	cmd.Flags().Bool("strict", false, "Exit non-zero when the sync fails")
}

func runSync(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	showDiff, _ := cmd.Flags().GetBool("diff")
	strict, _ := cmd.Flags().GetBool("strict")
	noOp, _ := cmd.Flags().GetBool("no-op")

	opts := runOptions(cmd)
	opts.DryRun = dryRun || noOp

	res, err := updater.Run(cmd.Context(), opts)
	if err != nil {
		logger.Error(fmt.Sprintf("exports update failed: %v", err))
		if strict {
			return &exitError{code: exitCodeFor(err), err: err}
		}
		return nil
	}

	if showDiff {
		d, err := report.Diff(manifest.FileName, res.Before, res.After)
		if err != nil {
			return fmt.Errorf("diff %s: %w", manifest.FileName, err)
		}
		if d == "" {
			d = "no changes\n"
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), d)
	}
	return nil
}
