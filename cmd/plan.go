package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/exportsync/internal/report"
	"github.com/fulmenhq/exportsync/internal/updater"
	"github.com/fulmenhq/exportsync/pkg/logger"
)

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the exports map a sync would write",
		Long: `Plan runs the same discovery and synthesis as sync without writing
package.json, and prints the selected strategy, the entries and every export
subpath with its conditions.`,
		Args: cobra.NoArgs,
		RunE: runPlan,
	}
	cmd.Flags().String("format", string(report.FormatText), "Output format (text|markdown|json)")
	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	opts := runOptions(cmd)
	opts.DryRun = true
	res, err := updater.Run(cmd.Context(), opts)
	if err != nil {
		logger.Error(fmt.Sprintf("exports plan failed: %v", err))
		return &exitError{code: exitCodeFor(err), err: err}
	}

	return report.Write(cmd.OutOrStdout(), format, report.Plan{
		Name:     res.PackageName,
		Strategy: res.Plan.Strategy.String(),
		DistDir:  res.DistDir,
		Entries:  res.Plan.Names(),
		Exports:  res.Exports,
		Changes:  res.Patch.Changes,
	})
}
