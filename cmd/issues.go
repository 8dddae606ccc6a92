package cmd

import (
	"fmt"

	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewIssuesCmd creates the issues command
func NewIssuesCmd(orch *orchestrator.ReleaseOrchestrator) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "issues [point_a] [point_b]",
		Short: "Print the ticket ids referenced between two points",
		Long: `Print the ticket ids referenced by the commits between two points of
history, sorted and deduplicated, preceded by the resolved range.

Each point is a branch, a tag or a version. point_a defaults to the
develop branch and point_b to the current version. The special point_a
value "previous" addresses the release history instead: point_b is then
an offset, and the range covers the release that many positions behind
the latest one.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pointA, pointB string
			if len(args) > 0 {
				pointA = args[0]
			}
			if len(args) > 1 {
				pointB = args[1]
			}
			report, err := orch.Issues(cmd.Context(), pointA, pointB)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.String())
			if outPath != "" {
				return orch.WriteIssueReport(report, outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Also write the report to this file")
	return cmd
}
