package cmd

import (
	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd(orch *orchestrator.ReleaseOrchestrator) *cobra.Command {
	var (
		deploySend   bool
		deployReport string
	)
	cmd := &cobra.Command{
		Use:   "deploy [kind|version]",
		Short: "Run the whole release cycle",
		Long: `Run prepare, print the issue report for the outgoing release, create the
release and, with --send, push it to the remote. The argument is a bump
kind or a literal version, as with create.

The report step is skipped for the first release of a repository.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			orch.SetOutput(cmd.OutOrStdout())
			return orch.Deploy(cmd.Context(), orchestrator.DeployOptions{
				Arg:        arg,
				Send:       deploySend,
				ReportPath: deployReport,
			})
		},
	}
	cmd.Flags().BoolVar(&deploySend, "send", false, "Push the release to the remote after creating it")
	cmd.Flags().StringVarP(&deployReport, "out", "o", "", "Also write the issue report to this file")
	return cmd
}
