package cmd

import (
	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewRevertCmd creates the revert command
func NewRevertCmd(orch *orchestrator.ReleaseOrchestrator) *cobra.Command {
	return &cobra.Command{
		Use:   "revert",
		Short: "Undo the most recent local release",
		Long: `Hard-reset master and develop to the remote heads and delete the local
release branch and tag of the most recent release, then re-sync.

This is destructive: any unpushed work on master or develop is lost. It
only undoes releases that were not sent yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return orch.Revert(cmd.Context())
		},
	}
}
