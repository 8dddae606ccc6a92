package cmd

import (
	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewPrepareCmd creates the prepare command
func NewPrepareCmd(orch *orchestrator.ReleaseOrchestrator) *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Sync master, develop and tags with the remote",
		Long: `Check out and pull the master and develop branches and fetch all tags,
leaving the repository on develop ready for a release.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return orch.Prepare(cmd.Context())
		},
	}
}
