package cmd

import (
	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewSendCmd creates the send command
func NewSendCmd(orch *orchestrator.ReleaseOrchestrator) *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Push the finished release to the remote",
		Long: `Push the develop and master branches and all tags to the remote, then
return to develop. When a GitHub token is configured a GitHub release is
published for the pushed tag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return orch.Send(cmd.Context())
		},
	}
}
