package cmd

import (
	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewCreateCmd creates the create command
func NewCreateCmd(orch *orchestrator.ReleaseOrchestrator) *cobra.Command {
	return &cobra.Command{
		Use:   "create [kind|version]",
		Short: "Create a git-flow release for the next version",
		Long: `Start and finish a git-flow release. The argument is a bump kind (major,
minor or patch, default minor) resolved against the latest release, or a
literal version used as-is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return orch.Create(cmd.Context(), arg)
		},
	}
}
