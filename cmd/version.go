package cmd

import (
	"fmt"
	"strconv"

	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd(orch *orchestrator.ReleaseOrchestrator) *cobra.Command {
	return &cobra.Command{
		Use:   "version [amount]",
		Short: "Print released versions, newest first",
		Long: `Print up to amount released versions read from the repository tags,
newest first, one per line. The default amount is 1, so a bare "version"
prints the current version. Tags that are not semantic versions are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := 1
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid amount %q: expected a number", args[0])
				}
				amount = parsed
			}
			versions, err := orch.Versions(cmd.Context(), amount)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range versions {
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}
}
