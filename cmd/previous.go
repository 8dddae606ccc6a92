package cmd

import (
	"fmt"
	"strconv"

	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewPreviousCmd creates the previous command
func NewPreviousCmd(orch *orchestrator.ReleaseOrchestrator) *cobra.Command {
	return &cobra.Command{
		Use:   "previous [offset]",
		Short: "Print the version offset releases behind the latest",
		Long: `Print the version that sits offset positions behind the latest release.
The default offset is 1, the release before the current one. When the
history is not deep enough nothing is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset := 1
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid offset %q: expected a number", args[0])
				}
				offset = parsed
			}
			v, err := orch.Previous(cmd.Context(), offset)
			if err != nil {
				return err
			}
			if v != "" {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}
