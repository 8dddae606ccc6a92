package cmd

import (
	"fmt"

	"github.com/relflow/relflow/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewNextCmd creates the next command
func NewNextCmd(orch *orchestrator.ReleaseOrchestrator) *cobra.Command {
	return &cobra.Command{
		Use:   "next [kind]",
		Short: "Print the next version for a bump kind",
		Long: `Print the version the next release would get. The kind is major, minor
or patch and defaults to minor. With no releases yet the next version
is 0.0.0 regardless of kind.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := ""
			if len(args) == 1 {
				kind = args[0]
			}
			v, err := orch.Next(cmd.Context(), kind)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
