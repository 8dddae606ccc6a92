package cmd

import (
	"github.com/relflow/relflow/pkg/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "relflow",
	Short:        "A CLI tool for automating git-flow releases",
	Long:         `relflow drives the git-flow release cycle: it reads the release history from tags, computes the next version, extracts ticket ids from commit ranges and runs the prepare/create/send steps against the repository.`,
	Version:      version.Summary(),
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
