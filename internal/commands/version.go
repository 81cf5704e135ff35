package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the gh-repopanel build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sha := a.GitSHA
			if sha == "" {
				sha = "unknown"
			}
			if a.GitDirty != "" {
				sha += " (dirty)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gh-repopanel %s\n", sha)
			return nil
		},
	}
}
