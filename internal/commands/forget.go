package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newForgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Forget the remembered username and other preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.State.Flush()
			if err := a.State.SaveToFile(a.Config.StateFile); err != nil {
				return fmt.Errorf("saving state: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Preferences cleared.")
			return nil
		},
	}
}
