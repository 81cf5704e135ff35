package commands

import (
	"github.com/spf13/cobra"

	"github.com/stahnma/gh-repopanel/internal/tui"
)

func (a *App) newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [handle]",
		Short: "Browse repositories interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.NewPanel(ctx, true)
			if err != nil {
				return err
			}
			return tui.Run(ctx, p, a.resolveHandle(args))
		},
	}
}
