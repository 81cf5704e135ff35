package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-repopanel/internal/panel"
)

func (a *App) newFacetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "facets [handle]",
		Short: "List the language filters available for a GitHub user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadView(cmd.Context(), a.resolveHandle(args), panel.FacetAll, panel.SortUpdated)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, opt := range view.Options {
				fmt.Fprintln(w, opt)
			}
			return nil
		},
	}
}
