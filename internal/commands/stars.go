package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-repopanel/internal/panel"
)

func (a *App) newStarsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stars [handle]",
		Short: "Show the total star count of a GitHub user's recent repositories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStars(cmd, args)
		},
	}
}

func (a *App) runStars(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	view, err := a.loadView(cmd.Context(), a.resolveHandle(args), panel.FacetAll, panel.SortStars)
	if err != nil {
		return err
	}

	total := 0
	for _, c := range view.Cards {
		total += c.Stars
	}

	if a.Config.SlackMode {
		fmt.Fprintf(w, "The repositories of :star2: `%s` have %d stars :star2:.\n", view.Handle, total)
	} else {
		fmt.Fprintf(w, "The repositories of %s have %d stars\n", view.Handle, total)
	}
	if len(view.Cards) > 0 {
		top := view.Cards[0]
		fmt.Fprintf(w, "Most starred: %s (%d)\n", top.Name, top.Stars)
	}
	return nil
}
