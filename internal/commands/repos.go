package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-repopanel/internal/format"
	"github.com/stahnma/gh-repopanel/internal/panel"
)

func (a *App) newReposCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos [handle]",
		Short: "List the most recently updated repositories of a GitHub user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRepos(cmd, args)
		},
	}
	cmd.Flags().StringP("language", "l", panel.FacetAll, `Only show repositories in this language ("Other" for none)`)
	cmd.Flags().StringP("sort", "s", panel.SortUpdated, "Sort by "+strings.Join(panel.SortKeys, ", "))
	cmd.Flags().Bool("json", false, "Write the panel view as JSON")
	return cmd
}

func (a *App) runRepos(cmd *cobra.Command, args []string) error {
	language, _ := cmd.Flags().GetString("language")
	sortKey, _ := cmd.Flags().GetString("sort")
	asJSON, _ := cmd.Flags().GetBool("json")
	w := cmd.OutOrStdout()

	view, err := a.loadView(cmd.Context(), a.resolveHandle(args), language, sortKey)
	if err != nil {
		return err
	}
	if asJSON {
		return format.WriteJSON(w, view, a.Config.SlackMode)
	}

	fmt.Fprintln(w, view.Status)
	if view.Empty {
		fmt.Fprintln(w, panel.EmptyIndicator)
		return nil
	}
	rows := make([][]string, 0, len(view.Cards))
	for _, c := range view.Cards {
		rows = append(rows, []string{c.Name, c.Language, strconv.Itoa(c.Stars), c.Updated, c.Visibility, c.Description})
	}
	format.WriteTable(w, []string{"Name", "Language", "Stars", "Updated", "Visibility", "Description"}, rows, a.Config.SlackMode)
	return nil
}

// loadView loads handle into a new panel and applies the language and sort selections.
func (a *App) loadView(ctx context.Context, handle, language, sortKey string) (panel.View, error) {
	if sortKey == "" {
		sortKey = panel.SortUpdated
	}
	if !panel.ValidSort(sortKey) {
		return panel.View{}, fmt.Errorf("%w %q (choose from %s)", panel.ErrUnknownSort, sortKey, strings.Join(panel.SortKeys, ", "))
	}

	p, err := a.NewPanel(ctx, true)
	if err != nil {
		return panel.View{}, err
	}
	if _, err := p.OnSortChange(sortKey); err != nil {
		return panel.View{}, err
	}
	if err := p.Load(ctx, handle); err != nil {
		return p.Render(), err
	}

	if language != "" && language != panel.FacetAll {
		if _, err := p.OnFacetChange(language); err != nil {
			return p.Render(), fmt.Errorf("%w %q (choose from %s)", panel.ErrUnknownFacet, language, strings.Join(p.Options(), ", "))
		}
	}
	return p.Render(), nil
}
