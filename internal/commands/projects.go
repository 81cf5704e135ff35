package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-repopanel/internal/format"
	"github.com/stahnma/gh-repopanel/internal/projects"
)

func (a *App) newProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Filter, search and sort the project catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProjects(cmd)
		},
	}
	cmd.Flags().StringP("category", "c", projects.CategoryAll, "Only show projects in this category")
	cmd.Flags().StringP("search", "q", "", "Case-insensitive text search")
	cmd.Flags().StringP("sort", "s", projects.SortNewest, "Sort by "+strings.Join(projects.SortKeys, ", "))
	cmd.Flags().Bool("json", false, "Write JSON")
	return cmd
}

func (a *App) runProjects(cmd *cobra.Command) error {
	if a.Catalog == nil {
		return errors.New("no project catalog loaded")
	}
	category, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")
	sortKey, _ := cmd.Flags().GetString("sort")
	asJSON, _ := cmd.Flags().GetBool("json")
	w := cmd.OutOrStdout()

	found, err := a.Catalog.Find(projects.Query{Category: category, Search: search, Sort: sortKey})
	if err != nil {
		return err
	}
	if asJSON {
		return format.WriteJSON(w, found, a.Config.SlackMode)
	}
	if len(found) == 0 {
		fmt.Fprintln(w, "No projects match.")
		return nil
	}

	rows := make([][]string, 0, len(found))
	for _, p := range found {
		rows = append(rows, []string{p.Title, p.Category, p.Level, strconv.Itoa(p.Year), strings.Join(p.Tags, ", ")})
	}
	fmt.Fprintf(w, "Showing %d of %d projects.\n", len(found), a.Catalog.Len())
	format.WriteTable(w, []string{"Title", "Category", "Level", "Year", "Tags"}, rows, a.Config.SlackMode)
	return nil
}
