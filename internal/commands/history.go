package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-repopanel/internal/format"
)

const historyDateLayout = "Jan 2, 2006 15:04"

func (a *App) newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [handle]",
		Short: "Show recorded loads for a GitHub user (requires HISTORY_DB)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(cmd, args)
		},
	}
	cmd.Flags().IntP("limit", "n", 10, "Maximum number of snapshots to show (0 for all)")
	cmd.Flags().Bool("first-seen", false, "List repositories with the date they were first seen")
	cmd.Flags().Bool("json", false, "Write JSON")
	return cmd
}

func (a *App) runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	firstSeen, _ := cmd.Flags().GetBool("first-seen")
	asJSON, _ := cmd.Flags().GetBool("json")
	w := cmd.OutOrStdout()

	h, err := a.ensureHistory(ctx)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	if h == nil {
		return errors.New("HISTORY_DB must be set to record and show history")
	}
	handle := a.resolveHandle(args)

	if firstSeen {
		sightings, err := h.FirstSeen(ctx, handle)
		if err != nil {
			return err
		}
		if asJSON {
			return format.WriteJSON(w, sightings, a.Config.SlackMode)
		}
		if len(sightings) == 0 {
			fmt.Fprintf(w, "No history recorded for %s.\n", handle)
			return nil
		}
		rows := make([][]string, 0, len(sightings))
		for _, s := range sightings {
			rows = append(rows, []string{s.Name, s.FirstSeen.Format(historyDateLayout)})
		}
		fmt.Fprintf(w, "Repositories seen for %s: %d\n", handle, len(sightings))
		format.WriteTable(w, []string{"Repository", "First seen"}, rows, a.Config.SlackMode)
		return nil
	}

	snaps, err := h.Snapshots(ctx, handle, limit)
	if err != nil {
		return err
	}
	if asJSON {
		return format.WriteJSON(w, snaps, a.Config.SlackMode)
	}
	if len(snaps) == 0 {
		fmt.Fprintf(w, "No history recorded for %s.\n", handle)
		return nil
	}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{s.TakenAt.Format(historyDateLayout), strconv.Itoa(s.Total), s.ID})
	}
	fmt.Fprintf(w, "Loads recorded for %s: %d\n", handle, len(snaps))
	format.WriteTable(w, []string{"Taken", "Repositories", "ID"}, rows, a.Config.SlackMode)
	return nil
}
