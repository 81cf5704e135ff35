package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stahnma/gh-repopanel/internal/format"
	"github.com/stahnma/gh-repopanel/internal/panel"
)

// exportConcurrency bounds the number of listings fetched at once.
const exportConcurrency = 4

func (a *App) newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [handles...]",
		Short: "Export the panel views of one or more GitHub users as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ExportJSON(cmd.Context(), cmd.OutOrStdout(), a.ExportTargets(args))
		},
	}
}

// ExportTargets returns the handles to export: args when given, then the
// configured EXPORT_HANDLES, then the single handle a plain load would use.
func (a *App) ExportTargets(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if len(a.Config.ExportHandles) > 0 {
		return a.Config.ExportHandles
	}
	return []string{a.resolveHandle(nil)}
}

// ExportJSON loads every handle and writes the resulting views to w as a JSON array.
func (a *App) ExportJSON(ctx context.Context, w io.Writer, handles []string) error {
	views, err := a.ExportViews(ctx, handles)
	if err != nil {
		return err
	}
	return format.WriteJSON(w, views, a.Config.SlackMode)
}

// ExportViews loads each handle into its own panel concurrently and returns
// the views in the order of handles. A failed load is reported in its view's
// Error field and does not stop the others.
func (a *App) ExportViews(ctx context.Context, handles []string) ([]panel.View, error) {
	panels := make([]*panel.Panel, len(handles))
	for i := range handles {
		p, err := a.NewPanel(ctx, false)
		if err != nil {
			return nil, err
		}
		panels[i] = p
	}

	views := make([]panel.View, len(handles))
	var g errgroup.Group
	g.SetLimit(exportConcurrency)
	for i, handle := range handles {
		i, handle := i, handle
		g.Go(func() error {
			if err := panels[i].Load(ctx, handle); err != nil {
				a.Logger.Warn("export load failed", zap.String("handle", handle), zap.Error(err))
			}
			views[i] = panels[i].Render()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
