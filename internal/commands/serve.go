package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stahnma/gh-repopanel/internal/server"
)

func (a *App) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the panel and project catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Serve(ctx, cmd.OutOrStdout(), addr)
		},
	}
	cmd.Flags().String("addr", a.Config.ListenAddr, "Address to listen on")
	return cmd
}

// Serve loads the initial handle and serves the HTTP API on addr until ctx is done.
func (a *App) Serve(ctx context.Context, w io.Writer, addr string) error {
	p, err := a.NewPanel(ctx, true)
	if err != nil {
		return err
	}
	handle := a.resolveHandle(nil)
	if err := p.Load(ctx, handle); err != nil {
		a.Logger.Warn("initial load failed", zap.String("handle", handle), zap.Error(err))
	}

	fmt.Fprintf(w, "Serving on %s\n", addr)
	return server.Run(ctx, addr, server.NewRouter(p, a.Catalog, a.Logger), a.Logger)
}
