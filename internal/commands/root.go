package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stahnma/gh-repopanel/internal/config"
	ghub "github.com/stahnma/gh-repopanel/internal/github"
	"github.com/stahnma/gh-repopanel/internal/history"
	"github.com/stahnma/gh-repopanel/internal/panel"
	"github.com/stahnma/gh-repopanel/internal/projects"
	"github.com/stahnma/gh-repopanel/internal/state"
)

// App holds shared application state.
type App struct {
	Config   config.Config
	State    *state.Store
	GHClient ghub.Client
	History  *history.Store
	Catalog  *projects.Catalog
	Logger   *zap.Logger
	GitSHA   string
	GitDirty string
}

// NewApp creates a new App from the given configuration.
func NewApp(cfg config.Config, catalog *projects.Catalog, logger *zap.Logger, gitSHA, gitDirty string) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	st, err := state.LoadFromFile(cfg.StateFile, logger)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	return &App{
		Config:   cfg,
		State:    st,
		Catalog:  catalog,
		Logger:   logger,
		GitSHA:   gitSHA,
		GitDirty: gitDirty,
	}, nil
}

// ensureClient creates the GitHub client if it doesn't exist. Without a
// token the public API is used anonymously.
func (a *App) ensureClient() error {
	if a.GHClient != nil {
		return nil
	}
	if a.Config.GitHubToken == "" {
		a.Logger.Debug("GITHUB_TOKEN not set, using anonymous API access")
	}
	client, err := ghub.NewClient(ghub.Options{
		Token:   a.Config.GitHubToken,
		BaseURL: a.Config.GitHubAPIURL,
		Timeout: a.Config.HTTPTimeout,
	})
	if err != nil {
		return err
	}
	a.GHClient = client
	return nil
}

// ensureHistory opens the history database when one is configured. It
// returns nil when history is disabled.
func (a *App) ensureHistory(ctx context.Context) (*history.Store, error) {
	if a.History != nil || a.Config.HistoryDB == "" {
		return a.History, nil
	}
	h, err := history.Open(ctx, a.Config.HistoryDB)
	if err != nil {
		return nil, err
	}
	a.History = h
	return h, nil
}

// NewPanel builds a panel backed by the GitHub client. When persist is true
// the panel records the last successfully loaded handle in the state store.
func (a *App) NewPanel(ctx context.Context, persist bool) (*panel.Panel, error) {
	if err := a.ensureClient(); err != nil {
		return nil, err
	}
	opts := []panel.Option{panel.WithLogger(a.Logger)}
	if persist && !a.Config.NoState {
		opts = append(opts, panel.WithPreferences(state.Preferences{Store: a.State}))
	}
	h, err := a.ensureHistory(ctx)
	if err != nil {
		return nil, err
	}
	if h != nil {
		opts = append(opts, panel.WithRecorder(h))
	}
	return panel.New(ghub.Fetcher{Client: a.GHClient}, opts...), nil
}

// resolveHandle picks the handle to load: an explicit argument, then the
// persisted last handle, then the configured default.
func (a *App) resolveHandle(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	if !a.Config.NoState {
		if last := (state.Preferences{Store: a.State}).LastHandle(); last != "" {
			return last
		}
	}
	if a.Config.DefaultHandle != "" {
		return a.Config.DefaultHandle
	}
	return config.DefaultHandle
}

// SaveState saves the preference store to disk unless state is disabled.
func (a *App) SaveState() error {
	if a.Config.NoState {
		return nil
	}
	return a.State.SaveToFile(a.Config.StateFile)
}

// Close releases the history database, if open.
func (a *App) Close() error {
	if a.History == nil {
		return nil
	}
	err := a.History.Close()
	a.History = nil
	return err
}

// NewRootCommand creates the root cobra command with all subcommands.
func (a *App) NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   os.Args[0],
		Short: "Browse a GitHub account's most recently updated repositories.",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().BoolVar(&a.Config.NoState, "no-state", a.Config.NoState, "Do not read or write persisted preferences")

	rootCmd.AddCommand(a.newReposCommand())
	rootCmd.AddCommand(a.newFacetsCommand())
	rootCmd.AddCommand(a.newStarsCommand())
	rootCmd.AddCommand(a.newExportCommand())
	rootCmd.AddCommand(a.newHistoryCommand())
	rootCmd.AddCommand(a.newProjectsCommand())
	rootCmd.AddCommand(a.newBrowseCommand())
	rootCmd.AddCommand(a.newServeCommand())
	rootCmd.AddCommand(a.newForgetCommand())
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}
