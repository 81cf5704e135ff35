package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/stahnma/gh-repopanel/internal/commands"
	"github.com/stahnma/gh-repopanel/internal/config"
	lambdapkg "github.com/stahnma/gh-repopanel/internal/lambda"
	"github.com/stahnma/gh-repopanel/internal/logging"
	"github.com/stahnma/gh-repopanel/internal/projects"
)

//go:embed projects.json
var projectsJSON []byte

var (
	GitSHA   string
	GitDirty string
)

func main() {
	cfg := config.FromEnvironment()

	logger, err := logging.New(cfg.DebugMode)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	catalog, err := projects.Parse(projectsJSON)
	if err != nil {
		logger.Fatal("Error parsing project catalog", zap.Error(err))
	}

	app, err := commands.NewApp(cfg, catalog, logger, GitSHA, GitDirty)
	if err != nil {
		logger.Fatal("Error initializing application", zap.Error(err))
	}
	defer app.Close() //nolint:errcheck

	if os.Getenv("LAMBDA_TASK_ROOT") != "" {
		awslambda.Start(lambdapkg.NewHandler(app))
		return
	}

	rootCmd := app.NewRootCommand()
	execErr := rootCmd.Execute()
	if err := app.SaveState(); err != nil {
		logger.Error("Error saving state", zap.Error(err))
	}
	if execErr != nil {
		fmt.Fprintln(os.Stderr, execErr)
		app.Close()   //nolint:errcheck
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
}
