package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/cdimurro/trlgauge/internal/config"
	"github.com/cdimurro/trlgauge/internal/domaindata"
	"github.com/cdimurro/trlgauge/internal/logger"
	"github.com/cdimurro/trlgauge/internal/store"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

// cliActor is the audit actor recorded for operator-driven transitions that
// have no natural reviewer identity.
const cliActor = "cli"

// env bundles the pieces most commands need.
type env struct {
	cfg   *config.Config
	store *store.Store
	log   *logger.ConsoleLogger
}

// setup loads the config and opens the store. Callers must Close().
func setup() (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:   cfg,
		store: st,
		log:   logger.NewConsoleLogger(os.Stderr, cfg.LogLevel),
	}, nil
}

// Close releases the environment's resources.
func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// directory loads the reviewer directory from the data dir.
func (e *env) directory() (*domaindata.Directory, error) {
	return domaindata.LoadDirectory(filepath.Join(e.cfg.DataDir, "reviewers.yaml"))
}

// mutate loads a context, applies the transition, and saves the result.
func (e *env) mutate(assessmentID string, fn func(workflow.Context) (workflow.Context, error)) (workflow.Context, error) {
	ctx, err := e.store.Load(assessmentID)
	if err != nil {
		return workflow.Context{}, err
	}
	next, err := fn(ctx)
	if err != nil {
		return workflow.Context{}, err
	}
	saved, err := e.store.Save(next)
	if err != nil {
		return workflow.Context{}, err
	}
	return saved, nil
}

// printState reports an assessment's state after a transition.
func printState(ctx workflow.Context) {
	fmt.Printf("%s %s is now %s\n",
		color.GreenString("✓"), ctx.AssessmentID, color.CyanString(string(ctx.State)))
}
