package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facultymetrics/dossier/internal/config"
	"github.com/facultymetrics/dossier/internal/infrastructure"
	"github.com/facultymetrics/dossier/internal/uploads"
)

var rootCmd = &cobra.Command{
	Use:   "dossier",
	Short: "Faculty dossier evaluation pipeline",
	Long: `Evaluates faculty evidence submissions: fetches dossier files,
classifies and scores them against the performance framework, and
projects rank promotion from accumulated KRA totals.`,
	SilenceUsage: true,
}

// app bundles the systems a database-backed command needs. Close
// releases them through the lifecycle coordinator.
type app struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	uploads uploads.System
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	system := uploads.New(infra.Database.Connection(), infra.Logger, cfg.Pagination)

	return &app{
		cfg:     cfg,
		infra:   infra,
		uploads: system,
	}, nil
}

func (a *app) Close() {
	if err := a.infra.Lifecycle.Shutdown(a.cfg.ShutdownTimeoutDuration()); err != nil {
		a.infra.Logger.Warn("shutdown incomplete", "error", err)
	}
}
