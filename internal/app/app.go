// Package app assembles the engine, the persistence stores, and the HTTP
// server from configuration.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/arkadito/clash-league/internal/config"
	"github.com/arkadito/clash-league/internal/infrastructure/archive"
	"github.com/arkadito/clash-league/internal/infrastructure/snapshot"
	"github.com/arkadito/clash-league/internal/interfaces/httpapi"
	"github.com/arkadito/clash-league/internal/platform/logging"
	"github.com/arkadito/clash-league/internal/usecase"
)

type App struct {
	Server    *http.Server
	Engine    *usecase.Engine
	Snapshots *snapshot.FileStore
	Archive   *archive.Store // nil when no archive database is configured
	logger    *logging.Logger
}

// New builds the application. When a snapshot file already exists the engine
// resumes from it instead of starting a fresh world.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	engine := usecase.NewEngine(usecase.Settings{
		TeamCount:    cfg.TeamCount,
		GamesPerTeam: cfg.GamesPerTeam,
		MaxTeamCost:  cfg.MaxTeamCost,
		Noise:        cfg.Noise,
		Seed:         cfg.RNGSeed,
	}, logger)

	snapshots := snapshot.NewFileStore(cfg.SnapshotPath, logger)
	if snapshots.Exists() {
		snap, err := snapshots.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load startup snapshot: %w", err)
		}
		if err := engine.RestoreSnapshot(snap); err != nil {
			return nil, fmt.Errorf("restore startup snapshot: %w", err)
		}
	}

	var archiveStore *archive.Store
	if cfg.ArchiveDBPath != "" {
		store, err := archive.Open(cfg.ArchiveDBPath, logger)
		if err != nil {
			return nil, fmt.Errorf("open archive database: %w", err)
		}
		archiveStore = store
	}

	handler := httpapi.NewHandler(engine, snapshots, archiveStore, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server:    server,
		Engine:    engine,
		Snapshots: snapshots,
		Archive:   archiveStore,
		logger:    logger,
	}, nil
}

// Shutdown saves a final snapshot and releases the stores.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.Snapshots.Save(ctx, a.Engine.Snapshot()); err != nil {
		return fmt.Errorf("save shutdown snapshot: %w", err)
	}
	if a.Archive != nil {
		if err := a.Archive.Close(); err != nil {
			return fmt.Errorf("close archive database: %w", err)
		}
	}
	return nil
}
