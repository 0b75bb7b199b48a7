// Package app holds the start-up wiring shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/legion/internal/config"
	"github.com/baharkarakas/legion/internal/db"
	repo "github.com/baharkarakas/legion/internal/repository"
	"github.com/baharkarakas/legion/internal/repository/filestore"
	"github.com/baharkarakas/legion/internal/repository/postgres"
)

// OpenStore connects the backend selected by cfg.StoreDriver. For postgres,
// migrations run when cfg.Migrate or migrate is set. Close the store when done.
func OpenStore(ctx context.Context, cfg config.Config, migrate bool, log *slog.Logger) (repo.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreFile:
		s, err := filestore.Open(cfg.DataFile)
		if err != nil {
			return nil, fmt.Errorf("open data file: %w", err)
		}
		log.Info("store ready", "driver", cfg.StoreDriver, "path", cfg.DataFile)
		return s, nil

	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate || migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		log.Info("store ready", "driver", cfg.StoreDriver)
		return postgres.NewStore(pool), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
