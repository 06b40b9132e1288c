package migrate

import (
	"context"
	"database/sql"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/config"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
)

// MaybeRunDev runs pending migrations on startup in development when
// MIS_AUTO_MIGRATE is enabled. Production deployments run cmd/migrate
// explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, log *logger.Logger, sqlDB *sql.DB) error {
	if cfg == nil || sqlDB == nil {
		return nil
	}
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	log.Info(log.WithField(ctx, "dir", DefaultDir), "running dev auto-migrations")

	if err := ValidateDir(DefaultDir); err != nil {
		return err
	}
	return Run(ctx, sqlDB, DefaultDir, "up")
}
