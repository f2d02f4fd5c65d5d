// Package migrator собирает и запускает одноразовый перегон данных
// между бэкендами хранилища.
package migrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/barber-booking/internal/config"
	migratorservice "github.com/magabrotheeeer/barber-booking/internal/services/migrator"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
	"github.com/magabrotheeeer/barber-booking/internal/storage/postgres"
	"github.com/magabrotheeeer/barber-booking/internal/storage/redisdoc"
)

// App представляет приложение мигратора данных.
type App struct {
	migratorService *migratorservice.Service
	src             storage.Store
	dst             storage.Store
	logger          *slog.Logger
}

func newStore(ctx context.Context, cfg *config.Config, backend string) (storage.Store, error) {
	switch backend {
	case "postgres":
		return postgres.New(cfg.StorageConnectionString)
	case "redis":
		return redisdoc.New(ctx, cfg.RedisConnection)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

// New создает новый экземпляр приложения мигратора.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.MigrateFrom == cfg.MigrateTo {
		return nil, fmt.Errorf("source and destination backends are the same: %s", cfg.MigrateFrom)
	}

	src, err := newStore(ctx, cfg, cfg.MigrateFrom)
	if err != nil {
		return nil, fmt.Errorf("failed to init source storage: %w", err)
	}

	dst, err := newStore(ctx, cfg, cfg.MigrateTo)
	if err != nil {
		if closeErr := src.Close(); closeErr != nil {
			logger.Error("failed to close source storage", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to init destination storage: %w", err)
	}

	migratorService := migratorservice.New(src, dst, logger)

	return &App{
		migratorService: migratorService,
		src:             src,
		dst:             dst,
		logger:          logger,
	}, nil
}

// Run выполняет перегон данных и завершается.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.src.Close(); err != nil {
			a.logger.Error("failed to close source storage", "error", err)
		}
		if err := a.dst.Close(); err != nil {
			a.logger.Error("failed to close destination storage", "error", err)
		}
	}()

	report, err := a.migratorService.Run(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	a.logger.Info("migration finished",
		slog.Int("accounts", report.Accounts),
		slog.Int("failed_barbers", len(report.FailedBarbers)))

	for _, uid := range report.FailedBarbers {
		a.logger.Warn("barber data was not migrated", slog.String("barber_uid", uid))
	}

	return nil
}
