// Package barberbooking собирает и запускает основное HTTP-приложение.
package barberbooking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/barber-booking/internal/cache"
	"github.com/magabrotheeeer/barber-booking/internal/config"
	"github.com/magabrotheeeer/barber-booking/internal/lib/jwt"
	"github.com/magabrotheeeer/barber-booking/internal/migrations"
	"github.com/magabrotheeeer/barber-booking/internal/paymentprovider/paypal"
	authservice "github.com/magabrotheeeer/barber-booking/internal/services/auth"
	bookingservice "github.com/magabrotheeeer/barber-booking/internal/services/booking"
	paymentservice "github.com/magabrotheeeer/barber-booking/internal/services/payment"
	subservice "github.com/magabrotheeeer/barber-booking/internal/services/subscription"
	"github.com/magabrotheeeer/barber-booking/internal/storage"
	"github.com/magabrotheeeer/barber-booking/internal/storage/postgres"
	"github.com/magabrotheeeer/barber-booking/internal/storage/redisdoc"
)

// App представляет основное приложение с HTTP-сервером и его зависимостями.
type App struct {
	server *http.Server
	store  storage.Store
	logger *slog.Logger
}

// NewStore создает хранилище по выбранному в конфиге бэкенду. Для
// PostgreSQL дополнительно применяются миграции схемы.
func NewStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "postgres":
		db, err := postgres.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres storage: %w", err)
		}
		if err := migrations.Run(db.DB, "./migrations"); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return db, nil
	case "redis":
		db, err := redisdoc.New(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis storage: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

// New создает новый экземпляр основного приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := NewStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("failed to close storage", "error", closeErr)
		}
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.New(store, jwtMaker, cfg.RegistrationOpen)
	subscriptionService := subservice.New(store, cacheRedis, cfg.RenewalWindowDays, logger)
	providerClient := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalSecretKey, cfg.PayPalAPIURL)
	paymentService := paymentservice.New(providerClient, store, store, subscriptionService, logger)
	bookingService := bookingservice.New(store, store, store, cfg.RenewalWindowDays, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, store, authService, subscriptionService,
		paymentService, bookingService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		store:  store,
		logger: logger,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting http server", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close storage", "error", err)
	}

	return nil
}
