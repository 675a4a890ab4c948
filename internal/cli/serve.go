package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/backend"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/middleware"
	"storefront/internal/navigation"
	"storefront/internal/pkg/jwt"
	"storefront/internal/pkg/logger"
	"storefront/internal/repository"
	"storefront/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.AppEnv)
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := database.Connect(cfg.DatabaseURL, log)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if migrateUp {
				if err := repository.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			nav, closeNav, err := openNavigation(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeNav()

			if cfg.IsProd() {
				gin.SetMode(gin.ReleaseMode)
			}

			engine, err := server.New(server.Deps{
				Log: log,
				Backend: backend.New(cfg.BackendAPIURL,
					backend.WithTimeout(cfg.BackendTimeout),
					backend.WithLogger(log),
				),
				Nav:         nav,
				Attempts:    repository.NewCheckoutAttemptRepository(db),
				Receipts:    jwt.New(cfg.ReceiptTokenSecret, cfg.ReceiptTokenTTL),
				Visitors:    middleware.NewVisitors(cfg.CookieHashKey, cfg.CookieBlockKey, cfg.CookieSecure),
				CORSOrigins: cfg.CORSAllowedOrigins,
				Health:      sqlDB.Ping,
			})
			if err != nil {
				return err
			}

			return run(ctx, log, &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           engine,
				ReadHeaderTimeout: 5 * time.Second,
			})
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	return cmd
}

// openNavigation picks redis when configured, otherwise the in-process store
// with a background sweeper.
func openNavigation(ctx context.Context, cfg *config.Config, log *zap.Logger) (navigation.Store, func(), error) {
	if cfg.RedisURL != "" {
		rs, err := navigation.NewRedisStoreFromURL(ctx, cfg.RedisURL, cfg.NavigationTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		log.Info("navigation store: redis")
		return rs, func() { _ = rs.Close() }, nil
	}

	ms := navigation.NewMemoryStore(cfg.NavigationTTL)
	go ms.Run(ctx, time.Minute)
	log.Info("navigation store: memory", zap.Duration("ttl", cfg.NavigationTTL))
	return ms, func() {}, nil
}

func run(ctx context.Context, log *zap.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
