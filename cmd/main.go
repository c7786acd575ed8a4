package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/identity"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/postgres"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/rabbitmq"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/storage"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/catalog"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/settings"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/config"

	amqpAdapter "github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/amqp"
	httpAdapter "github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/http"
	identityApp "github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/identity"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "pos",
		Short:        "Burger shop point of sale and back office",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the yaml config file")

	var prefetch int
	api := &cobra.Command{
		Use:   "api",
		Short: "Serve the HTTP API and follow store events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runAPI(cmd.Context(), cfg, prefetch)
		},
	}
	api.Flags().IntVar(&prefetch, "prefetch", 10, "RabbitMQ prefetch count")

	subscriber := &cobra.Command{
		Use:   "notification-subscriber",
		Short: "Log every store event as it is published",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runNotificationSubscriber(cmd.Context(), cfg)
		},
	}

	root.AddCommand(api, subscriber)
	return root
}

func runAPI(parent context.Context, cfg *config.Config, prefetch int) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lgr := logger.New("pos-api", cfg.Log.Level)
	origin := uuid.NewString()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		lgr.Error("db_connection_failed", "Failed to connect to PostgreSQL", "startup", nil, err)
		return err
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		lgr.Error("rabbitmq_connection_failed", "Failed to connect to RabbitMQ", "startup", nil, err)
		return err
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	files, err := storage.Connect(ctx, cfg.Storage, cfg.HTTP.PublicURL)
	if err != nil {
		lgr.Error("storage_connection_failed", "Failed to connect to file storage", "startup", nil, err)
		return err
	}
	defer files.Close(context.Background())

	lgr.Info("storage_connected", "Connected to GridFS", "startup", map[string]interface{}{
		"database": cfg.Storage.Database,
		"bucket":   cfg.Storage.Bucket,
	})

	publisher := rabbitmq.NewPublisher(mqConn)
	consumer := rabbitmq.NewConsumer(mqConn, prefetch, lgr)

	catalogService := catalog.NewService(catalog.Repositories{
		Ingredients: postgres.NewIngredientRepository(db),
		Products:    postgres.NewProductRepository(db),
		Orders:      postgres.NewOrderRepository(db),
		Movements:   postgres.NewMovementRepository(db),
	}, files, publisher, lgr, origin)
	settingsService := settings.NewService(postgres.NewSettingsRepository(db), files, publisher, lgr, origin)
	identityService := identityApp.NewService(postgres.NewProfileRepository(db), publisher, lgr, identity.SignInURL(cfg.Auth), origin)

	// the API still starts with empty snapshots; the next event or mutation fills them
	if err := catalogService.Refresh(ctx); err != nil {
		lgr.Warn("initial_refresh_failed", "Catalog snapshot not loaded", "startup", nil, err)
	}
	if err := settingsService.Refresh(ctx); err != nil {
		lgr.Warn("initial_refresh_failed", "Settings not loaded", "startup", nil, err)
	}

	eventHandler := amqpAdapter.NewEventHandler(origin, catalogService, settingsService, identityService, lgr)
	authHandler := amqpAdapter.NewAuthHandler(identityService, lgr)

	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Catalog:  catalogService,
		Identity: identityService,
		Settings: settingsService,
		Storage:  files,
		Verifier: identity.NewVerifier(cfg.Auth.JWTSecret),
		Checks: map[string]httpAdapter.Pinger{
			"postgres": db,
			"gridfs":   files,
			"rabbitmq": httpAdapter.PingFunc(func(ctx context.Context) error {
				if mqConn.IsClosed() {
					return errors.New("connection closed")
				}
				return nil
			}),
		},
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		Logger:         lgr,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lgr.Info("service_started", fmt.Sprintf("POS API listening on %s", cfg.HTTP.Addr), "startup", map[string]interface{}{
			"addr":   cfg.HTTP.Addr,
			"origin": origin,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return ignoreCanceled(consumer.ConsumeStoreEvents(gctx, eventHandler.HandleStoreEvent))
	})

	g.Go(func() error {
		return ignoreCanceled(consumer.ConsumeAuthEvents(gctx, authHandler.HandleAuthEvent))
	})

	g.Go(func() error {
		<-gctx.Done()
		lgr.Info("shutdown_initiated", "Shutting down POS API", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		lgr.Error("service_stopped", "POS API stopped with error", "shutdown", nil, err)
		return err
	}

	lgr.Info("service_stopped", "POS API stopped", "shutdown", nil)
	return nil
}

func runNotificationSubscriber(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lgr := logger.New("notification-subscriber", cfg.Log.Level)

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		lgr.Error("rabbitmq_connection_failed", "Failed to connect to RabbitMQ", "startup", nil, err)
		return err
	}
	defer mqConn.Close()

	consumer := rabbitmq.NewConsumer(mqConn, 1, lgr)
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", nil)

	err = ignoreCanceled(consumer.ConsumeStoreEvents(ctx, notificationHandler.HandleNotification))

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
	return err
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
