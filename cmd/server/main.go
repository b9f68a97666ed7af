package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fpt-software/website-api/internal/bootstrap"
	"github.com/fpt-software/website-api/internal/config"
	"github.com/fpt-software/website-api/internal/router"
	"github.com/fpt-software/website-api/internal/shared/cache"
	"github.com/fpt-software/website-api/internal/shared/database"
	"github.com/fpt-software/website-api/internal/shared/logger"
	"github.com/fpt-software/website-api/internal/shared/upload"
	"github.com/fpt-software/website-api/internal/shared/validator"
	"github.com/fpt-software/website-api/internal/user"
)

func main() {
	// Parse command line flags
	env := parseFlags()

	// Load configuration
	cfg, err := config.Load(env)
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Setup(env, cfg.Log)
	slog.Info("server initializing", "env", env)

	// Run application
	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped", "env", env)
}

// parseFlags parses command line arguments
func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|prod)")
	flag.Parse()
	return *env
}

// run contains the main application logic
func run(cfg *config.Config) error {
	// Create root context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("close database failed", "error", err)
		}
	}()

	// Filter option cache
	appCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("connect cache: %w", err)
	}
	if closer, ok := appCache.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				slog.Error("close cache failed", "error", err)
			}
		}()
	}

	// Upload storage
	storage, err := upload.NewStorage(ctx, cfg.Upload)
	if err != nil {
		return fmt.Errorf("init upload storage: %w", err)
	}

	// Default accounts
	users := user.NewUserService(db.DB, user.NewUserRepository(), appCache)
	if err := user.SeedDefaultUsers(ctx, users, cfg.Seed); err != nil {
		return fmt.Errorf("seed default users: %w", err)
	}

	// Setup server
	srv, err := setupServer(cfg, router.Dependencies{DB: db, Cache: appCache, Storage: storage})
	if err != nil {
		return err
	}

	// Start server with graceful shutdown
	return startWithGracefulShutdown(ctx, srv, cfg.Server.GracefulTimeout)
}

// setupServer initializes and configures the HTTP server
func setupServer(cfg *config.Config, deps router.Dependencies) (*bootstrap.Server, error) {
	// Bootstrap server with common setup
	boot := bootstrap.NewBootstrap(cfg)
	ginEngine := boot.SetupEngine()

	// Register common validators
	if err := validator.RegisterAll(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	// Setup application-specific routes
	router.Setup(ginEngine, cfg, deps)

	slog.Info("server configured",
		"env", cfg.App.Env,
		"db_driver", cfg.Database.Driver,
		"cache", deps.Cache.Name(),
		"upload_driver", cfg.Upload.Driver,
	)

	return bootstrap.New(cfg, ginEngine), nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		serverErrors <- srv.Start()
	}()

	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either server error or interrupt signal
	select {
	case err := <-serverErrors:
		// Server failed to start or stopped unexpectedly
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil

	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		slog.Info("shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	}
}
