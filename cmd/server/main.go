package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	bountyboard "github.com/taskforge/bountyboard"
	"github.com/taskforge/bountyboard/internal/config"
	"github.com/taskforge/bountyboard/internal/handler"
	"github.com/taskforge/bountyboard/internal/repository"
	"github.com/taskforge/bountyboard/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	if !cfg.SkipMigrations {
		migrationsFS, err := fs.Sub(bountyboard.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// Initialize store and services
	store := repository.NewStore(pool)
	userService := service.NewUserService(store)
	walletService := service.NewWalletService(store, cfg)
	txService := service.NewTransactionService(store)
	checkinService := service.NewCheckinService(store, txService, config.DefaultRewards())
	exchangeService := service.NewExchangeService(store, txService, config.DefaultExchange())
	taskService := service.NewTaskService(store, txService)
	taskHoursService := service.NewTaskHoursService(store)

	h := handler.New(handler.Deps{
		Cfg:       cfg,
		Users:     userService,
		Wallets:   walletService,
		Txs:       txService,
		Checkin:   checkinService,
		Exchange:  exchangeService,
		Tasks:     taskService,
		TaskHours: taskHoursService,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h.Routes(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
		}
	}()

	slog.Info("starting server", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
