package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/KseniyaA/java-filmorate/internal/api"
	"github.com/KseniyaA/java-filmorate/internal/config"
	"github.com/KseniyaA/java-filmorate/internal/domain"
	"github.com/KseniyaA/java-filmorate/internal/service"
	"github.com/KseniyaA/java-filmorate/internal/store"
	"github.com/KseniyaA/java-filmorate/migrations"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	validate := domain.NewValidator()

	var (
		filmStore store.FilmStore
		userStore store.UserStore
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := connectToDB(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("failed to initialize database connection", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			logger.Info("closing PostgreSQL database connection")
			if err := db.Close(); err != nil {
				logger.Error("failed to close PostgreSQL connection", slog.String("error", err.Error()))
			}
		}()

		if err := runMigrations(db); err != nil {
			logger.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("database migrations applied")

		filmStore, err = store.NewPostgresFilmStore(db, logger, validate)
		if err != nil {
			logger.Error("failed to initialize PostgreSQL film store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		userStore, err = store.NewPostgresUserStore(db, logger, validate)
		if err != nil {
			logger.Error("failed to initialize PostgreSQL user store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("PostgreSQL stores initialized")
	case config.StorageMemory:
		filmStore = store.NewMemoryFilmStore(logger, validate)
		userStore = store.NewMemoryUserStore(logger, validate)
		logger.Info("in-memory stores initialized")
	}

	filmService := service.NewFilmService(filmStore, userStore, logger)
	userService := service.NewUserService(userStore, logger)

	router := api.NewRouter(
		api.NewFilmHandler(filmService, logger),
		api.NewUserHandler(userService, logger),
		logger,
	)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", slog.String("port", cfg.HTTPPort), slog.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
}

func connectToDB(dbURL string, logger *slog.Logger) (*sqlx.DB, error) {
	logger.Info("connecting to PostgreSQL database")
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	logger.Info("successfully connected to PostgreSQL database")
	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}
	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
