package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kanmind/internal/server"
	"kanmind/internal/service"
	"kanmind/internal/storage/sqlite"
	"kanmind/internal/util"
)

func main() {
	// Optional local overrides; a missing .env file is not an error.
	_ = godotenv.Load()

	addrFlag := flag.String("addr", util.EnvOrDefault("KANMIND_ADDR", ":8080"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("KANMIND_DB_PATH", "data/kanmind.db"), "Path to sqlite database file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("KanMind board backend starting")

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	if email := os.Getenv("KANMIND_ADMIN_EMAIL"); email != "" {
		password := os.Getenv("KANMIND_ADMIN_PASSWORD")
		if password == "" {
			logger.Error("KANMIND_ADMIN_EMAIL set without KANMIND_ADMIN_PASSWORD")
			os.Exit(1)
		}
		accounts := service.New(store, logger).Accounts
		if err := accounts.EnsureAdmin(context.Background(), email, password); err != nil {
			logger.Error("unable to bootstrap admin", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	srv := server.New(store, logger)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
