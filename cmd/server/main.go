package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/seisan-app/seisan/internal/auth"
	"github.com/seisan-app/seisan/internal/config"
	"github.com/seisan-app/seisan/internal/server"
	"github.com/seisan-app/seisan/internal/service"
	"github.com/seisan-app/seisan/internal/storage/sqlite"
	"github.com/seisan-app/seisan/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.SQLiteDBPath)

	srv := server.New(
		store,
		service.NewContentService(store),
		service.NewSettlementService(store),
		auth.NewPasswordAuthenticator(store),
		auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration),
	)

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
