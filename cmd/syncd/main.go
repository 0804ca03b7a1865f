package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"soloquest/internal/storage"
	"soloquest/internal/syncserver"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	addr := os.Getenv("SOLOQUEST_SYNCD_ADDR")
	if addr == "" {
		addr = ":8787"
	}

	dbPath := os.Getenv("SOLOQUEST_SYNCD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Error("get home dir", "err", err)
			os.Exit(1)
		}
		dbPath = filepath.Join(home, ".soloquest-syncd.db")
	}

	ctx := context.Background()
	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := syncserver.NewServer(storage.NewDocumentRepo(db), logger)
	if err := srv.Run(addr); err != nil {
		logger.Error("syncd stopped", "err", err)
		os.Exit(1)
	}
}
