//go:build !js && !wasm

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/himanishpuri/GenreDNA/internal/config"
	"github.com/himanishpuri/GenreDNA/pkg/genredna"
	"github.com/himanishpuri/GenreDNA/pkg/genredna/catalog"
	"github.com/himanishpuri/GenreDNA/pkg/logger"
)

func main() {
	log := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	log.SetFormat(cfg.LogFormat)

	var cat genredna.Catalog = catalog.Default()
	if cfg.DBPath != "" {
		loaded, err := genredna.NewSQLiteCatalog(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to load catalog from %s: %v", cfg.DBPath, err)
		}
		cat = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := NewServer(cat, cfg, log)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
