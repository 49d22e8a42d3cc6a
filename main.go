// Package main boots the mpgdash web dashboard.
package main

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mpgdash/adapters/csvdata"
	"mpgdash/app"
	"mpgdash/internal/catalog"
	"mpgdash/internal/config"
	"mpgdash/internal/store"
	"mpgdash/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The catalog names the dataset to serve; without one the configured
	// file is used directly.
	dataPath := cfg.Data.DatasetFile
	var about catalog.Entry
	if file, cerr := catalog.LoadFile(cfg.Data.CatalogFile); cerr == nil {
		if entry, rerr := file.Resolve(""); rerr == nil {
			dataPath = entry.Path
			about = entry
		}
	} else if !errors.Is(cerr, catalog.ErrCatalogNotFound) {
		log.Fatalf("Failed to read dataset catalog %s: %v", cfg.Data.CatalogFile, cerr)
	}

	// The dataset must load at startup; a broken file is fatal here,
	// not at request time.
	loader := csvdata.NewLoader()
	if _, err := loader.Load(dataPath); err != nil {
		log.Fatalf("Failed to load dataset %s: %v", dataPath, err)
	}

	storePath := cfg.Store.Path
	if storePath == "" {
		if storePath, err = store.DefaultPath(); err != nil {
			log.Fatalf("Failed to resolve saved-view store path: %v", err)
		}
	}
	views, err := store.Open(storePath)
	if err != nil {
		log.Fatalf("Failed to open saved-view store %s: %v", storePath, err)
	}
	defer views.Close()

	gin.SetMode(cfg.Server.GinMode)
	dashboard := app.NewDashboard(loader, views, dataPath)
	dashboard.SetAbout(about)
	server := ui.NewServer(dashboard)
	if err := server.Initialize(cfg.Server.MetricsEnabled); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := server.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
