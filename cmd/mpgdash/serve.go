package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mpgdash/adapters/csvdata"
	"mpgdash/app"
	"mpgdash/internal/config"
	"mpgdash/internal/store"
	"mpgdash/ui"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Long: `Serve starts the web dashboard.

Configuration comes from the environment (PORT, GIN_MODE, MPGDASH_DATASET,
MPGDASH_CATALOG, MPGDASH_STORE, METRICS_ENABLED), optionally via a .env
file. The dataset flags override the environment.`,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides PORT)")
	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err == nil {
		log.Printf("[Config] Loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Server.Port = port
	}

	dataPath, about, err := resolveDataset(cmd, cfg)
	if err != nil {
		return err
	}

	// A dataset that cannot be loaded is fatal at startup, not at
	// request time.
	loader := csvdata.NewLoader()
	if _, err := loader.Load(dataPath); err != nil {
		return err
	}

	storePath := cfg.Store.Path
	if storePath == "" {
		if storePath, err = store.DefaultPath(); err != nil {
			return err
		}
	}
	views, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer views.Close()

	gin.SetMode(cfg.Server.GinMode)
	dashboard := app.NewDashboard(loader, views, dataPath)
	dashboard.SetAbout(about)
	server := ui.NewServer(dashboard)
	if err := server.Initialize(cfg.Server.MetricsEnabled); err != nil {
		return err
	}
	return server.Start(":" + cfg.Server.Port)
}
