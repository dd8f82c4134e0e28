package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/config"
	"github.com/yeremiapane/tableservice-client/realtime"
	"github.com/yeremiapane/tableservice-client/router"
	"github.com/yeremiapane/tableservice-client/store"
	"github.com/yeremiapane/tableservice-client/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	creds, err := store.Open(cfg.StateDBPath)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open local state store: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	api := client.New(cfg.APIBaseURL, creds)

	listener := realtime.NewListener(cfg.WSURL, creds)
	listener.Start()
	defer listener.Close()

	ctrl := router.NewControllers(api, creds, listener)

	// The live panels start their refresh loops with the process and stop
	// with it; only logged-in staff deployments will have data to fetch,
	// so a failed initial fetch is logged and retried on the next event.
	ctx := context.Background()
	if err := ctrl.Activity.Refresher.Start(ctx); err != nil {
		utils.InfoLogger.Printf("activity panel initial fetch failed: %v", err)
	}
	defer ctrl.Activity.Refresher.Stop()
	if err := ctrl.Kitchen.Refresher.Start(ctx); err != nil {
		utils.InfoLogger.Printf("kitchen board initial fetch failed: %v", err)
	}
	defer ctrl.Kitchen.Refresher.Stop()

	r := router.SetupRouter(ctrl, creds)

	utils.InfoLogger.Printf("Serving on %s (backend %s)", cfg.ListenAddr, cfg.APIBaseURL)
	if err := r.Run(cfg.ListenAddr); err != nil {
		utils.ErrorLogger.Fatalf("Server stopped: %v", err)
	}
}
