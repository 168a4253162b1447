package main

import (
	"log"

	"pincheck/adapters/excel"
	"pincheck/adapters/sheets"
	"pincheck/app"
	"pincheck/internal/config"
	"pincheck/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fetcher := sheets.NewFetcher(sheets.Source{
		URL:      appConfig.Source.URL,
		SheetID:  appConfig.Source.SheetID,
		SheetGID: appConfig.Source.SheetGID,
	}, appConfig.Fetch.Timeout)

	loader := app.NewLoaderService(fetcher)
	checker := app.NewCheckerService(loader, appConfig.Cache.TTL)
	coverage := app.NewCoverageService()
	snapshots := excel.NewSnapshotWriter()

	// JSON API on its own port so programmatic callers never touch the UI.
	api := ui.NewApp(ui.Config{Port: appConfig.Server.APIPort}, checker, coverage)
	go func() {
		if err := api.Start(); err != nil {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	// Initialize web server
	gin.SetMode(appConfig.Server.GinMode)
	server := ui.NewServer()
	if err := server.Initialize(checker, coverage, snapshots); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start the server
	log.Printf("🚀 Starting serviceability checker on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
