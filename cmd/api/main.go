package main

import (
	"log"

	"pincheck/adapters/sheets"
	"pincheck/app"
	"pincheck/internal/config"
	"pincheck/ui"

	"github.com/joho/godotenv"
)

// Standalone JSON API server, for deployments that do not want the web UI.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fetcher := sheets.NewFetcher(sheets.Source{
		URL:      appConfig.Source.URL,
		SheetID:  appConfig.Source.SheetID,
		SheetGID: appConfig.Source.SheetGID,
	}, appConfig.Fetch.Timeout)

	checker := app.NewCheckerService(app.NewLoaderService(fetcher), appConfig.Cache.TTL)

	api := ui.NewApp(ui.Config{Port: appConfig.Server.APIPort}, checker, app.NewCoverageService())
	log.Fatal(api.Start())
}
