package main

import (
	"context"
	"log"

	"diabex/internal"
	"diabex/internal/cleaning"
	"diabex/internal/config"
	"diabex/internal/dataset"
	"diabex/internal/session"
	"diabex/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level))

	// Load and clean the dataset once; every request reads this session
	policy := cleaning.NewPolicy(appConfig.Data.Sentinel, appConfig.Data.ImputeColumns...)
	s, err := session.New(context.Background(), dataset.NewLoader(logger), policy, appConfig.Data.File, logger)
	if err != nil {
		log.Fatalf("Failed to load dataset %s: %v", appConfig.Data.File, err)
	}

	server := ui.NewServer(s, ui.Config{
		GinMode:    appConfig.Server.GinMode,
		SampleRows: appConfig.Data.SampleRows,
	}, logger)

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
