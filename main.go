package main

import (
	"context"
	"log"
	"os"

	"numkit/adapters/api"
	"numkit/adapters/excel"
	"numkit/internal/config"
	"numkit/internal/container"
	"numkit/ui"

	"github.com/gin-gonic/gin"
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
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	ctx := context.Background()
	if err := appContainer.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := appContainer.Logger

	// Summarize the configured spreadsheet once at boot so it shows up in history
	if appConfig.Data.ExcelFile != "" {
		cfg := excel.DefaultExcelConfig()
		cfg.FilePath = appConfig.Data.ExcelFile
		cfg.Sheet = appConfig.Data.ExcelSheet

		columns, err := excel.NewDataReaderFromConfig(cfg).ReadColumns()
		if err != nil {
			logger.Warn("Skipping %s: %v", cfg.FilePath, err)
		} else if summaries, err := appContainer.Calculator.SummarizeColumns(ctx, columns); err != nil {
			logger.Warn("Could not summarize %s: %v", cfg.FilePath, err)
		} else {
			logger.Info("Summarized %d columns from %s", len(summaries), cfg.FilePath)
		}
	}

	docs, err := ui.NewApp()
	if err != nil {
		log.Fatalf("Failed to build docs: %v", err)
	}

	server := api.NewServer(appContainer.Calculator, docs.Handler(), logger)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		logger.Error("Server stopped: %v", err)
		appContainer.Shutdown(context.Background())
		os.Exit(1)
	}
}
