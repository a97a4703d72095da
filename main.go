package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"pricetable/internal/config"
	"pricetable/internal/container"
	"pricetable/ui"

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
	gin.SetMode(appConfig.Server.GinMode)

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	// A missing or broken price table is reported on the page, not at startup
	warmCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	appContainer.Warm(warmCtx)
	cancel()

	// Initialize web server
	server := ui.NewServer(nil)
	if err := server.Initialize(appContainer.UIDependencies()); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}

	log.Printf("Starting price table server on port %s (table: %s)", appConfig.Server.Port, appConfig.Data.PriceTableFile)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
