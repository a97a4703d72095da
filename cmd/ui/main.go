package main

import (
	"context"
	"log"

	"pricetable/internal/config"
	"pricetable/internal/container"
	"pricetable/ui"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatal("Failed to create container:", err)
	}
	c.Warm(context.Background())

	app, err := ui.NewApp(ui.Config{Port: cfg.Server.Port}, c.UIDependencies())
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting price table UI on http://localhost:%s/compact", cfg.Server.Port)
	log.Fatal(app.Start())
}
