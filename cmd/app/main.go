package main

import (
	"Storybrush-Backend/cmd/config"
	"Storybrush-Backend/internal/utils"
	"context"
	"log"
	"os"
)

func main() {
	utils.LoadConfig()

	store, err := config.OpenStore()
	if err != nil {
		log.Fatalf("failed to open local store: %v", err)
	}

	app, storeSyncer, err := config.NewApp(store)
	if err != nil {
		log.Fatalf("failed to set up app: %v", err)
	}

	storeSyncer.Start(context.Background())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
