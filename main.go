package main

import (
	"log"

	"github.com/joho/godotenv"

	"tp53explorer/internal/config"
	"tp53explorer/ui"
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

	app, err := ui.NewApp(ui.Config{
		Port:                 appConfig.Server.Port,
		DataDir:              appConfig.Paths.DataDir,
		ImagesDir:            appConfig.Paths.ImagesDir,
		CompositionTolerance: appConfig.Data.CompositionTolerance,
	})
	if err != nil {
		log.Fatalf("Failed to create UI app: %v", err)
	}

	log.Printf("Starting TP53 Explorer on http://localhost:%s", appConfig.Server.Port)
	log.Fatal(app.Start(":" + appConfig.Server.Port))
}
