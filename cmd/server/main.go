package main

import (
	"log"
	"os"

	approuters "github.com/gauru07/fullstack-dating-app/internal/app_routers"
	"github.com/gauru07/fullstack-dating-app/internal/configuration"
)

func main() {
	configPath := os.Getenv("STREAMMATCH_CONFIG")
	if configPath == "" {
		configPath = "config.json"
	}

	container, err := configuration.BuildContainer(configPath)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	// Ensure cleanup on shutdown
	defer container.Close()

	// Setup routers
	approuters.StartServer(container)
}
