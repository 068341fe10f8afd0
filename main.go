package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"slidegen/cmd"
	"slidegen/internal/config"
	"slidegen/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Commands that do not need provider keys should still run, so fall
		// back to the default logger config and let RunE surface the error.
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	cmd.Execute()

	os.Exit(0)
}
