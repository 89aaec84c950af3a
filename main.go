// main.go
package main

import (
	"fmt"
	"log"
	"os"

	"resto-client/cmd"
	"resto-client/internal/usecase"
	"resto-client/internal/wire"
	"resto-client/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Debug("Starting",
		zap.String("app", config.App.Name),
		zap.String("api", config.API.BaseURL),
	)

	// Wire all dependencies (session state is loaded inside)
	app := wire.Wiring(config, logger)

	if err := cmd.Run(app, os.Args[1:]); err != nil {
		// Mutation failures already reached the user as a notification.
		if !usecase.IsReported(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
