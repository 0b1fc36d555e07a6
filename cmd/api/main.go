package main

import (
	"os"
	"path/filepath"

	"github.com/yigit/curso/internal/pkg/logger"
	"github.com/yigit/curso/internal/server"
)

func main() {
	configPath := filepath.Join("configs", "config.yaml")
	if path, ok := os.LookupEnv("CONFIG_PATH"); ok && path != "" {
		configPath = path
	}

	srv, err := server.NewServer(configPath)
	if err != nil {
		// The default logger from the logger package's init is still in place here
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
