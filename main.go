// main.go
package main

import (
	"log"

	"filmes-api/cmd"
	"filmes-api/internal/data/repository"
	"filmes-api/internal/wire"
	"filmes-api/pkg/database"
	"filmes-api/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	// Pick the store driver
	var repos *repository.Repository
	switch config.Database.Driver {
	case utils.DriverMemory:
		repos = repository.NewMemoryRepository(logger)

	case utils.DriverGorm:
		gdb, err := database.InitGorm(config.Database, config.App.Debug)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if sqlDB, err := gdb.DB(); err == nil {
			defer sqlDB.Close()
		}
		repos = repository.NewGormRepository(gdb, logger)

	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		repos = repository.NewRepository(db, logger)
	}

	logger.Info("Store ready", zap.String("driver", config.Database.Driver))

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	if err := cmd.APIServer(app.Router, config, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
