package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ordersync/backend/internal/infrastructure/config"
	"github.com/ordersync/backend/internal/infrastructure/logger"
	"github.com/ordersync/backend/internal/infrastructure/persistence"
)

// migrate applies the canonical schema and seeds the status vocabulary.
// Usage:
//
//	migrate [-log-level info] up    migrate schema and seed vocabulary
//	migrate [-log-level info] seed  seed vocabulary only
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(config.LogConfig{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	repos := db.Repositories(persistence.EngineOptions{}, log)

	switch command {
	case "up":
		if err := db.AutoMigrate(persistence.AllModels()...); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema migrated")
		if err := repos.SeedVocabulary(context.Background()); err != nil {
			log.Fatal("Seeding status vocabulary failed", zap.Error(err))
		}
		log.Info("Status vocabulary seeded")
	case "seed":
		if err := repos.SeedVocabulary(context.Background()); err != nil {
			log.Fatal("Seeding status vocabulary failed", zap.Error(err))
		}
		log.Info("Status vocabulary seeded")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up    migrate the schema and seed the status vocabulary")
	fmt.Println("  seed  seed the status vocabulary only")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
