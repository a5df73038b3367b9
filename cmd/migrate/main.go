package main

import (
	"fmt"
	"os"

	"github.com/SergioM098/Monitoring-proyect/internal/config"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/repository/postgres"
	"github.com/SergioM098/Monitoring-proyect/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	log.Info("migrations applied")
}
