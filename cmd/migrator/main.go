package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pursuit/internal/config"
	"github.com/vancomm/minesweeper-pursuit/internal/database"
	"github.com/vancomm/minesweeper-pursuit/internal/logging"
)

var log = logrus.New()

func main() {
	configPath := flag.String("config", "", "config file path")
	down := flag.Bool("down", false, "roll back every migration instead")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		log.Fatal(err)
	}
	if err := logging.New(log, config.NewLog(), config.Development()); err != nil {
		log.Fatal(err)
	}

	db, err := config.NewDatabase()
	if err != nil {
		log.Fatal("failed to read db config: ", err)
	}

	if *down {
		migrator, err := database.NewMigrator(db.URL(), database.Migrations)
		if err != nil {
			log.Fatal(err)
		}
		if err := migrator.Down(); err != nil {
			log.Fatal("failed to roll back: ", err)
		}
		log.Info("rolled back all migrations")
		os.Exit(0)
	}

	migrator, err := database.Migrate(db.URL(), database.Migrations)
	if err != nil {
		log.Fatal(err)
	}
	version, dirty, err := migrator.Version()
	if err != nil {
		log.WithError(err).Error("failed to check migration version")
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
