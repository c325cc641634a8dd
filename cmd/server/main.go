package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pursuit/internal/app"
	"github.com/vancomm/minesweeper-pursuit/internal/config"
	"github.com/vancomm/minesweeper-pursuit/internal/logging"
	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	if err := config.Load(configPath); err != nil {
		log.Fatal(err)
	}
	if err := logging.New(log, config.NewLog(), config.Development()); err != nil {
		log.Fatal(err)
	}
	mines.Log = log

	cfg := config.NewApp()
	log.WithFields(logrus.Fields{
		"addr":        cfg.Addr,
		"base_path":   cfg.BasePath,
		"development": config.Development(),
	}).Info("starting up")

	storeCfg, err := config.NewStore()
	if err != nil {
		log.Fatal(err)
	}
	store, err := app.OpenStore(mainCtx, log, storeCfg)
	if err != nil {
		log.Fatal("unable to open store: ", err)
	}
	defer store.Close()

	j, err := config.NewJWT()
	if err != nil {
		log.Fatal("unable to read jwt config: ", err)
	}
	cookies, err := config.NewCookies(j)
	if err != nil {
		log.Fatal("unable to read cookies config: ", err)
	}

	if err := app.New(log, cfg, store, cookies).Run(mainCtx); err != nil {
		log.Error("exit reason: ", err)
	}
}
