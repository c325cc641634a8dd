package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-pursuit/internal/config"
	"github.com/vancomm/minesweeper-pursuit/internal/database"
	"github.com/vancomm/minesweeper-pursuit/internal/handlers"
	"github.com/vancomm/minesweeper-pursuit/internal/highscore"
	"github.com/vancomm/minesweeper-pursuit/internal/repository"
	"github.com/vancomm/minesweeper-pursuit/internal/sessions"
)

// Store persists players and highscores.
type Store interface {
	handlers.PlayerStore
	highscore.Store
	Close() error
}

// OpenStore connects to the configured backend. Postgres is migrated to
// the latest schema before use.
func OpenStore(ctx context.Context, log logrus.FieldLogger, cfg *config.Store) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := config.NewDatabase()
		if err != nil {
			return nil, err
		}
		pool, err := database.ConnectAndMigrate(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		log.WithField("host", db.Host).Info("connected to postgres")
		return repository.NewPostgres(pool), nil
	case config.DriverSQLite:
		store, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("opened sqlite store")
		return store, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

type App struct {
	log      *logrus.Logger
	cfg      config.App
	router   *http.ServeMux
	store    Store
	sessions *sessions.Manager
	scores   *highscore.Service
	cookies  *config.Cookies
	ws       *config.WebSocket
}

func New(log *logrus.Logger, cfg config.App, store Store, cookies *config.Cookies) *App {
	scores := highscore.NewService(store, cfg.HighscoreLimit, log)
	a := &App{
		log:      log,
		cfg:      cfg,
		router:   http.NewServeMux(),
		store:    store,
		sessions: sessions.NewManager(scores, log),
		scores:   scores,
		cookies:  cookies,
		ws:       config.NewWebSocket(),
	}
	a.loadRoutes()
	return a
}

func (a *App) Sessions() *sessions.Manager {
	return a.sessions
}

// Run serves until ctx is done or the listener fails, then shuts the
// server down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:        a.cfg.Addr,
		Handler:     a.Handler(),
		ReadTimeout: time.Second * 15,
		IdleTimeout: time.Second * 60,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.cfg.Addr)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(sCtx)
	})
	if a.cfg.PruneInterval > 0 {
		g.Go(func() error {
			return a.sessions.RunPruner(gCtx, a.cfg.PruneInterval, a.cfg.KeepFinished)
		})
	}
	return g.Wait()
}
