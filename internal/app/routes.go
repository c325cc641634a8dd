package app

import (
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper-pursuit/internal/handlers"
	"github.com/vancomm/minesweeper-pursuit/internal/middleware"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.sessions, a.ws)
	auth := handlers.NewAuth(a.log, a.store, a.cookies)
	scores := handlers.NewHighscores(a.log, a.scores)

	prefix := a.cfg.BasePath + "/v1"
	handle := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		a.router.HandleFunc(method+" "+prefix+path, h)
	}

	handle("POST /game", game.NewGame)
	handle("GET /game/{id}", game.Fetch)
	handle("POST /game/{id}/reveal", game.Reveal)
	handle("POST /game/{id}/flag", game.Flag)
	handle("POST /game/{id}/forfeit", game.Forfeit)
	handle("GET /game/{id}/connect", game.ConnectWS)

	handle("GET /highscores", scores.List)

	handle("GET /status", auth.Status)
	handle("POST /register", auth.Register)
	handle("POST /login", auth.Login)
	handle("POST /logout", auth.Logout)
}

// Handler is the router wrapped in the middleware stack.
func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.log, a.cookies),
		middleware.Cors(a.cfg.AllowedOrigins...),
		middleware.Logging(a.log),
		middleware.Recover(a.log),
	)
}
