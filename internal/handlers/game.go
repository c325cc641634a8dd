package handlers

import (
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pursuit/internal/config"
	"github.com/vancomm/minesweeper-pursuit/internal/middleware"
	"github.com/vancomm/minesweeper-pursuit/internal/mines"
	"github.com/vancomm/minesweeper-pursuit/internal/sessions"
)

type NewGameDTO struct {
	Mode       mines.Mode       `schema:"mode"`
	Difficulty mines.Difficulty `schema:"difficulty"`
	Name       string           `schema:"name"`
	Row        *int             `schema:"row"`
	Column     *int             `schema:"column"`
}

type PositionDTO struct {
	Row    int `schema:"row,required"`
	Column int `schema:"column,required"`
}

func (p PositionDTO) Position() mines.Position {
	return mines.Pos(p.Row, p.Column)
}

type GameHandler struct {
	log      logrus.FieldLogger
	sessions *sessions.Manager
	ws       *config.WebSocket
	decoder  *schema.Decoder
}

func NewGameHandler(
	log logrus.FieldLogger, sessions *sessions.Manager, ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		ws:       ws,
		decoder:  newDecoder(),
	}
}

func (g GameHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		g.log.WithError(err).Error("game request failed")
	}
	sendErrorOrLog(w, g.log, status, err)
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	values, err := params(r)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	var dto NewGameDTO
	if err := g.decoder.Decode(&dto, values); err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	username := dto.Name
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		username = claims.Username
	}

	snapshot, err := g.sessions.Create(dto.Mode, dto.Difficulty, username)
	if err != nil {
		g.fail(w, err)
		return
	}
	if dto.Row != nil && dto.Column != nil {
		snapshot, err = g.sessions.Reveal(r.Context(), snapshot.ID, mines.Pos(*dto.Row, *dto.Column))
		if err != nil {
			g.fail(w, err)
			return
		}
	}

	sendJSONOrLog(w, g.log, snapshot)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	snapshot, err := g.sessions.Get(r.PathValue("id"))
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.log, snapshot)
}

func (g GameHandler) position(w http.ResponseWriter, r *http.Request) (mines.Position, bool) {
	values, err := params(r)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return mines.Position{}, false
	}
	var dto PositionDTO
	if err := g.decoder.Decode(&dto, values); err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return mines.Position{}, false
	}
	return dto.Position(), true
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	p, ok := g.position(w, r)
	if !ok {
		return
	}
	snapshot, err := g.sessions.Reveal(r.Context(), r.PathValue("id"), p)
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.log, snapshot)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	p, ok := g.position(w, r)
	if !ok {
		return
	}
	snapshot, err := g.sessions.Flag(r.Context(), r.PathValue("id"), p)
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.log, snapshot)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	snapshot, err := g.sessions.Forfeit(r.Context(), r.PathValue("id"))
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.log, snapshot)
}
