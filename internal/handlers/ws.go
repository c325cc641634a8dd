package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-pursuit/internal/mines"
	"github.com/vancomm/minesweeper-pursuit/internal/sessions"
)

func (g GameHandler) execute(
	ctx context.Context, id string, c mines.Command,
) (sessions.Snapshot, error) {
	switch c.Kind {
	case mines.CommandReveal:
		return g.sessions.Reveal(ctx, id, c.Position)
	case mines.CommandFlag:
		return g.sessions.Flag(ctx, id, c.Position)
	case mines.CommandForfeit:
		return g.sessions.Forfeit(ctx, id)
	default:
		return g.sessions.Get(id)
	}
}

// ConnectWS accepts newline separated commands over a websocket and
// answers every message with the game state after the last command.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := g.sessions.Get(id); err != nil {
		g.fail(w, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithField("game_session_id", id)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)

		var (
			reply    any
			snapshot sessions.Snapshot
		)
		for _, line := range strings.Split(text, "\n") {
			cmd, err := mines.ParseCommand(line)
			if err == nil {
				snapshot, err = g.execute(r.Context(), id, cmd)
			}
			if err != nil {
				reply = wrapError(err)
				break
			}
			reply = snapshot
			if snapshot.Status.Terminal() {
				break
			}
		}
		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("write")
			return
		}
	}
}
