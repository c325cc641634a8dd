package handlers

import (
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pursuit/internal/highscore"
	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

type HighscoreFilterDTO struct {
	Mode       *mines.Mode       `schema:"mode"`
	Difficulty *mines.Difficulty `schema:"difficulty"`
	Name       *string           `schema:"name"`
	Limit      int               `schema:"limit"`
}

type Highscores struct {
	log     logrus.FieldLogger
	scores  *highscore.Service
	decoder *schema.Decoder
}

func NewHighscores(log logrus.FieldLogger, scores *highscore.Service) *Highscores {
	return &Highscores{log: log, scores: scores, decoder: newDecoder()}
}

func (h Highscores) List(w http.ResponseWriter, r *http.Request) {
	var dto HighscoreFilterDTO
	if err := h.decoder.Decode(&dto, r.URL.Query()); err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	entries, err := h.scores.Query(r.Context(), highscore.Filter{
		Mode:       dto.Mode,
		Difficulty: dto.Difficulty,
		Name:       dto.Name,
		Limit:      dto.Limit,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch highscores")
		return
	}
	if entries == nil {
		entries = []highscore.Entry{}
	}
	sendJSONOrLog(w, h.log, entries)
}
