package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper-pursuit/internal/config"
	"github.com/vancomm/minesweeper-pursuit/internal/middleware"
	"github.com/vancomm/minesweeper-pursuit/internal/repository"
)

type PlayerStore interface {
	CreatePlayer(ctx context.Context, username string, passwordHash []byte) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
}

type Auth struct {
	log     logrus.FieldLogger
	players PlayerStore
	cookies *config.Cookies
}

func NewAuth(log logrus.FieldLogger, players PlayerStore, cookies *config.Cookies) *Auth {
	return &Auth{
		log:     log,
		players: players,
		cookies: cookies,
	}
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

var (
	ErrBadAuthBody        = errors.New("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = errors.New("password too long")
	ErrBadCredentials     = errors.New("invalid username or password")
)

func (a Auth) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		a.cookies.Clear(w)
		sendJSONOrLog(w, a.log, Status{LoggedIn: false})
		return
	}
	a.log.Debug("refresh cookies")
	if !a.login(w, claims.PlayerId, claims.Username) {
		return
	}
	sendJSONOrLog(w, a.log, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}

func (a Auth) credentials(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseForm(); err != nil {
		sendErrorOrLog(w, a.log, http.StatusBadRequest, ErrBadAuthBody)
		return "", nil, false
	}
	username := r.PostFormValue("username")
	password := []byte(r.PostFormValue("password"))
	if username == "" || len(password) == 0 {
		sendErrorOrLog(w, a.log, http.StatusBadRequest, ErrBadAuthBody)
		return "", nil, false
	}
	if len(password) > 72 {
		sendErrorOrLog(w, a.log, http.StatusBadRequest, ErrBadPasswordTooLong)
		return "", nil, false
	}
	return username, password, true
}

// login signs a fresh token for the player and stores it in cookies.
func (a Auth) login(w http.ResponseWriter, playerId int64, username string) bool {
	j := a.cookies.JWT()
	token, err := j.Sign(config.NewPlayerClaims(playerId, username, j.Lifetime()))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to create a jwt token")
		return false
	}
	if err := a.cookies.Refresh(w, token); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to refresh cookies")
		return false
	}
	return true
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := a.credentials(w, r)
	if !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to hash password")
		return
	}

	player, err := a.players.CreatePlayer(r.Context(), username, hash)
	if errors.Is(err, repository.ErrUsernameTaken) {
		sendErrorOrLog(w, a.log, http.StatusConflict, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to insert player")
		return
	}

	if !a.login(w, player.PlayerId, player.Username) {
		return
	}
	sendJSONOrLog(w, a.log, PlayerInfo{player.PlayerId, player.Username})
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := a.credentials(w, r)
	if !ok {
		return
	}

	player, err := a.players.FetchPlayer(r.Context(), username)
	if errors.Is(err, repository.ErrNotFound) {
		sendErrorOrLog(w, a.log, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to fetch player")
		return
	}
	if err := bcrypt.CompareHashAndPassword(player.PasswordHash, password); err != nil {
		sendErrorOrLog(w, a.log, http.StatusUnauthorized, ErrBadCredentials)
		return
	}

	if !a.login(w, player.PlayerId, player.Username) {
		return
	}
	sendJSONOrLog(w, a.log, PlayerInfo{player.PlayerId, player.Username})
}

func (a Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
