package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/missionparty/missionparty/internal/game"
)

// AddPlayerRequest is the request body for POST /api/game/players.
type AddPlayerRequest struct {
	Name string `json:"name"`
}

// PlayerResponse is returned after adding a player.
type PlayerResponse struct {
	Player playerDoc `json:"player"`
}

func handleAddPlayer(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddPlayerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		name := strings.TrimSpace(req.Name)
		if err := game.ValidatePlayerName(name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		current := session.Current()
		if game.HasPlayerNamed(current.Players, name) {
			writeError(w, http.StatusConflict, game.ErrDuplicatePlayer.Error())
			return
		}

		player := game.NewPlayer(newID(), name, current.Configuration.MissionsPerPlayer)
		next := session.Dispatch(r.Context(), game.AddPlayer{Player: player}, "player_added")

		// The reducer drops duplicates silently; a roster that did not grow
		// means another request won the race.
		if len(next.Players) == len(current.Players) {
			writeError(w, http.StatusConflict, game.ErrDuplicatePlayer.Error())
			return
		}
		writeJSON(w, http.StatusCreated, PlayerResponse{Player: docFromPlayer(next.Players[len(next.Players)-1])})
	}
}

func handleRemovePlayer(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")

		current := session.Current()
		next := session.Dispatch(r.Context(), game.RemovePlayer{PlayerID: playerID}, "player_removed")
		if len(next.Players) == len(current.Players) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		writeJSON(w, http.StatusOK, stateResponse(next))
	}
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
