package server

import (
	"net/http"

	"github.com/missionparty/missionparty/internal/game"
)

// UpdateStatusRequest is the request body for PUT /api/game/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func handleStartGame(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := session.Current()
		if err := game.ValidateGameStart(current); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}

		next := session.Dispatch(r.Context(), game.UpdateStatus{Status: game.StatusAssigning}, "game_started")
		if next.Status != game.StatusAssigning {
			writeError(w, http.StatusConflict, "game cannot start from its current phase")
			return
		}
		writeJSON(w, http.StatusOK, stateResponse(next))
	}
}

func handleUpdateStatus(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateStatusRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		status := game.GameStatus(req.Status)
		if !status.IsValid() {
			writeError(w, http.StatusBadRequest, "unknown game status")
			return
		}

		current := session.Current()
		if !game.IsValidGameStatusTransition(current.Status, status) {
			writeError(w, http.StatusConflict, "illegal status transition")
			return
		}

		next := session.Dispatch(r.Context(), game.UpdateStatus{Status: status}, "status_changed")
		writeJSON(w, http.StatusOK, stateResponse(next))
	}
}
