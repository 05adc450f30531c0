package server

import (
	"net/http"

	"github.com/missionparty/missionparty/internal/game"
)

// ConfigureRequest is the request body for PUT /api/game/config.
type ConfigureRequest struct {
	MissionsPerPlayer int    `json:"missionsPerPlayer"`
	DifficultyMode    string `json:"difficultyMode"`
	UniformDifficulty string `json:"uniformDifficulty,omitempty"`
}

func handleCreateGame(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := session.Dispatch(r.Context(), game.CreateGame{}, "game_created")
		writeJSON(w, http.StatusCreated, stateResponse(next))
	}
}

func handleConfigureGame(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfigureRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		cfg := game.GameConfiguration{
			MissionsPerPlayer: req.MissionsPerPlayer,
			DifficultyMode:    game.DifficultyMode(req.DifficultyMode),
			UniformDifficulty: game.Difficulty(req.UniformDifficulty),
		}
		if err := game.ValidateConfiguration(cfg); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		next := session.Dispatch(r.Context(), game.ConfigureGame{Configuration: cfg}, "game_configured")
		writeJSON(w, http.StatusOK, stateResponse(next))
	}
}

func handleEndGame(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := session.Dispatch(r.Context(), game.EndGame{}, "game_ended")
		writeJSON(w, http.StatusOK, stateResponse(next))
	}
}

func handleClearFinishedGame(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session.Current().Status != game.StatusFinished {
			writeError(w, http.StatusConflict, "only a finished game can be cleared")
			return
		}
		next := session.Dispatch(r.Context(), game.ClearFinishedGame{}, "game_cleared")
		writeJSON(w, http.StatusOK, stateResponse(next))
	}
}

func handleClearAllMissions(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := session.Dispatch(r.Context(), game.ClearAllMissions{}, "missions_cleared")
		writeJSON(w, http.StatusOK, stateResponse(next))
	}
}
