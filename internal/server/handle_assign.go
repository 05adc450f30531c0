package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/missionparty/missionparty/internal/catalog"
	"github.com/missionparty/missionparty/internal/game"
)

// AssignMissionRequest is the request body for
// POST /api/game/players/{playerID}/missions. Difficulty is the per-player
// choice in mixed mode; uniform mode ignores it.
type AssignMissionRequest struct {
	Difficulty string `json:"difficulty,omitempty"`
}

// AssignMissionResponse returns the player after the assignment.
type AssignMissionResponse struct {
	Player playerDoc `json:"player"`
}

func handleAssignMission(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")

		var req AssignMissionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		current := session.Current()
		playerIdx := -1
		for i, p := range current.Players {
			if p.ID == playerID {
				playerIdx = i
				break
			}
		}
		if playerIdx < 0 {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		player := current.Players[playerIdx]
		if game.HasReachedMissionLimit(player) {
			writeError(w, http.StatusConflict, "player already has all their missions")
			return
		}

		// Mission selection is this layer's job: the reducer only records
		// what it is handed.
		var chosen game.Difficulty
		switch current.Configuration.DifficultyMode {
		case game.ModeUniform:
			chosen = current.Configuration.UniformDifficulty
		default:
			chosen = game.Difficulty(req.Difficulty)
			if !chosen.IsValid() {
				writeError(w, http.StatusBadRequest, "difficulty must be easy, medium or hard")
				return
			}
		}

		mission, ok, err := catalog.Pick(chosen, usedMissionIDs(current), nil)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !ok {
			writeError(w, http.StatusConflict, "no unused missions left for this difficulty")
			return
		}

		next := session.Dispatch(r.Context(), game.AssignMission{
			PlayerID:   playerID,
			Mission:    mission,
			Difficulty: chosen,
		}, "mission_assigned")

		updated := next.Players[playerIdx]
		if len(updated.Missions) == len(player.Missions) {
			writeError(w, http.StatusConflict, "mission could not be assigned")
			return
		}
		writeJSON(w, http.StatusCreated, AssignMissionResponse{Player: docFromPlayer(updated)})
	}
}

// usedMissionIDs collects every mission id already assigned in this game so
// repeated picks never hand out the same text twice.
func usedMissionIDs(state game.GameState) map[string]bool {
	used := make(map[string]bool)
	for _, p := range state.Players {
		for _, m := range p.Missions {
			used[m.Mission.ID] = true
		}
	}
	return used
}
