package server

import (
	"net/http"
	"time"

	"github.com/missionparty/missionparty/internal/game"
)

// CompleteMissionRequest is the request body for
// POST /api/game/missions/complete.
type CompleteMissionRequest struct {
	PlayerID  string `json:"playerId"`
	MissionID string `json:"missionId"`
	Outcome   string `json:"outcome"`
}

func handleCompleteMission(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompleteMissionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		outcome := game.MissionState(req.Outcome)
		if outcome != game.MissionCompleted && outcome != game.MissionCaught {
			writeError(w, http.StatusBadRequest, "outcome must be completed or caught")
			return
		}

		current := session.Current()
		var mission *game.PlayerMission
		for _, p := range current.Players {
			if p.ID != req.PlayerID {
				continue
			}
			for i := range p.Missions {
				if p.Missions[i].Mission.ID == req.MissionID {
					mission = &p.Missions[i]
					break
				}
			}
			break
		}
		if mission == nil {
			writeError(w, http.StatusNotFound, "mission not found for player")
			return
		}
		if !game.IsValidMissionTransition(mission.State, outcome) {
			writeError(w, http.StatusConflict, "mission is not active")
			return
		}

		next := session.Dispatch(r.Context(), game.CompleteMission{
			PlayerID:    req.PlayerID,
			MissionID:   req.MissionID,
			Outcome:     outcome,
			CompletedAt: time.Now().UTC(),
		}, "mission_"+req.Outcome)
		writeJSON(w, http.StatusOK, stateResponse(next))
	}
}
