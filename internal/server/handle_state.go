package server

import (
	"net/http"

	"github.com/missionparty/missionparty/internal/game"
)

// GameStateResponse is the full game view: the state itself plus the live
// leaderboard and whether the game is endable.
type GameStateResponse struct {
	Game     stateDoc    `json:"game"`
	Rankings []playerDoc `json:"rankings"`
	CanEnd   bool        `json:"canEnd"`
}

func stateResponse(state game.GameState) GameStateResponse {
	ranked := game.RankPlayers(state.Players)
	rankings := make([]playerDoc, len(ranked))
	for i, p := range ranked {
		rankings[i] = docFromPlayer(p)
	}
	return GameStateResponse{
		Game:     docFromState(state),
		Rankings: rankings,
		CanEnd:   game.CanGameEnd(state.Players),
	}
}

func handleGameState(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stateResponse(session.Current()))
	}
}
