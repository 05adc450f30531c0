package server

import (
	"net/http"

	"github.com/missionparty/missionparty/internal/catalog"
	"github.com/missionparty/missionparty/internal/game"
)

// CatalogMission is one catalog entry as served to clients.
type CatalogMission struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Difficulty string `json:"difficulty"`
	Points     int    `json:"points"`
}

// CatalogResponse is the response for GET /api/catalog/missions.
type CatalogResponse struct {
	Missions []CatalogMission `json:"missions"`
}

func handleCatalog(session *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var missions []game.Mission
		var err error

		if d := r.URL.Query().Get("difficulty"); d != "" {
			difficulty := game.Difficulty(d)
			if !difficulty.IsValid() {
				writeError(w, http.StatusBadRequest, "difficulty must be easy, medium or hard")
				return
			}
			var used map[string]bool
			if r.URL.Query().Get("excludeUsed") == "true" {
				used = usedMissionIDs(session.Current())
			}
			missions, err = catalog.ByDifficulty(difficulty, used)
		} else {
			missions, err = catalog.All()
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]CatalogMission, len(missions))
		for i, m := range missions {
			out[i] = CatalogMission{
				ID:         m.ID,
				Text:       m.Text,
				Difficulty: string(m.Difficulty),
				Points:     m.Points,
			}
		}
		writeJSON(w, http.StatusOK, CatalogResponse{Missions: out})
	}
}
