package server

import (
	"fmt"
	"time"

	"github.com/missionparty/missionparty/internal/game"
)

// Persisted game documents. These are deliberately loose — optional fields
// are pointers, timestamps are strings, enums are plain strings — so that a
// stale or corrupted save parses as far as possible and the repair happens in
// one explicit coercion step instead of scattered nil checks.

const timeLayout = "2006-01-02T15:04:05.000Z"

type stateDoc struct {
	ID            string      `json:"id"`
	Players       []playerDoc `json:"players"`
	Configuration configDoc   `json:"configuration"`
	Status        string      `json:"status"`
	CreatedAt     string      `json:"createdAt"`
	UpdatedAt     string      `json:"updatedAt"`
	EndedAt       *string     `json:"endedAt,omitempty"`
	Winner        *playerDoc  `json:"winner,omitempty"`
}

type configDoc struct {
	MissionsPerPlayer *int   `json:"missionsPerPlayer"`
	DifficultyMode    string `json:"difficultyMode"`
	UniformDifficulty string `json:"uniformDifficulty,omitempty"`
}

type playerDoc struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Missions           []playerMissionDoc `json:"missions"`
	TotalPoints        int                `json:"totalPoints"`
	CompletedMissions  int                `json:"completedMissions"`
	TargetMissionCount int                `json:"targetMissionCount"`
}

type playerMissionDoc struct {
	Mission          missionDoc `json:"mission"`
	State            string     `json:"state"`
	AssignedAt       string     `json:"assignedAt"`
	CompletedAt      *string    `json:"completedAt,omitempty"`
	CompletionTimeMs *int64     `json:"completionTimeMs,omitempty"`
	PointsAwarded    int        `json:"pointsAwarded"`
}

type missionDoc struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Difficulty string `json:"difficulty"`
	Points     int    `json:"points"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

func docFromState(state game.GameState) stateDoc {
	doc := stateDoc{
		ID:            state.ID,
		Players:       make([]playerDoc, len(state.Players)),
		Configuration: docFromConfig(state.Configuration),
		Status:        string(state.Status),
		CreatedAt:     formatTime(state.CreatedAt),
		UpdatedAt:     formatTime(state.UpdatedAt),
		EndedAt:       formatTimePtr(state.EndedAt),
	}
	for i, p := range state.Players {
		doc.Players[i] = docFromPlayer(p)
	}
	if state.Winner != nil {
		w := docFromPlayer(*state.Winner)
		doc.Winner = &w
	}
	return doc
}

func docFromConfig(cfg game.GameConfiguration) configDoc {
	missions := cfg.MissionsPerPlayer
	return configDoc{
		MissionsPerPlayer: &missions,
		DifficultyMode:    string(cfg.DifficultyMode),
		UniformDifficulty: string(cfg.UniformDifficulty),
	}
}

func docFromPlayer(p game.Player) playerDoc {
	doc := playerDoc{
		ID:                 p.ID,
		Name:               p.Name,
		Missions:           make([]playerMissionDoc, len(p.Missions)),
		TotalPoints:        p.TotalPoints,
		CompletedMissions:  p.CompletedMissions,
		TargetMissionCount: p.TargetMissionCount,
	}
	for i, m := range p.Missions {
		doc.Missions[i] = playerMissionDoc{
			Mission: missionDoc{
				ID:         m.Mission.ID,
				Text:       m.Mission.Text,
				Difficulty: string(m.Mission.Difficulty),
				Points:     m.Mission.Points,
			},
			State:            string(m.State),
			AssignedAt:       formatTime(m.AssignedAt),
			CompletedAt:      formatTimePtr(m.CompletedAt),
			CompletionTimeMs: m.CompletionTimeMs,
			PointsAwarded:    m.PointsAwarded,
		}
	}
	return doc
}

// stateFromDoc coerces a persisted document into the domain model. It fails
// only on data that cannot be coerced at all (unparsable required timestamps);
// everything repairable is left to the sanitize pass that follows.
func stateFromDoc(doc stateDoc) (game.GameState, error) {
	createdAt, err := parseTime(doc.CreatedAt)
	if err != nil {
		return game.GameState{}, fmt.Errorf("createdAt: %w", err)
	}
	updatedAt, err := parseTime(doc.UpdatedAt)
	if err != nil {
		return game.GameState{}, fmt.Errorf("updatedAt: %w", err)
	}

	state := game.GameState{
		ID: doc.ID,
		Configuration: game.SanitizeConfiguration(game.ConfigurationInput{
			MissionsPerPlayer: doc.Configuration.MissionsPerPlayer,
			DifficultyMode:    doc.Configuration.DifficultyMode,
			UniformDifficulty: doc.Configuration.UniformDifficulty,
		}),
		Status:    game.GameStatus(doc.Status),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Players:   make([]game.Player, len(doc.Players)),
	}

	if doc.EndedAt != nil {
		endedAt, err := parseTime(*doc.EndedAt)
		if err != nil {
			return game.GameState{}, fmt.Errorf("endedAt: %w", err)
		}
		state.EndedAt = &endedAt
	}

	for i, p := range doc.Players {
		player, err := playerFromDoc(p)
		if err != nil {
			return game.GameState{}, fmt.Errorf("player %q: %w", p.Name, err)
		}
		state.Players[i] = player
	}

	if doc.Winner != nil {
		winner, err := playerFromDoc(*doc.Winner)
		if err != nil {
			return game.GameState{}, fmt.Errorf("winner: %w", err)
		}
		state.Winner = &winner
	}

	return state, nil
}

func playerFromDoc(doc playerDoc) (game.Player, error) {
	player := game.Player{
		ID:                 doc.ID,
		Name:               doc.Name,
		Missions:           make([]game.PlayerMission, len(doc.Missions)),
		TotalPoints:        doc.TotalPoints,
		CompletedMissions:  doc.CompletedMissions,
		TargetMissionCount: doc.TargetMissionCount,
	}
	for i, m := range doc.Missions {
		assignedAt, err := parseTime(m.AssignedAt)
		if err != nil {
			return game.Player{}, fmt.Errorf("mission %q assignedAt: %w", m.Mission.ID, err)
		}
		pm := game.PlayerMission{
			Mission: game.Mission{
				ID:         m.Mission.ID,
				Text:       m.Mission.Text,
				Difficulty: game.Difficulty(m.Mission.Difficulty),
				Points:     m.Mission.Points,
			},
			State:            game.MissionState(m.State),
			AssignedAt:       assignedAt,
			CompletionTimeMs: m.CompletionTimeMs,
			PointsAwarded:    m.PointsAwarded,
		}
		if m.CompletedAt != nil {
			completedAt, err := parseTime(*m.CompletedAt)
			if err != nil {
				return game.Player{}, fmt.Errorf("mission %q completedAt: %w", m.Mission.ID, err)
			}
			pm.CompletedAt = &completedAt
		}
		player.Missions[i] = pm
	}
	return player, nil
}
