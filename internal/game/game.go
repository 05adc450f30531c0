// Package game defines the core domain model, validation/sanitization layer,
// and state-machine reducer for the mission party game. It has zero external
// dependencies — everything here is pure Go.
package game

import (
	"fmt"
	"time"
)

// Difficulty grades a mission and determines its point value.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is a known difficulty.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// MissionState is the phase of one assigned mission.
type MissionState string

const (
	MissionWaiting   MissionState = "waiting"
	MissionActive    MissionState = "active"
	MissionCompleted MissionState = "completed"
	MissionCaught    MissionState = "caught"
)

// IsValid reports whether s is a known mission state.
func (s MissionState) IsValid() bool {
	switch s {
	case MissionWaiting, MissionActive, MissionCompleted, MissionCaught:
		return true
	}
	return false
}

// GameStatus is the coarse phase of the overall game.
type GameStatus string

const (
	StatusSetup       GameStatus = "setup"
	StatusConfiguring GameStatus = "configuring"
	StatusAssigning   GameStatus = "assigning"
	StatusInProgress  GameStatus = "in_progress"
	StatusFinished    GameStatus = "finished"
)

// IsValid reports whether s is a known game status.
func (s GameStatus) IsValid() bool {
	switch s {
	case StatusSetup, StatusConfiguring, StatusAssigning, StatusInProgress, StatusFinished:
		return true
	}
	return false
}

// DifficultyMode selects how mission difficulties are chosen.
type DifficultyMode string

const (
	// ModeUniform gives every mission the same game-wide difficulty.
	ModeUniform DifficultyMode = "uniform"
	// ModeMixed lets the difficulty be chosen per assignment.
	ModeMixed DifficultyMode = "mixed"
)

// IsValid reports whether m is a known difficulty mode.
func (m DifficultyMode) IsValid() bool {
	return m == ModeUniform || m == ModeMixed
}

// Mission is a task template with a difficulty and derived point value.
type Mission struct {
	ID         string
	Text       string
	Difficulty Difficulty
	Points     int
}

// NewMission builds a mission with its canonical point value.
func NewMission(id, text string, difficulty Difficulty) Mission {
	return Mission{
		ID:         id,
		Text:       text,
		Difficulty: difficulty,
		Points:     PointsForDifficulty(difficulty),
	}
}

// PlayerMission is one player's live instance of a mission, carrying its own
// timing, state, and awarded points.
type PlayerMission struct {
	Mission     Mission
	State       MissionState
	AssignedAt  time.Time
	CompletedAt *time.Time
	// CompletionTimeMs is set only when State is completed.
	CompletionTimeMs *int64
	// PointsAwarded equals the canonical points for the mission's difficulty
	// when State is completed, and is exactly 0 otherwise.
	PointsAwarded int
}

// Player is one roster entry with its assigned missions and derived scoring.
type Player struct {
	ID       string
	Name     string
	Missions []PlayerMission
	// TotalPoints and CompletedMissions are always recomputable from Missions;
	// persisted values that disagree are corruption to be repaired.
	TotalPoints       int
	CompletedMissions int
	// TargetMissionCount is synced to the active configuration whenever
	// it changes.
	TargetMissionCount int
}

// NewPlayer builds a roster entry with an empty mission list.
func NewPlayer(id, name string, targetMissionCount int) Player {
	return Player{
		ID:                 id,
		Name:               name,
		Missions:           []PlayerMission{},
		TargetMissionCount: targetMissionCount,
	}
}

// GameConfiguration holds the game-wide mission settings.
type GameConfiguration struct {
	// MissionsPerPlayer is 1–10.
	MissionsPerPlayer int
	DifficultyMode    DifficultyMode
	// UniformDifficulty is required when DifficultyMode is uniform and
	// ignored when mixed.
	UniformDifficulty Difficulty
}

const (
	MinMissionsPerPlayer = 1
	MaxMissionsPerPlayer = 10

	DefaultMissionsPerPlayer = 3
)

// DefaultConfiguration returns the configuration a fresh game starts with.
func DefaultConfiguration() GameConfiguration {
	return GameConfiguration{
		MissionsPerPlayer: DefaultMissionsPerPlayer,
		DifficultyMode:    ModeMixed,
	}
}

// GameState is the whole game. It mutates exclusively through the reducer;
// each action produces a new value and advances UpdatedAt.
type GameState struct {
	ID            string
	Players       []Player
	Configuration GameConfiguration
	Status        GameStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	// EndedAt and Winner are set only on manual end.
	EndedAt *time.Time
	Winner  *Player
}

// NewGameState creates a fresh game in setup with an empty roster and the
// default configuration. A nil clock falls back to time.Now.
func NewGameState(now func() time.Time) GameState {
	if now == nil {
		now = time.Now
	}
	createdAt := now().UTC()
	return GameState{
		ID:            fmt.Sprintf("game-%d", createdAt.UnixNano()),
		Players:       []Player{},
		Configuration: DefaultConfiguration(),
		Status:        StatusSetup,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}
