package game

import (
	"log/slog"
	"time"
)

// Action is the closed set of game mutations. Each variant carries its own
// payload; Reduce handles every variant exhaustively.
type Action interface {
	isAction()
}

// CreateGame discards the current state and starts a fresh one in setup.
type CreateGame struct{}

// ConfigureGame stores a validated configuration, re-stamps every player's
// mission target, and moves the game to configuring.
type ConfigureGame struct {
	Configuration GameConfiguration
}

// AddPlayer appends a player to the roster unless the name is already taken
// (case-insensitively).
type AddPlayer struct {
	Player Player
}

// RemovePlayer drops the player with the given id, silently if absent.
type RemovePlayer struct {
	PlayerID string
}

// AssignMission hands a caller-chosen mission to a player. In mixed mode a
// non-empty Difficulty overrides the mission's own; in uniform mode the
// configuration's uniform difficulty always wins.
type AssignMission struct {
	PlayerID string
	Mission  Mission
	// Difficulty is the per-assignment choice for mixed mode; empty means
	// use the mission as given.
	Difficulty Difficulty
}

// CompleteMission transitions an active mission to completed or caught,
// recording timing and points.
type CompleteMission struct {
	PlayerID  string
	MissionID string
	// Outcome must be completed or caught.
	Outcome     MissionState
	CompletedAt time.Time
}

// EndGame finishes the game manually, recording the winner if one can be
// determined.
type EndGame struct{}

// LoadGame adopts an externally supplied state after sanitizing every player.
type LoadGame struct {
	State GameState
}

// UpdateStatus applies a game-status transition if it is legal.
type UpdateStatus struct {
	Status GameStatus
}

// ClearFinishedGame resets a finished game back to a fresh setup state.
type ClearFinishedGame struct{}

// ClearAllMissions strips every player's missions and scoring, preserving the
// roster and configuration.
type ClearAllMissions struct{}

func (CreateGame) isAction()        {}
func (ConfigureGame) isAction()     {}
func (AddPlayer) isAction()         {}
func (RemovePlayer) isAction()      {}
func (AssignMission) isAction()     {}
func (CompleteMission) isAction()   {}
func (EndGame) isAction()           {}
func (LoadGame) isAction()          {}
func (UpdateStatus) isAction()      {}
func (ClearFinishedGame) isAction() {}
func (ClearAllMissions) isAction()  {}

// Reducer is the pure state transition function. No action returns an error
// or panics: illegal and no-op actions return the prior state unchanged, so
// every action is safe to dispatch blindly.
type Reducer struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewReducer builds a reducer. A nil clock falls back to time.Now and a nil
// logger discards diagnostics.
func NewReducer(now func() time.Time, logger *slog.Logger) *Reducer {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reducer{now: now, logger: logger}
}

// Reduce applies one action to the state and returns the next state. Every
// successful mutation stamps a fresh UpdatedAt.
func (r *Reducer) Reduce(state GameState, action Action) GameState {
	switch a := action.(type) {
	case CreateGame:
		return NewGameState(r.now)
	case ConfigureGame:
		return r.configure(state, a)
	case AddPlayer:
		return r.addPlayer(state, a)
	case RemovePlayer:
		return r.removePlayer(state, a)
	case AssignMission:
		return r.assignMission(state, a)
	case CompleteMission:
		return r.completeMission(state, a)
	case EndGame:
		return r.endGame(state)
	case LoadGame:
		return r.loadGame(state, a)
	case UpdateStatus:
		return r.updateStatus(state, a)
	case ClearFinishedGame:
		if state.Status != StatusFinished {
			return state
		}
		return NewGameState(r.now)
	case ClearAllMissions:
		return r.clearAllMissions(state)
	default:
		r.logger.Warn("unknown action ignored", "action", action)
		return state
	}
}

func (r *Reducer) configure(state GameState, a ConfigureGame) GameState {
	if err := ValidateConfiguration(a.Configuration); err != nil {
		r.logger.Warn("rejecting invalid configuration", "error", err)
		return state
	}

	next := state
	next.Configuration = a.Configuration
	// Players added before reconfiguration stay consistent with the new
	// missions-per-player value.
	next.Players = make([]Player, len(state.Players))
	for i, p := range state.Players {
		p.TargetMissionCount = a.Configuration.MissionsPerPlayer
		next.Players[i] = p
	}
	next.Status = StatusConfiguring
	next.UpdatedAt = r.now().UTC()
	return next
}

func (r *Reducer) addPlayer(state GameState, a AddPlayer) GameState {
	if HasPlayerNamed(state.Players, a.Player.Name) {
		r.logger.Warn("duplicate player name rejected", "name", a.Player.Name)
		return state
	}

	player := a.Player
	// The target is forced to the active configuration regardless of what
	// the caller supplied.
	player.TargetMissionCount = state.Configuration.MissionsPerPlayer
	if player.Missions == nil {
		player.Missions = []PlayerMission{}
	}

	next := state
	next.Players = append(append([]Player{}, state.Players...), player)
	next.UpdatedAt = r.now().UTC()
	return next
}

func (r *Reducer) removePlayer(state GameState, a RemovePlayer) GameState {
	idx := playerIndex(state.Players, a.PlayerID)
	if idx < 0 {
		return state
	}

	next := state
	next.Players = make([]Player, 0, len(state.Players)-1)
	next.Players = append(next.Players, state.Players[:idx]...)
	next.Players = append(next.Players, state.Players[idx+1:]...)
	next.UpdatedAt = r.now().UTC()
	return next
}

func (r *Reducer) assignMission(state GameState, a AssignMission) GameState {
	idx := playerIndex(state.Players, a.PlayerID)
	if idx < 0 {
		r.logger.Warn("assignment for unknown player ignored", "player_id", a.PlayerID)
		return state
	}
	player := state.Players[idx]
	if HasReachedMissionLimit(player) {
		// Hard cap: extra assignments are silently dropped. This is the
		// mechanism that prevents over-assignment.
		r.logger.Warn("player already at mission limit", "player", player.Name, "limit", player.TargetMissionCount)
		return state
	}

	mission := a.Mission
	switch {
	case state.Configuration.DifficultyMode == ModeUniform:
		mission = NewMission(a.Mission.ID, a.Mission.Text, state.Configuration.UniformDifficulty)
	case a.Difficulty != "":
		mission = NewMission(a.Mission.ID, a.Mission.Text, a.Difficulty)
	}

	now := r.now().UTC()
	assigned := PlayerMission{
		Mission:    mission,
		State:      MissionActive,
		AssignedAt: now,
	}
	player.Missions = append(append([]PlayerMission{}, player.Missions...), assigned)

	next := state
	next.Players = replacePlayer(state.Players, idx, player)
	if state.Status == StatusAssigning {
		// The first assignment moves the game forward on its own.
		next.Status = StatusInProgress
	}
	next.UpdatedAt = now
	return next
}

func (r *Reducer) completeMission(state GameState, a CompleteMission) GameState {
	idx := playerIndex(state.Players, a.PlayerID)
	if idx < 0 {
		r.logger.Warn("completion for unknown player ignored", "player_id", a.PlayerID)
		return state
	}
	player := state.Players[idx]

	missionIdx := -1
	for i, m := range player.Missions {
		if m.Mission.ID == a.MissionID {
			missionIdx = i
			break
		}
	}
	if missionIdx < 0 {
		r.logger.Warn("completion for unknown mission ignored", "mission_id", a.MissionID)
		return state
	}

	current := player.Missions[missionIdx]
	if !IsValidMissionTransition(current.State, a.Outcome) {
		r.logger.Warn("illegal mission transition ignored",
			"mission_id", a.MissionID, "from", current.State, "to", a.Outcome)
		return state
	}

	updated := current
	updated.State = a.Outcome
	completedAt := a.CompletedAt.UTC()
	updated.CompletedAt = &completedAt

	switch a.Outcome {
	case MissionCompleted:
		valid, corrected := ValidateTiming(current.AssignedAt, a.CompletedAt)
		if !valid {
			r.logger.Warn("completion timing out of range, using corrected value",
				"mission_id", a.MissionID, "corrected_ms", corrected)
		}
		updated.CompletionTimeMs = &corrected

		points := MissionScore(current.Mission.Difficulty, MissionCompleted)
		if !ValidateMissionPoints(current.Mission.Difficulty, points, MissionCompleted) {
			r.logger.Warn("computed points failed validation, awarding zero",
				"mission_id", a.MissionID, "points", points)
			points = 0
		}
		updated.PointsAwarded = points
	case MissionCaught:
		updated.PointsAwarded = 0
		updated.CompletionTimeMs = nil
	}

	missions := make([]PlayerMission, len(player.Missions))
	copy(missions, player.Missions)
	missions[missionIdx] = updated
	player.Missions = missions

	// Final consistency pass: recompute aggregates from the full list.
	player = SanitizePlayerScoring(player)

	next := state
	next.Players = replacePlayer(state.Players, idx, player)
	next.UpdatedAt = r.now().UTC()
	return next
}

func (r *Reducer) endGame(state GameState) GameState {
	next := state
	next.Status = StatusFinished
	// A nil winner still ends the game, just without a recorded one.
	next.Winner = DetermineWinner(state.Players)
	endedAt := r.now().UTC()
	next.EndedAt = &endedAt
	next.UpdatedAt = endedAt
	return next
}

func (r *Reducer) loadGame(state GameState, a LoadGame) GameState {
	if a.State.ID == "" {
		r.logger.Warn("refusing to load state without an id")
		return state
	}

	next := a.State
	next.Players = make([]Player, len(a.State.Players))
	for i, p := range a.State.Players {
		next.Players[i] = SanitizePlayerScoring(p)
	}
	next.UpdatedAt = r.now().UTC()
	return next
}

func (r *Reducer) updateStatus(state GameState, a UpdateStatus) GameState {
	if state.Status == a.Status {
		return state
	}
	if !IsValidGameStatusTransition(state.Status, a.Status) {
		r.logger.Warn("illegal status transition ignored", "from", state.Status, "to", a.Status)
		return state
	}

	next := state
	next.Status = a.Status
	next.UpdatedAt = r.now().UTC()
	return next
}

func (r *Reducer) clearAllMissions(state GameState) GameState {
	next := state
	next.Players = make([]Player, len(state.Players))
	for i, p := range state.Players {
		p.Missions = []PlayerMission{}
		p.TotalPoints = 0
		p.CompletedMissions = 0
		next.Players[i] = p
	}
	next.UpdatedAt = r.now().UTC()
	return next
}

func playerIndex(players []Player, id string) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func replacePlayer(players []Player, idx int, p Player) []Player {
	next := make([]Player, len(players))
	copy(next, players)
	next[idx] = p
	return next
}
