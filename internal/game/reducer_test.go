package game

import (
	"reflect"
	"testing"
	"time"
)

// stepClock returns a clock that advances one second per call, so every
// reducer stamp in a test is distinct and deterministic.
func stepClock() func() time.Time {
	current := testClock()
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func newTestReducer() *Reducer {
	return NewReducer(stepClock(), nil)
}

func rosterState(t *testing.T, r *Reducer, cfg GameConfiguration, names ...string) GameState {
	t.Helper()
	state := r.Reduce(NewGameState(testClock), ConfigureGame{Configuration: cfg})
	for i, name := range names {
		state = r.Reduce(state, AddPlayer{Player: NewPlayer(
			"p"+string(rune('1'+i)), name, 99)})
	}
	return state
}

func TestCreateGame(t *testing.T) {
	r := newTestReducer()
	state := r.Reduce(GameState{Status: StatusInProgress}, CreateGame{})

	if state.Status != StatusSetup {
		t.Errorf("status = %q, want setup", state.Status)
	}
	if len(state.Players) != 0 {
		t.Errorf("roster = %d players, want 0", len(state.Players))
	}
	if state.Configuration != DefaultConfiguration() {
		t.Errorf("configuration = %+v, want default", state.Configuration)
	}
	if state.ID == "" || state.CreatedAt.IsZero() {
		t.Error("fresh state must have an id and timestamps")
	}
}

func TestConfigureGame(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed}, "Alice")

	cfg := GameConfiguration{MissionsPerPlayer: 5, DifficultyMode: ModeUniform, UniformDifficulty: DifficultyEasy}
	next := r.Reduce(state, ConfigureGame{Configuration: cfg})

	if next.Configuration != cfg {
		t.Errorf("configuration = %+v, want %+v", next.Configuration, cfg)
	}
	if next.Status != StatusConfiguring {
		t.Errorf("status = %q, want configuring", next.Status)
	}
	if next.Players[0].TargetMissionCount != 5 {
		t.Errorf("existing player target = %d, want restamped to 5", next.Players[0].TargetMissionCount)
	}
	if !next.UpdatedAt.After(state.UpdatedAt) {
		t.Error("updatedAt should advance on configuration")
	}
}

func TestConfigureGameRejectsInvalid(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed})

	next := r.Reduce(state, ConfigureGame{Configuration: GameConfiguration{
		MissionsPerPlayer: 11, DifficultyMode: ModeMixed,
	}})
	if !reflect.DeepEqual(next, state) {
		t.Fatal("invalid configuration must leave the state unchanged")
	}
}

func TestAddPlayerForcesTarget(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 4, DifficultyMode: ModeMixed})

	next := r.Reduce(state, AddPlayer{Player: NewPlayer("p1", "Alice", 99)})
	if len(next.Players) != 1 {
		t.Fatalf("roster = %d, want 1", len(next.Players))
	}
	if next.Players[0].TargetMissionCount != 4 {
		t.Errorf("target = %d, want forced to 4", next.Players[0].TargetMissionCount)
	}
}

func TestAddPlayerDuplicateNameIsNoOp(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed}, "Alice")

	next := r.Reduce(state, AddPlayer{Player: NewPlayer("p9", "  aLiCe ", 3)})
	if len(next.Players) != 1 {
		t.Fatalf("case-variant duplicate grew the roster to %d", len(next.Players))
	}
	if !reflect.DeepEqual(next, state) {
		t.Fatal("duplicate add must leave the state unchanged")
	}
}

func TestRemovePlayer(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed}, "Alice", "Bob")

	next := r.Reduce(state, RemovePlayer{PlayerID: "p1"})
	if len(next.Players) != 1 || next.Players[0].Name != "Bob" {
		t.Fatalf("roster after removal = %+v, want only Bob", next.Players)
	}

	same := r.Reduce(state, RemovePlayer{PlayerID: "ghost"})
	if !reflect.DeepEqual(same, state) {
		t.Fatal("removing an absent player must be a silent no-op")
	}
}

func TestAssignMissionMixedOverride(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed}, "Alice")

	mission := NewMission("m1", "swap two shoes", DifficultyEasy)
	next := r.Reduce(state, AssignMission{PlayerID: "p1", Mission: mission, Difficulty: DifficultyHard})

	got := next.Players[0].Missions[0]
	if got.Mission.Difficulty != DifficultyHard || got.Mission.Points != 3 {
		t.Errorf("mixed-mode override: got %q/%d, want hard/3", got.Mission.Difficulty, got.Mission.Points)
	}
	if got.State != MissionActive {
		t.Errorf("new assignment state = %q, want active", got.State)
	}
	if got.AssignedAt.IsZero() {
		t.Error("assignment must stamp assignedAt")
	}
}

func TestAssignMissionMixedWithoutChoiceKeepsMission(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed}, "Alice")

	mission := NewMission("m1", "swap two shoes", DifficultyEasy)
	next := r.Reduce(state, AssignMission{PlayerID: "p1", Mission: mission})

	got := next.Players[0].Missions[0].Mission
	if got.Difficulty != DifficultyEasy || got.Points != 1 {
		t.Errorf("mission without a choice should be stored as given, got %q/%d", got.Difficulty, got.Points)
	}
}

func TestAssignMissionUniformOverridesArgument(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{
		MissionsPerPlayer: 3, DifficultyMode: ModeUniform, UniformDifficulty: DifficultyMedium,
	}, "Alice")

	mission := NewMission("m1", "swap two shoes", DifficultyEasy)
	next := r.Reduce(state, AssignMission{PlayerID: "p1", Mission: mission, Difficulty: DifficultyHard})

	got := next.Players[0].Missions[0].Mission
	if got.Difficulty != DifficultyMedium || got.Points != 2 {
		t.Errorf("uniform mode must win: got %q/%d, want medium/2", got.Difficulty, got.Points)
	}
}

func TestAssignMissionRespectsCap(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 2, DifficultyMode: ModeMixed}, "Alice")

	for i := 0; i < 6; i++ {
		state = r.Reduce(state, AssignMission{
			PlayerID: "p1",
			Mission:  NewMission("m"+string(rune('1'+i)), "mission", DifficultyEasy),
		})
	}
	if got := len(state.Players[0].Missions); got != 2 {
		t.Fatalf("missions = %d, want capped at 2 even under repeated calls", got)
	}
}

func TestAssignMissionAdvancesAssigning(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed}, "Alice")
	state = r.Reduce(state, UpdateStatus{Status: StatusAssigning})

	next := r.Reduce(state, AssignMission{PlayerID: "p1", Mission: NewMission("m1", "mission", DifficultyEasy)})
	if next.Status != StatusInProgress {
		t.Fatalf("status = %q, want the first assignment to advance to in_progress", next.Status)
	}
}

func TestAssignMissionUnknownPlayerIsNoOp(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed}, "Alice")

	next := r.Reduce(state, AssignMission{PlayerID: "ghost", Mission: NewMission("m1", "mission", DifficultyEasy)})
	if !reflect.DeepEqual(next, state) {
		t.Fatal("assignment for an unknown player must be a no-op")
	}
}

// TestUniformGameScenario walks the configure → add → assign → complete flow
// end to end: one medium mission per player, Alice completes hers.
func TestUniformGameScenario(t *testing.T) {
	clock := stepClock()
	r := NewReducer(clock, nil)

	state := rosterState(t, r, GameConfiguration{
		MissionsPerPlayer: 1, DifficultyMode: ModeUniform, UniformDifficulty: DifficultyMedium,
	}, "Alice", "Bob", "Charlie")

	if err := ValidateGameStart(state); err != nil {
		t.Fatalf("three players should be start-ready: %v", err)
	}

	for i, id := range []string{"p1", "p2", "p3"} {
		state = r.Reduce(state, AssignMission{
			PlayerID: id,
			Mission:  NewMission("m"+string(rune('1'+i)), "mission", DifficultyEasy),
		})
	}

	state = r.Reduce(state, CompleteMission{
		PlayerID:    "p1",
		MissionID:   "m1",
		Outcome:     MissionCompleted,
		CompletedAt: clock().Add(time.Minute),
	})

	alice := state.Players[0]
	m := alice.Missions[0]
	if m.State != MissionCompleted {
		t.Fatalf("mission state = %q, want completed", m.State)
	}
	if m.PointsAwarded != 2 {
		t.Errorf("pointsAwarded = %d, want 2 (uniform medium)", m.PointsAwarded)
	}
	if alice.TotalPoints != 2 || alice.CompletedMissions != 1 {
		t.Errorf("aggregates = %d points / %d completed, want 2/1", alice.TotalPoints, alice.CompletedMissions)
	}
	if m.CompletionTimeMs == nil || *m.CompletionTimeMs <= 0 {
		t.Errorf("completionTimeMs = %v, want a positive recorded time", m.CompletionTimeMs)
	}

	// A second assignment to Alice is silently dropped at the cap.
	again := r.Reduce(state, AssignMission{PlayerID: "p1", Mission: NewMission("m9", "extra", DifficultyEasy)})
	if got := len(again.Players[0].Missions); got != 1 {
		t.Fatalf("missions after over-assignment = %d, want still 1", got)
	}
}

func TestCompleteMissionCaught(t *testing.T) {
	clock := stepClock()
	r := NewReducer(clock, nil)
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 2, DifficultyMode: ModeMixed}, "Alice")
	state = r.Reduce(state, AssignMission{PlayerID: "p1", Mission: NewMission("m1", "mission", DifficultyHard)})

	caughtAt := clock().Add(time.Minute)
	state = r.Reduce(state, CompleteMission{
		PlayerID: "p1", MissionID: "m1", Outcome: MissionCaught, CompletedAt: caughtAt,
	})

	m := state.Players[0].Missions[0]
	if m.State != MissionCaught {
		t.Fatalf("mission state = %q, want caught", m.State)
	}
	if m.PointsAwarded != 0 || m.CompletionTimeMs != nil {
		t.Errorf("caught mission must have zero points and no time, got %+v", m)
	}
	if m.CompletedAt == nil || !m.CompletedAt.Equal(caughtAt) {
		t.Errorf("completedAt = %v, want %v", m.CompletedAt, caughtAt)
	}
	if state.Players[0].TotalPoints != 0 {
		t.Errorf("totalPoints = %d, want 0", state.Players[0].TotalPoints)
	}
}

func TestCompleteMissionIllegalTransitionIsNoOp(t *testing.T) {
	clock := stepClock()
	r := NewReducer(clock, nil)
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 2, DifficultyMode: ModeMixed}, "Alice")
	state = r.Reduce(state, AssignMission{PlayerID: "p1", Mission: NewMission("m1", "mission", DifficultyHard)})
	state = r.Reduce(state, CompleteMission{
		PlayerID: "p1", MissionID: "m1", Outcome: MissionCompleted, CompletedAt: clock().Add(time.Minute),
	})

	// Completed is terminal: catching it afterwards must change nothing.
	next := r.Reduce(state, CompleteMission{
		PlayerID: "p1", MissionID: "m1", Outcome: MissionCaught, CompletedAt: clock().Add(time.Hour),
	})
	if !reflect.DeepEqual(next, state) {
		t.Fatal("illegal mission transition must leave the state unchanged")
	}
}

func TestCompleteMissionClampsTiming(t *testing.T) {
	clock := stepClock()
	r := NewReducer(clock, nil)
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 1, DifficultyMode: ModeMixed}, "Alice")
	state = r.Reduce(state, AssignMission{PlayerID: "p1", Mission: NewMission("m1", "mission", DifficultyEasy)})

	assignedAt := state.Players[0].Missions[0].AssignedAt
	state = r.Reduce(state, CompleteMission{
		PlayerID: "p1", MissionID: "m1", Outcome: MissionCompleted,
		CompletedAt: assignedAt.Add(48 * time.Hour),
	})

	m := state.Players[0].Missions[0]
	if m.CompletionTimeMs == nil || *m.CompletionTimeMs != MaxCompletionTime.Milliseconds() {
		t.Fatalf("completionTimeMs = %v, want clamped to 24h", m.CompletionTimeMs)
	}
	if m.PointsAwarded != 1 {
		t.Errorf("points = %d, want 1 despite clamped timing", m.PointsAwarded)
	}
}

func TestEndGame(t *testing.T) {
	clock := stepClock()
	r := NewReducer(clock, nil)
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 1, DifficultyMode: ModeMixed}, "Alice", "Bob", "Cleo")
	state = r.Reduce(state, AssignMission{PlayerID: "p2", Mission: NewMission("m1", "mission", DifficultyHard)})
	state = r.Reduce(state, CompleteMission{
		PlayerID: "p2", MissionID: "m1", Outcome: MissionCompleted, CompletedAt: clock().Add(time.Minute),
	})

	next := r.Reduce(state, EndGame{})
	if next.Status != StatusFinished {
		t.Fatalf("status = %q, want finished", next.Status)
	}
	if next.Winner == nil || next.Winner.ID != "p2" {
		t.Fatalf("winner = %+v, want Bob", next.Winner)
	}
	if next.EndedAt == nil {
		t.Fatal("endedAt must be stamped")
	}
}

func TestEndGameEmptyRoster(t *testing.T) {
	r := newTestReducer()
	state := NewGameState(testClock)

	next := r.Reduce(state, EndGame{})
	if next.Status != StatusFinished {
		t.Fatalf("status = %q, want finished even without players", next.Status)
	}
	if next.Winner != nil {
		t.Fatalf("winner = %+v, want none on an empty roster", next.Winner)
	}
}

func TestLoadGameRoundTrip(t *testing.T) {
	clock := stepClock()
	r := NewReducer(clock, nil)
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 2, DifficultyMode: ModeMixed}, "Alice", "Bob")
	state = r.Reduce(state, AssignMission{PlayerID: "p1", Mission: NewMission("m1", "mission", DifficultyMedium)})
	state = r.Reduce(state, CompleteMission{
		PlayerID: "p1", MissionID: "m1", Outcome: MissionCompleted, CompletedAt: clock().Add(time.Minute),
	})

	loaded := r.Reduce(NewGameState(testClock), LoadGame{State: state})
	for i := range state.Players {
		if loaded.Players[i].TotalPoints != state.Players[i].TotalPoints {
			t.Errorf("player %d points changed on load: %d -> %d",
				i, state.Players[i].TotalPoints, loaded.Players[i].TotalPoints)
		}
		if loaded.Players[i].CompletedMissions != state.Players[i].CompletedMissions {
			t.Errorf("player %d completed count changed on load", i)
		}
		if len(loaded.Players[i].Missions) != len(state.Players[i].Missions) {
			t.Errorf("player %d mission count changed on load", i)
		}
	}
}

func TestLoadGameRepairsCorruption(t *testing.T) {
	r := newTestReducer()
	corrupted := NewGameState(testClock)
	corrupted.Players = []Player{{
		ID:                 "p1",
		Name:               "Alice",
		Missions:           []PlayerMission{completedMission("m1", DifficultyEasy, 1000)},
		TotalPoints:        50,
		CompletedMissions:  9,
		TargetMissionCount: 3,
	}}

	loaded := r.Reduce(NewGameState(testClock), LoadGame{State: corrupted})
	if loaded.Players[0].TotalPoints != 1 || loaded.Players[0].CompletedMissions != 1 {
		t.Fatalf("load must repair aggregates, got %d points / %d completed",
			loaded.Players[0].TotalPoints, loaded.Players[0].CompletedMissions)
	}
}

func TestLoadGameWithoutIDIsNoOp(t *testing.T) {
	r := newTestReducer()
	state := NewGameState(testClock)

	next := r.Reduce(state, LoadGame{State: GameState{}})
	if !reflect.DeepEqual(next, state) {
		t.Fatal("loading a state without an id must keep the prior state")
	}
}

func TestUpdateStatus(t *testing.T) {
	r := newTestReducer()
	state := NewGameState(testClock)

	next := r.Reduce(state, UpdateStatus{Status: StatusConfiguring})
	if next.Status != StatusConfiguring {
		t.Fatalf("status = %q, want configuring", next.Status)
	}

	illegal := r.Reduce(state, UpdateStatus{Status: StatusInProgress})
	if !reflect.DeepEqual(illegal, state) {
		t.Fatal("setup -> in_progress is illegal and must be a no-op")
	}

	same := r.Reduce(state, UpdateStatus{Status: StatusSetup})
	if !reflect.DeepEqual(same, state) {
		t.Fatal("same-status transition must be an accepted no-op")
	}
}

func TestClearFinishedGame(t *testing.T) {
	r := newTestReducer()
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed}, "Alice")

	untouched := r.Reduce(state, ClearFinishedGame{})
	if !reflect.DeepEqual(untouched, state) {
		t.Fatal("clearing a non-finished game must be a no-op")
	}

	finished := state
	finished.Status = StatusFinished
	cleared := r.Reduce(finished, ClearFinishedGame{})
	if cleared.Status != StatusSetup || len(cleared.Players) != 0 {
		t.Fatalf("cleared state = %+v, want a fresh setup state", cleared)
	}
	if cleared.ID == finished.ID {
		t.Error("cleared game should get a fresh id")
	}
}

func TestClearAllMissions(t *testing.T) {
	clock := stepClock()
	r := NewReducer(clock, nil)
	state := rosterState(t, r, GameConfiguration{MissionsPerPlayer: 2, DifficultyMode: ModeMixed}, "Alice", "Bob")
	state = r.Reduce(state, AssignMission{PlayerID: "p1", Mission: NewMission("m1", "mission", DifficultyHard)})
	state = r.Reduce(state, CompleteMission{
		PlayerID: "p1", MissionID: "m1", Outcome: MissionCompleted, CompletedAt: clock().Add(time.Minute),
	})

	next := r.Reduce(state, ClearAllMissions{})
	if len(next.Players) != 2 {
		t.Fatalf("roster must survive a mission wipe, got %d players", len(next.Players))
	}
	for _, p := range next.Players {
		if len(p.Missions) != 0 || p.TotalPoints != 0 || p.CompletedMissions != 0 {
			t.Fatalf("player %q not fully reset: %+v", p.Name, p)
		}
	}
	if next.Status != state.Status {
		t.Errorf("status changed from %q to %q on mission wipe", state.Status, next.Status)
	}
	if next.Configuration != state.Configuration {
		t.Error("configuration must survive a mission wipe")
	}
}
