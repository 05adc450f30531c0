package game

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cfg  GameConfiguration
		err  error
	}{
		{
			name: "valid mixed",
			cfg:  GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeMixed},
		},
		{
			name: "valid uniform",
			cfg:  GameConfiguration{MissionsPerPlayer: 1, DifficultyMode: ModeUniform, UniformDifficulty: DifficultyHard},
		},
		{
			name: "missions over range",
			cfg:  GameConfiguration{MissionsPerPlayer: 11, DifficultyMode: ModeMixed},
			err:  ErrMissionsPerPlayerRange,
		},
		{
			name: "missions under range",
			cfg:  GameConfiguration{MissionsPerPlayer: 0, DifficultyMode: ModeMixed},
			err:  ErrMissionsPerPlayerRange,
		},
		{
			name: "unknown mode",
			cfg:  GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: "extreme"},
			err:  ErrInvalidDifficultyMode,
		},
		{
			name: "uniform without difficulty",
			cfg:  GameConfiguration{MissionsPerPlayer: 3, DifficultyMode: ModeUniform},
			err:  ErrMissingUniformDifficulty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfiguration(tt.cfg)
			if tt.err == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestValidateConfigurationErrorMentionsRange(t *testing.T) {
	err := ValidateConfiguration(GameConfiguration{MissionsPerPlayer: 11, DifficultyMode: ModeMixed})
	if err == nil || !strings.Contains(err.Error(), "between 1 and 10") {
		t.Fatalf("expected the error to mention the valid range, got %v", err)
	}
}

func TestValidateTiming(t *testing.T) {
	assigned := testClock()

	valid, corrected := ValidateTiming(assigned, assigned.Add(90*time.Second))
	if !valid || corrected != 90_000 {
		t.Errorf("normal delta: got (%v, %d), want (true, 90000)", valid, corrected)
	}

	valid, corrected = ValidateTiming(assigned, assigned.Add(-time.Minute))
	if valid || corrected != 0 {
		t.Errorf("negative delta: got (%v, %d), want (false, 0)", valid, corrected)
	}

	valid, corrected = ValidateTiming(assigned, assigned.Add(25*time.Hour))
	if valid || corrected != MaxCompletionTime.Milliseconds() {
		t.Errorf("over 24h: got (%v, %d), want (false, %d)", valid, corrected, MaxCompletionTime.Milliseconds())
	}

	// Exactly at the cap is still valid.
	valid, corrected = ValidateTiming(assigned, assigned.Add(MaxCompletionTime))
	if !valid || corrected != MaxCompletionTime.Milliseconds() {
		t.Errorf("exactly 24h: got (%v, %d), want valid at cap", valid, corrected)
	}

	valid, corrected = ValidateTiming(time.Time{}, assigned)
	if valid || corrected != 0 {
		t.Errorf("zero assigned time: got (%v, %d), want (false, 0)", valid, corrected)
	}
}

func TestValidateMissionPoints(t *testing.T) {
	tests := []struct {
		name   string
		d      Difficulty
		points int
		state  MissionState
		want   bool
	}{
		{"completed canonical", DifficultyMedium, 2, MissionCompleted, true},
		{"completed wrong points", DifficultyMedium, 3, MissionCompleted, false},
		{"active zero", DifficultyHard, 0, MissionActive, true},
		{"active nonzero", DifficultyHard, 3, MissionActive, false},
		{"caught zero", DifficultyEasy, 0, MissionCaught, true},
		{"negative", DifficultyEasy, -1, MissionCaught, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateMissionPoints(tt.d, tt.points, tt.state); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatePlayerScoring(t *testing.T) {
	p := Player{
		ID:                 "p1",
		Name:               "Alice",
		Missions:           []PlayerMission{completedMission("m1", DifficultyMedium, 5000)},
		TotalPoints:        2,
		CompletedMissions:  1,
		TargetMissionCount: 3,
	}
	if err := ValidatePlayerScoring(p); err != nil {
		t.Fatalf("consistent player should validate, got %v", err)
	}

	stale := p
	stale.TotalPoints = 7
	if err := ValidatePlayerScoring(stale); err == nil {
		t.Fatal("stale total points should fail validation")
	}

	wrongCount := p
	wrongCount.CompletedMissions = 0
	if err := ValidatePlayerScoring(wrongCount); err == nil {
		t.Fatal("stale completed count should fail validation")
	}

	badPoints := p
	badPoints.Missions = []PlayerMission{completedMission("m1", DifficultyMedium, 5000)}
	badPoints.Missions[0].PointsAwarded = 5
	badPoints.TotalPoints = 5
	if err := ValidatePlayerScoring(badPoints); err == nil {
		t.Fatal("non-canonical mission points should fail validation")
	}
}

func TestValidateGameState(t *testing.T) {
	state := NewGameState(testClock)
	state.Players = append(state.Players, NewPlayer("p1", "Alice", 3))
	if err := ValidateGameState(state); err != nil {
		t.Fatalf("fresh state with one player should validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*GameState)
	}{
		{"missing id", func(s *GameState) { s.ID = "" }},
		{"nil players", func(s *GameState) { s.Players = nil }},
		{"bad config", func(s *GameState) { s.Configuration.MissionsPerPlayer = 0 }},
		{"bad status", func(s *GameState) { s.Status = "limbo" }},
		{"zero timestamps", func(s *GameState) { s.CreatedAt = time.Time{} }},
		{"player without name", func(s *GameState) { s.Players[0].Name = "" }},
		{"negative points", func(s *GameState) { s.Players[0].TotalPoints = -1 }},
		{"zero target", func(s *GameState) { s.Players[0].TargetMissionCount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := state
			broken.Players = append([]Player{}, state.Players...)
			tt.mutate(&broken)
			if err := ValidateGameState(broken); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
