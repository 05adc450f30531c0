package game

import (
	"errors"
	"fmt"
	"time"
)

// Validation gatekeeps configuration, timing, scoring, and whole-state
// correctness. Validators report failure without mutating; the sanitize
// counterparts in sanitize.go repair instead.

var (
	ErrMissionsPerPlayerRange   = errors.New("missions per player must be between 1 and 10")
	ErrInvalidDifficultyMode    = errors.New("difficulty mode must be uniform or mixed")
	ErrMissingUniformDifficulty = errors.New("uniform mode requires a valid uniform difficulty")
)

// MaxCompletionTime is the longest completion delta accepted as valid.
// Anything above it is clamped.
const MaxCompletionTime = 24 * time.Hour

// ValidateConfiguration checks a game configuration against the rules in one
// pass: missions per player in range, a known difficulty mode, and a uniform
// difficulty present when the mode requires one.
func ValidateConfiguration(cfg GameConfiguration) error {
	if cfg.MissionsPerPlayer < MinMissionsPerPlayer || cfg.MissionsPerPlayer > MaxMissionsPerPlayer {
		return fmt.Errorf("%w: got %d", ErrMissionsPerPlayerRange, cfg.MissionsPerPlayer)
	}
	if !cfg.DifficultyMode.IsValid() {
		return fmt.Errorf("%w: got %q", ErrInvalidDifficultyMode, cfg.DifficultyMode)
	}
	if cfg.DifficultyMode == ModeUniform && !cfg.UniformDifficulty.IsValid() {
		return fmt.Errorf("%w: got %q", ErrMissingUniformDifficulty, cfg.UniformDifficulty)
	}
	return nil
}

// ValidateTiming checks an assignment/completion pair. The corrected value is
// always usable: the raw delta when valid, 0 for negative deltas, and the
// 24-hour cap for anything longer.
func ValidateTiming(assignedAt, completedAt time.Time) (bool, int64) {
	if assignedAt.IsZero() || completedAt.IsZero() {
		return false, 0
	}
	delta := CompletionTimeMs(assignedAt, completedAt)
	if delta < 0 {
		return false, 0
	}
	if max := MaxCompletionTime.Milliseconds(); delta > max {
		return false, max
	}
	return true, delta
}

// ValidateMissionPoints checks that awarded points match the mission's state:
// zero unless completed, never negative, and exactly the canonical value for
// the difficulty when completed.
func ValidateMissionPoints(d Difficulty, pointsAwarded int, state MissionState) bool {
	if pointsAwarded < 0 {
		return false
	}
	if state != MissionCompleted {
		return pointsAwarded == 0
	}
	return pointsAwarded == PointsForDifficulty(d)
}

// ValidatePlayerScoring recomputes the player's aggregates from their mission
// list and requires exact agreement with the stored values, then checks every
// mission's points and, for completed missions, their timing.
func ValidatePlayerScoring(p Player) error {
	var expectedPoints, expectedCompleted int
	for i, m := range p.Missions {
		if !ValidateMissionPoints(m.Mission.Difficulty, m.PointsAwarded, m.State) {
			return fmt.Errorf("player %q mission %d: points %d do not match state %q difficulty %q",
				p.Name, i, m.PointsAwarded, m.State, m.Mission.Difficulty)
		}
		if m.State == MissionCompleted {
			if m.CompletedAt == nil {
				return fmt.Errorf("player %q mission %d: completed without a completion timestamp", p.Name, i)
			}
			if valid, _ := ValidateTiming(m.AssignedAt, *m.CompletedAt); !valid {
				return fmt.Errorf("player %q mission %d: completion timing is out of range", p.Name, i)
			}
			expectedCompleted++
		}
		expectedPoints += m.PointsAwarded
	}
	if p.TotalPoints != expectedPoints {
		return fmt.Errorf("player %q: total points %d, expected %d from missions", p.Name, p.TotalPoints, expectedPoints)
	}
	if p.CompletedMissions != expectedCompleted {
		return fmt.Errorf("player %q: completed missions %d, expected %d from missions", p.Name, p.CompletedMissions, expectedCompleted)
	}
	return nil
}

// ValidateGameState runs the structural and semantic checks over a whole
// state. The first failing check short-circuits with a descriptive error.
func ValidateGameState(s GameState) error {
	if s.ID == "" {
		return errors.New("game state has no id")
	}
	if s.Players == nil {
		return errors.New("game state has no players array")
	}
	if err := ValidateConfiguration(s.Configuration); err != nil {
		return fmt.Errorf("game configuration: %w", err)
	}
	if !s.Status.IsValid() {
		return fmt.Errorf("unknown game status %q", s.Status)
	}
	if s.CreatedAt.IsZero() || s.UpdatedAt.IsZero() {
		return errors.New("game state is missing timestamps")
	}
	for i, p := range s.Players {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("player %d is missing id or name", i)
		}
		if p.Missions == nil {
			return fmt.Errorf("player %q has no missions array", p.Name)
		}
		if p.TotalPoints < 0 {
			return fmt.Errorf("player %q has negative total points", p.Name)
		}
		if p.CompletedMissions < 0 {
			return fmt.Errorf("player %q has a negative completed count", p.Name)
		}
		if p.TargetMissionCount < 1 {
			return fmt.Errorf("player %q has target mission count %d", p.Name, p.TargetMissionCount)
		}
		if err := ValidatePlayerScoring(p); err != nil {
			return err
		}
	}
	return nil
}
