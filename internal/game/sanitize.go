package game

import "time"

// Sanitization repairs out-of-spec data back into a legal shape without ever
// failing. A corrupted or stale on-device save must never strand a player
// mid-game; the policy is repair silently, log loudly (the logging happens at
// the call sites, which know where the data came from).

// ConfigurationInput is a maybe-partial, maybe-corrupted configuration as
// read from storage or an untrusted caller. Absent fields stay nil/empty.
type ConfigurationInput struct {
	MissionsPerPlayer *int
	DifficultyMode    string
	UniformDifficulty string
}

// SanitizeConfiguration builds a valid configuration from partial input:
// missions per player clamps to [1,10] and defaults to 3 when absent, an
// unknown mode falls back to mixed, and — only in uniform mode — a missing or
// unknown uniform difficulty defaults to medium.
func SanitizeConfiguration(in ConfigurationInput) GameConfiguration {
	missions := DefaultMissionsPerPlayer
	if in.MissionsPerPlayer != nil {
		missions = *in.MissionsPerPlayer
	}
	if missions < MinMissionsPerPlayer {
		missions = MinMissionsPerPlayer
	}
	if missions > MaxMissionsPerPlayer {
		missions = MaxMissionsPerPlayer
	}

	mode := DifficultyMode(in.DifficultyMode)
	if !mode.IsValid() {
		mode = ModeMixed
	}

	cfg := GameConfiguration{
		MissionsPerPlayer: missions,
		DifficultyMode:    mode,
	}
	if mode == ModeUniform {
		uniform := Difficulty(in.UniformDifficulty)
		if !uniform.IsValid() {
			uniform = DifficultyMedium
		}
		cfg.UniformDifficulty = uniform
	}
	return cfg
}

// SanitizeCompletionTime returns the corrected completion delta, clamped to
// [0, 24h], regardless of whether the raw timing was valid.
func SanitizeCompletionTime(assignedAt, completedAt time.Time) int64 {
	_, corrected := ValidateTiming(assignedAt, completedAt)
	return corrected
}

// SanitizePlayerScoring repairs a player's missions and aggregates: completed
// missions get their canonical points and a recomputed completion time, every
// other state is forced to zero points with no completion time, and the
// totals are recomputed from the corrected mission list. Idempotent.
func SanitizePlayerScoring(p Player) Player {
	sanitized := p
	sanitized.Missions = make([]PlayerMission, len(p.Missions))

	var totalPoints, completed int
	for i, m := range p.Missions {
		fixed := m
		if m.State == MissionCompleted {
			fixed.PointsAwarded = PointsForDifficulty(m.Mission.Difficulty)
			if m.CompletedAt != nil {
				ms := SanitizeCompletionTime(m.AssignedAt, *m.CompletedAt)
				fixed.CompletionTimeMs = &ms
			}
			completed++
		} else {
			fixed.PointsAwarded = 0
			fixed.CompletionTimeMs = nil
		}
		totalPoints += fixed.PointsAwarded
		sanitized.Missions[i] = fixed
	}

	sanitized.TotalPoints = totalPoints
	sanitized.CompletedMissions = completed
	return sanitized
}
