package game

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Scoring and ranking derivations. All pure and total: illegal inputs score
// zero rather than panic, so the reducer stays safe to call blindly.

const (
	pointsEasy   = 1
	pointsMedium = 2
	pointsHard   = 3
)

// PointsForDifficulty maps a difficulty to its canonical point value.
func PointsForDifficulty(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return pointsEasy
	case DifficultyMedium:
		return pointsMedium
	case DifficultyHard:
		return pointsHard
	default:
		return 0
	}
}

// MissionScore returns the points awarded for a mission in the given state:
// the canonical points when completed, zero otherwise.
func MissionScore(d Difficulty, state MissionState) int {
	if state != MissionCompleted {
		return 0
	}
	return PointsForDifficulty(d)
}

// CompletionTimeMs returns the raw, unvalidated completion delta in
// milliseconds. The validation layer clamps it.
func CompletionTimeMs(assignedAt, completedAt time.Time) int64 {
	return completedAt.Sub(assignedAt).Milliseconds()
}

// AverageCompletionTimeMs returns the mean completion time over the player's
// completed missions that recorded one. Players with no qualifying missions
// get +Inf so they never outrank a player with at least one completion on
// the time tiebreak.
func AverageCompletionTimeMs(p Player) float64 {
	var sum int64
	var count int
	for _, m := range p.Missions {
		if m.State == MissionCompleted && m.CompletionTimeMs != nil {
			sum += *m.CompletionTimeMs
			count++
		}
	}
	if count == 0 {
		return math.Inf(1)
	}
	return float64(sum) / float64(count)
}

// RankPlayers orders players for the leaderboard: total points descending,
// ties broken by average completion time ascending, further ties by original
// roster order. The input is not modified.
func RankPlayers(players []Player) []Player {
	ranked := make([]Player, len(players))
	copy(ranked, players)
	// Insertion sort keeps the ordering stable without pulling in sort.SliceStable
	// closures over recomputed averages.
	averages := make([]float64, len(ranked))
	for i, p := range ranked {
		averages[i] = AverageCompletionTimeMs(p)
	}
	for i := 1; i < len(ranked); i++ {
		p, avg := ranked[i], averages[i]
		j := i - 1
		for j >= 0 && outranks(p, avg, ranked[j], averages[j]) {
			ranked[j+1], averages[j+1] = ranked[j], averages[j]
			j--
		}
		ranked[j+1], averages[j+1] = p, avg
	}
	return ranked
}

// outranks reports whether a strictly beats b: more points, or equal points
// and a strictly lower average completion time. Equal on both keys means b
// keeps its earlier slot.
func outranks(a Player, avgA float64, b Player, avgB float64) bool {
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	return avgA < avgB
}

// DetermineWinner picks the winner: highest total points, ties broken by
// lowest average completion time, remaining ties by roster order (first
// wins). Returns nil for an empty roster.
func DetermineWinner(players []Player) *Player {
	if len(players) == 0 {
		return nil
	}
	best := players[0]
	bestAvg := AverageCompletionTimeMs(best)
	for _, p := range players[1:] {
		avg := AverageCompletionTimeMs(p)
		if outranks(p, avg, best, bestAvg) {
			best, bestAvg = p, avg
		}
	}
	winner := best
	return &winner
}

// HasReachedMissionLimit reports whether the player already holds as many
// missions as their target allows.
func HasReachedMissionLimit(p Player) bool {
	return len(p.Missions) >= p.TargetMissionCount
}

// CanGameEnd reports whether at least one player has completed their full
// mission target.
func CanGameEnd(players []Player) bool {
	for _, p := range players {
		if p.CompletedMissions >= p.TargetMissionCount {
			return true
		}
	}
	return false
}

const (
	MinPlayerNameLen = 2
	MaxPlayerNameLen = 20

	// MinPlayersToStart is the roster minimum for game start. It is enforced
	// by ValidateGameStart at the calling layer, not inside the reducer.
	MinPlayersToStart = 3
)

var (
	ErrPlayerNameLength  = errors.New("player name must be between 2 and 20 characters")
	ErrNotEnoughPlayers  = errors.New("at least 3 players are required to start")
	ErrDuplicatePlayer   = errors.New("a player with this name already exists")
	ErrGameNotConfigured = errors.New("game configuration is not valid")
)

// ValidatePlayerName checks that the trimmed name fits the roster rules.
func ValidatePlayerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmed); n < MinPlayerNameLen || n > MaxPlayerNameLen {
		return ErrPlayerNameLength
	}
	return nil
}

// HasPlayerNamed reports whether the roster already holds the name,
// comparing case-insensitively on trimmed names.
func HasPlayerNamed(players []Player, name string) bool {
	target := strings.ToLower(strings.TrimSpace(name))
	for _, p := range players {
		if strings.ToLower(strings.TrimSpace(p.Name)) == target {
			return true
		}
	}
	return false
}

// ValidateGameStart checks start readiness: enough players, every name valid,
// and a valid configuration. This is deliberately outside the reducer's
// per-action contract.
func ValidateGameStart(state GameState) error {
	if len(state.Players) < MinPlayersToStart {
		return ErrNotEnoughPlayers
	}
	for _, p := range state.Players {
		if err := ValidatePlayerName(p.Name); err != nil {
			return err
		}
	}
	if err := ValidateConfiguration(state.Configuration); err != nil {
		return ErrGameNotConfigured
	}
	return nil
}
