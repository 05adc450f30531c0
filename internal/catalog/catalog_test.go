package catalog

import (
	"math/rand"
	"testing"

	"github.com/missionparty/missionparty/internal/game"
)

func TestAllCatalogEntriesAreWellFormed(t *testing.T) {
	missions, err := All()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	if len(missions) == 0 {
		t.Fatal("catalog is empty")
	}

	seen := map[string]bool{}
	for _, m := range missions {
		if seen[m.ID] {
			t.Errorf("duplicate mission id %q", m.ID)
		}
		seen[m.ID] = true
		if m.Points != game.PointsForDifficulty(m.Difficulty) {
			t.Errorf("mission %q points = %d, want canonical %d", m.ID, m.Points, game.PointsForDifficulty(m.Difficulty))
		}
	}
}

func TestByDifficultyExcludesUsed(t *testing.T) {
	all, err := ByDifficulty(game.DifficultyEasy, nil)
	if err != nil {
		t.Fatalf("loading easy missions: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("no easy missions in catalog")
	}
	for _, m := range all {
		if m.Difficulty != game.DifficultyEasy {
			t.Errorf("mission %q has difficulty %q", m.ID, m.Difficulty)
		}
	}

	used := map[string]bool{all[0].ID: true}
	filtered, err := ByDifficulty(game.DifficultyEasy, used)
	if err != nil {
		t.Fatalf("filtering easy missions: %v", err)
	}
	if len(filtered) != len(all)-1 {
		t.Fatalf("filtered count = %d, want %d", len(filtered), len(all)-1)
	}
	for _, m := range filtered {
		if used[m.ID] {
			t.Errorf("used mission %q returned", m.ID)
		}
	}
}

func TestPickExhaustsDifficulty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	used := map[string]bool{}

	for {
		m, ok, err := Pick(game.DifficultyHard, used, rng)
		if err != nil {
			t.Fatalf("picking: %v", err)
		}
		if !ok {
			break
		}
		if used[m.ID] {
			t.Fatalf("Pick returned already-used mission %q", m.ID)
		}
		used[m.ID] = true
	}

	hard, _ := ByDifficulty(game.DifficultyHard, nil)
	if len(used) != len(hard) {
		t.Fatalf("picked %d unique missions, want all %d", len(used), len(hard))
	}
}
