// Package catalog provides the static mission catalog: a flat list of mission
// records grouped by difficulty. The game core never reaches into the catalog
// itself; callers pick missions here and hand them to the reducer.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	"github.com/missionparty/missionparty/internal/game"
)

//go:embed missions.json
var fs embed.FS

type record struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	Difficulty game.Difficulty `json:"difficulty"`
}

var (
	loadOnce sync.Once
	loaded   []record
	loadErr  error
)

func load() ([]record, error) {
	loadOnce.Do(func() {
		data, err := fs.ReadFile("missions.json")
		if err != nil {
			loadErr = fmt.Errorf("reading embedded catalog: %w", err)
			return
		}
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("parsing embedded catalog: %w", err)
			return
		}
		for i, r := range loaded {
			if r.ID == "" || r.Text == "" || !r.Difficulty.IsValid() {
				loadErr = fmt.Errorf("catalog entry %d is malformed", i)
				return
			}
		}
	})
	return loaded, loadErr
}

// All returns every mission in the catalog.
func All() ([]game.Mission, error) {
	records, err := load()
	if err != nil {
		return nil, err
	}
	missions := make([]game.Mission, len(records))
	for i, r := range records {
		missions[i] = game.NewMission(r.ID, r.Text, r.Difficulty)
	}
	return missions, nil
}

// ByDifficulty returns the missions of one difficulty, excluding any whose id
// is in the used set.
func ByDifficulty(d game.Difficulty, used map[string]bool) ([]game.Mission, error) {
	records, err := load()
	if err != nil {
		return nil, err
	}
	var missions []game.Mission
	for _, r := range records {
		if r.Difficulty != d || used[r.ID] {
			continue
		}
		missions = append(missions, game.NewMission(r.ID, r.Text, r.Difficulty))
	}
	return missions, nil
}

// Pick selects a random unused mission of the given difficulty. The boolean
// is false when the difficulty is exhausted.
func Pick(d game.Difficulty, used map[string]bool, rng *rand.Rand) (game.Mission, bool, error) {
	candidates, err := ByDifficulty(d, used)
	if err != nil {
		return game.Mission{}, false, err
	}
	if len(candidates) == 0 {
		return game.Mission{}, false, nil
	}
	if rng == nil {
		return candidates[rand.Intn(len(candidates))], true, nil
	}
	return candidates[rng.Intn(len(candidates))], true, nil
}
