package server

import (
	"context"
	"errors"

	"github.com/missionparty/missionparty/internal/game"
)

var ErrNotFound = errors.New("not found")

// GameStore is the persistence gateway for the one current game. Callers are
// expected to skip Save unless the state is in progress and to serialize
// calls; the gateway itself handles the primary/backup slots and corruption
// recovery.
type GameStore interface {
	// Save writes the state to the primary slot and mirrors it to the backup
	// slot. A non-empty warning means one of the two writes failed; an error
	// means both did.
	Save(ctx context.Context, state game.GameState) (warning string, err error)
	// Load returns the persisted state, falling back to the backup slot when
	// the primary is absent, unparsable, or fails validation. Nothing stored
	// — or a recovered state that is not in progress — yields a fresh setup
	// state (the latter also clears storage).
	Load(ctx context.Context) (game.GameState, error)
	// Clear removes both slots.
	Clear(ctx context.Context) error
}

// HostStore persists host (game master) login sessions.
type HostStore interface {
	CreateHostSession(ctx context.Context) (string, error)
	HostSessionExists(ctx context.Context, id string) (bool, error)
	DeleteHostSession(ctx context.Context, id string) error
}
