package server

import (
	"context"
	"log/slog"
	"reflect"
	"sync"

	"github.com/missionparty/missionparty/internal/game"
)

// Session is the single logical actor of the game: it owns the one current
// state, applies actions serially through the reducer, persists in-progress
// states through the gateway, and publishes change events. The reducer itself
// is pure; the mutex only serializes concurrent HTTP requests into the
// one-action-at-a-time model the core expects.
type Session struct {
	mu      sync.Mutex
	state   game.GameState
	reducer *game.Reducer
	store   GameStore
	broker  *Broker
	logger  *slog.Logger
}

func NewSession(reducer *game.Reducer, store GameStore, broker *Broker, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		state:   game.NewGameState(nil),
		reducer: reducer,
		store:   store,
		broker:  broker,
		logger:  logger,
	}
}

// Restore loads the persisted game, if any, and adopts it. Called once at
// startup; an unrecoverable save falls back to a fresh game rather than
// refusing to boot.
func (s *Session) Restore(ctx context.Context) {
	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("could not restore saved game, starting fresh", "error", err)
		return
	}

	s.mu.Lock()
	s.state = s.reducer.Reduce(s.state, game.LoadGame{State: loaded})
	s.mu.Unlock()

	if loaded.Status == game.StatusInProgress {
		s.logger.Info("resumed saved game", "game_id", loaded.ID, "players", len(loaded.Players))
	}
}

// Current returns the current state.
func (s *Session) Current() game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies one action and returns the resulting state. No-op actions
// (illegal transitions, duplicates, over-assignment) return the unchanged
// state without persisting or publishing; callers that need a signal compare
// the returned state against the one they read.
func (s *Session) Dispatch(ctx context.Context, action game.Action, eventType string) game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := s.reducer.Reduce(prev, action)
	if reflect.DeepEqual(next, prev) {
		return next
	}
	s.state = next

	s.persist(ctx, prev, next)

	if s.broker != nil {
		s.broker.Publish(GameEvent{Type: eventType, Status: next.Status})
	}
	return next
}

// persist applies the in-progress-only policy: save while the game runs,
// clear the slots the moment it stops running so a stale save can never
// resurrect a finished game.
func (s *Session) persist(ctx context.Context, prev, next game.GameState) {
	if next.Status == game.StatusInProgress {
		warning, err := s.store.Save(ctx, next)
		if err != nil {
			s.logger.Error("saving game failed", "error", err)
		} else if warning != "" {
			s.logger.Warn("saving game degraded", "warning", warning)
		}
		return
	}
	if prev.Status == game.StatusInProgress {
		if err := s.store.Clear(ctx); err != nil {
			s.logger.Error("clearing saved game failed", "error", err)
		}
	}
}
