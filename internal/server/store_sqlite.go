package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/missionparty/missionparty/internal/game"
)

const (
	slotPrimary = "primary"
	slotBackup  = "backup"
)

// SQLiteStore persists the current game in two slot rows, primary and backup,
// each holding the full state as a JSONB document. It also holds host
// sessions.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{db: db, logger: logger}
}

func (s *SQLiteStore) Save(ctx context.Context, state game.GameState) (string, error) {
	data, err := json.Marshal(docFromState(state))
	if err != nil {
		return "", fmt.Errorf("encoding game state: %w", err)
	}

	primaryErr := s.writeSlot(ctx, slotPrimary, data)
	backupErr := s.writeSlot(ctx, slotBackup, data)

	switch {
	case primaryErr == nil && backupErr == nil:
		return "", nil
	case primaryErr == nil:
		s.logger.Warn("backup slot write failed", "error", backupErr)
		return "game saved, but the backup copy failed", nil
	case backupErr == nil:
		s.logger.Warn("primary slot write failed, backup succeeded", "error", primaryErr)
		return "game saved to the backup slot only", nil
	default:
		return "", fmt.Errorf("saving game failed on both slots: %w", errors.Join(primaryErr, backupErr))
	}
}

func (s *SQLiteStore) writeSlot(ctx context.Context, slot string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_games (slot, data, updated_at)
		VALUES (?, jsonb(?), strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, slot, string(data))
	return err
}

func (s *SQLiteStore) Load(ctx context.Context) (game.GameState, error) {
	stored := false
	for _, slot := range []string{slotPrimary, slotBackup} {
		state, err := s.loadSlot(ctx, slot)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		stored = true
		if err != nil {
			s.logger.Warn("saved game slot unusable, trying next", "slot", slot, "error", err)
			continue
		}

		if state.Status != game.StatusInProgress {
			// Only in-progress games are worth resuming. Anything else on
			// disk is stale; drop it.
			s.logger.Info("discarding persisted game that is not in progress", "status", state.Status)
			if err := s.Clear(ctx); err != nil {
				s.logger.Warn("clearing stale saved game failed", "error", err)
			}
			return game.NewGameState(nil), nil
		}
		return state, nil
	}

	if !stored {
		return game.NewGameState(nil), nil
	}
	return game.GameState{}, errors.New("saved game is corrupted beyond recovery")
}

// loadSlot reads one slot and coerces, repairs, and validates it.
func (s *SQLiteStore) loadSlot(ctx context.Context, slot string) (game.GameState, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM saved_games WHERE slot = ?`, slot,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return game.GameState{}, ErrNotFound
	}
	if err != nil {
		return game.GameState{}, err
	}

	var doc stateDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return game.GameState{}, fmt.Errorf("parsing slot document: %w", err)
	}
	state, err := stateFromDoc(doc)
	if err != nil {
		return game.GameState{}, fmt.Errorf("coercing slot document: %w", err)
	}

	// Repair silently, log loudly: drifted aggregates are fixed in place, and
	// only data that still fails validation afterwards is rejected.
	if err := game.ValidateGameState(state); err != nil {
		s.logger.Warn("saved game failed validation, sanitizing", "slot", slot, "error", err)
		for i, p := range state.Players {
			state.Players[i] = game.SanitizePlayerScoring(p)
		}
		if err := game.ValidateGameState(state); err != nil {
			return game.GameState{}, fmt.Errorf("slot invalid after sanitize: %w", err)
		}
	}
	return state, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saved_games`)
	return err
}

func (s *SQLiteStore) CreateHostSession(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO host_sessions DEFAULT VALUES
		RETURNING id
	`).Scan(&id)
	return id, err
}

func (s *SQLiteStore) HostSessionExists(ctx context.Context, id string) (bool, error) {
	var found string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM host_sessions WHERE id = ?`, id,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLiteStore) DeleteHostSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM host_sessions WHERE id = ?`, id)
	return err
}
