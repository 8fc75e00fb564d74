package repo

import (
	"context"
	"slices"
	"sync"

	"baduk/internal/domain/match"
	apperrors "baduk/internal/errors"
)

// MemoryMatchStore keeps matches in process memory, for the CLI and tests.
type MemoryMatchStore struct {
	mu       sync.RWMutex
	moves    map[string][]match.MoveRecord
	archived map[string]match.ArchivedGame
}

func NewMemoryMatchStore() *MemoryMatchStore {
	return &MemoryMatchStore{
		moves:    make(map[string][]match.MoveRecord),
		archived: make(map[string]match.ArchivedGame),
	}
}

func (m *MemoryMatchStore) AppendMove(_ context.Context, gameID string, move match.MoveRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves[gameID] = append(m.moves[gameID], move)
	return nil
}

func (m *MemoryMatchStore) Moves(_ context.Context, gameID string) ([]match.MoveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.moves[gameID]), nil
}

func (m *MemoryMatchStore) ArchiveGame(_ context.Context, game match.ArchivedGame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archived[game.GameID] = game
	return nil
}

func (m *MemoryMatchStore) GetArchivedGame(_ context.Context, gameID string) (*match.ArchivedGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	game, ok := m.archived[gameID]
	if !ok {
		return nil, apperrors.ErrGameNotFound
	}
	return &game, nil
}

// Forget drops the live moves of a game, as the redis TTL would.
func (m *MemoryMatchStore) Forget(gameID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.moves, gameID)
}
