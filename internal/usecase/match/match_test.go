package match

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"baduk/internal/agent"
	"baduk/internal/bootstrap"
	"baduk/internal/domain/match"
	"baduk/internal/errors"
)

type memoryStore struct {
	mu       sync.Mutex
	moves    map[string][]match.MoveRecord
	archived map[string]match.ArchivedGame
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		moves:    make(map[string][]match.MoveRecord),
		archived: make(map[string]match.ArchivedGame),
	}
}

func (m *memoryStore) AppendMove(_ context.Context, gameID string, move match.MoveRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves[gameID] = append(m.moves[gameID], move)
	return nil
}

func (m *memoryStore) Moves(_ context.Context, gameID string) ([]match.MoveRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moves[gameID], nil
}

func (m *memoryStore) ArchiveGame(_ context.Context, game match.ArchivedGame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archived[game.GameID] = game
	return nil
}

func (m *memoryStore) GetArchivedGame(_ context.Context, gameID string) (*match.ArchivedGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.archived[gameID]
	if !ok {
		return nil, errors.ErrGameNotFound
	}
	return &game, nil
}

func testConfig() bootstrap.Config {
	return bootstrap.Config{
		BoardSize:       5,
		Komi:            7.5,
		MCTSRounds:      20,
		MCTSTemperature: 1.5,
		AlphaBetaDepth:  0,
		MaxGameMoves:    200,
		Seed:            1,
	}
}

func newTestUseCase(t *testing.T) (*MatchUseCase, *memoryStore) {
	t.Helper()
	cfg := testConfig()
	store := newMemoryStore()
	registry := agent.DefaultRegistry(agent.Settings{
		MCTSRounds:      cfg.MCTSRounds,
		MCTSTemperature: cfg.MCTSTemperature,
		AlphaBetaDepth:  cfg.AlphaBetaDepth,
	})
	return NewMatchUseCase(cfg, zap.NewNop().Sugar(), store, registry), store
}

func TestReplay(t *testing.T) {
	uc, _ := newTestUseCase(t)

	state, err := uc.Replay(match.SelectMoveRequest{BoardSize: 5, Moves: []string{"C3", "pass", "D4"}})
	require.NoError(t, err)
	assert.Equal(t, 3, state.MoveNumber())
	assert.Equal(t, 7.5, state.Komi())

	komi := 0.5
	state, err = uc.Replay(match.SelectMoveRequest{Komi: &komi})
	require.NoError(t, err)
	assert.Equal(t, 5, state.Board().NumRows(), "size falls back to the configured default")
	assert.Equal(t, 0.5, state.Komi())
}

func TestReplayErrors(t *testing.T) {
	uc, _ := newTestUseCase(t)

	tests := []struct {
		name string
		req  match.SelectMoveRequest
		want error
	}{
		{"too small", match.SelectMoveRequest{BoardSize: 1}, errors.ErrInvalidBoardSize},
		{"too large", match.SelectMoveRequest{BoardSize: 20}, errors.ErrInvalidBoardSize},
		{"bad coordinates", match.SelectMoveRequest{BoardSize: 5, Moves: []string{"Z9"}}, errors.ErrInvalidCoords},
		{"off board", match.SelectMoveRequest{BoardSize: 5, Moves: []string{"F1"}}, errors.ErrIllegalMove},
		{"occupied", match.SelectMoveRequest{BoardSize: 5, Moves: []string{"C3", "C3"}}, errors.ErrIllegalMove},
		{"after the end", match.SelectMoveRequest{BoardSize: 5, Moves: []string{"pass", "pass", "C3"}}, errors.ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Replay(tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSelectMove(t *testing.T) {
	uc, _ := newTestUseCase(t)

	for _, bot := range uc.Bots() {
		t.Run(bot, func(t *testing.T) {
			resp, err := uc.SelectMove(context.Background(), bot, match.SelectMoveRequest{BoardSize: 5, Moves: []string{"C3"}})
			require.NoError(t, err)
			assert.NotEmpty(t, resp.RequestID)

			// The reply must be playable in the position it answers.
			_, err = uc.Replay(match.SelectMoveRequest{BoardSize: 5, Moves: []string{"C3", resp.BotMove}})
			assert.NoError(t, err, "bot answered %s", resp.BotMove)
		})
	}
}

func TestSelectMoveMCTSDiagnostics(t *testing.T) {
	uc, _ := newTestUseCase(t)

	resp, err := uc.SelectMove(context.Background(), "mcts", match.SelectMoveRequest{BoardSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Diagnostics["rounds"])
}

func TestSelectMoveErrors(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.SelectMove(ctx, "gnugo", match.SelectMoveRequest{BoardSize: 5})
	assert.ErrorIs(t, err, errors.ErrUnknownBot)

	_, err = uc.SelectMove(ctx, "random", match.SelectMoveRequest{BoardSize: 5, Moves: []string{"pass", "pass"}})
	assert.ErrorIs(t, err, errors.ErrGameOver)

	_, err = uc.SelectMove(ctx, "random", match.SelectMoveRequest{BoardSize: 5, Moves: []string{"A0"}})
	assert.ErrorIs(t, err, errors.ErrInvalidCoords)
}

func TestScore(t *testing.T) {
	uc, _ := newTestUseCase(t)

	resp, err := uc.Score(match.SelectMoveRequest{BoardSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Dame)
	assert.Equal(t, "white", resp.Winner)
	assert.Equal(t, 7.5, resp.Margin)
	assert.Equal(t, "W+7.5", resp.Result)

	zero := 0.0
	resp, err = uc.Score(match.SelectMoveRequest{BoardSize: 5, Komi: &zero})
	require.NoError(t, err)
	assert.Equal(t, "draw", resp.Winner)
	assert.Equal(t, "0", resp.Result)

	// A lone black stone owns the whole board.
	resp, err = uc.Score(match.SelectMoveRequest{BoardSize: 5, Moves: []string{"C3"}, Komi: &zero})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.BlackStones)
	assert.Equal(t, 24, resp.BlackTerritory)
	assert.Equal(t, "B+25.0", resp.Result)
}

func TestSelfPlay(t *testing.T) {
	uc, store := newTestUseCase(t)

	var frames []match.MoveFrame
	game, err := uc.SelfPlay(context.Background(), match.SelfPlayRequest{Black: "random", White: "random", BoardSize: 5},
		func(f match.MoveFrame) error {
			frames = append(frames, f)
			return nil
		})
	require.NoError(t, err)

	require.NotEmpty(t, game.Moves)
	assert.Len(t, frames, len(game.Moves))
	assert.Equal(t, store.moves[game.GameID], game.Moves)
	for i, rec := range game.Moves {
		assert.Equal(t, i+1, rec.MoveNumber)
		if i%2 == 0 {
			assert.Equal(t, "B", rec.Color)
		} else {
			assert.Equal(t, "W", rec.Color)
		}
	}

	// Random bots never resign, so the game ends on two passes.
	n := len(game.Moves)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, "pass", game.Moves[n-1].Move)
	assert.Equal(t, "pass", game.Moves[n-2].Move)

	archived, err := uc.GetGame(context.Background(), game.GameID)
	require.NoError(t, err)
	assert.Equal(t, game.Result, archived.Result)
	assert.NotEqual(t, "draw", archived.Winner, "half-point komi rules out a draw")
	assert.True(t, strings.HasPrefix(archived.SGF, "(;FF[4]GM[1]SZ[5]PB[random]PW[random]"), archived.SGF)
	assert.Contains(t, archived.SGF, "RE["+game.Result+"]")

	live, err := uc.LiveMoves(context.Background(), game.GameID)
	require.NoError(t, err)
	assert.Equal(t, game.Moves, live)
}

func TestSelfPlayStopsOnCallbackError(t *testing.T) {
	uc, store := newTestUseCase(t)
	stop := assert.AnError

	game, err := uc.SelfPlay(context.Background(), match.SelfPlayRequest{Black: "random", White: "random"},
		func(match.MoveFrame) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Len(t, game.Moves, 1)
	assert.Empty(t, store.archived)
}

func TestSelfPlayHonoursMoveLimit(t *testing.T) {
	uc, store := newTestUseCase(t)
	uc.cfg.MaxGameMoves = 4

	game, err := uc.SelfPlay(context.Background(), match.SelfPlayRequest{Black: "random", White: "random", BoardSize: 9}, nil)
	require.NoError(t, err)
	assert.Len(t, game.Moves, 4)
	assert.Contains(t, store.archived, game.GameID)
	assert.NotEmpty(t, game.Winner)
}

func TestSelfPlayErrors(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.SelfPlay(ctx, match.SelfPlayRequest{Black: "random", White: "nobody"}, nil)
	assert.ErrorIs(t, err, errors.ErrUnknownBot)

	_, err = uc.SelfPlay(ctx, match.SelfPlayRequest{Black: "random", White: "random", BoardSize: 30}, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidBoardSize)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = uc.SelfPlay(cancelled, match.SelfPlayRequest{Black: "random", White: "random"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLiveMovesUnknownGame(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.LiveMoves(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrGameNotFound)
	_, err = uc.GetGame(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrGameNotFound)
}
