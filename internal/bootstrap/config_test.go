package bootstrap

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "baduk/internal/errors"
)

func TestSetupDefaultsWithoutFile(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 9, cfg.BoardSize)
	assert.Equal(t, 7.5, cfg.Komi)
	assert.Equal(t, 300, cfg.MCTSRounds)
	assert.Equal(t, "baduk", cfg.MongoDatabase)
}

func TestSetupReadsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BOARD_SIZE=13\nKOMI=6.5\nLOCAL_CORS=true\n"), 0o600))
	t.Setenv("MCTS_ROUNDS", "42")

	cfg, err := Setup(path)
	require.NoError(t, err)
	assert.Equal(t, 13, cfg.BoardSize)
	assert.Equal(t, 6.5, cfg.Komi)
	assert.True(t, cfg.IsLocalCors)
	assert.Equal(t, 42, cfg.MCTSRounds)
}

func TestValidate(t *testing.T) {
	t.Setenv("BOARD_SIZE", "25")
	_, err := Setup("")
	assert.True(t, stderrors.Is(err, apperrors.ErrInvalidBoardSize))

	cfg := Config{BoardSize: 9, MCTSRounds: 0, MaxGameMoves: 10}
	assert.Error(t, cfg.Validate())
	cfg.MCTSRounds = 10
	assert.NoError(t, cfg.Validate())
}
