package match

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"baduk/internal/agent"
	"baduk/internal/bootstrap"
	"baduk/internal/domain/match"
	"baduk/internal/errors"
	"baduk/internal/goboard"
	"baduk/internal/gotypes"
	"baduk/internal/gtp"
	"baduk/internal/scoring"
)

type MatchStore interface {
	AppendMove(ctx context.Context, gameID string, move match.MoveRecord) error
	Moves(ctx context.Context, gameID string) ([]match.MoveRecord, error)
	ArchiveGame(ctx context.Context, game match.ArchivedGame) error
	GetArchivedGame(ctx context.Context, gameID string) (*match.ArchivedGame, error)
}

type MatchUseCase struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	store    MatchStore
	registry *agent.Registry
	baseSeed int64
	seeds    atomic.Int64
}

func NewMatchUseCase(cfg bootstrap.Config, log *zap.SugaredLogger, store MatchStore, registry *agent.Registry) *MatchUseCase {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MatchUseCase{
		cfg:      cfg,
		log:      log,
		store:    store,
		registry: registry,
		baseSeed: seed,
	}
}

func (u *MatchUseCase) nextSeed() int64 {
	return u.baseSeed + u.seeds.Add(1)
}

func (u *MatchUseCase) Bots() []string {
	return u.registry.Names()
}

// Replay rebuilds the position described by req. Unparseable moves fail with
// ErrInvalidCoords and rule violations with ErrIllegalMove.
func (u *MatchUseCase) Replay(req match.SelectMoveRequest) (*goboard.GameState, error) {
	size := req.BoardSize
	if size == 0 {
		size = u.cfg.BoardSize
	}
	if size < 2 || size > len(gotypes.Cols) {
		return nil, fmt.Errorf("board size %d: %w", size, errors.ErrInvalidBoardSize)
	}
	komi := u.cfg.Komi
	if req.Komi != nil {
		komi = *req.Komi
	}

	state := goboard.NewGameWithKomi(size, size, komi)
	for i, s := range req.Moves {
		m, err := gtp.MoveFromGTP(s)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if !state.IsValidMove(m) {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, s, errors.ErrIllegalMove)
		}
		state = state.ApplyMove(m)
	}
	return state, nil
}

func (u *MatchUseCase) SelectMove(ctx context.Context, botName string, req match.SelectMoveRequest) (match.BotMoveResponse, error) {
	bot, err := u.registry.New(botName, u.nextSeed())
	if err != nil {
		return match.BotMoveResponse{}, err
	}
	state, err := u.Replay(req)
	if err != nil {
		return match.BotMoveResponse{}, err
	}
	if state.IsOver() {
		return match.BotMoveResponse{}, errors.ErrGameOver
	}

	m := bot.SelectMove(ctx, state)
	u.log.Debugw("bot selected move", "bot", botName, "move", m.String(), "move_number", state.MoveNumber()+1)
	return match.BotMoveResponse{
		BotMove:     gtp.MoveToGTP(m),
		Diagnostics: agent.Diagnostics(bot),
		RequestID:   uuid.New().String(),
	}, nil
}

func (u *MatchUseCase) Score(req match.SelectMoveRequest) (match.ScoreResponse, error) {
	state, err := u.Replay(req)
	if err != nil {
		return match.ScoreResponse{}, err
	}
	territory := scoring.EvaluateTerritory(state.Board())
	result := state.Result()
	winner, _ := result.Winner()
	return match.ScoreResponse{
		BlackStones:    territory.NumBlackStones(),
		WhiteStones:    territory.NumWhiteStones(),
		BlackTerritory: territory.NumBlackTerritory(),
		WhiteTerritory: territory.NumWhiteTerritory(),
		Dame:           territory.Dame,
		Komi:           result.Komi,
		Winner:         colorName(winner),
		Margin:         result.WinningMargin(),
		Result:         resultString(state),
	}, nil
}

// SelfPlay plays one bot-versus-bot game. Every move is appended to the live
// store and passed to onMove; the finished game is archived. Both bots pass
// as soon as their opponent does.
func (u *MatchUseCase) SelfPlay(ctx context.Context, req match.SelfPlayRequest, onMove func(match.MoveFrame) error) (match.ArchivedGame, error) {
	size := req.BoardSize
	if size == 0 {
		size = u.cfg.BoardSize
	}
	if size < 2 || size > len(gotypes.Cols) {
		return match.ArchivedGame{}, fmt.Errorf("board size %d: %w", size, errors.ErrInvalidBoardSize)
	}
	bots := make(map[gotypes.Player]agent.Agent, 2)
	for _, side := range []struct {
		color gotypes.Player
		name  string
	}{{gotypes.Black, req.Black}, {gotypes.White, req.White}} {
		bot, err := u.registry.New(side.name, u.nextSeed())
		if err != nil {
			return match.ArchivedGame{}, err
		}
		bots[side.color] = agent.NewTerminationAgent(bot, agent.PassWhenOpponentPasses{})
	}

	game := match.ArchivedGame{
		GameID:    uuid.New().String(),
		BoardSize: size,
		Komi:      u.cfg.Komi,
		Black:     req.Black,
		White:     req.White,
		CreatedAt: time.Now().UTC(),
	}
	u.log.Infow("self-play started", "game_id", game.GameID, "black", req.Black, "white", req.White, "board_size", size)

	state := goboard.NewGameWithKomi(size, size, u.cfg.Komi)
	for len(game.Moves) < u.cfg.MaxGameMoves && !state.IsOver() {
		if err := ctx.Err(); err != nil {
			return game, fmt.Errorf("self-play %s: %w", game.GameID, err)
		}
		player := state.NextPlayer()
		m := bots[player].SelectMove(ctx, state)
		if !state.IsValidMove(m) {
			u.log.Warnw("bot chose an invalid move, passing instead", "game_id", game.GameID, "move", m.String())
			m = goboard.PassTurn()
		}
		state = state.ApplyMove(m)

		rec := match.MoveRecord{
			MoveNumber: state.MoveNumber(),
			Color:      colorLetter(player),
			Move:       gtp.MoveToGTP(m),
		}
		game.Moves = append(game.Moves, rec)
		if err := u.store.AppendMove(ctx, game.GameID, rec); err != nil {
			return game, fmt.Errorf("store move: %w", err)
		}
		if onMove != nil {
			if err := onMove(match.MoveFrame{MoveRecord: rec, Board: state.Board().String()}); err != nil {
				return game, err
			}
		}
	}

	u.finish(&game, state)
	if err := u.store.ArchiveGame(ctx, game); err != nil {
		return game, fmt.Errorf("archive game: %w", err)
	}
	u.log.Infow("self-play finished", "game_id", game.GameID, "result", game.Result, "moves", len(game.Moves))
	return game, nil
}

func (u *MatchUseCase) finish(game *match.ArchivedGame, state *goboard.GameState) {
	game.FinishedAt = time.Now().UTC()
	game.Result = resultString(state)

	last, _ := state.LastMove()
	if state.IsOver() && last.IsResign() {
		winner, _ := state.Winner()
		game.Winner = colorName(winner)
	} else {
		// An unfinished game is scored as it stands.
		result := state.Result()
		winner, _ := result.Winner()
		game.Winner = colorName(winner)
		game.Margin = result.WinningMargin()
	}

	tree := PrepareSgfFile(*game)
	if err := AddMovesToSgf(tree.Root, game.BoardSize, game.Moves); err != nil {
		u.log.Errorw("failed to build sgf", "game_id", game.GameID, "error", err)
		return
	}
	game.SGF = SerializeSGF(&tree)
	u.log.Debugw("sgf built", "game_id", game.GameID, "sgf_moves", tree.Root.MainLineMoves())
}

func (u *MatchUseCase) GetGame(ctx context.Context, gameID string) (*match.ArchivedGame, error) {
	return u.store.GetArchivedGame(ctx, gameID)
}

// LiveMoves returns the moves of a game that may still be in progress.
func (u *MatchUseCase) LiveMoves(ctx context.Context, gameID string) ([]match.MoveRecord, error) {
	moves, err := u.store.Moves(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, errors.ErrGameNotFound
	}
	return moves, nil
}

func colorName(p gotypes.Player) string {
	switch p {
	case gotypes.Black:
		return "black"
	case gotypes.White:
		return "white"
	}
	return "draw"
}

func colorLetter(p gotypes.Player) string {
	if p == gotypes.White {
		return "W"
	}
	return "B"
}

// resultString follows SGF's RE property: "B+R" for a resignation, "0" for a
// draw.
func resultString(state *goboard.GameState) string {
	if last, ok := state.LastMove(); ok && last.IsResign() {
		winner, _ := state.Winner()
		return colorLetter(winner) + "+R"
	}
	result := state.Result()
	if _, ok := result.Winner(); !ok {
		return "0"
	}
	return result.String()
}
