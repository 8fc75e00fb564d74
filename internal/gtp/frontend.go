package gtp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"baduk/internal/agent"
	"baduk/internal/goboard"
	"baduk/internal/gotypes"
)

const (
	ProtocolVersion = "2"
	EngineName      = "baduk"
	EngineVersion   = "0.1"
	maxBoardSize    = len(gotypes.Cols)
)

var handicapStones = map[int][]string{
	2: {"D4", "Q16"},
	3: {"D4", "Q16", "D16"},
	4: {"D4", "Q16", "D16", "Q4"},
	5: {"D4", "Q16", "D16", "Q4", "K10"},
	6: {"D4", "Q16", "D16", "Q4", "D10", "Q10"},
	7: {"D4", "Q16", "D16", "Q4", "D10", "Q10", "K10"},
	8: {"D4", "Q16", "D16", "Q4", "D10", "Q10", "K4", "K16"},
	9: {"D4", "Q16", "D16", "Q4", "D10", "Q10", "K4", "K16", "K10"},
}

type handler func(ctx context.Context, args []string) Response

// Frontend answers GTP commands for one agent. The colour given to play and
// genmove is not checked; moves always go to the side to move.
type Frontend struct {
	agent     agent.Agent
	logger    *zap.SugaredLogger
	boardSize int
	komi      float64
	state     *goboard.GameState
	stopped   bool
	handlers  map[string]handler
}

func NewFrontend(a agent.Agent, boardSize int, komi float64, logger *zap.SugaredLogger) *Frontend {
	f := &Frontend{
		agent:     a,
		logger:    logger,
		boardSize: boardSize,
		komi:      komi,
	}
	f.state = goboard.NewGameWithKomi(boardSize, boardSize, komi)
	f.handlers = map[string]handler{
		"protocol_version": f.constant(ProtocolVersion),
		"name":             f.constant(EngineName),
		"version":          f.constant(EngineVersion),
		"known_command":    f.handleKnownCommand,
		"list_commands":    f.handleListCommands,
		"boardsize":        f.handleBoardSize,
		"clear_board":      f.handleClearBoard,
		"komi":             f.handleKomi,
		"fixed_handicap":   f.handleFixedHandicap,
		"play":             f.handlePlay,
		"genmove":          f.handleGenMove,
		"showboard":        f.handleShowBoard,
		"final_score":      f.handleFinalScore,
		"time_settings":    f.constant(""),
		"time_left":        f.constant(""),
		"quit":             f.handleQuit,
	}
	return f
}

// State is the current game position.
func (f *Frontend) State() *goboard.GameState {
	return f.state
}

// Run answers commands from in until quit, end of input or ctx is done.
func (f *Frontend) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	for !f.stopped && scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd, ok := ParseCommand(scanner.Text())
		if !ok {
			continue
		}
		resp := f.Process(ctx, cmd)
		if _, err := w.WriteString(Serialize(cmd, resp)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush response: %w", err)
		}
	}
	return scanner.Err()
}

func (f *Frontend) Process(ctx context.Context, cmd Command) Response {
	f.logger.Debugw("gtp command", "name", cmd.Name, "args", cmd.Args)
	h, ok := f.handlers[cmd.Name]
	if !ok {
		f.logger.Errorw("unknown gtp command", "name", cmd.Name)
		return failure("unknown command")
	}
	resp := h(ctx, cmd.Args)
	if !resp.Success {
		f.logger.Errorw("gtp command failed", "name", cmd.Name, "args", cmd.Args, "error", resp.Body)
	}
	return resp
}

func (f *Frontend) constant(body string) handler {
	return func(context.Context, []string) Response { return success(body) }
}

func (f *Frontend) handleKnownCommand(_ context.Context, args []string) Response {
	if len(args) != 1 {
		return failure("syntax error")
	}
	_, ok := f.handlers[args[0]]
	return boolResponse(ok)
}

func (f *Frontend) handleListCommands(context.Context, []string) Response {
	names := make([]string, 0, len(f.handlers))
	for name := range f.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return success(strings.Join(names, "\n"))
}

func (f *Frontend) handleBoardSize(_ context.Context, args []string) Response {
	if len(args) != 1 {
		return failure("syntax error")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return failure("syntax error")
	}
	if size < 2 || size > maxBoardSize {
		return failure("unacceptable size")
	}
	f.boardSize = size
	f.state = goboard.NewGameWithKomi(size, size, f.komi)
	return success("")
}

func (f *Frontend) handleClearBoard(context.Context, []string) Response {
	f.state = goboard.NewGameWithKomi(f.boardSize, f.boardSize, f.komi)
	return success("")
}

// handleKomi applies to the next game; the one in progress keeps its komi.
func (f *Frontend) handleKomi(_ context.Context, args []string) Response {
	if len(args) != 1 {
		return failure("syntax error")
	}
	komi, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return failure("syntax error")
	}
	f.komi = komi
	if f.state.MoveNumber() == 0 {
		f.state = goboard.NewGameWithKomi(f.boardSize, f.boardSize, komi)
	}
	return success("")
}

func (f *Frontend) handleFixedHandicap(_ context.Context, args []string) Response {
	if len(args) != 1 {
		return failure("syntax error")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return failure("syntax error")
	}
	stones, ok := handicapStones[n]
	if !ok || f.boardSize != 19 {
		return failure("invalid number of stones")
	}
	if f.state.MoveNumber() != 0 {
		return failure("board not empty")
	}
	board := goboard.NewBoard(f.boardSize, f.boardSize)
	for _, v := range stones {
		p, _ := PointFromCoords(v)
		board.PlaceStone(gotypes.Black, p)
	}
	f.state = goboard.NewGameFromBoard(board, gotypes.White, f.komi)
	return success(strings.Join(stones, " "))
}

func (f *Frontend) handlePlay(_ context.Context, args []string) Response {
	if len(args) != 2 {
		return failure("syntax error")
	}
	if _, err := ParseColor(args[0]); err != nil {
		return failure("syntax error")
	}
	m, err := MoveFromGTP(args[1])
	if err != nil {
		return failure("syntax error")
	}
	if !f.state.IsValidMove(m) {
		return failure("illegal move")
	}
	f.state = f.state.ApplyMove(m)
	return success("")
}

func (f *Frontend) handleGenMove(ctx context.Context, args []string) Response {
	if len(args) != 1 {
		return failure("syntax error")
	}
	if _, err := ParseColor(args[0]); err != nil {
		return failure("syntax error")
	}
	if f.state.IsOver() {
		return failure("game is over")
	}
	m := f.agent.SelectMove(ctx, f.state)
	if !f.state.IsValidMove(m) {
		f.logger.Errorw("agent chose an invalid move, passing instead", "move", m.String())
		m = goboard.PassTurn()
	}
	f.state = f.state.ApplyMove(m)
	return success(MoveToGTP(m))
}

func (f *Frontend) handleShowBoard(context.Context, []string) Response {
	return success("\n" + strings.TrimRight(f.state.Board().String(), "\n"))
}

func (f *Frontend) handleFinalScore(context.Context, []string) Response {
	result := f.state.Result()
	if _, ok := result.Winner(); !ok {
		return success("0")
	}
	return success(result.String())
}

func (f *Frontend) handleQuit(context.Context, []string) Response {
	f.stopped = true
	return success("")
}
