package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"baduk/internal/agent"
	"baduk/internal/goboard"
	"baduk/internal/gotypes"
	"baduk/internal/gtp"
)

var (
	opponent  string
	playSize  int
	playWhite bool

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play Go against a bot on the terminal",
		Long: `Enter moves in GTP notation ("D4", "pass" or "resign"). The bot passes
when you pass, so two passes end and score the game.`,
		Args: cobra.NoArgs,
		RunE: runPlay,
	}
)

func init() {
	flags := playCmd.Flags()
	flags.StringVar(&opponent, "bot", "mcts", "bot to play against")
	flags.IntVar(&playSize, "size", 0, "board size (default BOARD_SIZE)")
	flags.BoolVar(&playWhite, "white", false, "take white and let the bot move first")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	size := playSize
	if size == 0 {
		size = cfg.BoardSize
	}
	if size < 2 || size > len(gotypes.Cols) {
		return fmt.Errorf("board size must be between 2 and %d", len(gotypes.Cols))
	}
	botSeed := cfg.Seed
	if botSeed == 0 {
		botSeed = time.Now().UnixNano()
	}
	bot, err := newRegistry(cfg).New(opponent, botSeed)
	if err != nil {
		return err
	}
	bot = agent.NewTerminationAgent(bot, agent.PassWhenOpponentPasses{})

	human := gotypes.Black
	if playWhite {
		human = gotypes.White
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	state := goboard.NewGameWithKomi(size, size, cfg.Komi)
	for !state.IsOver() {
		fmt.Fprint(out, state.Board())
		var move goboard.Move
		if state.NextPlayer() == human {
			move, err = readGoMove(in, out, state)
			if err != nil {
				return err
			}
		} else {
			move = bot.SelectMove(cmd.Context(), state)
			fmt.Fprintf(out, "%s plays %s\n", opponent, gtp.MoveToGTP(move))
		}
		state = state.ApplyMove(move)
	}

	fmt.Fprint(out, state.Board())
	if last, _ := state.LastMove(); last.IsResign() {
		winner, _ := state.Winner()
		fmt.Fprintf(out, "%s wins by resignation\n", winner)
		return nil
	}
	fmt.Fprintln(out, state.Result())
	return nil
}

func readGoMove(in *bufio.Scanner, out io.Writer, state *goboard.GameState) (goboard.Move, error) {
	for {
		fmt.Fprintf(out, "%s to play: ", state.NextPlayer())
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return goboard.Move{}, err
			}
			return goboard.Move{}, io.ErrUnexpectedEOF
		}
		move, err := gtp.MoveFromGTP(strings.TrimSpace(in.Text()))
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if !state.IsValidMove(move) {
			fmt.Fprintln(out, "illegal move")
			continue
		}
		return move, nil
	}
}
