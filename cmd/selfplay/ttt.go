package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"baduk/internal/game"
	"baduk/internal/gotypes"
	"baduk/internal/minimax"
	"baduk/internal/ttt"
)

var (
	humanSecond bool

	tttCmd = &cobra.Command{
		Use:   "ttt",
		Short: "Play Tic-Tac-Toe against an exhaustive minimax bot",
		Long: `Enter moves as "row col" with rows and columns numbered 1 to 3 from
the top left. The bot never loses.`,
		Args: cobra.NoArgs,
		RunE: runTTT,
	}
)

func init() {
	tttCmd.Flags().BoolVar(&humanSecond, "second", false, "let the bot play X and move first")
}

func runTTT(cmd *cobra.Command, _ []string) error {
	rngSeed := seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	bot := minimax.NewAgent[*ttt.GameState, ttt.Move](rand.New(rand.NewSource(rngSeed)))
	human := ttt.X
	if humanSecond {
		human = ttt.O
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	state := ttt.NewGame()
	for !state.IsOver() {
		fmt.Fprintln(out, state)
		var move ttt.Move
		if state.NextPlayer() == human {
			m, err := readTTTMove(in, out, state)
			if err != nil {
				return err
			}
			move = m
		} else {
			m, ok := bot.SelectMove(cmd.Context(), state)
			if !ok {
				break
			}
			fmt.Fprintf(out, "bot plays %d %d\n", m.Point.Row, m.Point.Col)
			move = m
		}
		state = state.ApplyMove(move)
	}

	fmt.Fprintln(out, state)
	switch outcome, winner := game.OutcomeOf[*ttt.GameState, ttt.Move](state); {
	case outcome != game.Won:
		fmt.Fprintln(out, "draw")
	case winner == human:
		fmt.Fprintln(out, "you win")
	default:
		fmt.Fprintln(out, "bot wins")
	}
	return nil
}

func readTTTMove(in *bufio.Scanner, out io.Writer, state *ttt.GameState) (ttt.Move, error) {
	for {
		fmt.Fprint(out, "your move: ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return ttt.Move{}, err
			}
			return ttt.Move{}, io.ErrUnexpectedEOF
		}
		fields := strings.Fields(in.Text())
		if len(fields) != 2 {
			fmt.Fprintln(out, `enter "row col", for example "2 2"`)
			continue
		}
		row, errRow := strconv.Atoi(fields[0])
		col, errCol := strconv.Atoi(fields[1])
		move := ttt.Move{Point: gotypes.Point{Row: row, Col: col}}
		if errRow != nil || errCol != nil || !state.IsValidMove(move) {
			fmt.Fprintln(out, "illegal move")
			continue
		}
		return move, nil
	}
}
