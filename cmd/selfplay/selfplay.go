package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"baduk/internal/domain/match"
	repo "baduk/internal/repository"
	matchuc "baduk/internal/usecase/match"
)

var (
	blackBot   string
	whiteBot   string
	numGames   int
	selfPlaySz int
	showSGF    bool

	selfPlayCmd = &cobra.Command{
		Use:   "selfplay",
		Short: "Play bot against bot and print the win tally",
		Args:  cobra.NoArgs,
		RunE:  runSelfPlay,
	}
)

func init() {
	flags := selfPlayCmd.Flags()
	flags.StringVar(&blackBot, "black", "mcts", "bot playing black")
	flags.StringVar(&whiteBot, "white", "random", "bot playing white")
	flags.IntVarP(&numGames, "games", "n", 10, "number of games")
	flags.IntVar(&selfPlaySz, "size", 0, "board size (default BOARD_SIZE)")
	flags.BoolVar(&showSGF, "sgf", false, "print the SGF of every game")
}

type tally struct {
	black, white, draws int
}

func (t *tally) add(winner string) {
	switch winner {
	case "black":
		t.black++
	case "white":
		t.white++
	default:
		t.draws++
	}
}

func runSelfPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	uc := matchuc.NewMatchUseCase(*cfg, logger, repo.NewMemoryMatchStore(), newRegistry(cfg))
	out := cmd.OutOrStdout()

	var t tally
	for i := 1; i <= numGames; i++ {
		game, err := uc.SelfPlay(cmd.Context(), match.SelfPlayRequest{
			Black:     blackBot,
			White:     whiteBot,
			BoardSize: selfPlaySz,
		}, nil)
		if err != nil {
			return err
		}
		t.add(game.Winner)
		fmt.Fprintf(out, "game %d: %s after %d moves\n", i, game.Result, len(game.Moves))
		if showSGF {
			fmt.Fprintln(out, game.SGF)
		}
	}

	fmt.Fprintf(out, "\n%s (black) %d, %s (white) %d, draws %d\n", blackBot, t.black, whiteBot, t.white, t.draws)
	return nil
}
