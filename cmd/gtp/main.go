package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"baduk/internal/agent"
	"baduk/internal/bootstrap"
	"baduk/internal/gtp"
)

var (
	configPath  string
	botName     string
	boardSize   int
	komi        float64
	termination string
	seed        int64
	debug       bool

	rootCmd = &cobra.Command{
		Use:   "baduk-gtp",
		Short: "Run a bot as a GTP engine on stdin/stdout",
		Long: `baduk-gtp speaks the Go Text Protocol so the bots can be attached to
GoGui, Sabaki, gnugo twogtp and other GTP controllers.`,
		SilenceUsage: true,
		RunE:         runEngine,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", ".env", "config file with bot settings")
	flags.StringVar(&botName, "bot", "mcts", "bot to play with")
	flags.IntVar(&boardSize, "size", 0, "initial board size (default BOARD_SIZE)")
	flags.Float64Var(&komi, "komi", -1, "initial komi (default KOMI)")
	flags.StringVar(&termination, "termination", "opponent_passes", "termination strategy: none or opponent_passes")
	flags.Int64Var(&seed, "seed", 0, "random seed (default SEED, or the clock)")
	flags.BoolVar(&debug, "debug", false, "log every command to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEngine(cmd *cobra.Command, _ []string) error {
	cfg, err := bootstrap.Setup(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(debug || cfg.LogDebug)
	defer logger.Sync()

	if boardSize == 0 {
		boardSize = cfg.BoardSize
	}
	if komi < 0 {
		komi = cfg.Komi
	}
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	strategy, err := agent.TerminationByName(termination)
	if err != nil {
		return err
	}
	registry := agent.DefaultRegistry(agent.Settings{
		MCTSRounds:      cfg.MCTSRounds,
		MCTSTemperature: cfg.MCTSTemperature,
		AlphaBetaDepth:  cfg.AlphaBetaDepth,
	})
	bot, err := registry.New(botName, seed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infow("gtp engine started", "bot", botName, "size", boardSize, "komi", komi, "termination", termination)
	frontend := gtp.NewFrontend(agent.NewTerminationAgent(bot, strategy), boardSize, komi, logger)
	return frontend.Run(ctx, os.Stdin, os.Stdout)
}

// newLogger logs to stderr; stdout carries the protocol.
func newLogger(debug bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

