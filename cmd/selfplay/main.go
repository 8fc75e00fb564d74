package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"baduk/internal/agent"
	"baduk/internal/bootstrap"
)

var (
	configPath string
	seed       int64
	verbose    bool

	rootCmd = &cobra.Command{
		Use:          "baduk",
		Short:        "Play Go and Tic-Tac-Toe against the bots on the terminal",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "config file with bot settings")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (default SEED, or the clock)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(selfPlayCmd, tttCmd, playCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*bootstrap.Config, error) {
	cfg, err := bootstrap.Setup(configPath)
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func newRegistry(cfg *bootstrap.Config) *agent.Registry {
	return agent.DefaultRegistry(agent.Settings{
		MCTSRounds:      cfg.MCTSRounds,
		MCTSTemperature: cfg.MCTSTemperature,
		AlphaBetaDepth:  cfg.AlphaBetaDepth,
	})
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
