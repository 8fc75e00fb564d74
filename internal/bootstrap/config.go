package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	apperrors "baduk/internal/errors"
)

type Config struct {
	ServerPort      string  `mapstructure:"SERVER_PORT"`
	GrpcPort        string  `mapstructure:"GRPC_PORT"`
	RedisUrl        string  `mapstructure:"REDIS_URL"`
	MongoUri        string  `mapstructure:"MONGO_URI"`
	MongoDatabase   string  `mapstructure:"MONGO_DATABASE"`
	IsLocalCors     bool    `mapstructure:"LOCAL_CORS"`
	LogDebug        bool    `mapstructure:"LOG_DEBUG"`
	BoardSize       int     `mapstructure:"BOARD_SIZE"`
	Komi            float64 `mapstructure:"KOMI"`
	MCTSRounds      int     `mapstructure:"MCTS_ROUNDS"`
	MCTSTemperature float64 `mapstructure:"MCTS_TEMPERATURE"`
	AlphaBetaDepth  int     `mapstructure:"ALPHABETA_DEPTH"`
	MaxGameMoves    int     `mapstructure:"MAX_GAME_MOVES"`
	MatchTTLMinutes int     `mapstructure:"MATCH_TTL_MINUTES"`
	Seed            int64   `mapstructure:"SEED"`
}

var defaults = map[string]any{
	"SERVER_PORT":       "8080",
	"GRPC_PORT":         "8082",
	"REDIS_URL":         "localhost:6379",
	"MONGO_URI":         "mongodb://localhost:27017",
	"MONGO_DATABASE":    "baduk",
	"LOCAL_CORS":        false,
	"LOG_DEBUG":         false,
	"BOARD_SIZE":        9,
	"KOMI":              7.5,
	"MCTS_ROUNDS":       300,
	"MCTS_TEMPERATURE":  1.5,
	"ALPHABETA_DEPTH":   1,
	"MAX_GAME_MOVES":    400,
	"MATCH_TTL_MINUTES": 60,
	"SEED":              0,
}

// Setup reads cfgPath if it exists. Environment variables override the file
// and every key has a default.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.BoardSize < 2 || c.BoardSize > 19 {
		return fmt.Errorf("BOARD_SIZE %d: %w", c.BoardSize, apperrors.ErrInvalidBoardSize)
	}
	if c.MCTSRounds <= 0 {
		return fmt.Errorf("MCTS_ROUNDS must be positive, got %d", c.MCTSRounds)
	}
	if c.AlphaBetaDepth < 0 {
		return fmt.Errorf("ALPHABETA_DEPTH must not be negative, got %d", c.AlphaBetaDepth)
	}
	if c.MaxGameMoves <= 0 {
		return fmt.Errorf("MAX_GAME_MOVES must be positive, got %d", c.MaxGameMoves)
	}
	return nil
}
