package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"baduk/internal/bootstrap"
	"baduk/internal/domain/match"
	apperrors "baduk/internal/errors"
)

const gamesCollection = "games"

// MatchRepository keeps the moves of running games in redis lists and
// archives finished games in mongo.
type MatchRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewMatchRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *MatchRepository {
	return &MatchRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func movesKey(gameID string) string {
	return fmt.Sprintf("match:%s:moves", gameID)
}

func (m *MatchRepository) ttl() time.Duration {
	return time.Duration(m.cfg.MatchTTLMinutes) * time.Minute
}

func (m *MatchRepository) AppendMove(ctx context.Context, gameID string, move match.MoveRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("marshal move: %w", err)
	}
	key := movesKey(gameID)
	pipe := m.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	if ttl := m.ttl(); ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		m.log.Errorf("failed to append move to %s: %v", key, err)
		return err
	}
	return nil
}

func (m *MatchRepository) Moves(ctx context.Context, gameID string) ([]match.MoveRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := m.redis.LRange(ctx, movesKey(gameID), 0, -1).Result()
	if err != nil {
		m.log.Errorf("failed to read moves of game %s: %v", gameID, err)
		return nil, err
	}
	moves := make([]match.MoveRecord, 0, len(raw))
	for _, item := range raw {
		var rec match.MoveRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decode move of game %s: %w", gameID, err)
		}
		moves = append(moves, rec)
	}
	return moves, nil
}

func (m *MatchRepository) ArchiveGame(ctx context.Context, game match.ArchivedGame) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := m.mongo.Collection(gamesCollection).InsertOne(ctx, game); err != nil {
		m.log.Errorf("failed to archive game %s: %v", game.GameID, err)
		return err
	}
	m.log.Infof("game %s archived", game.GameID)
	return nil
}

func (m *MatchRepository) GetArchivedGame(ctx context.Context, gameID string) (*match.ArchivedGame, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var game match.ArchivedGame
	err := m.mongo.Collection(gamesCollection).FindOne(ctx, bson.M{"game_id": gameID}).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrGameNotFound
	} else if err != nil {
		m.log.Error(err)
		return nil, err
	}
	return &game, nil
}
