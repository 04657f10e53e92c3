package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/dnadash-backend/internal/config"
	"github.com/stemsi/dnadash-backend/internal/game"
)

// HighScoreRepository keeps per-player high scores in Redis. It implements
// game.HighScoreStore.
type HighScoreRepository struct {
	rdb *redis.Client
}

func NewHighScoreRepository(rdb *redis.Client) *HighScoreRepository {
	return &HighScoreRepository{rdb: rdb}
}

// Get returns the stored high score, or 0 when none exists.
func (r *HighScoreRepository) Get(ctx context.Context, player game.Player) (int, error) {
	key := config.CacheKey.HighScoreKey(player.FirstName, player.NormalizedTeacherName)
	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return score, nil
}

// Set stores a new high score. Scores never expire.
func (r *HighScoreRepository) Set(ctx context.Context, player game.Player, score int) error {
	key := config.CacheKey.HighScoreKey(player.FirstName, player.NormalizedTeacherName)
	return r.rdb.Set(ctx, key, strconv.Itoa(score), 0).Err()
}
