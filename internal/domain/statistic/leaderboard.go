package statistic

import (
	"context"

	"github.com/questboard/backend/internal/repository"
	"github.com/questboard/backend/pkg/errorx"
	"github.com/questboard/backend/pkg/xcontext"
	"github.com/questboard/backend/pkg/xredis"

	"github.com/redis/go-redis/v9"
)

// Leaderboard mirrors per-guild approved-quest counts into redis sorted sets
// so rank lookups do not need a database scan. The database remains the
// source of truth; the mirror is rebuilt lazily whenever its key is missing.
type Leaderboard interface {
	GetRank(ctx context.Context, userID, guildID string) (uint64, error)
	ChangeQuestLeaderboard(ctx context.Context, value int64, userID, guildID string) error
}

type leaderboard struct {
	statsRepo   repository.UserStatsRepository
	redisClient xredis.Client
}

func New(statsRepo repository.UserStatsRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{statsRepo: statsRepo, redisClient: redisClient}
}

func (l *leaderboard) GetRank(ctx context.Context, userID, guildID string) (uint64, error) {
	key := redisKeyQuestLeaderBoard(guildID)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return 0, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadLeaderboardFromDB(ctx, guildID); err != nil {
			return 0, err
		}
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangeQuestLeaderboard(
	ctx context.Context, value int64, userID, guildID string,
) error {
	key := redisKeyQuestLeaderBoard(guildID)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, no need to update.
	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, key, value, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)

		// The mirror no longer agrees with the database. Drop the key so the
		// next rank lookup rebuilds it from the source of truth.
		if err := l.redisClient.Del(ctx, key); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot del redis: %v", err)
		}
	}

	return nil
}

func (l *leaderboard) loadLeaderboardFromDB(ctx context.Context, guildID string) error {
	stats, err := l.statsRepo.GetByGuild(ctx, guildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load statistic from database: %v", err)
		return errorx.Unknown
	}

	key := redisKeyQuestLeaderBoard(guildID)
	for _, s := range stats {
		err := l.redisClient.ZAdd(ctx, key, redis.Z{Member: s.UserID, Score: float64(s.QuestsCompleted)})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
