package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quiz-battle-service/internal/domain"
)

const leaderboardKey = "battle:leaderboard"

// ScoreSink persists final battle scores:
//   - ZINCRBY battle:leaderboard {points} {username} per participant
//   - SET battle:result:{battleID} {result JSON} for audit/debugging
//
// It implements app.ScoreSink.
type ScoreSink struct {
	client *redis.Client
}

func NewScoreSink(client *redis.Client) *ScoreSink {
	return &ScoreSink{client: client}
}

func (s *ScoreSink) SaveResult(ctx context.Context, result domain.BattleResult) error {
	pipe := s.client.Pipeline()
	for username, score := range result.Scores {
		pipe.ZIncrBy(ctx, leaderboardKey, float64(score), username)
	}
	if raw, err := json.Marshal(result); err == nil {
		pipe.Set(ctx, s.resultKey(result.BattleID), raw, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persist battle result: %w", err)
	}
	return nil
}

func (s *ScoreSink) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	members, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	entries := make([]domain.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		entries = append(entries, domain.LeaderboardEntry{
			Username: member.Member.(string),
			Points:   int(member.Score),
		})
	}
	return entries, nil
}

func (s *ScoreSink) resultKey(battleID string) string {
	return "battle:result:" + battleID
}
