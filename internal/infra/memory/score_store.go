package memory

import (
	"context"
	"sort"
	"sync"

	"quiz-battle-service/internal/domain"
)

// ScoreStore keeps battle results and accumulated points in memory.
// It implements app.ScoreSink.
type ScoreStore struct {
	mu      sync.RWMutex
	points  map[string]int
	results []domain.BattleResult
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{points: make(map[string]int)}
}

func (s *ScoreStore) SaveResult(_ context.Context, result domain.BattleResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for username, score := range result.Scores {
		s.points[username] += score
	}
	s.results = append(s.results, result)
	return nil
}

func (s *ScoreStore) Leaderboard(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	entries := make([]domain.LeaderboardEntry, 0, len(s.points))
	for username, points := range s.points {
		entries = append(entries, domain.LeaderboardEntry{Username: username, Points: points})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Username < entries[j].Username
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Results returns the stored battle results in completion order.
func (s *ScoreStore) Results() []domain.BattleResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BattleResult, len(s.results))
	copy(out, s.results)
	return out
}
