package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-battle-service/internal/domain"
)

// QuestionLoader fetches question-bank content from a backing store.
type QuestionLoader interface {
	LoadTopic(ctx context.Context, topic string) ([]domain.Question, error)
	ListTopics(ctx context.Context) ([]domain.TopicSummary, error)
}

// QuestionRepository caches topic question sets with TTL to avoid repeated
// backing-store hits. It implements app.QuestionRepository.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedTopic
}

type cachedTopic struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedTopic),
	}
}

func (r *QuestionRepository) QuestionsByTopic(ctx context.Context, topic string) ([]domain.Question, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[topic]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.questions, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(topic, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[topic]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.questions, nil
		}
		r.mu.RUnlock()

		questions, err := r.loader.LoadTopic(ctx, topic)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[topic] = cachedTopic{
			questions: questions,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *QuestionRepository) Topics(ctx context.Context) ([]domain.TopicSummary, error) {
	return r.loader.ListTopics(ctx)
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticTopic is one category of the built-in question bank.
type StaticTopic struct {
	Name       string
	Difficulty int
	Questions  []domain.Question
}

// StaticQuestionLoader serves questions from an in-memory bank (the default
// when no database is configured, and handy in tests).
type StaticQuestionLoader struct {
	topics map[string]StaticTopic
}

func NewStaticQuestionLoader(topics map[string]StaticTopic) *StaticQuestionLoader {
	return &StaticQuestionLoader{topics: topics}
}

func (l *StaticQuestionLoader) LoadTopic(_ context.Context, topic string) ([]domain.Question, error) {
	if t, ok := l.topics[topic]; ok {
		return t.Questions, nil
	}
	return nil, domain.ErrTopicNotFound
}

func (l *StaticQuestionLoader) ListTopics(_ context.Context) ([]domain.TopicSummary, error) {
	summaries := make([]domain.TopicSummary, 0, len(l.topics))
	for id, t := range l.topics {
		summaries = append(summaries, domain.TopicSummary{
			ID:            id,
			Name:          t.Name,
			QuestionCount: len(t.Questions),
			Difficulty:    t.Difficulty,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}
