package memory

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"quiz-battle-service/internal/app"
	"quiz-battle-service/internal/domain"
)

// DefaultQuestionsPerBattle is how many questions a battle draws from a topic.
const DefaultQuestionsPerBattle = 5

// BattleRegistry is the in-memory, process-lifetime store of battles.
// It implements app.BattleRegistry.
type BattleRegistry struct {
	questions app.QuestionRepository
	perBattle int
	rnd       *rand.Rand

	mu      sync.RWMutex
	battles map[string]*app.Battle
	order   []string // battle ids in creation order
}

func NewBattleRegistry(questions app.QuestionRepository, questionsPerBattle int) *BattleRegistry {
	if questionsPerBattle <= 0 {
		questionsPerBattle = DefaultQuestionsPerBattle
	}
	return &BattleRegistry{
		questions: questions,
		perBattle: questionsPerBattle,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		battles:   make(map[string]*app.Battle),
	}
}

// Create draws a random question subset for the topic and registers a waiting
// battle. Unknown topics yield an empty question set, never an error.
func (r *BattleRegistry) Create(ctx context.Context, creator, topic string) (*app.Battle, error) {
	bank, err := r.questions.QuestionsByTopic(ctx, topic)
	if err != nil {
		if !errors.Is(err, domain.ErrTopicNotFound) {
			return nil, err
		}
		bank = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	battle := app.NewBattle(r.newIDLocked(), creator, topic, r.drawLocked(bank))
	r.battles[battle.ID()] = battle
	r.order = append(r.order, battle.ID())
	return battle, nil
}

func (r *BattleRegistry) Get(battleID string) (*app.Battle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	battle, ok := r.battles[battleID]
	return battle, ok
}

// ListWaiting returns at most limit waiting battles in creation order,
// truncated from the front so the most recent ones survive.
func (r *BattleRegistry) ListWaiting(limit int) []domain.BattleSummary {
	r.mu.RLock()
	waiting := make([]*app.Battle, 0, len(r.order))
	for _, id := range r.order {
		if battle := r.battles[id]; battle.Status() == domain.BattleWaiting {
			waiting = append(waiting, battle)
		}
	}
	r.mu.RUnlock()

	if limit > 0 && len(waiting) > limit {
		waiting = waiting[len(waiting)-limit:]
	}
	summaries := make([]domain.BattleSummary, 0, len(waiting))
	for _, battle := range waiting {
		summaries = append(summaries, battle.Summary())
	}
	return summaries
}

// drawLocked selects up to perBattle questions without replacement, in
// scrambled order. The returned slice never aliases the bank.
func (r *BattleRegistry) drawLocked(bank []domain.Question) []domain.Question {
	drawn := make([]domain.Question, len(bank))
	copy(drawn, bank)
	r.rnd.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	if len(drawn) > r.perBattle {
		drawn = drawn[:r.perBattle]
	}
	return drawn
}

func (r *BattleRegistry) newIDLocked() string {
	for {
		id := "battle_" + uuid.NewString()
		if _, exists := r.battles[id]; !exists {
			return id
		}
	}
}
