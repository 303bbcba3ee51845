package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"quiz-battle-service/internal/domain"
)

// PointsPerCorrect is the fixed score increment for a correct answer.
const PointsPerCorrect = 10

// Message kinds exchanged over the battle channel.
const (
	EventBattleAnswer   = "battle_answer"
	EventBattleStart    = "battle_start"
	EventBattleUpdate   = "battle_update"
	EventBattleComplete = "battle_complete"
)

// BattleEvent is the wire shape of every outbound battle notification.
type BattleEvent struct {
	Type     string                `json:"type"`
	BattleID string                `json:"battleId"`
	Data     *domain.BattleSession `json:"data,omitempty"`
	Scores   map[string]int        `json:"scores,omitempty"`
	Winner   string                `json:"winner,omitempty"`
}

// BattleRegistry abstracts how battles are stored for the process lifetime.
type BattleRegistry interface {
	Create(ctx context.Context, creator, topic string) (*Battle, error)
	Get(battleID string) (*Battle, bool)
	ListWaiting(limit int) []domain.BattleSummary
}

// QuestionRepository loads question sets by topic (from cache/backing store).
type QuestionRepository interface {
	QuestionsByTopic(ctx context.Context, topic string) ([]domain.Question, error)
	Topics(ctx context.Context) ([]domain.TopicSummary, error)
}

// ScoreSink persists final battle scores and serves the leaderboard read side.
type ScoreSink interface {
	SaveResult(ctx context.Context, result domain.BattleResult) error
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// Broadcaster fans battle events out to every connected client.
type Broadcaster interface {
	Broadcast(event BattleEvent)
}

// BattleService contains the battle use cases: create, list, join, answer.
type BattleService struct {
	battles   BattleRegistry
	questions QuestionRepository
	scores    ScoreSink
	hub       Broadcaster
}

func NewBattleService(battles BattleRegistry, questions QuestionRepository, scores ScoreSink, hub Broadcaster) *BattleService {
	return &BattleService{battles: battles, questions: questions, scores: scores, hub: hub}
}

// CreateBattle opens a new waiting battle for the creator on the given topic.
// Unknown topics are not an error: the battle simply holds no questions.
func (s *BattleService) CreateBattle(ctx context.Context, username, topic string) (domain.BattleSession, error) {
	battle, err := s.battles.Create(ctx, username, topic)
	if err != nil {
		return domain.BattleSession{}, err
	}
	return battle.Snapshot(), nil
}

// ListWaitingBattles returns at most limit joinable battles, oldest first
// among the most recently created.
func (s *BattleService) ListWaitingBattles(_ context.Context, limit int) []domain.BattleSummary {
	return s.battles.ListWaiting(limit)
}

// JoinBattle attaches the opponent, activates the battle, and announces it.
func (s *BattleService) JoinBattle(ctx context.Context, battleID, username string) (domain.BattleSession, error) {
	battle, ok := s.battles.Get(battleID)
	if !ok {
		return domain.BattleSession{}, domain.ErrBattleNotFound
	}

	session, err := battle.Join(username)
	if err != nil {
		return domain.BattleSession{}, err
	}

	s.hub.Broadcast(BattleEvent{
		Type:     EventBattleStart,
		BattleID: battleID,
		Data:     &session,
	})
	return session, nil
}

// SubmitAnswer applies one answer event to a battle. Accepted answers are
// broadcast as battle_update; the completing answer additionally persists the
// result and broadcasts battle_complete exactly once.
func (s *BattleService) SubmitAnswer(ctx context.Context, battleID, username string, correct bool) error {
	battle, ok := s.battles.Get(battleID)
	if !ok {
		return domain.ErrBattleNotFound
	}

	outcome, err := battle.ApplyAnswer(username, correct)
	if err != nil {
		return err
	}
	if !outcome.Accepted {
		return nil
	}

	s.hub.Broadcast(BattleEvent{
		Type:     EventBattleUpdate,
		BattleID: battleID,
		Scores:   outcome.Scores,
	})

	if outcome.Completed {
		if err := s.scores.SaveResult(ctx, outcome.Result); err != nil {
			log.Error().Err(err).Str("battle_id", battleID).Msg("persist battle result")
		}
		s.hub.Broadcast(BattleEvent{
			Type:     EventBattleComplete,
			BattleID: battleID,
			Winner:   outcome.Result.Winner,
			Scores:   outcome.Scores,
		})
	}
	return nil
}

// Topics exposes the question-bank categories.
func (s *BattleService) Topics(ctx context.Context) ([]domain.TopicSummary, error) {
	return s.questions.Topics(ctx)
}

// Leaderboard returns the accumulated battle points, highest first.
func (s *BattleService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.scores.Leaderboard(ctx, limit)
}

// Battle is the in-memory state of one 1v1 session. All mutation goes through
// its mutex; snapshots copy the mutable parts.
type Battle struct {
	id        string
	creator   string
	topic     string
	createdAt time.Time
	questions []domain.Question
	now       func() time.Time

	mu       sync.Mutex
	opponent string
	scores   map[string]int
	answered map[string]int
	status   domain.BattleStatus
}

// NewBattle builds a waiting battle with the creator as sole participant.
func NewBattle(id, creator, topic string, questions []domain.Question) *Battle {
	return NewBattleWithClock(id, creator, topic, questions, time.Now)
}

// NewBattleWithClock is for deterministic timestamps in tests.
func NewBattleWithClock(id, creator, topic string, questions []domain.Question, now func() time.Time) *Battle {
	return &Battle{
		id:        id,
		creator:   creator,
		topic:     topic,
		createdAt: now(),
		questions: questions,
		now:       now,
		scores:    map[string]int{creator: 0},
		answered:  map[string]int{creator: 0},
		status:    domain.BattleWaiting,
	}
}

func (b *Battle) ID() string { return b.id }

func (b *Battle) Status() domain.BattleStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Join transitions waiting -> active. Rejects self-joins and any battle that
// already has an opponent or finished.
func (b *Battle) Join(username string) (domain.BattleSession, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != domain.BattleWaiting {
		return domain.BattleSession{}, domain.ErrBattleNotJoinable
	}
	if username == b.creator {
		return domain.BattleSession{}, domain.ErrSelfJoin
	}

	b.opponent = username
	b.scores[username] = 0
	b.answered[username] = 0
	b.status = domain.BattleActive
	return b.snapshotLocked(), nil
}

// AnswerOutcome reports what a single answer event did to the battle.
type AnswerOutcome struct {
	Accepted  bool
	Completed bool
	Scores    map[string]int
	Result    domain.BattleResult
}

// ApplyAnswer records one answer for a participant. Every attributed answer,
// correct or not, advances that participant's progress; only correct answers
// score. The battle completes when both participants have answered every
// question. Events for inactive battles or exhausted participants are ignored.
func (b *Battle) ApplyAnswer(username string, correct bool) (AnswerOutcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != domain.BattleActive {
		return AnswerOutcome{}, nil
	}
	if _, ok := b.scores[username]; !ok {
		return AnswerOutcome{}, domain.ErrParticipantNotFound
	}
	if b.answered[username] >= len(b.questions) {
		return AnswerOutcome{}, nil
	}

	b.answered[username]++
	if correct {
		b.scores[username] += PointsPerCorrect
	}

	outcome := AnswerOutcome{Accepted: true, Scores: b.scoresLocked()}

	if b.answered[b.creator] >= len(b.questions) && b.answered[b.opponent] >= len(b.questions) {
		b.status = domain.BattleComplete
		outcome.Completed = true
		outcome.Result = domain.BattleResult{
			BattleID:    b.id,
			Topic:       b.topic,
			Winner:      b.winnerLocked(),
			Scores:      outcome.Scores,
			CompletedAt: b.now(),
		}
	}
	return outcome, nil
}

// winnerLocked picks the participant with the highest score.
// Ties go to the creator, the earliest-joined participant.
func (b *Battle) winnerLocked() string {
	if b.scores[b.opponent] > b.scores[b.creator] {
		return b.opponent
	}
	return b.creator
}

// Snapshot returns a copy of the battle safe to hand to transport layers.
func (b *Battle) Snapshot() domain.BattleSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Summary is the listing view used for waiting battles.
func (b *Battle) Summary() domain.BattleSummary {
	return domain.BattleSummary{
		ID:        b.id,
		Creator:   b.creator,
		Topic:     b.topic,
		CreatedAt: b.createdAt,
	}
}

func (b *Battle) snapshotLocked() domain.BattleSession {
	return domain.BattleSession{
		ID:        b.id,
		Creator:   b.creator,
		Opponent:  b.opponent,
		Topic:     b.topic,
		Questions: b.questions,
		Scores:    b.scoresLocked(),
		Status:    b.status,
		CreatedAt: b.createdAt,
	}
}

func (b *Battle) scoresLocked() map[string]int {
	scores := make(map[string]int, len(b.scores))
	for username, score := range b.scores {
		scores[username] = score
	}
	return scores
}
