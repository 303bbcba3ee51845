package app_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"quiz-battle-service/internal/app"
	"quiz-battle-service/internal/domain"
	"quiz-battle-service/internal/infra/memory"
)

func TestCreateBattleStartsWaiting(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	session, err := service.CreateBattle(ctx, "alice", "arrays")
	if err != nil {
		t.Fatalf("create battle: %v", err)
	}
	if session.Status != domain.BattleWaiting {
		t.Fatalf("expected waiting, got %s", session.Status)
	}
	if len(session.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(session.Questions))
	}
	if len(session.Scores) != 1 || session.Scores["alice"] != 0 {
		t.Fatalf("expected scores {alice:0}, got %v", session.Scores)
	}
	if session.Topic != "arrays" || session.ID == "" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestJoinActivatesBattle(t *testing.T) {
	ctx := context.Background()
	service, hub, _ := newTestService(t)

	created, _ := service.CreateBattle(ctx, "alice", "arrays")

	session, err := service.JoinBattle(ctx, created.ID, "bob")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if session.Status != domain.BattleActive {
		t.Fatalf("expected active, got %s", session.Status)
	}
	if session.Scores["alice"] != 0 || session.Scores["bob"] != 0 || len(session.Scores) != 2 {
		t.Fatalf("expected both scores at 0, got %v", session.Scores)
	}

	starts := hub.byType(app.EventBattleStart)
	if len(starts) != 1 {
		t.Fatalf("expected one battle_start, got %d", len(starts))
	}
	if starts[0].Data == nil || starts[0].Data.Status != domain.BattleActive {
		t.Fatalf("battle_start should carry the active session, got %+v", starts[0])
	}
}

func TestJoinRejectsInvalidStates(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	created, _ := service.CreateBattle(ctx, "alice", "arrays")

	if _, err := service.JoinBattle(ctx, "battle_missing", "bob"); err != domain.ErrBattleNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := service.JoinBattle(ctx, created.ID, "alice"); err != domain.ErrSelfJoin {
		t.Fatalf("expected self-join error, got %v", err)
	}
	if _, err := service.JoinBattle(ctx, created.ID, "bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := service.JoinBattle(ctx, created.ID, "carol"); err != domain.ErrBattleNotJoinable {
		t.Fatalf("expected not joinable, got %v", err)
	}

	// The failed joins must not have touched the participant set.
	battle := service.battle(t, created.ID)
	if len(battle.Scores) != 2 {
		t.Fatalf("expected exactly two participants, got %v", battle.Scores)
	}
	if battle.Opponent != "bob" {
		t.Fatalf("expected bob as opponent, got %q", battle.Opponent)
	}
}

func TestAlternatingCorrectAnswersCompleteBattle(t *testing.T) {
	ctx := context.Background()
	service, hub, store := newTestService(t)

	created, _ := service.CreateBattle(ctx, "alice", "arrays")
	if _, err := service.JoinBattle(ctx, created.ID, "bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	players := []string{"alice", "bob"}
	for i := 0; i < 10; i++ {
		if err := service.SubmitAnswer(ctx, created.ID, players[i%2], true); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	session := service.battle(t, created.ID)
	if session.Status != domain.BattleComplete {
		t.Fatalf("expected complete, got %s", session.Status)
	}
	if session.Scores["alice"] != 50 || session.Scores["bob"] != 50 {
		t.Fatalf("expected 50/50, got %v", session.Scores)
	}

	if got := len(hub.byType(app.EventBattleUpdate)); got != 10 {
		t.Fatalf("expected 10 battle_update events, got %d", got)
	}
	completes := hub.byType(app.EventBattleComplete)
	if len(completes) != 1 {
		t.Fatalf("expected one battle_complete, got %d", len(completes))
	}
	// Tie goes to the creator.
	if completes[0].Winner != "alice" {
		t.Fatalf("expected alice to win the tie, got %s", completes[0].Winner)
	}

	results := store.Results()
	if len(results) != 1 || results[0].Winner != "alice" || results[0].Scores["bob"] != 50 {
		t.Fatalf("expected persisted result for alice, got %+v", results)
	}
}

func TestCompletionIsMonotonic(t *testing.T) {
	ctx := context.Background()
	service, hub, _ := newTestService(t)

	created, _ := service.CreateBattle(ctx, "alice", "arrays")
	_, _ = service.JoinBattle(ctx, created.ID, "bob")

	players := []string{"alice", "bob"}
	for i := 0; i < 10; i++ {
		_ = service.SubmitAnswer(ctx, created.ID, players[i%2], true)
	}
	before := len(hub.events())

	// Late events must change nothing once complete.
	for i := 0; i < 4; i++ {
		if err := service.SubmitAnswer(ctx, created.ID, players[i%2], true); err != nil {
			t.Fatalf("late answer: %v", err)
		}
	}

	session := service.battle(t, created.ID)
	if session.Status != domain.BattleComplete {
		t.Fatalf("expected complete, got %s", session.Status)
	}
	if session.Scores["alice"] != 50 || session.Scores["bob"] != 50 {
		t.Fatalf("scores moved after completion: %v", session.Scores)
	}
	if got := len(hub.events()); got != before {
		t.Fatalf("expected no broadcasts after completion, got %d extra", got-before)
	}
}

func TestWrongAnswersStillFinishBattle(t *testing.T) {
	ctx := context.Background()
	service, hub, _ := newTestService(t)

	created, _ := service.CreateBattle(ctx, "alice", "arrays")
	_, _ = service.JoinBattle(ctx, created.ID, "bob")

	for i := 0; i < 5; i++ {
		if err := service.SubmitAnswer(ctx, created.ID, "alice", true); err != nil {
			t.Fatalf("alice answer: %v", err)
		}
		if err := service.SubmitAnswer(ctx, created.ID, "bob", false); err != nil {
			t.Fatalf("bob answer: %v", err)
		}
	}

	session := service.battle(t, created.ID)
	if session.Status != domain.BattleComplete {
		t.Fatalf("expected complete even with wrong answers, got %s", session.Status)
	}
	if session.Scores["alice"] != 50 || session.Scores["bob"] != 0 {
		t.Fatalf("expected 50/0, got %v", session.Scores)
	}
	completes := hub.byType(app.EventBattleComplete)
	if len(completes) != 1 || completes[0].Winner != "alice" {
		t.Fatalf("expected alice to win, got %+v", completes)
	}
}

func TestScoresTrackCorrectAnswerCount(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	created, _ := service.CreateBattle(ctx, "alice", "arrays")
	_, _ = service.JoinBattle(ctx, created.ID, "bob")

	pattern := []bool{true, false, true, true, false}
	correct := 0
	for _, ok := range pattern {
		_ = service.SubmitAnswer(ctx, created.ID, "alice", ok)
		if ok {
			correct++
		}
	}

	session := service.battle(t, created.ID)
	if session.Scores["alice"] != correct*app.PointsPerCorrect {
		t.Fatalf("expected %d points, got %d", correct*app.PointsPerCorrect, session.Scores["alice"])
	}
}

func TestAnswerForUnknownBattleIsInert(t *testing.T) {
	ctx := context.Background()
	service, hub, _ := newTestService(t)

	if err := service.SubmitAnswer(ctx, "battle_missing", "alice", true); err != domain.ErrBattleNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(hub.events()) != 0 {
		t.Fatalf("expected no broadcasts, got %d", len(hub.events()))
	}
}

func TestAnswerFromOutsiderIsRejected(t *testing.T) {
	ctx := context.Background()
	service, hub, _ := newTestService(t)

	created, _ := service.CreateBattle(ctx, "alice", "arrays")
	_, _ = service.JoinBattle(ctx, created.ID, "bob")
	before := len(hub.events())

	if err := service.SubmitAnswer(ctx, created.ID, "mallory", true); err != domain.ErrParticipantNotFound {
		t.Fatalf("expected participant error, got %v", err)
	}

	session := service.battle(t, created.ID)
	if session.Scores["alice"] != 0 || session.Scores["bob"] != 0 || len(session.Scores) != 2 {
		t.Fatalf("scores mutated by outsider: %v", session.Scores)
	}
	if len(hub.events()) != before {
		t.Fatalf("outsider answer should not broadcast")
	}
}

func TestEmptyTopicBattleNeverCompletes(t *testing.T) {
	ctx := context.Background()
	service, hub, _ := newTestService(t)

	created, err := service.CreateBattle(ctx, "alice", "no-such-topic")
	if err != nil {
		t.Fatalf("unknown topic should not error: %v", err)
	}
	if len(created.Questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(created.Questions))
	}

	_, _ = service.JoinBattle(ctx, created.ID, "bob")
	before := len(hub.events())

	if err := service.SubmitAnswer(ctx, created.ID, "alice", true); err != nil {
		t.Fatalf("answer: %v", err)
	}
	session := service.battle(t, created.ID)
	if session.Status != domain.BattleActive || session.Scores["alice"] != 0 {
		t.Fatalf("nothing to answer, expected inert event, got %+v", session)
	}
	if len(hub.events()) != before {
		t.Fatalf("inert answer should not broadcast")
	}
}

func TestListWaitingBattles(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	ids := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		session, err := service.CreateBattle(ctx, fmt.Sprintf("user%d", i), "arrays")
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, session.ID)
	}

	battles := service.ListWaitingBattles(ctx, 10)
	if len(battles) != 10 {
		t.Fatalf("expected 10 battles, got %d", len(battles))
	}
	// The two oldest fall off; creation order is preserved.
	for i, summary := range battles {
		if summary.ID != ids[i+2] {
			t.Fatalf("position %d: expected %s, got %s", i, ids[i+2], summary.ID)
		}
	}
}

func newTestService(t *testing.T) (*testService, *eventRecorder, *memory.ScoreStore) {
	t.Helper()
	loader := memory.NewStaticQuestionLoader(map[string]memory.StaticTopic{
		"arrays": {
			Name:       "Arrays & Strings",
			Difficulty: 1,
			Questions: []domain.Question{
				{ID: "q1", Prompt: "Array access by index?", Options: []string{"O(1)", "O(n)"}, Correct: "O(1)", XP: 10, Difficulty: 1},
				{ID: "q2", Prompt: "Array space for n elements?", Options: []string{"O(1)", "O(n)"}, Correct: "O(n)", XP: 10, Difficulty: 1},
				{ID: "q3", Prompt: "Kadane's algorithm time?", Options: []string{"O(n)", "O(n²)"}, Correct: "O(n)", XP: 20, Difficulty: 2},
				{ID: "q4", Prompt: "Two-pointer optimizes?", Options: []string{"Both", "Neither"}, Correct: "Both", XP: 15, Difficulty: 2},
				{ID: "q5", Prompt: "Sliding window is best for?", Options: []string{"Subarray problems", "Sorting"}, Correct: "Subarray problems", XP: 15, Difficulty: 2},
			},
		},
	})
	questions := memory.NewQuestionRepository(loader, 5*time.Minute)
	registry := memory.NewBattleRegistry(questions, 5)
	hub := &eventRecorder{}
	store := memory.NewScoreStore()

	service := app.NewBattleService(registry, questions, store, hub)
	return &testService{BattleService: service, registry: registry}, hub, store
}

// testService pairs a service with its registry so tests can read state back.
type testService struct {
	*app.BattleService
	registry *memory.BattleRegistry
}

func (s *testService) battle(t *testing.T, id string) domain.BattleSession {
	t.Helper()
	battle, ok := s.registry.Get(id)
	if !ok {
		t.Fatalf("battle %s not in registry", id)
	}
	return battle.Snapshot()
}

// eventRecorder captures broadcast events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	record []app.BattleEvent
}

func (r *eventRecorder) Broadcast(event app.BattleEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record = append(r.record, event)
}

func (r *eventRecorder) events() []app.BattleEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]app.BattleEvent, len(r.record))
	copy(out, r.record)
	return out
}

func (r *eventRecorder) byType(eventType string) []app.BattleEvent {
	var out []app.BattleEvent
	for _, event := range r.events() {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
