package memory

import (
	"context"
	"testing"
	"time"

	"quiz-battle-service/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(map[string]StaticTopic{
			"arrays": sampleTopic(),
		}),
	}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.QuestionsByTopic(context.Background(), "arrays"); err != nil {
		t.Fatalf("get questions: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.QuestionsByTopic(context.Background(), "arrays"); err != nil {
		t.Fatalf("get questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionRepositoryPropagatesUnknownTopic(t *testing.T) {
	repo := NewQuestionRepository(NewStaticQuestionLoader(nil), time.Minute)

	if _, err := repo.QuestionsByTopic(context.Background(), "missing"); err != domain.ErrTopicNotFound {
		t.Fatalf("expected topic not found, got %v", err)
	}
}

func TestStaticLoaderListsTopicsSorted(t *testing.T) {
	loader := NewStaticQuestionLoader(map[string]StaticTopic{
		"sorting": {Name: "Sorting Algorithms", Difficulty: 2, Questions: sampleTopic().Questions},
		"arrays":  sampleTopic(),
	})

	topics, err := loader.ListTopics(context.Background())
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 2 || topics[0].ID != "arrays" || topics[1].ID != "sorting" {
		t.Fatalf("expected sorted topics, got %+v", topics)
	}
	if topics[0].QuestionCount != len(sampleTopic().Questions) {
		t.Fatalf("expected question count %d, got %d", len(sampleTopic().Questions), topics[0].QuestionCount)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadTopic(ctx context.Context, topic string) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadTopic(ctx, topic)
}

func sampleTopic() StaticTopic {
	return StaticTopic{
		Name:       "Arrays & Strings",
		Difficulty: 1,
		Questions: []domain.Question{
			{ID: "q1", Prompt: "Array access by index?", Options: []string{"O(1)", "O(n)"}, Correct: "O(1)", XP: 10, Difficulty: 1},
			{ID: "q2", Prompt: "Array space for n elements?", Options: []string{"O(1)", "O(n)"}, Correct: "O(n)", XP: 10, Difficulty: 1},
		},
	}
}
