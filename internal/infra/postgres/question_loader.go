package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-battle-service/internal/domain"
)

// QuestionLoader loads topic question sets stored as JSONB in Postgres.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadTopic(ctx context.Context, topic string) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT questions FROM topics WHERE id=$1`, topic).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTopicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal topic questions: %w", err)
	}
	return questions, nil
}

func (l *QuestionLoader) ListTopics(ctx context.Context) ([]domain.TopicSummary, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, name, difficulty, jsonb_array_length(questions)
		FROM topics
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var summaries []domain.TopicSummary
	for rows.Next() {
		var s domain.TopicSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Difficulty, &s.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
