package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"brain_arcade/internal/domain/model"
)

type QuizRepository interface {
	Create(ctx context.Context, result *model.QuizResult) error
	// FindRecentByUser returns at most limit results owned by userID,
	// most recent first. topicSlug filters when non-empty.
	FindRecentByUser(ctx context.Context, userID string, limit int, topicSlug string) ([]model.QuizResult, error)
	FindAllByUser(ctx context.Context, userID string) ([]model.QuizResult, error)
}

type pgQuizRepository struct {
	db *sql.DB
}

func NewPgQuizRepository(db *sql.DB) QuizRepository {
	return &pgQuizRepository{db: db}
}

func (r *pgQuizRepository) Create(ctx context.Context, result *model.QuizResult) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("pgQuizRepository.Create: marshal answers: %w", err)
	}

	query := `INSERT INTO quiz_results (id, user_id, score, total_questions, difficulty, topic, topic_slug, answers, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.db.ExecContext(ctx, query,
		result.ID, result.UserID, result.Score, result.TotalQuestions,
		result.Difficulty, result.Topic, result.TopicSlug, answers, result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("pgQuizRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuizRepository) FindRecentByUser(ctx context.Context, userID string, limit int, topicSlug string) ([]model.QuizResult, error) {
	query := `SELECT id, user_id, score, total_questions, difficulty, topic, topic_slug, answers, completed_at
	          FROM quiz_results
	          WHERE user_id = $1 AND ($2 = '' OR topic_slug = $2)
	          ORDER BY completed_at DESC
	          LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, userID, topicSlug, limit)
	if err != nil {
		return nil, fmt.Errorf("pgQuizRepository.FindRecentByUser: %w", err)
	}
	defer rows.Close()
	return scanQuizResults(rows)
}

func (r *pgQuizRepository) FindAllByUser(ctx context.Context, userID string) ([]model.QuizResult, error) {
	query := `SELECT id, user_id, score, total_questions, difficulty, topic, topic_slug, answers, completed_at
	          FROM quiz_results
	          WHERE user_id = $1
	          ORDER BY completed_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgQuizRepository.FindAllByUser: %w", err)
	}
	defer rows.Close()
	return scanQuizResults(rows)
}

func scanQuizResults(rows *sql.Rows) ([]model.QuizResult, error) {
	results := []model.QuizResult{}
	for rows.Next() {
		var res model.QuizResult
		var answers []byte
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.Score, &res.TotalQuestions,
			&res.Difficulty, &res.Topic, &res.TopicSlug, &answers, &res.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanQuizResults: %w", err)
		}
		if err := json.Unmarshal(answers, &res.Answers); err != nil {
			return nil, fmt.Errorf("scanQuizResults: unmarshal answers: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanQuizResults: %w", err)
	}
	return results, nil
}
