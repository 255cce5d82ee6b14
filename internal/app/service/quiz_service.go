package service

import (
	"context"
	"fmt"
	"time"

	"brain_arcade/internal/common"
	"brain_arcade/internal/domain/model"
	"brain_arcade/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const defaultHistoryLimit = 20
const maxHistoryLimit = 100

type QuizService struct {
	quizRepo repository.QuizRepository
	stats    *StatsService
}

func NewQuizService(quizRepo repository.QuizRepository, stats *StatsService) *QuizService {
	return &QuizService{quizRepo: quizRepo, stats: stats}
}

type SaveQuizRequest struct {
	Score          int                `json:"score"`
	TotalQuestions int                `json:"totalQuestions"`
	Difficulty     model.Difficulty   `json:"difficulty"`
	Topic          string             `json:"topic"`
	Answers        []model.QuizAnswer `json:"answers"`
}

// Save persists one finished quiz run. The completion timestamp is always
// server-assigned; client clocks are not trusted. Score is deliberately not
// checked against TotalQuestions, scores may be points-based.
func (s *QuizService) Save(ctx context.Context, userID string, req SaveQuizRequest) (*model.QuizResult, error) {
	if req.Score < 0 {
		return nil, fmt.Errorf("score must not be negative: %w", common.ErrValidation)
	}
	if req.TotalQuestions < 1 {
		return nil, fmt.Errorf("totalQuestions is required: %w", common.ErrValidation)
	}
	if !req.Difficulty.Valid() {
		return nil, fmt.Errorf("difficulty must be easy, medium or hard: %w", common.ErrValidation)
	}

	result := &model.QuizResult{
		ID:             uuid.NewString(),
		UserID:         userID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Difficulty:     req.Difficulty,
		Topic:          req.Topic,
		Answers:        req.Answers,
		CompletedAt:    time.Now().UTC(),
	}
	if result.Answers == nil {
		result.Answers = []model.QuizAnswer{}
	}
	if req.Topic != "" {
		result.TopicSlug = slug.Make(req.Topic)
	}

	if err := s.quizRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	s.stats.InvalidateUser(ctx, userID)
	return result, nil
}

// History lists the user's most recent results, newest first. topic is an
// optional label filter, matched on its slugified form.
func (s *QuizService) History(ctx context.Context, userID string, limit int, topic string) ([]model.QuizResult, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	topicSlug := ""
	if topic != "" {
		topicSlug = slug.Make(topic)
	}

	results, err := s.quizRepo.FindRecentByUser(ctx, userID, limit, topicSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz history: %w", err)
	}
	return results, nil
}
