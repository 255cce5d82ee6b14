package service

import (
	"context"
	"fmt"
	"time"

	"brain_arcade/internal/common"
	"brain_arcade/internal/domain/model"
	"brain_arcade/internal/domain/repository"

	"github.com/google/uuid"
)

type PictureService struct {
	pictureRepo repository.PictureRepository
	stats       *StatsService
}

func NewPictureService(pictureRepo repository.PictureRepository, stats *StatsService) *PictureService {
	return &PictureService{pictureRepo: pictureRepo, stats: stats}
}

type SavePictureRequest struct {
	Score            int                         `json:"score"`
	Level            int                         `json:"level"`
	ImagesIdentified []model.ImageIdentification `json:"imagesIdentified"`
	TotalTime        float64                     `json:"totalTime"`
}

func (s *PictureService) Save(ctx context.Context, userID string, req SavePictureRequest) (*model.PictureResult, error) {
	if req.Score < 0 {
		return nil, fmt.Errorf("score must not be negative: %w", common.ErrValidation)
	}
	if req.Level < 0 || req.TotalTime < 0 {
		return nil, fmt.Errorf("level and totalTime must not be negative: %w", common.ErrValidation)
	}

	result := &model.PictureResult{
		ID:               uuid.NewString(),
		UserID:           userID,
		Score:            req.Score,
		Level:            req.Level,
		ImagesIdentified: req.ImagesIdentified,
		TotalTime:        req.TotalTime,
		CompletedAt:      time.Now().UTC(),
	}
	if result.Level == 0 {
		result.Level = 1 // level 1 when the client omits it
	}
	if result.ImagesIdentified == nil {
		result.ImagesIdentified = []model.ImageIdentification{}
	}

	if err := s.pictureRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save picture result: %w", err)
	}

	s.stats.InvalidateUser(ctx, userID)
	return result, nil
}

func (s *PictureService) History(ctx context.Context, userID string, limit int) ([]model.PictureResult, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	results, err := s.pictureRepo.FindRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch picture history: %w", err)
	}
	return results, nil
}
