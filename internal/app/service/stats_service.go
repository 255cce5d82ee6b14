package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"brain_arcade/internal/domain/model"
	"brain_arcade/internal/domain/repository"
	"brain_arcade/internal/platform/cache"
	"brain_arcade/internal/platform/config"
)

// StatsService computes per-user summaries over raw game history. Nothing
// here is authoritative state: every figure is recomputable from the result
// tables, and Redis only shortcuts the recompute for a short TTL.
type StatsService struct {
	quizRepo    repository.QuizRepository
	pictureRepo repository.PictureRepository
}

func NewStatsService(quizRepo repository.QuizRepository, pictureRepo repository.PictureRepository) *StatsService {
	return &StatsService{quizRepo: quizRepo, pictureRepo: pictureRepo}
}

func quizStatsKey(userID string) string    { return "stats:quiz:" + userID }
func pictureStatsKey(userID string) string { return "stats:picture:" + userID }
func overallStatsKey(userID string) string { return "stats:overall:" + userID }

func (s *StatsService) QuizStats(ctx context.Context, userID string) (*model.QuizStats, error) {
	stats := &model.QuizStats{}
	if cache.GetJSON(ctx, quizStatsKey(userID), stats) {
		return stats, nil
	}

	results, err := s.quizRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz results: %w", err)
	}
	*stats = ComputeQuizStats(results)
	cache.SetJSON(ctx, quizStatsKey(userID), stats, statsCacheTTL())
	return stats, nil
}

func (s *StatsService) PictureStats(ctx context.Context, userID string) (*model.PictureStats, error) {
	stats := &model.PictureStats{}
	if cache.GetJSON(ctx, pictureStatsKey(userID), stats) {
		return stats, nil
	}

	results, err := s.pictureRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch picture results: %w", err)
	}
	*stats = ComputePictureStats(results)
	cache.SetJSON(ctx, pictureStatsKey(userID), stats, statsCacheTTL())
	return stats, nil
}

func (s *StatsService) OverallStats(ctx context.Context, userID string) (*model.OverallStats, error) {
	stats := &model.OverallStats{}
	if cache.GetJSON(ctx, overallStatsKey(userID), stats) {
		return stats, nil
	}

	quizResults, err := s.quizRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz results: %w", err)
	}
	pictureResults, err := s.pictureRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch picture results: %w", err)
	}
	*stats = ComputeOverallStats(quizResults, pictureResults)
	cache.SetJSON(ctx, overallStatsKey(userID), stats, statsCacheTTL())
	return stats, nil
}

// InvalidateUser drops the user's cached summaries. Called on every save so
// a follow-up stats read reflects the new result immediately.
func (s *StatsService) InvalidateUser(ctx context.Context, userID string) {
	cache.Delete(ctx, quizStatsKey(userID), pictureStatsKey(userID), overallStatsKey(userID))
}

func statsCacheTTL() time.Duration {
	if config.AppConfig != nil {
		return config.AppConfig.StatsCacheTTL
	}
	return time.Minute
}

// ComputeQuizStats aggregates a quiz history. An empty history yields all
// zeroes; the difficulty buckets are always present.
func ComputeQuizStats(results []model.QuizResult) model.QuizStats {
	stats := model.QuizStats{}
	for _, r := range results {
		stats.TotalGames++
		stats.TotalScore += r.Score
		if r.Score > stats.BestScore {
			stats.BestScore = r.Score
		}
		switch r.Difficulty {
		case model.DifficultyEasy:
			stats.ByDifficulty.Easy++
		case model.DifficultyMedium:
			stats.ByDifficulty.Medium++
		case model.DifficultyHard:
			stats.ByDifficulty.Hard++
		}
	}
	if stats.TotalGames > 0 {
		stats.AverageScore = round2(float64(stats.TotalScore) / float64(stats.TotalGames))
	}
	return stats
}

func ComputePictureStats(results []model.PictureResult) model.PictureStats {
	stats := model.PictureStats{}
	for _, r := range results {
		stats.TotalGames++
		stats.TotalScore += r.Score
		if r.Score > stats.BestScore {
			stats.BestScore = r.Score
		}
		if r.Level > stats.HighestLevel {
			stats.HighestLevel = r.Level
		}
		// Identification records count regardless of correctness.
		stats.TotalImagesIdentified += len(r.ImagesIdentified)
	}
	if stats.TotalGames > 0 {
		stats.AverageScore = round2(float64(stats.TotalScore) / float64(stats.TotalGames))
	}
	return stats
}

// ComputeOverallStats places the two independent summaries side by side and
// totals the game counts. No cross-game weighting.
func ComputeOverallStats(quiz []model.QuizResult, picture []model.PictureResult) model.OverallStats {
	quizStats := ComputeQuizStats(quiz)
	pictureStats := ComputePictureStats(picture)
	return model.OverallStats{
		Quiz: model.GameSummary{
			TotalGames:   quizStats.TotalGames,
			AverageScore: quizStats.AverageScore,
			BestScore:    quizStats.BestScore,
		},
		Picture: model.GameSummary{
			TotalGames:   pictureStats.TotalGames,
			AverageScore: pictureStats.AverageScore,
			BestScore:    pictureStats.BestScore,
		},
		TotalGamesPlayed: quizStats.TotalGames + pictureStats.TotalGames,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
