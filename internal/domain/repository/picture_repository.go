package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"brain_arcade/internal/domain/model"
)

type PictureRepository interface {
	Create(ctx context.Context, result *model.PictureResult) error
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]model.PictureResult, error)
	FindAllByUser(ctx context.Context, userID string) ([]model.PictureResult, error)
}

type pgPictureRepository struct {
	db *sql.DB
}

func NewPgPictureRepository(db *sql.DB) PictureRepository {
	return &pgPictureRepository{db: db}
}

func (r *pgPictureRepository) Create(ctx context.Context, result *model.PictureResult) error {
	images, err := json.Marshal(result.ImagesIdentified)
	if err != nil {
		return fmt.Errorf("pgPictureRepository.Create: marshal images: %w", err)
	}

	query := `INSERT INTO picture_results (id, user_id, score, level, images_identified, total_time, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query,
		result.ID, result.UserID, result.Score, result.Level,
		images, result.TotalTime, result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("pgPictureRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPictureRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]model.PictureResult, error) {
	query := `SELECT id, user_id, score, level, images_identified, total_time, completed_at
	          FROM picture_results
	          WHERE user_id = $1
	          ORDER BY completed_at DESC
	          LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("pgPictureRepository.FindRecentByUser: %w", err)
	}
	defer rows.Close()
	return scanPictureResults(rows)
}

func (r *pgPictureRepository) FindAllByUser(ctx context.Context, userID string) ([]model.PictureResult, error) {
	query := `SELECT id, user_id, score, level, images_identified, total_time, completed_at
	          FROM picture_results
	          WHERE user_id = $1
	          ORDER BY completed_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgPictureRepository.FindAllByUser: %w", err)
	}
	defer rows.Close()
	return scanPictureResults(rows)
}

func scanPictureResults(rows *sql.Rows) ([]model.PictureResult, error) {
	results := []model.PictureResult{}
	for rows.Next() {
		var res model.PictureResult
		var images []byte
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.Score, &res.Level,
			&images, &res.TotalTime, &res.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanPictureResults: %w", err)
		}
		if err := json.Unmarshal(images, &res.ImagesIdentified); err != nil {
			return nil, fmt.Errorf("scanPictureResults: unmarshal images: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanPictureResults: %w", err)
	}
	return results, nil
}
