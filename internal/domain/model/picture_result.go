package model

import (
	"time"
)

// ImageIdentification records one image of a finished picture-game run.
// TimeSpent is in seconds.
type ImageIdentification struct {
	ImageID   string  `json:"imageId"`
	ImageName string  `json:"imageName"`
	Category  string  `json:"category"`
	IsCorrect bool    `json:"isCorrect"`
	TimeSpent float64 `json:"timeSpent"`
}

// PictureResult is one completed picture game owned by a single user.
// Append-only, like QuizResult. TotalTime is in seconds.
type PictureResult struct {
	ID               string                `json:"id"`
	UserID           string                `json:"userId"`
	Score            int                   `json:"score"`
	Level            int                   `json:"level"`
	ImagesIdentified []ImageIdentification `json:"imagesIdentified"`
	TotalTime        float64               `json:"totalTime"`
	CompletedAt      time.Time             `json:"completedAt"`
}
