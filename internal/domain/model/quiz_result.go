package model

import (
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuizAnswer records one question of a finished quiz run.
type QuizAnswer struct {
	QuestionID    string `json:"questionId"`
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// QuizResult is one completed quiz game owned by a single user. Rows are
// append-only; nothing updates them after insert.
type QuizResult struct {
	ID             string       `json:"id"`
	UserID         string       `json:"userId"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	Difficulty     Difficulty   `json:"difficulty"`
	Topic          string       `json:"topic,omitempty"`
	TopicSlug      string       `json:"-"`
	Answers        []QuizAnswer `json:"answers"`
	CompletedAt    time.Time    `json:"completedAt"`
}
