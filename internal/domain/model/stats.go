package model

// DifficultyBreakdown counts quiz games per difficulty bucket. All three
// buckets are always serialized, absent ones as 0.
type DifficultyBreakdown struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type QuizStats struct {
	TotalGames   int                 `json:"totalGames"`
	TotalScore   int                 `json:"totalScore"`
	AverageScore float64             `json:"averageScore"`
	BestScore    int                 `json:"bestScore"`
	ByDifficulty DifficultyBreakdown `json:"byDifficulty"`
}

type PictureStats struct {
	TotalGames            int     `json:"totalGames"`
	TotalScore            int     `json:"totalScore"`
	AverageScore          float64 `json:"averageScore"`
	BestScore             int     `json:"bestScore"`
	HighestLevel          int     `json:"highestLevel"`
	TotalImagesIdentified int     `json:"totalImagesIdentified"`
}

// GameSummary is the reduced per-game view used in the combined report.
type GameSummary struct {
	TotalGames   int     `json:"totalGames"`
	AverageScore float64 `json:"averageScore"`
	BestScore    int     `json:"bestScore"`
}

// OverallStats concatenates the two independent summaries; there is no
// cross-game weighting.
type OverallStats struct {
	Quiz             GameSummary `json:"quiz"`
	Picture          GameSummary `json:"picture"`
	TotalGamesPlayed int         `json:"totalGamesPlayed"`
}
