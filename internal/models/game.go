package models

import "time"

// GameResult is one finished play-through as stored in game_results.
type GameResult struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	VisitorID  string    `json:"visitor_id"`
	GameID     string    `json:"game_id"`
	Difficulty string    `json:"difficulty,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	ScoreKey   string    `json:"score_key"`
	Score      int       `json:"score"`
	Accuracy   int       `json:"accuracy"`
	Correct    int       `json:"correct"`
	Missed     int       `json:"missed"`
	MaxStreak  int       `json:"max_streak"`
	Won        bool      `json:"won"`
	DurationMs int64     `json:"duration_ms"`
	FinishedAt time.Time `json:"finished_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type ResultFilter struct {
	VisitorID string
	GameID    string
	Limit     int
	Offset    int
}
