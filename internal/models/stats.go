package models

// GameStat aggregates a visitor's finished runs of one game.
type GameStat struct {
	GameID          string  `json:"game_id"`
	Plays           int     `json:"plays"`
	Wins            int     `json:"wins"`
	AvgScore        float64 `json:"avg_score"`
	AvgAccuracy     float64 `json:"avg_accuracy"`
	BestStreak      int     `json:"best_streak"`
	TotalDurationMs int64   `json:"total_duration_ms"`
}

type KeyStat struct {
	GameID   string  `json:"game_id"`
	ScoreKey string  `json:"score_key"`
	Plays    int     `json:"plays"`
	AvgScore float64 `json:"avg_score"`
}

type VisitorStats struct {
	VisitorID       string     `json:"visitor_id"`
	TotalPlays      int        `json:"total_plays"`
	TotalDurationMs int64      `json:"total_duration_ms"`
	Games           []GameStat `json:"games"`
	Keys            []KeyStat  `json:"keys"`
}

// LeaderboardEntry is a best score joined with its game's display name.
type LeaderboardEntry struct {
	ScoreRecord
	GameName      string `json:"game_name"`
	Unit          string `json:"unit"`
	LowerIsBetter bool   `json:"lower_is_better"`
}
