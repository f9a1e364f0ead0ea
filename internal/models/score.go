package models

import "time"

// ScoreRecord is the best score a visitor holds for one game and key.
type ScoreRecord struct {
	VisitorID string    `json:"visitor_id"`
	GameID    string    `json:"game_id"`
	Key       string    `json:"key"`
	Value     int       `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
