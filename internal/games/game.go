// Package games implements the timed challenge engines: reaction, typing,
// quiz, whack-a-bug and memory, plus the mood generator. Every engine is a small state machine
// (menu, ready, playing, finished) driven by a scheduler and by input events.
package games

import (
	"errors"
	"time"
)

type ID string

const (
	Reaction ID = "reaction"
	Typing   ID = "typing"
	Quiz     ID = "quiz"
	Whack    ID = "whack"
	Memory   ID = "memory"
	Mood     ID = "mood"
)

type Status string

const (
	StatusMenu     Status = "menu"
	StatusReady    Status = "ready"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

var transitions = map[Status][]Status{
	StatusMenu:     {StatusReady, StatusPlaying},
	StatusReady:    {StatusPlaying},
	StatusPlaying:  {StatusFinished},
	StatusFinished: {StatusReady, StatusPlaying},
}

// CanTransition reports whether a session may move from one status to
// another. Returning to the menu is always allowed.
func CanTransition(from, to Status) bool {
	if to == StatusMenu {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var (
	ErrUnknownGame       = errors.New("unknown game")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownMode       = errors.New("unknown mode")
	ErrNotFinished       = errors.New("game is not finished")
	ErrNoQuestions       = errors.New("no questions for difficulty")
)

type Config struct {
	Difficulty string `json:"difficulty"`
	Mode       string `json:"mode,omitempty"`
}

// Session is the externally visible snapshot of one play-through.
type Session struct {
	ID                   string    `json:"id,omitempty"`
	GameID               ID        `json:"gameId"`
	Difficulty           string    `json:"difficulty,omitempty"`
	Mode                 string    `json:"mode,omitempty"`
	StartedAt            time.Time `json:"startedAt"`
	TimeRemainingSeconds int       `json:"timeRemainingSeconds"`
	Status               Status    `json:"status"`
}

// Input is a user event. Each engine reads the fields it needs: Text for
// typing, Index for the selected option, slot or card, Action for quiz
// lifelines.
type Input struct {
	Action string `json:"action,omitempty"`
	Text   string `json:"text,omitempty"`
	Index  int    `json:"index"`
}

const (
	ActionAnswer = "answer"
	ActionHint   = "hint"
	ActionSkip   = "skip"
	ActionTime   = "time"
)

// Outcome reports how an input was handled. Inputs arriving outside the
// playing state come back with Accepted false and change nothing.
type Outcome struct {
	Accepted bool   `json:"accepted"`
	Correct  bool   `json:"correct"`
	Points   int    `json:"points"`
	Finished bool   `json:"finished"`
	Message  string `json:"message,omitempty"`
}

func ignored(msg string) Outcome { return Outcome{Message: msg} }

// Result is the summary of a finished session.
type Result struct {
	SessionID     string        `json:"sessionId"`
	GameID        ID            `json:"gameId"`
	Difficulty    string        `json:"difficulty,omitempty"`
	Mode          string        `json:"mode,omitempty"`
	Key           string        `json:"key"`
	Score         int           `json:"score"`
	Accuracy      int           `json:"accuracy"`
	Correct       int           `json:"correct"`
	Missed        int           `json:"missed"`
	MaxStreak     int           `json:"maxStreak"`
	Won           bool          `json:"won"`
	Record        bool          `json:"record"`
	LowerIsBetter bool          `json:"lowerIsBetter"`
	Duration      time.Duration `json:"-"`
	DurationMs    int64         `json:"durationMs"`
	FinishedAt    time.Time     `json:"finishedAt"`
}

// Engine is the contract shared by every mini-game.
type Engine interface {
	ID() ID
	// Start begins a new play-through, abandoning any session in progress.
	Start(cfg Config) error
	Input(in Input) Outcome
	// Tick advances the session clock by one second.
	Tick()
	// Retry replays the finished session's configuration.
	Retry() error
	// Reset returns to the menu and cancels every pending timer.
	Reset()
	Session() Session
	Result() (Result, bool)
	// View returns a JSON-friendly snapshot of the game board.
	View() any
}
