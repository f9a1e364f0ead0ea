package services

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/vytor/funzone/internal/errors"
	"github.com/vytor/funzone/internal/games"
	"github.com/vytor/funzone/internal/jobs"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/metrics"
	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

const storeTimeout = 5 * time.Second

// GameService runs the mini-game sessions. Each visitor holds at most one
// session; starting a different game resets the previous one.
type GameService interface {
	Menu(ctx context.Context, visitorID string, game games.ID) (*GameMenu, error)
	StartGame(ctx context.Context, visitorID string, game games.ID, cfg games.Config) (*GameState, error)
	SubmitInput(ctx context.Context, visitorID string, game games.ID, in games.Input) (*InputResult, error)
	Tick(ctx context.Context, visitorID string, game games.ID) (*GameState, error)
	Retry(ctx context.Context, visitorID string, game games.ID) (*GameState, error)
	Reset(ctx context.Context, visitorID string, game games.ID) (*GameState, error)
	State(ctx context.Context, visitorID string, game games.ID) (*GameState, error)
	GetBestScore(ctx context.Context, visitorID string, game games.ID, key string) (*models.ScoreRecord, error)
	// SweepIdle resets sessions untouched for longer than the idle timeout
	// and returns how many were dropped.
	SweepIdle(ctx context.Context) int
	// StartSweeper runs SweepIdle every interval until the handle is cancelled.
	StartSweeper(interval time.Duration) scheduler.Handle
}

// GameState is what the client renders: the session, the engine's board and,
// once finished, the result together with the stored best score.
type GameState struct {
	Session games.Session       `json:"session"`
	Board   any                 `json:"board,omitempty"`
	Result  *games.Result       `json:"result,omitempty"`
	Best    *models.ScoreRecord `json:"best,omitempty"`
	NewBest bool                `json:"newBest"`
}

type InputResult struct {
	Outcome games.Outcome `json:"outcome"`
	State   *GameState    `json:"state"`
}

type MenuEntry struct {
	Key  string `json:"key"`
	Best *int   `json:"best,omitempty"`
}

// GameMenu is a game's catalogue entry with the visitor's best score per key.
type GameMenu struct {
	Game    games.Descriptor `json:"game"`
	Entries []MenuEntry      `json:"entries"`
}

type GameServiceConfig struct {
	Scheduler     scheduler.Scheduler
	NewSource     func() rng.Source
	EngineOptions []games.Option
	IdleTimeout   time.Duration
}

type finishInfo struct {
	sessionID string
	best      *models.ScoreRecord
	newBest   bool
}

type visitorSession struct {
	engine games.Engine

	mu         sync.Mutex
	lastActive time.Time
	last       *finishInfo
}

func (v *visitorSession) touch(now time.Time) {
	v.mu.Lock()
	v.lastActive = now
	v.mu.Unlock()
}

type gameService struct {
	scores   repository.ScoreRepository
	jobQueue jobs.JobQueue
	metrics  *metrics.Metrics
	cfg      GameServiceConfig
	log      *logger.Logger

	mu       sync.Mutex
	sessions map[string]*visitorSession
}

// NewGameService creates a new GameService
func NewGameService(scores repository.ScoreRepository, jobQueue jobs.JobQueue, m *metrics.Metrics, cfg GameServiceConfig) GameService {
	if cfg.Scheduler == nil {
		cfg.Scheduler = scheduler.NewReal()
	}
	if cfg.NewSource == nil {
		cfg.NewSource = rng.NewFromTime
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	if m == nil {
		m = metrics.New()
	}
	return &gameService{
		scores:   scores,
		jobQueue: jobQueue,
		metrics:  m,
		cfg:      cfg,
		log:      logger.Default().WithPrefix("game_service"),
		sessions: make(map[string]*visitorSession),
	}
}

func describe(game games.ID) (games.Descriptor, error) {
	d, ok := games.Describe(game)
	if !ok {
		return games.Descriptor{}, errors.NewNotFoundError("game", game)
	}
	return d, nil
}

// session returns the visitor's session for game, or nil when the visitor
// has none or is playing something else.
func (s *gameService) session(visitorID string, game games.ID) *visitorSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.sessions[visitorID]
	if v == nil || v.engine.ID() != game {
		return nil
	}
	return v
}

// acquire returns the visitor's session for game, replacing a session of
// another game.
func (s *gameService) acquire(ctx context.Context, visitorID string, game games.ID) (*visitorSession, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	v := s.sessions[visitorID]
	if v != nil && v.engine.ID() == game {
		s.mu.Unlock()
		return v, nil
	}
	prev := v
	v = &visitorSession{lastActive: s.cfg.Scheduler.Now()}
	opts := append([]games.Option{}, s.cfg.EngineOptions...)
	opts = append(opts, games.WithFinishHook(s.onFinish(visitorID, v)))
	engine, err := games.New(game, s.cfg.Scheduler, s.cfg.NewSource(), opts...)
	if err != nil {
		s.mu.Unlock()
		return nil, errors.NewNotFoundError("game", game)
	}
	v.engine = engine
	s.sessions[visitorID] = v
	s.metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	if prev != nil {
		log.Debug("switching games: %s -> %s", prev.engine.ID(), game)
		prev.engine.Reset()
	}
	return v, nil
}

func (s *gameService) onFinish(visitorID string, v *visitorSession) games.FinishFunc {
	return func(r games.Result) {
		log := s.log.WithFields(map[string]any{"visitor_id": visitorID, "game": r.GameID, "session_id": r.SessionID})
		ctx, cancel := context.WithTimeout(logger.NewContext(context.Background(), log), storeTimeout)
		defer cancel()

		log.Debug("session finished: key=%s, score=%d, won=%v", r.Key, r.Score, r.Won)
		s.metrics.GamesFinished.WithLabelValues(string(r.GameID), metrics.FinishOutcome(r.Won)).Inc()

		info := &finishInfo{sessionID: r.SessionID}
		if r.Record {
			stored, changed, err := s.scores.Write(ctx, models.ScoreRecord{
				VisitorID: visitorID,
				GameID:    string(r.GameID),
				Key:       r.Key,
				Value:     r.Score,
				UpdatedAt: r.FinishedAt,
			}, r.LowerIsBetter)
			if err != nil {
				log.Warn("failed to write best score, continuing without it: %v", err)
			} else {
				info.best = stored
				info.newBest = changed
				if changed {
					s.metrics.BestScores.WithLabelValues(string(r.GameID)).Inc()
				}
			}
		}

		v.mu.Lock()
		v.last = info
		v.mu.Unlock()

		if err := s.jobQueue.EnqueueResult(toGameResult(visitorID, r)); err != nil {
			log.Warn("failed to enqueue result: %v", err)
		}
	}
}

func toGameResult(visitorID string, r games.Result) models.GameResult {
	return models.GameResult{
		SessionID:  r.SessionID,
		VisitorID:  visitorID,
		GameID:     string(r.GameID),
		Difficulty: r.Difficulty,
		Mode:       r.Mode,
		ScoreKey:   r.Key,
		Score:      r.Score,
		Accuracy:   r.Accuracy,
		Correct:    r.Correct,
		Missed:     r.Missed,
		MaxStreak:  r.MaxStreak,
		Won:        r.Won,
		DurationMs: r.DurationMs,
		FinishedAt: r.FinishedAt,
	}
}

func (s *gameService) state(v *visitorSession) *GameState {
	st := &GameState{
		Session: v.engine.Session(),
		Board:   v.engine.View(),
	}
	if r, ok := v.engine.Result(); ok {
		st.Result = &r
		v.mu.Lock()
		if v.last != nil && v.last.sessionID == r.SessionID {
			st.Best = v.last.best
			st.NewBest = v.last.newBest
		}
		v.mu.Unlock()
	}
	return st
}

func menuState(game games.ID) *GameState {
	return &GameState{Session: games.Session{GameID: game, Status: games.StatusMenu}}
}

func startError(err error) error {
	switch {
	case stderrors.Is(err, games.ErrUnknownDifficulty):
		return errors.NewValidationError("difficulty", err.Error())
	case stderrors.Is(err, games.ErrUnknownMode):
		return errors.NewValidationError("mode", err.Error())
	case stderrors.Is(err, games.ErrNoQuestions):
		return errors.NewUnavailableError("no questions available for this difficulty", err)
	default:
		return errors.NewInternalError(err)
	}
}

func (s *gameService) Menu(ctx context.Context, visitorID string, game games.ID) (*GameMenu, error) {
	log := logger.FromContext(ctx)
	log.Debug("building menu: game=%s", game)

	d, err := describe(game)
	if err != nil {
		return nil, err
	}

	best := make(map[string]int)
	records, err := s.scores.List(ctx, visitorID)
	if err != nil {
		log.Warn("failed to list best scores, showing none: %v", err)
	}
	for _, rec := range records {
		if rec.GameID == string(game) {
			best[rec.Key] = rec.Value
		}
	}

	menu := &GameMenu{Game: d}
	for _, key := range d.Keys() {
		entry := MenuEntry{Key: key}
		if v, ok := best[key]; ok {
			entry.Best = &v
		}
		menu.Entries = append(menu.Entries, entry)
	}
	return menu, nil
}

func (s *gameService) StartGame(ctx context.Context, visitorID string, game games.ID, cfg games.Config) (*GameState, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting game: game=%s, difficulty=%s, mode=%s", game, cfg.Difficulty, cfg.Mode)

	if _, err := describe(game); err != nil {
		return nil, err
	}
	v, err := s.acquire(ctx, visitorID, game)
	if err != nil {
		return nil, err
	}
	if err := v.engine.Start(cfg); err != nil {
		log.Warn("failed to start game: %v", err)
		return nil, startError(err)
	}
	v.touch(s.cfg.Scheduler.Now())
	s.metrics.GamesStarted.WithLabelValues(string(game)).Inc()

	st := s.state(v)
	log.Info("game started: game=%s, session_id=%s", game, st.Session.ID)
	return st, nil
}

func (s *gameService) SubmitInput(ctx context.Context, visitorID string, game games.ID, in games.Input) (*InputResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("input: game=%s, action=%s, index=%d", game, in.Action, in.Index)

	if _, err := describe(game); err != nil {
		return nil, err
	}
	v := s.session(visitorID, game)
	if v == nil {
		return &InputResult{
			Outcome: games.Outcome{Message: "no active session"},
			State:   menuState(game),
		}, nil
	}
	out := v.engine.Input(in)
	v.touch(s.cfg.Scheduler.Now())
	return &InputResult{Outcome: out, State: s.state(v)}, nil
}

func (s *gameService) Tick(ctx context.Context, visitorID string, game games.ID) (*GameState, error) {
	if _, err := describe(game); err != nil {
		return nil, err
	}
	v := s.session(visitorID, game)
	if v == nil {
		return menuState(game), nil
	}
	v.engine.Tick()
	return s.state(v), nil
}

func (s *gameService) Retry(ctx context.Context, visitorID string, game games.ID) (*GameState, error) {
	log := logger.FromContext(ctx)
	log.Debug("retrying game: game=%s", game)

	if _, err := describe(game); err != nil {
		return nil, err
	}
	v := s.session(visitorID, game)
	if v == nil {
		return nil, errors.NewConflictError("no finished session to retry")
	}
	if err := v.engine.Retry(); err != nil {
		if stderrors.Is(err, games.ErrNotFinished) {
			return nil, errors.NewConflictError("game is not finished")
		}
		log.Error("failed to retry game: %v", err)
		return nil, startError(err)
	}
	v.touch(s.cfg.Scheduler.Now())
	s.metrics.GamesStarted.WithLabelValues(string(game)).Inc()
	return s.state(v), nil
}

func (s *gameService) Reset(ctx context.Context, visitorID string, game games.ID) (*GameState, error) {
	log := logger.FromContext(ctx)
	log.Debug("resetting game: game=%s", game)

	if _, err := describe(game); err != nil {
		return nil, err
	}
	v := s.session(visitorID, game)
	if v == nil {
		return menuState(game), nil
	}
	v.engine.Reset()
	v.touch(s.cfg.Scheduler.Now())
	return s.state(v), nil
}

func (s *gameService) State(ctx context.Context, visitorID string, game games.ID) (*GameState, error) {
	if _, err := describe(game); err != nil {
		return nil, err
	}
	v := s.session(visitorID, game)
	if v == nil {
		return menuState(game), nil
	}
	return s.state(v), nil
}

func (s *gameService) GetBestScore(ctx context.Context, visitorID string, game games.ID, key string) (*models.ScoreRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting best score: game=%s, key=%s", game, key)

	if _, err := describe(game); err != nil {
		return nil, err
	}
	rec, err := s.scores.Get(ctx, visitorID, string(game), key)
	if err != nil {
		if !stderrors.Is(err, repository.ErrNotFound) {
			log.Warn("failed to read best score, treating as absent: %v", err)
		}
		return nil, nil
	}
	return rec, nil
}

func (s *gameService) SweepIdle(ctx context.Context) int {
	log := logger.FromContext(ctx)
	cutoff := s.cfg.Scheduler.Now().Add(-s.cfg.IdleTimeout)

	var idle []*visitorSession
	s.mu.Lock()
	for id, v := range s.sessions {
		v.mu.Lock()
		stale := v.lastActive.Before(cutoff)
		v.mu.Unlock()
		if stale {
			idle = append(idle, v)
			delete(s.sessions, id)
		}
	}
	s.metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	for _, v := range idle {
		v.engine.Reset()
	}
	if len(idle) > 0 {
		log.Info("dropped %d idle sessions", len(idle))
	}
	return len(idle)
}

func (s *gameService) StartSweeper(interval time.Duration) scheduler.Handle {
	ctx := logger.NewContext(context.Background(), s.log.WithPrefix("sweeper"))
	return s.cfg.Scheduler.Every(interval, func() { s.SweepIdle(ctx) })
}
