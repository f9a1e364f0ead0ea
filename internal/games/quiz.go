package games

import (
	"fmt"

	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

const (
	QuizMaxQuestions   = 10
	QuizBasePoints     = 100
	QuizTimeExtension  = 15
	quizHints          = 2
	quizSkips          = 1
	quizTimeExtensions = 1
)

type quizLevel struct {
	timeLimit  int
	multiplier int
}

var quizDifficulties = []Difficulty{
	{Key: "beginner", Name: "Beginner", Description: "Basic JavaScript concepts"},
	{Key: "intermediate", Name: "Intermediate", Description: "Advanced JS and web concepts"},
	{Key: "expert", Name: "Expert", Description: "Complex algorithms and patterns"},
}

var quizLevels = map[string]quizLevel{
	"beginner":     {timeLimit: 30, multiplier: 1},
	"intermediate": {timeLimit: 25, multiplier: 2},
	"expert":       {timeLimit: 20, multiplier: 3},
}

// QuizPoints scores a correct answer given the streak before it.
func QuizPoints(multiplier, streak int) int {
	return QuizBasePoints * multiplier * StreakMultiplier(streak)
}

type Lifelines struct {
	Hint int `json:"hint"`
	Skip int `json:"skip"`
	Time int `json:"time"`
}

type QuizAnswer struct {
	QuestionID int    `json:"questionId"`
	Selected   string `json:"selected,omitempty"`
	Correct    bool   `json:"correct"`
	TimedOut   bool   `json:"timedOut,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	Points     int    `json:"points"`
}

type QuizView struct {
	Session          Session      `json:"session"`
	Index            int          `json:"index"`
	Total            int          `json:"total"`
	Question         *Question    `json:"question,omitempty"`
	Removed          []int        `json:"removed"`
	QuestionTimeLeft int          `json:"questionTimeLeft"`
	Score            int          `json:"score"`
	Tally            Tally        `json:"tally"`
	Lifelines        Lifelines    `json:"lifelines"`
	Answers          []QuizAnswer `json:"answers"`
}

// quiz runs a round of multiple choice questions. Every question has its own
// clock; the session clock is the time left in the whole round, counting the
// current question, the untouched ones after it and an unused extension.
type quiz struct {
	m    *machine
	bank QuestionBank

	level     quizLevel
	questions []Question
	index     int
	qLeft     int
	removed   map[int]bool
	score     int
	tally     Tally
	lifelines Lifelines
	answers   []QuizAnswer
}

func newQuiz(sched scheduler.Scheduler, src rng.Source, o options) *quiz {
	bank := o.questions
	if bank == nil {
		bank = DefaultQuestionBank()
	}
	return &quiz{m: newMachine(Quiz, sched, src, o), bank: bank}
}

func (g *quiz) ID() ID { return Quiz }

func (g *quiz) Start(cfg Config) error {
	if _, err := findDifficulty(quizDifficulties, cfg.Difficulty); err != nil {
		return err
	}
	if len(g.bank[cfg.Difficulty]) == 0 {
		return fmt.Errorf("%w: %q", ErrNoQuestions, cfg.Difficulty)
	}
	g.m.lock()
	defer g.m.unlock()
	g.begin(Config{Difficulty: cfg.Difficulty})
	return nil
}

func (g *quiz) Retry() error {
	g.m.lock()
	defer g.m.unlock()
	if err := g.m.canRetry(); err != nil {
		return err
	}
	g.begin(g.m.cfg)
	return nil
}

func (g *quiz) begin(cfg Config) {
	g.level = quizLevels[cfg.Difficulty]
	pool := append([]Question(nil), g.bank[cfg.Difficulty]...)
	g.m.rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > QuizMaxQuestions {
		pool = pool[:QuizMaxQuestions]
	}
	g.questions = pool
	g.index = 0
	g.qLeft = g.level.timeLimit
	g.removed = map[int]bool{}
	g.score = 0
	g.tally = NewTally()
	g.lifelines = Lifelines{Hint: quizHints, Skip: quizSkips, Time: quizTimeExtensions}
	g.answers = nil

	g.m.begin(cfg, StatusPlaying, 0)
	g.syncClock()
	g.m.startClock(g.tick)
}

// syncClock recomputes the round clock. It never grows: taking the extension
// moves seconds from the reserve into the current question.
func (g *quiz) syncClock() {
	after := len(g.questions) - g.index - 1
	if after < 0 {
		after = 0
	}
	left := g.qLeft + after*g.level.timeLimit + g.lifelines.Time*QuizTimeExtension
	if s := &g.m.session; s.Status != StatusPlaying || s.TimeRemainingSeconds == 0 || left < s.TimeRemainingSeconds {
		s.TimeRemainingSeconds = left
	}
}

func (g *quiz) current() Question { return g.questions[g.index] }

func (g *quiz) Input(in Input) Outcome {
	g.m.lock()
	defer g.m.unlock()
	if !g.m.playing() {
		return ignored("not playing")
	}

	switch in.Action {
	case ActionHint:
		return g.hint()
	case ActionSkip:
		if g.lifelines.Skip <= 0 {
			return ignored("no skips left")
		}
		g.lifelines.Skip--
		g.answers = append(g.answers, QuizAnswer{QuestionID: g.current().ID, Skipped: true})
		done := g.advance()
		return Outcome{Accepted: true, Finished: done, Message: "skipped"}
	case ActionTime:
		if g.lifelines.Time <= 0 {
			return ignored("no time extensions left")
		}
		g.lifelines.Time--
		g.qLeft += QuizTimeExtension
		g.syncClock()
		return Outcome{Accepted: true, Message: fmt.Sprintf("+%ds", QuizTimeExtension)}
	case "", ActionAnswer:
		return g.answer(in.Index)
	default:
		return ignored("unknown action")
	}
}

func (g *quiz) hint() Outcome {
	if g.lifelines.Hint <= 0 {
		return ignored("no hints left")
	}
	q := g.current()
	var wrong []int
	for i, opt := range q.Options {
		if opt != q.Answer && !g.removed[i] {
			wrong = append(wrong, i)
		}
	}
	if len(wrong) == 0 {
		return ignored("nothing left to remove")
	}
	g.lifelines.Hint--
	g.removed[wrong[g.m.rand.Intn(len(wrong))]] = true
	return Outcome{Accepted: true, Message: "hint"}
}

func (g *quiz) answer(index int) Outcome {
	q := g.current()
	if index < 0 || index >= len(q.Options) || g.removed[index] {
		return ignored("invalid option")
	}

	a := QuizAnswer{QuestionID: q.ID, Selected: q.Options[index]}
	if q.Options[index] == q.Answer {
		a.Correct = true
		a.Points = QuizPoints(g.level.multiplier, g.tally.Streak)
		g.score += a.Points
		g.tally.Hit()
	} else {
		g.tally.Miss()
	}
	g.answers = append(g.answers, a)
	done := g.advance()
	return Outcome{Accepted: true, Correct: a.Correct, Points: a.Points, Finished: done, Message: q.Explanation}
}

// advance moves to the next question, finishing after the last one.
func (g *quiz) advance() bool {
	if g.index >= len(g.questions)-1 {
		g.qLeft = 0
		g.finish()
		return true
	}
	g.index++
	g.qLeft = g.level.timeLimit
	g.removed = map[int]bool{}
	g.syncClock()
	return false
}

func (g *quiz) Tick() {
	g.m.lock()
	defer g.m.unlock()
	if g.m.playing() {
		g.tick()
	}
}

func (g *quiz) tick() {
	if g.qLeft > 0 {
		g.qLeft--
	}
	g.m.countdown()
	if g.qLeft > 0 {
		return
	}
	g.tally.Miss()
	g.answers = append(g.answers, QuizAnswer{QuestionID: g.current().ID, TimedOut: true})
	g.advance()
}

func (g *quiz) finish() {
	g.m.session.TimeRemainingSeconds = 0
	g.m.finish(Result{
		Score:     g.score,
		Accuracy:  g.tally.Accuracy(),
		Correct:   g.tally.Correct,
		Missed:    g.tally.Missed,
		MaxStreak: g.tally.MaxStreak,
		Won:       g.tally.Correct > 0,
		Record:    true,
	})
}

func (g *quiz) Reset() {
	g.m.lock()
	defer g.m.unlock()
	g.m.reset()
}

func (g *quiz) Session() Session { return g.m.snapshot() }

func (g *quiz) Result() (Result, bool) { return g.m.lastResult() }

func (g *quiz) View() any {
	g.m.lock()
	defer g.m.unlock()
	v := QuizView{
		Session:          g.m.session,
		Index:            g.index,
		Total:            len(g.questions),
		Removed:          []int{},
		QuestionTimeLeft: g.qLeft,
		Score:            g.score,
		Tally:            g.tally,
		Lifelines:        g.lifelines,
		Answers:          append([]QuizAnswer{}, g.answers...),
	}
	if g.m.playing() && g.index < len(g.questions) {
		q := g.current()
		v.Question = &q
		for i := range q.Options {
			if g.removed[i] {
				v.Removed = append(v.Removed, i)
			}
		}
	}
	return v
}
