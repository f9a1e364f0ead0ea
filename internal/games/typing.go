package games

import (
	"time"

	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

const typingPreroll = 100 * time.Millisecond

var typingDifficulties = []Difficulty{
	{Key: "beginner", Name: "Beginner", Description: "Simple words and phrases"},
	{Key: "intermediate", Name: "Intermediate", Description: "Programming terms and concepts"},
	{Key: "advanced", Name: "Advanced", Description: "Complex code and technical content"},
}

var typingModes = []Mode{
	{Key: "time", Name: "Time Challenge", DurationSeconds: 60, Description: "Type as much as possible in 60 seconds"},
	{Key: "accuracy", Name: "Accuracy Test", DurationSeconds: 120, Description: "Focus on precision over speed"},
	{Key: "endurance", Name: "Endurance Mode", DurationSeconds: 180, Description: "Long-form typing challenge"},
}

// DefaultTypingTexts returns the built-in passages keyed by difficulty.
func DefaultTypingTexts() map[string][]string {
	return map[string][]string{
		"beginner": {
			"The quick brown fox jumps over the lazy dog.",
			"Hello world! Welcome to coding.",
			"React makes building user interfaces easy.",
			"JavaScript is a powerful programming language.",
			"Practice makes perfect in typing speed.",
			"Web development is creative and fun.",
			"Code with passion and purpose.",
			"Learning never stops for developers.",
		},
		"intermediate": {
			"const handleSubmit = async (event) => { event.preventDefault(); }",
			"import React, { useState, useEffect } from 'react';",
			"function fibonacci(n) { return n <= 1 ? n : fibonacci(n-1) + fibonacci(n-2); }",
			"The component lifecycle methods include componentDidMount and componentWillUnmount.",
			"API endpoints should be RESTful and follow HTTP status code conventions.",
			"Git version control helps developers collaborate on projects efficiently.",
			"Responsive design ensures websites work across different screen sizes.",
			"Database normalization reduces redundancy and improves data integrity.",
		},
		"advanced": {
			"useEffect(() => { const subscription = observable.subscribe(data => setData(data)); return () => subscription.unsubscribe(); }, []);",
			"interface ApiResponse<T> { data: T; status: number; message?: string; }",
			"The microservices architecture pattern promotes loose coupling between services.",
			"Implementing OAuth 2.0 authentication requires careful handling of tokens and refresh mechanisms.",
			"Kubernetes orchestrates containerized applications across distributed computing clusters.",
			"Machine learning algorithms like neural networks require extensive training datasets.",
			"Blockchain technology uses cryptographic hashing to ensure transaction immutability.",
			"WebAssembly enables near-native performance for web applications through bytecode compilation.",
		},
	}
}

// TypingRating labels a finished run.
func TypingRating(mode string, wpm, accuracy int) string {
	if mode == "accuracy" {
		switch {
		case accuracy >= 98:
			return "Perfect"
		case accuracy >= 95:
			return "Excellent"
		case accuracy >= 90:
			return "Great"
		case accuracy >= 80:
			return "Good"
		default:
			return "Keep practicing"
		}
	}
	switch {
	case wpm >= 80:
		return "Lightning Fast"
	case wpm >= 60:
		return "Very Fast"
	case wpm >= 40:
		return "Fast"
	case wpm >= 25:
		return "Average"
	default:
		return "Keep practicing"
	}
}

type TypingView struct {
	Session   Session `json:"session"`
	Text      string  `json:"text"`
	Typed     string  `json:"typed"`
	Errors    int     `json:"errors"`
	Streak    int     `json:"streak"`
	MaxStreak int     `json:"maxStreak"`
	WPM       int     `json:"wpm"`
	Accuracy  int     `json:"accuracy"`
	Complete  bool    `json:"complete"`
	Rating    string  `json:"rating,omitempty"`
}

type typing struct {
	m     *machine
	texts map[string][]string

	duration  int
	text      []rune
	typed     []rune
	errors    int
	streak    int
	maxStreak int
	wpm       int
	accuracy  int
	complete  bool
}

func newTyping(sched scheduler.Scheduler, src rng.Source, o options) *typing {
	texts := o.texts
	if texts == nil {
		texts = DefaultTypingTexts()
	}
	return &typing{m: newMachine(Typing, sched, src, o), texts: texts}
}

func (g *typing) ID() ID { return Typing }

func (g *typing) Start(cfg Config) error {
	if _, err := findDifficulty(typingDifficulties, cfg.Difficulty); err != nil {
		return err
	}
	mode, err := findMode(typingModes, cfg.Mode)
	if err != nil {
		return err
	}
	g.m.lock()
	defer g.m.unlock()
	texts := g.texts[cfg.Difficulty]
	if len(texts) == 0 {
		return ErrUnknownDifficulty
	}
	g.duration = mode.DurationSeconds
	g.begin(cfg, texts)
	return nil
}

func (g *typing) Retry() error {
	g.m.lock()
	defer g.m.unlock()
	if err := g.m.canRetry(); err != nil {
		return err
	}
	g.begin(g.m.cfg, g.texts[g.m.cfg.Difficulty])
	return nil
}

func (g *typing) begin(cfg Config, texts []string) {
	g.m.begin(cfg, StatusReady, g.duration)
	g.text = []rune(texts[g.m.rand.Intn(len(texts))])
	g.typed = nil
	g.errors = 0
	g.streak = 0
	g.maxStreak = 0
	g.wpm = 0
	g.accuracy = 100
	g.complete = false
	g.m.after(typingPreroll, func() {
		if g.m.to(StatusPlaying) {
			g.m.startClock(g.tick)
		}
	})
}

// Input takes the whole current value of the text field.
func (g *typing) Input(in Input) Outcome {
	g.m.lock()
	defer g.m.unlock()
	if !g.m.playing() {
		return ignored("not playing")
	}
	value := []rune(in.Text)
	if len(value) > len(g.text) {
		return ignored("input longer than text")
	}

	errs, run, best := 0, 0, 0
	for i, r := range value {
		if r != g.text[i] {
			errs++
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	g.typed = value
	g.errors = errs
	g.streak = run
	if best > g.maxStreak {
		g.maxStreak = best
	}
	g.accuracy = Accuracy(len(value)-errs, len(value))
	g.wpm = WPM(len(value)-errs, g.m.sched.Now().Sub(g.m.playingSince))

	out := Outcome{Accepted: true, Correct: errs == 0}
	if string(value) == string(g.text) {
		g.complete = true
		g.finish()
		out.Finished = true
	}
	return out
}

func (g *typing) Tick() {
	g.m.lock()
	defer g.m.unlock()
	if g.m.playing() {
		g.tick()
	}
}

func (g *typing) tick() {
	if g.m.countdown() {
		g.finish()
	}
}

func (g *typing) finish() {
	score := g.wpm
	if g.m.cfg.Mode == "accuracy" {
		score = g.accuracy
	}
	g.m.finish(Result{
		Score:     score,
		Accuracy:  g.accuracy,
		Correct:   len(g.typed) - g.errors,
		Missed:    g.errors,
		MaxStreak: g.maxStreak,
		Won:       g.complete,
		Record:    len(g.typed) > 0,
	})
}

func (g *typing) Reset() {
	g.m.lock()
	defer g.m.unlock()
	g.m.reset()
}

func (g *typing) Session() Session { return g.m.snapshot() }

func (g *typing) Result() (Result, bool) { return g.m.lastResult() }

func (g *typing) View() any {
	g.m.lock()
	defer g.m.unlock()
	v := TypingView{
		Session:   g.m.session,
		Text:      string(g.text),
		Typed:     string(g.typed),
		Errors:    g.errors,
		Streak:    g.streak,
		MaxStreak: g.maxStreak,
		WPM:       g.wpm,
		Accuracy:  g.accuracy,
		Complete:  g.complete,
	}
	if g.m.session.Status == StatusFinished {
		v.Rating = TypingRating(g.m.cfg.Mode, g.wpm, g.accuracy)
	}
	return v
}
