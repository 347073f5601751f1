// Package interview drives one practice run: it walks the level's questions,
// collects a transcript per question, scores it synchronously and enforces
// the session countdown.
package interview

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/prepdeck/prepdeck/internal/catalog"
	"github.com/prepdeck/prepdeck/internal/scoring"
	"github.com/prepdeck/prepdeck/internal/session"
	"github.com/prepdeck/prepdeck/internal/speech"
)

// Hooks let the caller render progress. Nil hooks are skipped.
type Hooks struct {
	// OnQuestion runs before the transcript for a question is collected.
	OnQuestion func(index, total int, q catalog.Question)
	// OnResult runs after a question is scored (or skipped for no input).
	OnResult func(index int, a *session.Answer)
}

// Config wires a Runner.
type Config struct {
	Level     *catalog.Level
	Evaluator *scoring.Evaluator
	Source    speech.Source
	Logger    *zap.Logger
	// Duration bounds the whole session; zero disables the countdown.
	Duration time.Duration
	// QuestionDelay is the pause between questions, cancellable only by
	// session shutdown.
	QuestionDelay time.Duration
	Hooks         Hooks
}

// Runner executes practice sessions.
type Runner struct {
	cfg Config
}

// New validates the config and returns a Runner.
func New(cfg Config) (*Runner, error) {
	if cfg.Level == nil || len(cfg.Level.Questions) == 0 {
		return nil, errors.New("a level with questions is required")
	}
	if cfg.Evaluator == nil {
		return nil, errors.New("an evaluator is required")
	}
	if cfg.Source == nil {
		return nil, errors.New("a transcript source is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Runner{cfg: cfg}, nil
}

// Run walks the questions until they are exhausted, the countdown expires or
// the context is cancelled. The returned session is always submitted; a
// forced submit is not an error.
func (r *Runner) Run(ctx context.Context) (*session.Session, error) {
	cfg := r.cfg
	sess := session.New(cfg.Level.Name, cfg.Level.Questions)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var forced atomic.Bool
	if cfg.Duration > 0 {
		countdown := session.NewCountdown(cfg.Duration, func() {
			forced.Store(true)
			cancel()
		})
		defer countdown.Stop()
	}

	cfg.Logger.Info("session started",
		zap.String("session_id", sess.ID),
		zap.String("level", cfg.Level.Name),
		zap.Int("questions", len(cfg.Level.Questions)),
		zap.Duration("duration", cfg.Duration),
	)

	total := len(cfg.Level.Questions)
	for i, question := range cfg.Level.Questions {
		if runCtx.Err() != nil {
			break
		}

		if cfg.Hooks.OnQuestion != nil {
			cfg.Hooks.OnQuestion(i, total, question)
		}

		text, err := speech.Collect(runCtx, cfg.Source)
		if err != nil {
			if runCtx.Err() != nil {
				break
			}
			// Capture failures are recovered locally: the question is
			// recorded as unanswered and the session moves on.
			cfg.Logger.Warn("transcript capture failed",
				zap.Int("question", i+1),
				zap.Error(err),
			)
		}

		result := cfg.Evaluator.Evaluate(text, question.Keywords)
		sess.Record(i, text, result)

		if !result.Answered {
			cfg.Logger.Info("no input for question",
				zap.Int("question", i+1),
			)
		} else {
			cfg.Logger.Info("question scored",
				zap.Int("question", i+1),
				zap.Int("relevance", result.Relevance),
				zap.Int("clarity", result.Clarity),
				zap.Int("completeness", result.Completeness),
				zap.Int("words", result.WordCount),
			)
		}

		if cfg.Hooks.OnResult != nil {
			cfg.Hooks.OnResult(i, sess.Answers[i])
		}

		if i < total-1 {
			if err := wait(runCtx, cfg.QuestionDelay); err != nil {
				break
			}
		}
	}

	sess.Submit()

	stats := sess.Stats()
	cfg.Logger.Info("session submitted",
		zap.String("session_id", sess.ID),
		zap.Bool("forced", forced.Load()),
		zap.Int("answered", stats.AnsweredQuestions),
		zap.Int("total", stats.TotalQuestions),
		zap.Duration("time_spent", stats.TimeSpent),
	)

	if ctx.Err() != nil && !forced.Load() {
		return sess, fmt.Errorf("session interrupted: %w", ctx.Err())
	}

	return sess, nil
}

// wait pauses between questions, returning early when the session ends.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
