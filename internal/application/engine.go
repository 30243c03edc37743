package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/roundctl/internal/domain"
	"github.com/bnema/roundctl/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine is the single writer of a RoundClock. Every catch-up runs under one
// lock so ticks and resume signals arriving together are applied in turn.
type Engine struct {
	mu        sync.Mutex
	rounds    *domain.RoundClock
	clock     ports.Clock
	archive   ports.RoundArchive
	predictor *Predictor
	logger    *zap.Logger
	runID     string
}

func NewEngine(cfg EngineConfig, clock ports.Clock, archive ports.RoundArchive, logger *zap.Logger) (*Engine, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rounds, err := domain.NewRoundClock(clock.Now(), cfg.clockOptions())
	if err != nil {
		return nil, fmt.Errorf("create round clock: %w", err)
	}

	e := &Engine{
		rounds:    rounds,
		clock:     clock,
		archive:   archive,
		predictor: NewPredictor(clock),
		logger:    logger,
		runID:     uuid.NewString(),
	}
	e.logger.Debug("round engine started",
		zap.String("run_id", e.runID),
		zap.String("active", rounds.Active().ID.String()),
		zap.Duration("round_duration", rounds.RoundDuration()))

	return e, nil
}

func (e *Engine) RunID() string {
	return e.runID
}

// CatchUp reconciles the round sequence with the current time. Completed
// rounds are archived when an archive is configured; an archive failure is
// returned together with the already advanced tick.
func (e *Engine) CatchUp(ctx context.Context) (Tick, error) {
	return e.catchUp(ctx, "tick")
}

// Resume is CatchUp triggered by the host reporting the process was not
// scheduled for a while.
func (e *Engine) Resume(ctx context.Context) (Tick, error) {
	return e.catchUp(ctx, "resume")
}

func (e *Engine) catchUp(ctx context.Context, reason string) (Tick, error) {
	if err := ctx.Err(); err != nil {
		return Tick{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	result := e.rounds.CatchUp(now)
	tick := Tick{
		RunID:     e.runID,
		At:        now,
		Active:    result.Active,
		Remaining: result.Remaining,
		Completed: result.Completed,
		History:   e.rounds.History(),
	}

	if reason == "resume" {
		e.logger.Info("resynchronized after resume",
			zap.Int("rounds", len(result.Completed)),
			zap.String("active", result.Active.ID.String()))
	}
	for _, round := range result.Completed {
		e.logger.Debug("round opened",
			zap.String("id", round.ID.String()),
			zap.Int("digit", round.Outcome.Digit),
			zap.String("category", string(round.Outcome.Category)))
	}

	if len(result.Completed) == 0 || e.archive == nil {
		return tick, nil
	}

	archived := make([]domain.ArchivedRound, 0, len(result.Completed))
	for _, round := range result.Completed {
		archived = append(archived, domain.ArchivedRound{RunID: e.runID, Round: round, RecordedAt: now})
	}
	if err := e.archive.Append(ctx, archived); err != nil {
		return tick, fmt.Errorf("archive completed rounds: %w", err)
	}

	return tick, nil
}

// Current returns the state of the last evaluation without advancing it.
func (e *Engine) Current() Tick {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Tick{
		RunID:     e.runID,
		At:        e.clock.Now(),
		Active:    e.rounds.Active(),
		Remaining: e.rounds.Remaining(),
		History:   e.rounds.History(),
	}
}

// History returns the bounded history, newest first.
func (e *Engine) History() []domain.Round {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.rounds.History()
}

// PredictNext predicts from the engine's own active round id.
func (e *Engine) PredictNext(input string) (domain.Prediction, error) {
	e.mu.Lock()
	current := e.rounds.Active().ID
	e.mu.Unlock()

	return e.predictor.Predict(current, input)
}
