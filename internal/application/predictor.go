package application

import (
	"github.com/bnema/roundctl/internal/domain"
	"github.com/bnema/roundctl/internal/ports"
)

// Predictor answers questions about arbitrary round ids. It holds no round
// state; the clock is only read for the seed fallback of malformed ids.
type Predictor struct {
	clock ports.Clock
}

func NewPredictor(clock ports.Clock) *Predictor {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Predictor{clock: clock}
}

func (p *Predictor) Predict(current domain.RoundID, input string) (domain.Prediction, error) {
	return domain.PredictNext(current, input, p.clock.Now())
}

func (p *Predictor) Inspect(id domain.RoundID) Inspection {
	now := p.clock.Now()
	seed, deterministic := domain.SeedFor(id, now)

	return Inspection{
		ID:            id,
		WellFormed:    id.Valid(),
		Seed:          seed,
		Deterministic: deterministic,
		Outcome:       domain.OutcomeFor(id, now),
	}
}
