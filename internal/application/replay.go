package application

import (
	"fmt"
	"time"

	"github.com/bnema/roundctl/internal/domain"
)

// Replay opens a round clock at cmd.From and catches it up to cmd.Until in a
// single evaluation, without reading the wall clock.
func Replay(cfg EngineConfig, cmd ReplayCommand) (ReplayResult, error) {
	if cmd.Until.Before(cmd.From) {
		return ReplayResult{}, fmt.Errorf("replay window ends at %s before it starts at %s", cmd.Until, cmd.From)
	}

	rounds, err := domain.NewRoundClock(cmd.From, cfg.clockOptions())
	if err != nil {
		return ReplayResult{}, fmt.Errorf("create round clock: %w", err)
	}
	if cmd.Serial > 0 {
		rounds, err = domain.NewRoundClockAt(rounds.Anchor(), cmd.Serial, cfg.clockOptions())
		if err != nil {
			return ReplayResult{}, fmt.Errorf("create round clock: %w", err)
		}
	}

	// Sub saturates near 292 years; the count is checked before any round is built.
	if count := int64(cmd.Until.Sub(rounds.Anchor()) / rounds.RoundDuration()); count > cmd.maxRounds() {
		return ReplayResult{}, fmt.Errorf("%w: %d rounds between %s and %s, limit %d",
			domain.ErrReplayTooLarge, count, cmd.From.Format(time.RFC3339), cmd.Until.Format(time.RFC3339), cmd.maxRounds())
	}

	result := rounds.CatchUp(cmd.Until)

	return ReplayResult{
		From:      cmd.From,
		Until:     cmd.Until,
		Active:    result.Active,
		Remaining: result.Remaining,
		Completed: result.Completed,
		History:   rounds.History(),
	}, nil
}
