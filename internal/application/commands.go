package application

import (
	"time"

	"github.com/bnema/roundctl/internal/domain"
)

type EngineConfig struct {
	RoundDuration   time.Duration
	HistoryCapacity int
	Location        *time.Location
}

func (c EngineConfig) clockOptions() domain.ClockOptions {
	return domain.ClockOptions{
		RoundDuration:   c.RoundDuration,
		HistoryCapacity: c.HistoryCapacity,
		Location:        c.Location,
	}
}

// DefaultMaxReplayRounds bounds a replay to about five weeks of 30s rounds.
const DefaultMaxReplayRounds = 100_000

type ReplayCommand struct {
	From  time.Time
	Until time.Time
	// Serial overrides the serial seeded from From's time of day when positive.
	Serial int
	// MaxRounds caps the completed rounds; zero or less uses DefaultMaxReplayRounds.
	MaxRounds int
}

func (c ReplayCommand) maxRounds() int64 {
	if c.MaxRounds <= 0 {
		return DefaultMaxReplayRounds
	}
	return int64(c.MaxRounds)
}
