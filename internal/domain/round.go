package domain

import "time"

// Round is one opened round with its derived outcome.
type Round struct {
	ID        RoundID   `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Outcome   Outcome   `json:"outcome"`
}

// ArchivedRound is a round recorded by a running engine.
type ArchivedRound struct {
	RunID      string
	Round      Round
	RecordedAt time.Time
}
