package application

import (
	"time"

	"github.com/bnema/roundctl/internal/domain"
)

// Tick is the state handed to display collaborators after a catch-up.
type Tick struct {
	RunID     string         `json:"run_id"`
	At        time.Time      `json:"at"`
	Active    domain.Round   `json:"active"`
	Remaining time.Duration  `json:"remaining"`
	Completed []domain.Round `json:"completed,omitempty"`
	// History is newest first and bounded by the history capacity.
	History []domain.Round `json:"history"`
}

type Inspection struct {
	ID            domain.RoundID `json:"id"`
	WellFormed    bool           `json:"well_formed"`
	Seed          int64          `json:"seed"`
	Deterministic bool           `json:"deterministic"`
	Outcome       domain.Outcome `json:"outcome"`
}

type ArchiveMismatch struct {
	Archived domain.ArchivedRound
	Want     domain.Outcome
}

type VerifyReport struct {
	Checked    int
	Mismatches []ArchiveMismatch
}

func (r VerifyReport) OK() bool {
	return len(r.Mismatches) == 0
}

type ReplayResult struct {
	From      time.Time      `json:"from"`
	Until     time.Time      `json:"until"`
	Active    domain.Round   `json:"active"`
	Remaining time.Duration  `json:"remaining"`
	Completed []domain.Round `json:"completed"`
	History   []domain.Round `json:"history"`
}
