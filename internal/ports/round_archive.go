package ports

import (
	"context"

	"github.com/bnema/roundctl/internal/domain"
)

// RoundArchive records rounds opened by running engines. Appending a round
// already recorded for the same run is a no-op.
type RoundArchive interface {
	Append(ctx context.Context, rounds []domain.ArchivedRound) error
	// List returns up to limit rounds, most recently recorded first. A limit
	// of zero or less returns every round.
	List(ctx context.Context, limit int) ([]domain.ArchivedRound, error)
}
