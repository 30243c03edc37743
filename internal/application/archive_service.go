package application

import (
	"context"
	"fmt"

	"github.com/bnema/roundctl/internal/domain"
	"github.com/bnema/roundctl/internal/ports"
)

type ArchiveService struct {
	archive ports.RoundArchive
}

func NewArchiveService(archive ports.RoundArchive) *ArchiveService {
	return &ArchiveService{archive: archive}
}

func (s *ArchiveService) List(ctx context.Context, limit int) ([]domain.ArchivedRound, error) {
	if s.archive == nil {
		return nil, domain.ErrArchiveUnavailable
	}

	rounds, err := s.archive.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list archived rounds: %w", err)
	}

	return rounds, nil
}

// Verify recomputes every archived outcome from its id and reports the rounds
// whose recorded outcome differs.
func (s *ArchiveService) Verify(ctx context.Context) (VerifyReport, error) {
	rounds, err := s.List(ctx, 0)
	if err != nil {
		return VerifyReport{}, err
	}

	report := VerifyReport{Checked: len(rounds)}
	for _, archived := range rounds {
		want := domain.OutcomeFor(archived.Round.ID, archived.Round.StartedAt)
		if want != archived.Round.Outcome {
			report.Mismatches = append(report.Mismatches, ArchiveMismatch{Archived: archived, Want: want})
		}
	}

	return report, nil
}
