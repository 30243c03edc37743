package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/roundctl/internal/domain"
	"github.com/bnema/roundctl/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archivedRound(id domain.RoundID, outcome domain.Outcome) domain.ArchivedRound {
	return domain.ArchivedRound{
		RunID: "run-1",
		Round: domain.Round{
			ID:        id,
			StartedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Outcome:   outcome,
		},
		RecordedAt: time.Date(2025, 1, 1, 0, 0, 30, 0, time.UTC),
	}
}

func TestArchiveServiceVerifyReportsMismatches(t *testing.T) {
	archive := mocks.NewMockRoundArchive(t)
	service := NewArchiveService(archive)

	good := archivedRound("202501010000000781", domain.Classify(3))
	bad := archivedRound("202501010000000782", domain.Classify(1))
	archive.EXPECT().List(mockAnyContext(), 0).Return([]domain.ArchivedRound{good, bad}, nil)

	report, err := service.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Checked)
	assert.False(t, report.OK())
	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, bad, report.Mismatches[0].Archived)
	assert.Equal(t, domain.Classify(8), report.Mismatches[0].Want)
}

func TestArchiveServiceVerifyAcceptsConsistentArchive(t *testing.T) {
	archive := mocks.NewMockRoundArchive(t)
	service := NewArchiveService(archive)

	archive.EXPECT().List(mockAnyContext(), 0).Return([]domain.ArchivedRound{
		archivedRound("202501010000000005", domain.Classify(5)),
	}, nil)

	report, err := service.Verify(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Checked)
}

func TestArchiveServiceListWrapsErrors(t *testing.T) {
	archive := mocks.NewMockRoundArchive(t)
	service := NewArchiveService(archive)

	listErr := errors.New("decode failed")
	archive.EXPECT().List(mockAnyContext(), 5).Return(nil, listErr)

	_, err := service.List(context.Background(), 5)
	require.ErrorIs(t, err, listErr)
	assert.ErrorContains(t, err, "list archived rounds")
}

func TestArchiveServiceWithoutArchive(t *testing.T) {
	service := NewArchiveService(nil)

	_, err := service.List(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrArchiveUnavailable)

	_, err = service.Verify(context.Background())
	require.ErrorIs(t, err, domain.ErrArchiveUnavailable)
}
