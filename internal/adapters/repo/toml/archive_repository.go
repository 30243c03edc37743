package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/roundctl/internal/domain"
	"github.com/bnema/roundctl/internal/ports"
	"github.com/spf13/viper"
)

const (
	archivePathKey       = "archive.path"
	archiveMaxEntriesKey = "archive.max_entries"
	archiveFileMode      = 0o600
	archiveDirMode       = 0o700
	archiveConfigDir     = ".roundctl"
	archiveFileName      = "rounds.toml"
	tempFilePattern      = ".rounds-*.toml.tmp"

	DefaultMaxEntries = 2000
)

// ArchiveRepository stores archived rounds in a single TOML file, oldest
// first, dropping the oldest entries past the configured maximum.
type ArchiveRepository struct {
	file       archiveFile
	maxEntries int
}

var _ ports.RoundArchive = (*ArchiveRepository)(nil)

func NewArchiveRepository(cfg *viper.Viper) (*ArchiveRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(archivePathKey, filepath.Join(homeDir, archiveConfigDir, archiveFileName))
	cfg.SetDefault(archiveMaxEntriesKey, DefaultMaxEntries)

	file, err := openArchiveFile(cfg.GetString(archivePathKey))
	if err != nil {
		return nil, err
	}

	maxEntries := cfg.GetInt(archiveMaxEntriesKey)
	if maxEntries <= 0 {
		return nil, fmt.Errorf("archive max entries must be positive, got %d", maxEntries)
	}

	return &ArchiveRepository{file: file, maxEntries: maxEntries}, nil
}

func (r *ArchiveRepository) Path() string {
	return r.file.path
}

func (r *ArchiveRepository) Append(ctx context.Context, rounds []domain.ArchivedRound) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(rounds) == 0 {
		return nil
	}

	r.file.lock.Lock()
	defer r.file.lock.Unlock()

	doc, err := r.file.load()
	if err != nil {
		return err
	}

	seen := make(map[roundKey]struct{}, len(doc.Rounds))
	for _, entry := range doc.Rounds {
		seen[entry.key()] = struct{}{}
	}

	for _, round := range rounds {
		encoded := toSchema(round)
		if _, ok := seen[encoded.key()]; ok {
			continue
		}
		seen[encoded.key()] = struct{}{}
		doc.Rounds = append(doc.Rounds, encoded)
	}

	if overflow := len(doc.Rounds) - r.maxEntries; overflow > 0 {
		doc.Rounds = append([]roundSchema(nil), doc.Rounds[overflow:]...)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.file.store(doc)
}

func (r *ArchiveRepository) List(ctx context.Context, limit int) ([]domain.ArchivedRound, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.file.lock.RLock()
	defer r.file.lock.RUnlock()

	doc, err := r.file.load()
	if err != nil {
		return nil, err
	}

	count := len(doc.Rounds)
	if limit > 0 && limit < count {
		count = limit
	}

	rounds := make([]domain.ArchivedRound, 0, count)
	for i := len(doc.Rounds) - 1; i >= 0 && len(rounds) < count; i-- {
		rounds = append(rounds, fromSchema(doc.Rounds[i]))
	}

	return rounds, nil
}

func toSchema(archived domain.ArchivedRound) roundSchema {
	return roundSchema{
		RunID:      archived.RunID,
		ID:         archived.Round.ID.String(),
		StartedAt:  archived.Round.StartedAt,
		RecordedAt: archived.RecordedAt,
		Digit:      archived.Round.Outcome.Digit,
		Category:   string(archived.Round.Outcome.Category),
		Color:      string(archived.Round.Outcome.Color),
	}
}

func fromSchema(entry roundSchema) domain.ArchivedRound {
	return domain.ArchivedRound{
		RunID: entry.RunID,
		Round: domain.Round{
			ID:        domain.RoundID(entry.ID),
			StartedAt: entry.StartedAt,
			Outcome: domain.Outcome{
				Digit:    entry.Digit,
				Category: domain.Category(entry.Category),
				Color:    domain.Color(entry.Color),
			},
		},
		RecordedAt: entry.RecordedAt,
	}
}
