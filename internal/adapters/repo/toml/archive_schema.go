package toml

import (
	"fmt"
	"time"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Rounds  []roundSchema `toml:"rounds"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported archive schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type roundSchema struct {
	RunID      string    `toml:"run_id"`
	ID         string    `toml:"id"`
	StartedAt  time.Time `toml:"started_at"`
	RecordedAt time.Time `toml:"recorded_at"`
	Digit      int       `toml:"digit"`
	Category   string    `toml:"category"`
	Color      string    `toml:"color"`
}

type roundKey struct {
	runID string
	id    string
}

func (r roundSchema) key() roundKey {
	return roundKey{runID: r.RunID, id: r.ID}
}
