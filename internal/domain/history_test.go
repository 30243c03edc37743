package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryLogPushesNewestFirst(t *testing.T) {
	t.Parallel()

	log := NewHistoryLog(3)
	log.Push(Round{ID: "a"})
	log.Push(Round{ID: "b"})

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, RoundID("b"), entries[0].ID)
	assert.Equal(t, RoundID("a"), entries[1].ID)
}

func TestHistoryLogEvictsOldestPastCapacity(t *testing.T) {
	t.Parallel()

	log := NewHistoryLog(DefaultHistoryCapacity)
	for i := 0; i < 40; i++ {
		log.Push(Round{ID: RoundID(fmt.Sprintf("r%02d", i))})
		assert.LessOrEqual(t, log.Len(), DefaultHistoryCapacity)
	}

	entries := log.Entries()
	require.Len(t, entries, DefaultHistoryCapacity)
	assert.Equal(t, RoundID("r39"), entries[0].ID)
	assert.Equal(t, RoundID("r25"), entries[len(entries)-1].ID)
}

func TestHistoryLogEntriesIsACopy(t *testing.T) {
	t.Parallel()

	log := NewHistoryLog(2)
	log.Push(Round{ID: "a"})

	entries := log.Entries()
	entries[0].ID = "mutated"

	assert.Equal(t, RoundID("a"), log.Entries()[0].ID)
}

func TestNewHistoryLogDefaultsCapacity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultHistoryCapacity, NewHistoryLog(0).Capacity())
}
