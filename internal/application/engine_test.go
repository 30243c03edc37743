package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/roundctl/internal/domain"
	"github.com/bnema/roundctl/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

var testEngineConfig = EngineConfig{Location: time.UTC}

// 10:00:30 UTC seeds serial 700 + 36030/30 + 1 = 1902.
var engineStart = time.Date(2025, 1, 1, 10, 0, 30, 0, time.UTC)

func TestEngineStartsWithSeededActiveRound(t *testing.T) {
	clock := &steppingClock{now: engineStart}
	engine, err := NewEngine(testEngineConfig, clock, nil, nil)
	require.NoError(t, err)

	current := engine.Current()
	assert.Equal(t, domain.RoundID("202501011000301902"), current.Active.ID)
	assert.Equal(t, 30*time.Second, current.Remaining)
	assert.Empty(t, current.History)
	assert.NotEmpty(t, engine.RunID())
	assert.Equal(t, engine.RunID(), current.RunID)
}

func TestEngineRejectsInvalidConfig(t *testing.T) {
	_, err := NewEngine(EngineConfig{RoundDuration: 7 * time.Second}, &steppingClock{now: engineStart}, nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidClockConfig)
}

func TestEngineCatchUpArchivesCompletedRounds(t *testing.T) {
	clock := &steppingClock{now: engineStart}
	archive := mocks.NewMockRoundArchive(t)
	engine, err := NewEngine(testEngineConfig, clock, archive, nil)
	require.NoError(t, err)

	var archived []domain.ArchivedRound
	archive.EXPECT().Append(mockAnyContext(), mock.Anything).
		Run(func(_ context.Context, rounds []domain.ArchivedRound) {
			archived = append(archived, rounds...)
		}).
		Return(nil).
		Once()

	clock.Advance(95 * time.Second)
	tick, err := engine.CatchUp(context.Background())
	require.NoError(t, err)

	require.Len(t, tick.Completed, 3)
	assert.Equal(t, 25*time.Second, tick.Remaining)
	assert.Equal(t, domain.RoundID("202501011001001903"), tick.Completed[0].ID)
	assert.Equal(t, domain.RoundID("202501011002001905"), tick.Active.ID)
	require.Len(t, tick.History, 3)
	assert.Equal(t, tick.Active.ID, tick.History[0].ID)

	require.Len(t, archived, 3)
	for i, entry := range archived {
		assert.Equal(t, engine.RunID(), entry.RunID)
		assert.Equal(t, tick.Completed[i], entry.Round)
		assert.True(t, clock.Now().Equal(entry.RecordedAt))
	}
}

func TestEngineCatchUpWithoutBoundarySkipsArchive(t *testing.T) {
	clock := &steppingClock{now: engineStart}
	archive := mocks.NewMockRoundArchive(t)
	engine, err := NewEngine(testEngineConfig, clock, archive, nil)
	require.NoError(t, err)

	clock.Advance(10 * time.Second)
	tick, err := engine.CatchUp(context.Background())
	require.NoError(t, err)

	assert.Empty(t, tick.Completed)
	assert.Equal(t, 20*time.Second, tick.Remaining)
	archive.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestEngineCatchUpKeepsStateWhenArchiveFails(t *testing.T) {
	clock := &steppingClock{now: engineStart}
	archive := mocks.NewMockRoundArchive(t)
	engine, err := NewEngine(testEngineConfig, clock, archive, nil)
	require.NoError(t, err)

	archiveErr := errors.New("disk full")
	archive.EXPECT().Append(mockAnyContext(), mock.Anything).Return(archiveErr).Once()

	clock.Advance(31 * time.Second)
	tick, err := engine.CatchUp(context.Background())
	require.ErrorIs(t, err, archiveErr)
	assert.Len(t, tick.Completed, 1)

	clock.Advance(time.Second)
	tick, err = engine.CatchUp(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tick.Completed, "a failed archive must not replay the round")
	assert.Len(t, engine.History(), 1)
}

func TestEngineResumeCompensatesForMissedTicks(t *testing.T) {
	clock := &steppingClock{now: engineStart}
	engine, err := NewEngine(testEngineConfig, clock, nil, nil)
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	tick, err := engine.Resume(context.Background())
	require.NoError(t, err)

	assert.Len(t, tick.Completed, 90)
	assert.Len(t, tick.History, domain.DefaultHistoryCapacity)
	assert.Equal(t, domain.RoundID("202501011045301992"), tick.Active.ID)
}

func TestEngineCatchUpHonorsCancelledContext(t *testing.T) {
	engine, err := NewEngine(testEngineConfig, &steppingClock{now: engineStart}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.CatchUp(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngineConcurrentCatchUpsEmitEachRoundOnce(t *testing.T) {
	clock := &steppingClock{now: engineStart}
	engine, err := NewEngine(testEngineConfig, clock, nil, nil)
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[domain.RoundID]int{}
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tick, err := engine.CatchUp(context.Background())
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			for _, round := range tick.Completed {
				seen[round.ID]++
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 20)
	for id, count := range seen {
		assert.Equal(t, 1, count, "round %s", id)
	}
}

func TestEnginePredictNextUsesActiveRound(t *testing.T) {
	engine, err := NewEngine(testEngineConfig, &steppingClock{now: engineStart}, nil, nil)
	require.NoError(t, err)

	prediction, err := engine.PredictNext("902")
	require.NoError(t, err)

	assert.Equal(t, domain.RoundID("202501011000301902"), prediction.Base)
	assert.Equal(t, domain.RoundID("202501011000301903"), prediction.Next)
	assert.Empty(t, engine.History(), "prediction must not record history")
	assert.Equal(t, domain.RoundID("202501011000301902"), engine.Current().Active.ID)

	_, err = engine.PredictNext("")
	require.ErrorIs(t, err, domain.ErrInvalidSerialInput)
}
