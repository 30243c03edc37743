package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/roundctl/internal/domain"
	"github.com/bnema/roundctl/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type manualTicks struct {
	ch      chan time.Time
	stopped chan struct{}
}

func newManualTicks() *manualTicks {
	return &manualTicks{ch: make(chan time.Time), stopped: make(chan struct{})}
}

func (m *manualTicks) source(time.Duration) (<-chan time.Time, func()) {
	return m.ch, func() { close(m.stopped) }
}

func runDriver(t *testing.T, driver *Driver, resume chan struct{}) (context.CancelFunc, <-chan Tick, <-chan error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan Tick, 16)
	done := make(chan error, 1)
	go func() {
		done <- driver.Run(ctx, resume, func(tick Tick) error {
			ticks <- tick
			return nil
		})
	}()

	return cancel, ticks, done
}

func receiveTick(t *testing.T, ticks <-chan Tick) Tick {
	t.Helper()

	select {
	case tick := <-ticks:
		return tick
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tick")
		return Tick{}
	}
}

func TestDriverEvaluatesOnStartTickAndResume(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &steppingClock{now: engineStart}
	engine, err := NewEngine(testEngineConfig, clock, nil, nil)
	require.NoError(t, err)

	source := newManualTicks()
	resume := make(chan struct{})
	driver := NewDriver(engine, time.Second, WithTickSource(source.source))
	cancel, ticks, done := runDriver(t, driver, resume)

	first := receiveTick(t, ticks)
	assert.Empty(t, first.Completed)

	clock.Advance(30 * time.Second)
	source.ch <- engineStart.Add(30 * time.Second)
	second := receiveTick(t, ticks)
	require.Len(t, second.Completed, 1)
	assert.Equal(t, domain.RoundID("202501011001001903"), second.Active.ID)

	clock.Advance(5 * time.Minute)
	resume <- struct{}{}
	third := receiveTick(t, ticks)
	assert.Len(t, third.Completed, 10)
	assert.Len(t, third.History, 11)

	cancel()
	require.NoError(t, <-done)
	<-source.stopped
}

func TestDriverStopsOnSinkError(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine, err := NewEngine(testEngineConfig, &steppingClock{now: engineStart}, nil, nil)
	require.NoError(t, err)

	sinkErr := errors.New("display closed")
	source := newManualTicks()
	driver := NewDriver(engine, time.Second, WithTickSource(source.source))

	err = driver.Run(context.Background(), nil, func(Tick) error { return sinkErr })
	require.ErrorIs(t, err, sinkErr)
	<-source.stopped
}

func TestDriverKeepsRunningWhenArchiveFails(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &steppingClock{now: engineStart}
	archive := mocks.NewMockRoundArchive(t)
	archive.EXPECT().Append(mockAnyContext(), mock.Anything).Return(errors.New("locked")).Once()
	archive.EXPECT().Append(mockAnyContext(), mock.Anything).Return(nil).Once()

	engine, err := NewEngine(testEngineConfig, clock, archive, nil)
	require.NoError(t, err)

	source := newManualTicks()
	driver := NewDriver(engine, time.Second, WithTickSource(source.source))
	cancel, ticks, done := runDriver(t, driver, nil)
	receiveTick(t, ticks)

	clock.Advance(30 * time.Second)
	source.ch <- engineStart.Add(30 * time.Second)
	assert.Len(t, receiveTick(t, ticks).Completed, 1)

	clock.Advance(30 * time.Second)
	source.ch <- engineStart.Add(60 * time.Second)
	assert.Len(t, receiveTick(t, ticks).Completed, 1)

	cancel()
	require.NoError(t, <-done)
}

func TestDriverReturnsNilWhenCancelledBeforeStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine, err := NewEngine(testEngineConfig, &steppingClock{now: engineStart}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := newManualTicks()
	driver := NewDriver(engine, 0, WithTickSource(source.source))
	require.NoError(t, driver.Run(ctx, nil, func(Tick) error {
		t.Fatal("sink must not be called")
		return nil
	}))
	assert.Equal(t, DefaultDriverInterval, driver.interval)
}
