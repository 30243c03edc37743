package domain

import (
	"fmt"
	"time"
)

const (
	// DefaultRoundDuration is the length of one round.
	DefaultRoundDuration = 30 * time.Second

	// SerialBase offsets the serial seeded from the time of day.
	SerialBase = 700
)

type ClockOptions struct {
	RoundDuration   time.Duration
	HistoryCapacity int
	Location        *time.Location
}

func (o ClockOptions) withDefaults() ClockOptions {
	if o.RoundDuration == 0 {
		o.RoundDuration = DefaultRoundDuration
	}
	if o.HistoryCapacity == 0 {
		o.HistoryCapacity = DefaultHistoryCapacity
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Validate checks that the round duration is a whole number of seconds that
// divides a minute and that the history can hold at least one round.
func (o ClockOptions) Validate() error {
	o = o.withDefaults()

	if o.RoundDuration%time.Second != 0 {
		return fmt.Errorf("%w: round duration %s is not a whole number of seconds", ErrInvalidClockConfig, o.RoundDuration)
	}
	seconds := int(o.RoundDuration / time.Second)
	if seconds < 1 || seconds > 60 || 60%seconds != 0 {
		return fmt.Errorf("%w: round duration %s must divide one minute", ErrInvalidClockConfig, o.RoundDuration)
	}
	if o.HistoryCapacity < 1 {
		return fmt.Errorf("%w: history capacity %d must be positive", ErrInvalidClockConfig, o.HistoryCapacity)
	}

	return nil
}

// CatchUp is the result of one reconciliation.
type CatchUp struct {
	Active    Round
	Remaining time.Duration
	// Completed lists the rounds opened by this evaluation, oldest first.
	Completed []Round
}

// RoundClock owns the round sequence: the serial counter, the anchor marking
// the start of the active round and the history written on every boundary
// crossed. It is not safe for concurrent use; callers serialize CatchUp.
type RoundClock struct {
	duration  time.Duration
	loc       *time.Location
	serial    int
	anchor    time.Time
	remaining time.Duration
	active    Round
	history   *HistoryLog
}

// NewRoundClock seeds the serial from the time of day of now and anchors the
// active round at the start of the block containing now.
func NewRoundClock(now time.Time, opts ClockOptions) (*RoundClock, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	local := now.In(opts.Location).Truncate(time.Second)
	seconds := int(opts.RoundDuration / time.Second)
	secondsOfDay := local.Hour()*3600 + local.Minute()*60 + local.Second()
	anchor := local.Add(-time.Duration(local.Second()%seconds) * time.Second)

	return NewRoundClockAt(anchor, SerialBase+secondsOfDay/seconds+1, opts)
}

// NewRoundClockAt builds a clock whose active round started at anchor with the
// given serial.
func NewRoundClockAt(anchor time.Time, serial int, opts ClockOptions) (*RoundClock, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	c := &RoundClock{
		duration:  opts.RoundDuration,
		loc:       opts.Location,
		serial:    serial,
		anchor:    anchor.In(opts.Location),
		remaining: opts.RoundDuration,
		history:   NewHistoryLog(opts.HistoryCapacity),
	}
	c.active = c.round(c.anchor, c.serial)

	return c, nil
}

// CatchUp advances the clock across every round boundary between the anchor
// and now. Rounds are emitted oldest first and each is pushed to the front of
// the history. A now before the anchor counts as no elapsed time.
func (c *RoundClock) CatchUp(now time.Time) CatchUp {
	seconds := int64(c.duration / time.Second)

	elapsed := int64(now.Sub(c.anchor) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	rounds := elapsed / seconds

	var completed []Round
	if rounds > 0 {
		completed = make([]Round, 0, rounds)
		for i := int64(0); i < rounds; i++ {
			c.serial++
			started := c.anchor.Add(time.Duration(i+1) * c.duration)
			round := c.round(started, c.serial)
			c.history.Push(round)
			completed = append(completed, round)
		}

		c.anchor = c.anchor.Add(time.Duration(rounds) * c.duration)
		c.active = completed[len(completed)-1]
	}

	remaining := c.duration - time.Duration(elapsed%seconds)*time.Second
	if remaining < 0 {
		remaining = 0
	}
	if remaining > c.duration {
		remaining = c.duration
	}
	c.remaining = remaining

	return CatchUp{
		Active:    c.active,
		Remaining: c.remaining,
		Completed: completed,
	}
}

func (c *RoundClock) round(started time.Time, serial int) Round {
	id := FormatRoundID(started.In(c.loc), c.duration, serial)
	return Round{
		ID:        id,
		StartedAt: started,
		Outcome:   OutcomeFor(id, started),
	}
}

func (c *RoundClock) Active() Round {
	return c.active
}

func (c *RoundClock) Serial() int {
	return c.serial
}

func (c *RoundClock) Anchor() time.Time {
	return c.anchor
}

func (c *RoundClock) Remaining() time.Duration {
	return c.remaining
}

func (c *RoundClock) RoundDuration() time.Duration {
	return c.duration
}

func (c *RoundClock) History() []Round {
	return c.history.Entries()
}

func (c *RoundClock) HistoryCapacity() int {
	return c.history.Capacity()
}
