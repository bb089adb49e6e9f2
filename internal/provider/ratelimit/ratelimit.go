package ratelimit

import (
	"context"
	"time"
)

// MinInterval enforces a minimum time between the end of one call and the
// start of the next. Calls are serialized: concurrent callers take turns,
// and a caller waiting for its turn or for the interval returns early if its
// context is canceled.
type MinInterval struct {
	Interval time.Duration

	turn chan struct{}
	last time.Time // guarded by turn
}

func NewMinInterval(interval time.Duration) *MinInterval {
	return &MinInterval{Interval: interval, turn: make(chan struct{}, 1)}
}

// Do runs fn once the interval since the previous call has elapsed.
func (m *MinInterval) Do(ctx context.Context, fn func(context.Context) error) error {
	select {
	case m.turn <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-m.turn }()

	if m.Interval > 0 && !m.last.IsZero() {
		if wait := time.Until(m.last.Add(m.Interval)); wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	err := fn(ctx)
	m.last = time.Now()
	return err
}
