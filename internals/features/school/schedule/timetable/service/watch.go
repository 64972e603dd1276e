package service

import (
	"context"
	"time"
)

// LiveInterval is how often the live progress marker is recomputed.
const LiveInterval = time.Minute

// Watch calls fn once right away and then on every tick until ctx is done.
func Watch(ctx context.Context, interval time.Duration, now func() time.Time, fn func(time.Time)) {
	if interval <= 0 {
		interval = LiveInterval
	}
	fn(now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(now())
		}
	}
}
