package playback

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// DefaultTickInterval is the readout refresh cadence.
const DefaultTickInterval = time.Second

// Run calls Tick every interval until ctx is cancelled.
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	zlog.Debug().Dur("interval", interval).Msg("playback ticker started")
	for {
		select {
		case <-ctx.Done():
			zlog.Debug().Msg("playback ticker stopped")
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
