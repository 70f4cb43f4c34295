package sessions

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper is a store whose idle sessions can be expired.
type Sweeper interface {
	SweepIdle(cutoff time.Time) int
}

// DefaultSweepInterval is used when the configured interval is not positive.
const DefaultSweepInterval = 5 * time.Minute

// Janitor periodically expires sessions idle for longer than the TTL.
type Janitor struct {
	stores   map[string]Sweeper
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewJanitor creates a janitor over the named stores. A non-positive ttl
// disables expiry.
func NewJanitor(ttl, interval time.Duration, stores map[string]Sweeper, opts ...Option) *Janitor {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	o := buildOptions(opts)
	return &Janitor{
		stores:   stores,
		ttl:      ttl,
		interval: interval,
		now:      o.now,
	}
}

// Start runs the janitor until ctx is canceled. Run it in its own goroutine.
func (j *Janitor) Start(ctx context.Context) {
	if j.ttl <= 0 {
		log.Info().Msg("Session janitor disabled")
		return
	}
	log.Info().
		Dur("ttl", j.ttl).
		Dur("interval", j.interval).
		Msg("Session janitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Session janitor stopped")
			return
		case <-ticker.C:
			j.RunCycle()
		}
	}
}

// RunCycle sweeps every store once and returns the number of sessions
// removed per store.
func (j *Janitor) RunCycle() map[string]int {
	cutoff := j.now().Add(-j.ttl)
	stats := make(map[string]int, len(j.stores))
	for name, s := range j.stores {
		n := s.SweepIdle(cutoff)
		stats[name] = n
		if n > 0 {
			log.Info().Str("store", name).Int("expired", n).Msg("Expired idle sessions")
		}
	}
	return stats
}
