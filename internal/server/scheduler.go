package server

import (
	"context"
	"log"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/redis/go-redis/v9"

	"github.com/HatD3V/mountx-the-inner-browser/repository/redis_repository"
)

// Sweeper prunes expired history entries on a cron schedule. A Redis lock
// keeps concurrent relay instances from sweeping at the same time.
type Sweeper struct {
	History   *redis_repository.HistoryRepository
	Rdb       *redis.Client
	CronSpec  string
	Retention time.Duration
	Stop      chan struct{}

	lastSweep time.Time
}

func (s *Sweeper) Start() {
	ticker := time.NewTicker(time.Minute)
	go func() {
		for {
			select {
			case <-s.Stop:
				ticker.Stop()
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

func (s *Sweeper) tick() {
	if !s.due(time.Now()) {
		return
	}
	ctx := context.Background()

	// distributed lock to avoid duplicate sweeps
	if s.Rdb != nil {
		ok, _ := s.Rdb.SetNX(ctx, "history:sweep:lock", "1", 2*time.Minute).Result()
		if !ok {
			s.lastSweep = time.Now()
			return
		}
		defer s.Rdb.Del(ctx, "history:sweep:lock")
	}

	pruned, err := s.History.PruneOlderThan(ctx, s.Retention)
	if err != nil {
		log.Printf("[SWEEP] history prune failed: %v", err)
		return
	}
	s.lastSweep = time.Now()
	if pruned > 0 {
		log.Printf("[SWEEP] pruned %d history entries", pruned)
	}
}

// due reports whether the cron schedule has fired since the last sweep.
// Supports "@hourly", "@daily", and standard 5-field cron expressions; an
// unparsable spec falls back to hourly.
func (s *Sweeper) due(now time.Time) bool {
	if s.lastSweep.IsZero() {
		return true
	}
	switch s.CronSpec {
	case "@hourly":
		return now.Sub(s.lastSweep) >= time.Hour
	case "@daily":
		return now.Sub(s.lastSweep) >= 24*time.Hour
	default:
		expr, err := cronexpr.Parse(s.CronSpec)
		if err != nil {
			return now.Sub(s.lastSweep) >= time.Hour
		}
		return !expr.Next(s.lastSweep).After(now)
	}
}
