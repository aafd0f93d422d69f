package server

import (
	"testing"
	"time"
)

func TestSweeperDue(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	s := &Sweeper{CronSpec: "@hourly"}
	if !s.due(now) {
		t.Fatal("first sweep should always be due")
	}

	s.lastSweep = now.Add(-30 * time.Minute)
	if s.due(now) {
		t.Fatal("hourly sweep fired after 30 minutes")
	}
	s.lastSweep = now.Add(-2 * time.Hour)
	if !s.due(now) {
		t.Fatal("hourly sweep did not fire after 2 hours")
	}

	// standard cron: top of every hour
	s = &Sweeper{CronSpec: "0 * * * *", lastSweep: now.Add(-45 * time.Minute)}
	if !s.due(now) {
		t.Fatal("cron sweep did not fire across the hour boundary")
	}
	s.lastSweep = now.Add(-10 * time.Minute)
	if s.due(now) {
		t.Fatal("cron sweep fired without crossing the hour boundary")
	}

	// unparsable spec falls back to hourly
	s = &Sweeper{CronSpec: "whenever", lastSweep: now.Add(-90 * time.Minute)}
	if !s.due(now) {
		t.Fatal("fallback hourly sweep did not fire")
	}
}
