package monitor

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/alert"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/store"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/tracker"
)

// Monitor periodically refreshes every tracked ASIN, persists the new
// snapshots, and dispatches alerts on buybox-status transitions.
type Monitor struct {
	store    *store.Store
	tracker  *tracker.Tracker
	notifier *alert.Notifier
	limiter  *rate.Limiter
	interval time.Duration
}

func New(st *store.Store, tr *tracker.Tracker, notifier *alert.Notifier, limiter *rate.Limiter, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &Monitor{
		store:    st,
		tracker:  tr,
		notifier: notifier,
		limiter:  limiter,
		interval: interval,
	}
}

// Start runs the refresh loop until ctx is cancelled. The first cycle runs
// immediately.
func (m *Monitor) Start(ctx context.Context) error {
	log.Printf("monitor started, refreshing every %v", m.interval)

	m.RefreshAll(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.RefreshAll(ctx)
		}
	}
}

// RefreshAll re-runs the lookup pipeline for every tracked ASIN. Individual
// failures are logged and skipped; the cycle always completes.
func (m *Monitor) RefreshAll(ctx context.Context) {
	tracked, err := m.store.ListTracked()
	if err != nil {
		log.Printf("monitor: list tracked: %v", err)
		return
	}
	log.Printf("monitor: refreshing %d ASINs", len(tracked))

	for _, prev := range tracked {
		if m.limiter != nil {
			if err := m.limiter.Wait(ctx); err != nil {
				return
			}
		}

		snap, err := m.tracker.Lookup(ctx, prev.ASIN, prev.Marketplace)
		if err != nil {
			log.Printf("monitor: refresh %s: %v", prev.ASIN, err)
			// The snapshot is still a valid conservative record; fall
			// through so the unknown state is observable.
		}

		if err := m.store.SaveSnapshot(snap); err != nil {
			log.Printf("monitor: save %s: %v", snap.ASIN, err)
			continue
		}
		m.notifier.CheckAndAlert(&prev, snap)
	}
	log.Printf("monitor: refresh cycle complete")
}
