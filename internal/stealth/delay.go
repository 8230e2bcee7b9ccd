package stealth

import (
	"context"
	"math/rand/v2"
	"time"
)

// DelayProfile defines a named delay configuration.
type DelayProfile string

const (
	ProfileCautious   DelayProfile = "cautious"
	ProfileNormal     DelayProfile = "normal"
	ProfileAggressive DelayProfile = "aggressive"
)

// HumanDelay adds randomized jitter between requests to mimic human browsing
// patterns. Marketplaces throttle aggressively on uniform request spacing.
type HumanDelay struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewHumanDelay creates a delay generator for the given profile.
func NewHumanDelay(profile DelayProfile) *HumanDelay {
	switch profile {
	case ProfileCautious:
		return &HumanDelay{MinDelay: 3 * time.Second, MaxDelay: 6 * time.Second}
	case ProfileAggressive:
		return &HumanDelay{MinDelay: 300 * time.Millisecond, MaxDelay: time.Second}
	default: // normal
		return &HumanDelay{MinDelay: 1500 * time.Millisecond, MaxDelay: 3 * time.Second}
	}
}

// Wait sleeps for a random duration within the configured range.
func (h *HumanDelay) Wait(ctx context.Context) error {
	select {
	case <-time.After(h.RequestDelay()):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestDelay returns a random delay for page requests.
func (h *HumanDelay) RequestDelay() time.Duration {
	return h.randomBetween(h.MinDelay, h.MaxDelay)
}

// RefreshDelay returns a longer delay used between ASINs in a scheduled
// refresh cycle.
func (h *HumanDelay) RefreshDelay() time.Duration {
	return h.randomBetween(h.MaxDelay, h.MaxDelay*2)
}

func (h *HumanDelay) randomBetween(min, max time.Duration) time.Duration {
	if min >= max {
		return min
	}
	return min + time.Duration(rand.Int64N(int64(max-min)))
}
