// Package visits implements the page-visit tracking pipeline: dedup per
// (session, path) with a cooldown window, device classification, and
// fire-and-forget persistence.
package visits

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

// Gate decides whether a visit key is being seen for the first time inside
// the cooldown window. The Redis implementation lives in store/redis; the
// in-memory one below serves tests and Redis-less deployments.
type Gate interface {
	FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Hit carries the request attributes the pipeline persists.
type Hit struct {
	SessionID uuid.UUID
	Path      string
	IP        string
	UserAgent string
	Referrer  string
}

type Tracker struct {
	gate     Gate
	visits   domain.VisitRepository
	cooldown time.Duration
}

func NewTracker(gate Gate, visits domain.VisitRepository, cooldown time.Duration) *Tracker {
	if cooldown <= 0 {
		cooldown = domain.VisitCooldown
	}
	return &Tracker{gate: gate, visits: visits, cooldown: cooldown}
}

// Track records the hit unless the same (session, path) pair was already
// recorded inside the cooldown window. Failures are logged and swallowed;
// tracking must never fail the page request it rides on.
func (t *Tracker) Track(ctx context.Context, hit Hit) {
	key := "visit:" + hit.SessionID.String() + ":" + hit.Path

	first, err := t.gate.FirstSeen(ctx, key, t.cooldown)
	if err != nil {
		log.Warn().Err(err).Str("path", hit.Path).Msg("visits: gate check failed")
		return
	}
	if !first {
		return
	}

	visit := &domain.SiteVisit{
		SessionID: hit.SessionID,
		Path:      hit.Path,
		IP:        hit.IP,
		UserAgent: hit.UserAgent,
		Referrer:  hit.Referrer,
		Device:    domain.DeviceClassFromUserAgent(hit.UserAgent),
		CreatedAt: time.Now(),
	}

	if err := t.visits.Record(ctx, visit); err != nil {
		log.Warn().Err(err).Str("path", hit.Path).Msg("visits: record failed")
	}
}

// MemoryGate is a mutex-guarded map gate with periodic stale sweeps. Two
// concurrent first hits may both pass in the worst case; acceptable for
// approximate analytics.
type MemoryGate struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

func NewMemoryGate(ctx context.Context) *MemoryGate {
	g := &MemoryGate{seen: make(map[string]time.Time)}

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				g.sweep(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()

	return g
}

func (g *MemoryGate) FirstSeen(_ context.Context, key string, ttl time.Duration) (bool, error) {
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	if expiry, ok := g.seen[key]; ok && now.Before(expiry) {
		return false, nil
	}
	g.seen[key] = now.Add(ttl)
	return true, nil
}

func (g *MemoryGate) sweep(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for key, expiry := range g.seen {
		if now.After(expiry) {
			delete(g.seen, key)
		}
	}
}
