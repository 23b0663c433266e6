package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/server/middleware"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/visits"
)

// captureVisitRepo collects recorded visits for assertions.
type captureVisitRepo struct {
	mu       sync.Mutex
	recorded []*domain.SiteVisit
}

func (r *captureVisitRepo) Record(_ context.Context, v *domain.SiteVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, v)
	return nil
}

func (r *captureVisitRepo) Count(context.Context) (int64, error) { return 0, nil }
func (r *captureVisitRepo) CountSince(context.Context, time.Time) (int64, error) {
	return 0, nil
}
func (r *captureVisitRepo) CountByDay(context.Context, time.Time) ([]domain.DailyVisitCount, error) {
	return nil, nil
}
func (r *captureVisitRepo) CountByDevice(context.Context, time.Time) ([]domain.DeviceVisitCount, error) {
	return nil, nil
}

func (r *captureVisitRepo) visits() []*domain.SiteVisit {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.SiteVisit, len(r.recorded))
	copy(out, r.recorded)
	return out
}

func newTrackedHandler(t *testing.T) (*captureVisitRepo, http.Handler) {
	t.Helper()

	repo := &captureVisitRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	tracker := visits.NewTracker(visits.NewMemoryGate(ctx), repo, domain.VisitCooldown)

	// Session supplies the session id that TrackVisits reads.
	handler := middleware.Session()(middleware.TrackVisits(tracker)(okHandler))
	return repo, handler
}

func TestTrackVisits_RecordsMenuReads(t *testing.T) {
	t.Parallel()

	repo, handler := newTrackedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/menu/7", http.NoBody)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone) Mobile Safari")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Len(t, repo.visits(), 1)
	v := repo.visits()[0]
	assert.Equal(t, "/api/menu/7", v.Path)
	assert.Equal(t, domain.DeviceMobile, v.Device)
}

func TestTrackVisits_DeduplicatesWithinCooldown(t *testing.T) {
	t.Parallel()

	repo, handler := newTrackedHandler(t)

	first := httptest.NewRequest(http.MethodGet, "/api/menu/7", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)

	// Re-send with the session cookie the first response assigned.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	second := httptest.NewRequest(http.MethodGet, "/api/menu/7", http.NoBody)
	second.AddCookie(cookies[0])
	handler.ServeHTTP(httptest.NewRecorder(), second)

	assert.Len(t, repo.visits(), 1, "repeat view inside the cooldown window is not re-recorded")
}

func TestTrackVisits_DifferentPathsCountSeparately(t *testing.T) {
	t.Parallel()

	repo, handler := newTrackedHandler(t)

	first := httptest.NewRequest(http.MethodGet, "/api/menu/7", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	second := httptest.NewRequest(http.MethodGet, "/api/menu/8", http.NoBody)
	second.AddCookie(cookies[0])
	handler.ServeHTTP(httptest.NewRecorder(), second)

	assert.Len(t, repo.visits(), 2, "each menu is a distinct dedup key")
}

func TestTrackVisits_IgnoresNonMenuTraffic(t *testing.T) {
	t.Parallel()

	repo, handler := newTrackedHandler(t)

	paths := []string{
		"/api/products",
		"/api/auth/login",
		"/api/admin/stats",
		"/api/favorites",
		"/healthz",
		"/static/logo.png",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Empty(t, repo.visits())
}

func TestTrackVisits_IgnoresNonGET(t *testing.T) {
	t.Parallel()

	repo, handler := newTrackedHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/menu/7", http.NoBody)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, repo.visits())
}
