package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Device classes derived from the user-agent string.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// VisitCooldown is the minimum elapsed time before a repeat visit to the
// same (session, path) pair is recorded again.
const VisitCooldown = 15 * time.Minute

// SiteVisit is an immutable record of a single public menu page view.
// Rows are never mutated or deleted; they are read only in aggregate.
type SiteVisit struct {
	ID        int64     `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Path      string    `json:"path"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Referrer  string    `json:"referrer"`
	Device    string    `json:"device"`
	Duration  int       `json:"duration_seconds"`
	CreatedAt time.Time `json:"created_at"`
}

// DeviceClassFromUserAgent is a case-insensitive substring heuristic, not
// an exhaustive UA parser. Tablet is checked before mobile because many
// tablet user agents also contain "mobile".
func DeviceClassFromUserAgent(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "tablet"):
		return DeviceTablet
	case strings.Contains(ua, "mobile"):
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// DailyVisitCount is one day of the admin analytics window.
type DailyVisitCount struct {
	Day    time.Time `json:"day"`
	Visits int64     `json:"visits"`
}

// DeviceVisitCount is the per-device breakdown of the analytics window.
type DeviceVisitCount struct {
	Device string `json:"device"`
	Visits int64  `json:"visits"`
}

type VisitRepository interface {
	Record(ctx context.Context, v *SiteVisit) error
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByDay(ctx context.Context, since time.Time) ([]DailyVisitCount, error)
	CountByDevice(ctx context.Context, since time.Time) ([]DeviceVisitCount, error)
}
