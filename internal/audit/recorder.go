// Package audit appends entries to the administrator log. Appends are
// best-effort from the caller's perspective: a failed append is logged
// server-side and never rolls back the primary operation.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

type Recorder struct {
	repo domain.AuditRepository
}

func NewRecorder(repo domain.AuditRepository) *Recorder {
	return &Recorder{repo: repo}
}

// Record appends one entry. The underlying insert is synchronous and
// durable; only the error handling is fire-and-forget.
func (r *Recorder) Record(ctx context.Context, actorID int64, action, details, ip string) {
	entry := &domain.AuditEntry{
		ActorID:   actorID,
		Action:    action,
		Details:   details,
		IP:        ip,
		CreatedAt: time.Now(),
	}

	if err := r.repo.Record(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", action).Int64("actor_id", actorID).Msg("audit: append failed")
	}
}
