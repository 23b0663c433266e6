package domain

import (
	"context"
	"time"
)

// AuditEntry is an append-only record of a privileged or mutating action.
type AuditEntry struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actor_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditRepository interface {
	// Record must be durable before it returns; there is no write buffer.
	Record(ctx context.Context, e *AuditEntry) error
	// ListPaginated returns entries newest-first plus the total count.
	ListPaginated(ctx context.Context, limit, offset int) ([]*AuditEntry, int64, error)
}
